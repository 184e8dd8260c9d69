package ui_test

import (
	"testing"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
}

func newWorld() *world {
	registry := ecs.NewComponentRegistry()
	render.RegisterComponents(registry)
	ui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	render.InitResources(storage, render.Black, render.Window{Width: 1280, Height: 720})
	ui.InitResources(storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ui.TargetSystem{})
	scheduler.Register(&ui.LayoutSystem{})
	scheduler.Register(&ui.InteractionSystem{})
	return &world{storage: storage, scheduler: scheduler}
}

func (w *world) camera(order int, layers render.RenderLayers) ecs.EntityId {
	bundle := render.NewCamera3dBundle()
	bundle.Camera.Order = order
	return w.storage.Spawn(bundle, layers)
}

// playCard spawns a container, button and text tree.
func (w *world) playCard(target ecs.EntityId) (container, button, text ecs.EntityId) {
	commands := ecs.NewCommands(w.storage)
	root := []any{ui.NodeBundle{Style: ui.Style{
		Width:          ui.Percent(90),
		Height:         ui.Percent(90),
		AlignItems:     ui.AlignItemsCenter,
		JustifyContent: ui.JustifyContentFlexEnd,
	}}}
	if target != ecs.NoEntity {
		root = append(root, ui.TargetCamera{Entity: target})
	}
	container = commands.Spawn(root...).WithChildren(func(parent *ecs.ChildBuilder) {
		button = parent.Spawn(ui.ButtonBundle{
			Style: ui.Style{
				Width:          ui.Px(150),
				Height:         ui.Px(65),
				Border:         ui.UiRectAll(ui.Px(5)),
				JustifyContent: ui.JustifyContentCenter,
				AlignItems:     ui.AlignItemsCenter,
			},
			BorderColor:     ui.BorderColor{Color: render.Black},
			BorderRadius:    ui.BorderRadiusMax,
			BackgroundColor: ui.BackgroundColor{Color: render.Black},
		}).WithChildren(func(parent *ecs.ChildBuilder) {
			text = parent.Spawn(ui.TextFromSection("Play Card", ui.TextStyle{FontSize: 20, Color: render.Srgb(0.9, 0.9, 0.9)})).Id()
		}).Id()
	}).Id()
	commands.Flush(w.storage)
	return container, button, text
}

func (w *world) node(id ecs.EntityId) *ui.Node {
	return ecs.ReadComponent[ui.Node](w.storage, id)
}

func (w *world) target(id ecs.EntityId) *ui.ComputedTarget {
	return ecs.ReadComponent[ui.ComputedTarget](w.storage, id)
}

func TestTargetInheritance(t *testing.T) {
	w := newWorld()
	w.camera(1, render.Layer(2))
	uiCam := w.camera(2, render.Layer(1))
	container, button, text := w.playCard(uiCam)

	w.scheduler.Once(0)

	for _, id := range []ecs.EntityId{container, button, text} {
		target := w.target(id)
		assert.Equal(t, uiCam, target.Camera)
		assert.Equal(t, render.Layer(1), target.Layers, "nodes inherit the camera layers")
		assert.True(t, target.Window)
	}
	assert.Equal(t, []ecs.EntityId{container, button, text}, ui.NodesForCamera(w.storage, uiCam))
}

func TestTargetFallsBackToHighestWindowCamera(t *testing.T) {
	w := newWorld()
	low := w.camera(1, render.Layer(2))
	high := w.camera(5, render.Layer(3))

	images := ecs.GetSingleton[render.Assets[render.Image]](w.storage)
	offscreen := render.NewCamera3dBundle()
	offscreen.Camera.Order = 9
	offscreen.Camera.Target = render.ImageTarget(images.Add(render.NewImageFill(512, 512, []byte{0, 0, 0, 0}, render.TextureFormatBgra8UnormSrgb, render.TextureUsageRenderAttachment)))
	w.storage.Spawn(offscreen)

	container, _, _ := w.playCard(ecs.NoEntity)
	w.scheduler.Once(0)

	assert.Equal(t, high, w.target(container).Camera)
	assert.NotEqual(t, low, w.target(container).Camera)
	assert.Equal(t, ui.DefaultCamera(w.storage), high)
}

func TestTargetImageCamera(t *testing.T) {
	w := newWorld()
	images := ecs.GetSingleton[render.Assets[render.Image]](w.storage)
	offscreen := render.NewCamera3dBundle()
	offscreen.Camera.Target = render.ImageTarget(images.Add(render.NewImageFill(512, 256, []byte{0, 0, 0, 0}, render.TextureFormatBgra8UnormSrgb, render.TextureUsageRenderAttachment)))
	camera := w.storage.Spawn(offscreen)

	container, _, _ := w.playCard(camera)
	w.scheduler.Once(0)

	target := w.target(container)
	assert.Equal(t, render.DefaultLayers, target.Layers)
	assert.False(t, target.Window)
	assert.Equal(t, 512, target.Width)
	assert.Equal(t, 256, target.Height)
	assert.Equal(t, ui.Rect{Width: 512 * 0.9, Height: 256 * 0.9}, w.node(container).Rect)
}

func TestTargetMissingCamera(t *testing.T) {
	w := newWorld()
	container, _, _ := w.playCard(ecs.NoEntity)
	w.scheduler.Once(0)

	assert.Equal(t, ecs.NoEntity, w.target(container).Camera)
	assert.Equal(t, render.RenderLayers(0), w.target(container).Layers)
}

func TestLayout(t *testing.T) {
	w := newWorld()
	uiCam := w.camera(2, render.Layer(1))
	container, button, text := w.playCard(uiCam)

	w.scheduler.Once(0)

	assert.Equal(t, ui.Rect{X: 0, Y: 0, Width: 1152, Height: 648}, w.node(container).Rect)

	b := w.node(button)
	assert.Equal(t, ui.Rect{X: 1002, Y: 291.5, Width: 150, Height: 65}, b.Rect, "flex-end on the row, centered vertically")
	assert.Equal(t, ui.Edges{Left: 5, Right: 5, Top: 5, Bottom: 5}, b.Border)
	assert.Equal(t, ui.Rect{X: 1007, Y: 296.5, Width: 140, Height: 55}, b.ContentRect())

	tw, th := ui.ApproximateMeasure("Play Card", 20)
	assert.Equal(t, ui.Rect{X: 1007 + (140-tw)/2, Y: 296.5 + (55-th)/2, Width: tw, Height: th}, w.node(text).Rect)
}

func TestLayoutColumn(t *testing.T) {
	w := newWorld()
	camera := w.camera(0, render.DefaultLayers)

	commands := ecs.NewCommands(w.storage)
	var first, second ecs.EntityId
	commands.Spawn(ui.NodeBundle{Style: ui.Style{
		Width:          ui.Px(100),
		Height:         ui.Px(300),
		Padding:        ui.UiRectAll(ui.Px(10)),
		FlexDirection:  ui.FlexDirectionColumn,
		JustifyContent: ui.JustifyContentSpaceBetween,
	}}, ui.TargetCamera{Entity: camera}).WithChildren(func(parent *ecs.ChildBuilder) {
		first = parent.Spawn(ui.NodeBundle{Style: ui.Style{Height: ui.Px(50)}}).Id()
		second = parent.Spawn(ui.NodeBundle{Style: ui.Style{Width: ui.Px(40), Height: ui.Px(50), Margin: ui.UiRect{Left: ui.Px(5)}}}).Id()
	})
	commands.Flush(w.storage)

	w.scheduler.Once(0)

	assert.Equal(t, ui.Rect{X: 10, Y: 10, Width: 80, Height: 50}, w.node(first).Rect, "auto width stretches")
	assert.Equal(t, ui.Rect{X: 15, Y: 240, Width: 40, Height: 50}, w.node(second).Rect, "space-between pushes the last child to the end")
}

func TestTextMeasurerResource(t *testing.T) {
	w := newWorld()
	camera := w.camera(0, render.DefaultLayers)
	ecs.GetSingleton[ui.TextMeasurer](w.storage).Measure = func(s string, size float32) (float32, float32) {
		return 7, 3
	}

	text := w.storage.Spawn(ui.TextFromSection("anything", ui.DefaultTextStyle()), ui.TargetCamera{Entity: camera})
	w.scheduler.Once(0)

	assert.Equal(t, ui.Rect{Width: 7, Height: 3}, w.node(text).Rect)
}

func TestInteraction(t *testing.T) {
	w := newWorld()
	uiCam := w.camera(2, render.Layer(1))
	_, button, _ := w.playCard(uiCam)
	cursor := ecs.GetSingleton[ui.Cursor](w.storage)

	interaction := func() ui.Interaction {
		return *ecs.ReadComponent[ui.Interaction](w.storage, button)
	}

	w.scheduler.Once(0)
	require.Equal(t, ui.InteractionNone, interaction())

	*cursor = ui.Cursor{X: 1010, Y: 300, Present: true}
	w.scheduler.Once(0)
	assert.Equal(t, ui.InteractionHovered, interaction())

	cursor.Pressed = true
	w.scheduler.Once(0)
	assert.Equal(t, ui.InteractionPressed, interaction())

	*cursor = ui.Cursor{X: 10, Y: 10, Present: true, Pressed: true}
	w.scheduler.Once(0)
	assert.Equal(t, ui.InteractionNone, interaction())
}

func TestBorderRadiusResolve(t *testing.T) {
	assert.Equal(t, [4]float32{32.5, 32.5, 32.5, 32.5}, ui.BorderRadiusMax.Resolve(150, 65))
	assert.Equal(t, [4]float32{10, 10, 10, 10}, ui.BorderRadiusAll(ui.Percent(10)).Resolve(200, 100))
	assert.Equal(t, [4]float32{}, ui.BorderRadius{}.Resolve(150, 65))
}

func TestValResolve(t *testing.T) {
	px, ok := ui.Percent(90).Resolve(1280)
	assert.True(t, ok)
	assert.Equal(t, float32(1152), px)

	_, ok = ui.Auto.Resolve(1280)
	assert.False(t, ok)
}

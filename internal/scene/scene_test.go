package scene_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/internal/engine"
	"github.com/plus3/layercams/internal/scene"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, cfg scene.Config, opts ...engine.Option) *engine.Engine {
	t.Helper()
	e := engine.New(opts...)
	require.NoError(t, scene.Install(e, cfg))
	e.Update(1.0 / 60)
	return e
}

func single[T any](t *testing.T, storage *ecs.Storage) ecs.EntityId {
	t.Helper()
	var ids []ecs.EntityId
	for item := range ecs.NewView[struct {
		Id ecs.EntityId
		_  *T
	}](storage).Values() {
		ids = append(ids, item.Id)
	}
	require.Len(t, ids, 1)
	return ids[0]
}

type uiTree struct {
	container, button, text ecs.EntityId
}

func buttons(storage *ecs.Storage) []uiTree {
	var trees []uiTree
	view := ecs.NewView[struct {
		Id ecs.EntityId
		*ui.Button
	}](storage)
	for b := range view.Values() {
		tree := uiTree{container: ecs.ParentOf(storage, b.Id), button: b.Id}
		if children := ecs.ChildrenOf(storage, b.Id); len(children) == 1 {
			tree.text = children[0]
		}
		trees = append(trees, tree)
	}
	return trees
}

func countNodes(storage *ecs.Storage) int {
	return ecs.NewView[struct{ *ui.Node }](storage).Count()
}

func TestSceneEndToEnd(t *testing.T) {
	e := build(t, scene.DefaultConfig())
	storage := e.Storage

	mainCam := single[scene.PlayerCamera](t, storage)
	uiCam := single[scene.CameraUi](t, storage)

	cameras := render.SortedCameras(storage)
	require.Len(t, cameras, 3)

	offscreen := cameras[0]
	assert.Equal(t, 0, offscreen.Camera.Order)
	assert.Equal(t, render.Layer(0), offscreen.Layers)
	require.False(t, offscreen.Camera.Target.IsWindow())
	img := ecs.GetSingleton[render.Assets[render.Image]](storage).Get(offscreen.Camera.Target.Image)
	require.NotNil(t, img)
	assert.Equal(t, 512, img.Width)
	assert.Equal(t, 512, img.Height)
	assert.Equal(t, render.TextureFormatBgra8UnormSrgb, img.Format)
	assert.True(t, img.Usage.Has(render.TextureUsageTextureBinding|render.TextureUsageCopyDst|render.TextureUsageRenderAttachment))

	assert.Equal(t, mainCam, cameras[1].Entity)
	assert.Equal(t, 1, cameras[1].Camera.Order)
	assert.Equal(t, render.ClearDefault, cameras[1].Camera.ClearColor.Mode)
	assert.Equal(t, render.Layer(2), cameras[1].Layers)
	assert.InDelta(t, render.Radians(90), cameras[1].Projection.Perspective.Fov, 1e-6)

	assert.Equal(t, uiCam, cameras[2].Entity)
	assert.Equal(t, 2, cameras[2].Camera.Order)
	assert.Equal(t, render.ClearNone, cameras[2].Camera.ClearColor.Mode)
	assert.Equal(t, render.Layer(1), cameras[2].Layers)
	assert.InDelta(t, render.Radians(10), cameras[2].Projection.Perspective.Fov, 1e-6)
	assert.True(t, cameras[2].Transform.Translation.ApproxEqual(render.V3(0, 1.01, -0.23), 1e-6))
	assert.True(t, cameras[2].Transform.Forward().ApproxEqual(render.Vec3Z, 1e-4))

	trees := buttons(storage)
	require.Len(t, trees, 1)
	tree := trees[0]
	assert.Equal(t, uiCam, ecs.ReadComponent[ui.TargetCamera](storage, tree.container).Entity)
	assert.Equal(t, ecs.NoEntity, ecs.ParentOf(storage, tree.container))
	require.NotEqual(t, ecs.NoEntity, tree.text)
	assert.Equal(t, scene.ButtonLabel, ecs.ReadComponent[ui.Text](storage, tree.text).String())
	assert.Equal(t, float32(20), ecs.ReadComponent[ui.Text](storage, tree.text).Sections[0].Style.FontSize)
	assert.Equal(t, 3, countNodes(storage))

	meshes := ecs.NewView[struct {
		_ *render.Handle[render.Mesh]
	}](storage).Count()
	lights := ecs.NewView[struct{ *render.PointLight }](storage).Values()
	assert.Equal(t, 2, meshes)
	for l := range lights {
		assert.True(t, l.PointLight.ShadowsEnabled)
	}
}

func TestLayersDisjointAndButtonReachable(t *testing.T) {
	e := build(t, scene.DefaultConfig())
	storage := e.Storage

	mainCam := single[scene.PlayerCamera](t, storage)
	uiCam := single[scene.CameraUi](t, storage)
	mainLayers := render.LayersOrDefault(storage, mainCam)
	uiLayers := render.LayersOrDefault(storage, uiCam)
	assert.False(t, mainLayers.Intersects(uiLayers))

	tree := buttons(storage)[0]
	for _, id := range []ecs.EntityId{tree.container, tree.button, tree.text} {
		target := ecs.ReadComponent[ui.ComputedTarget](storage, id)
		assert.Equal(t, uiCam, target.Camera)
		assert.True(t, target.Layers.Intersects(uiLayers), "reachable from the UI camera")
		assert.False(t, target.Layers.Intersects(mainLayers), "not drawn by the main camera")
	}
	assert.Contains(t, ui.NodesForCamera(storage, uiCam), tree.button)
	assert.Empty(t, ui.NodesForCamera(storage, mainCam))

	mainVisible := ecs.ReadComponent[render.VisibleEntities](storage, mainCam)
	assert.Len(t, mainVisible.Meshes, 2)
	assert.Len(t, mainVisible.Lights, 1)
	assert.Zero(t, ecs.ReadComponent[render.VisibleEntities](storage, uiCam).Len())

	report := e.Report()
	assert.True(t, report.Ran)
	assert.Empty(t, report.Findings)
	assert.Empty(t, engine.AuditRenderLayers(storage))
}

func TestUiLayerZeroCollidesWithOffscreenCamera(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.UIRenderLayer = 0

	var logs bytes.Buffer
	e := build(t, cfg, engine.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	storage := e.Storage

	uiCam := single[scene.CameraUi](t, storage)
	offscreen := render.SortedCameras(storage)[0]
	require.False(t, offscreen.Camera.Target.IsWindow())

	tree := buttons(storage)[0]
	uiLayers := ecs.ReadComponent[ui.ComputedTarget](storage, tree.container).Layers
	assert.True(t, uiLayers.Equal(offscreen.Layers), "UI layer set equals the off-screen camera's")

	findings := e.Report().Findings
	assert.Contains(t, findings, engine.Finding{
		Kind: engine.FindingUiLayers, A: tree.container, B: offscreen.Entity, Shared: render.Layer(0), Equal: true,
	})
	assert.Contains(t, findings, engine.Finding{
		Kind: engine.FindingCameraLayers, A: offscreen.Entity, B: uiCam, Shared: render.Layer(0), Equal: true,
	})
	assert.Contains(t, logs.String(), "render layer collision")
}

func TestMainLayerZeroCollidesWithOffscreenCamera(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.MainRenderLayer = 0
	e := build(t, cfg)

	mainCam := single[scene.PlayerCamera](t, e.Storage)
	assert.Equal(t, 1, e.Report().Count(engine.FindingCameraLayers))
	assert.Equal(t, mainCam, e.Report().Findings[0].B)
	assert.Zero(t, e.Report().Count(engine.FindingUiLayers))
}

func TestLayerZeroWithoutOffscreenCamera(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.UIRenderLayer = 0
	cfg.SpawnDummyRenderLayer0Camera = false
	e := build(t, cfg)

	assert.Len(t, render.SortedCameras(e.Storage), 2)
	assert.Empty(t, e.Report().Findings)
}

func TestExactlyOneUiCamera(t *testing.T) {
	e := build(t, scene.DefaultConfig())
	e.Update(1.0 / 60)
	e.Update(1.0 / 60)

	single[scene.CameraUi](t, e.Storage)
	assert.Len(t, buttons(e.Storage), 1, "startup does not repeat")
}

func TestButtonBuilderWithoutCameras(t *testing.T) {
	e := engine.New()
	scene.RegisterComponents(e.Registry)
	e.AddStartup(&scene.ButtonBuilder{})
	e.Update(1.0 / 60)

	assert.Zero(t, countNodes(e.Storage))
	assert.Zero(t, e.Storage.EntityCount())
}

func TestButtonBuilderPerCamera(t *testing.T) {
	e := engine.New()
	scene.RegisterComponents(e.Registry)
	cfg := scene.DefaultConfig()
	e.AddStartup(&scene.UiCameraBuilder{Config: cfg}, &scene.UiCameraBuilder{Config: cfg}, &scene.ButtonBuilder{})
	e.Update(1.0 / 60)

	trees := buttons(e.Storage)
	require.Len(t, trees, 2)
	assert.NotEqual(t,
		ecs.ReadComponent[ui.TargetCamera](e.Storage, trees[0].container).Entity,
		ecs.ReadComponent[ui.TargetCamera](e.Storage, trees[1].container).Entity,
	)
}

func TestButtonLayout(t *testing.T) {
	e := build(t, scene.DefaultConfig(), engine.WithWindowSize(1000, 500))
	tree := buttons(e.Storage)[0]

	container := ecs.ReadComponent[ui.Node](e.Storage, tree.container).Rect
	button := ecs.ReadComponent[ui.Node](e.Storage, tree.button).Rect
	assert.Equal(t, ui.Rect{Width: 900, Height: 450}, container)
	assert.Equal(t, ui.Rect{X: 750, Y: 192.5, Width: 150, Height: 65}, button)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, scene.DefaultConfig().Validate())

	cfg := scene.DefaultConfig()
	cfg.MainRenderLayer = 64
	assert.ErrorContains(t, cfg.Validate(), "main render layer 64")
	assert.Error(t, scene.Install(engine.New(), cfg))
}

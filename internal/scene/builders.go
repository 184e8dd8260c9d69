package scene

import (
	"log/slog"
	"math"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
)

// SceneBuilder spawns the ground, cube, light and main camera on the main
// layer, and optionally an off-screen camera on layer 0.
type SceneBuilder struct {
	Config    Config
	Meshes    ecs.Singleton[render.Assets[render.Mesh]]
	Materials ecs.Singleton[render.Assets[render.StandardMaterial]]
	Images    ecs.Singleton[render.Assets[render.Image]]
}

func (s *SceneBuilder) Execute(frame *ecs.UpdateFrame) {
	meshes, materials := s.Meshes.Get(), s.Materials.Get()
	mainLayer := render.Layer(s.Config.MainRenderLayer)

	ground := render.NewPbrBundle(meshes.Add(render.Circle(4)), materials.Add(render.MaterialFromColor(render.White)))
	ground.Transform = render.FromRotation(render.QuatFromRotationX(-math.Pi / 2))
	frame.Commands.Spawn(ground, mainLayer)

	cube := render.NewPbrBundle(meshes.Add(render.Cuboid(1, 1, 1)), materials.Add(render.MaterialFromColor(render.SrgbU8(124, 144, 255))))
	cube.Transform = render.FromXYZ(0, 0.5, 0)
	frame.Commands.Spawn(cube, mainLayer)

	light := render.DefaultPointLight()
	light.ShadowsEnabled = true
	frame.Commands.Spawn(render.NewPointLightBundle(light, render.FromXYZ(4, 8, 4)), mainLayer)

	camera := render.NewCamera3dBundle()
	camera.Camera.Order = s.Config.MainCameraOrder
	camera.Projection = render.Perspective(render.Radians(90))
	camera.Transform = render.FromXYZ(-2.5, 4.5, 9).LookingAt(render.Vec3Zero, render.Vec3Y)
	frame.Commands.Spawn(camera, PlayerCamera{}, mainLayer)

	if s.Config.SpawnDummyRenderLayer0Camera {
		image := render.NewImageFill(OffscreenSize, OffscreenSize, []byte{0, 0, 0, 0}, render.TextureFormatBgra8UnormSrgb,
			render.TextureUsageTextureBinding|render.TextureUsageCopyDst|render.TextureUsageRenderAttachment)

		offscreen := render.NewCamera3dBundle()
		offscreen.Camera.Target = render.ImageTarget(s.Images.Get().Add(image))
		frame.Commands.Spawn(offscreen, render.Layer(0))
	}
}

// UiCameraBuilder spawns the narrow-angle camera that draws the UI layer
// over the main camera without clearing it.
type UiCameraBuilder struct {
	Config Config
}

// UiCameraTransform places the UI camera just behind the plane it looks at.
func UiCameraTransform() render.Transform {
	t := render.FromXYZ(0, 1, -0.24).LookingAt(render.V3(0, 1, -0.005), render.Vec3Y)
	t.Translation.Y += 0.01
	t.Translation.Z += 0.01
	return t
}

func (s *UiCameraBuilder) Execute(frame *ecs.UpdateFrame) {
	camera := render.NewCamera3dBundle()
	camera.Camera.Order = s.Config.UICameraOrder
	camera.Camera.ClearColor = render.ClearColorNone
	camera.Projection = render.Perspective(render.Radians(10))
	camera.Transform = UiCameraTransform()
	frame.Commands.Spawn(camera, CameraUi{}, render.Layer(s.Config.UIRenderLayer))
}

// ButtonBuilder spawns one button tree per CameraUi entity, routed to that
// camera. With no CameraUi entities it spawns nothing.
type ButtonBuilder struct {
	Cameras ecs.Query[struct {
		Id ecs.EntityId
		*CameraUi
	}]
	Logger *slog.Logger
}

func (s *ButtonBuilder) Execute(frame *ecs.UpdateFrame) {
	for camera := range s.Cameras.Values() {
		if s.Logger != nil {
			s.Logger.Info("spawning button", "camera", camera.Id.String())
		}
		SpawnButton(frame.Commands, camera.Id)
	}
}

// SpawnButton queues a container, a button and its label targeted at camera
// and returns the container.
func SpawnButton(commands *ecs.Commands, camera ecs.EntityId) ecs.EntityId {
	container := ui.NodeBundle{Style: ui.Style{
		Width:          ui.Percent(90),
		Height:         ui.Percent(90),
		AlignItems:     ui.AlignItemsCenter,
		JustifyContent: ui.JustifyContentFlexEnd,
	}}

	return commands.Spawn(container, ui.TargetCamera{Entity: camera}).WithChildren(func(parent *ecs.ChildBuilder) {
		button := ui.ButtonBundle{
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
		}
		parent.Spawn(button).WithChildren(func(parent *ecs.ChildBuilder) {
			parent.Spawn(ui.TextFromSection(ButtonLabel, ui.TextStyle{
				FontSize: 20,
				Color:    render.Srgb(0.9, 0.9, 0.9),
			}))
		})
	}).Id()
}

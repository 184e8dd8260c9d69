package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/internal/engine"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
)

// CameraRow is one line of the render layers panel.
type CameraRow struct {
	Entity  ecs.EntityId
	Order   int
	Target  string
	Clear   string
	Layers  render.RenderLayers
	Meshes  int
	Lights  int
	UiNodes int
}

// CameraRows describes every active camera in draw order.
func CameraRows(storage *ecs.Storage) []CameraRow {
	cameras := render.SortedCameras(storage)
	rows := make([]CameraRow, 0, len(cameras))
	for _, cam := range cameras {
		row := CameraRow{
			Entity:  cam.Entity,
			Order:   cam.Camera.Order,
			Target:  "window",
			Clear:   cam.Camera.ClearColor.Mode.String(),
			Layers:  cam.Layers,
			UiNodes: len(ui.NodesForCamera(storage, cam.Entity)),
		}
		if !cam.Camera.Target.IsWindow() {
			row.Target = cam.Camera.Target.Image.String()
		}
		if visible := ecs.ReadComponent[render.VisibleEntities](storage, cam.Entity); visible != nil {
			row.Meshes = len(visible.Meshes)
			row.Lights = len(visible.Lights)
		}
		rows = append(rows, row)
	}
	return rows
}

func NewRenderLayersComponent(reaudit func()) RenderLayersComponent {
	return RenderLayersComponent{reaudit: reaudit}
}

func (rl *RenderLayersComponent) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Render Layers", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := CameraRows(storage)
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CameraTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Camera")
		imgui.TableSetupColumn("Order")
		imgui.TableSetupColumn("Target")
		imgui.TableSetupColumn("Clear")
		imgui.TableSetupColumn("Layers")
		imgui.TableSetupColumn("Sees")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.Entity.String(), rl.selectedCamera == row.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				rl.selectedCamera = row.Entity
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Order))
			imgui.TableNextColumn()
			imgui.Text(row.Target)
			imgui.TableNextColumn()
			imgui.Text(row.Clear)
			imgui.TableNextColumn()
			imgui.Text(row.Layers.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d meshes, %d lights, %d ui", row.Meshes, row.Lights, row.UiNodes))
		}
		imgui.EndTable()
	}

	if rl.selectedCamera != ecs.NoEntity && imgui.TreeNodeStr("Visible Entities") {
		if visible := ecs.ReadComponent[render.VisibleEntities](storage, rl.selectedCamera); visible != nil {
			for _, id := range visible.Meshes {
				imgui.BulletText(fmt.Sprintf("mesh %s %s", id, render.LayersOrDefault(storage, id)))
			}
			for _, id := range visible.Lights {
				imgui.BulletText(fmt.Sprintf("light %s %s", id, render.LayersOrDefault(storage, id)))
			}
		}
		imgui.TreePop()
	}

	imgui.Separator()
	report := ecs.GetSingleton[engine.LayerReport](storage)
	switch {
	case report == nil || !report.Ran:
		imgui.Text("Layer audit has not run")
	case len(report.Findings) == 0:
		imgui.Text(fmt.Sprintf("No layer collisions (frame %d)", report.Frame))
	default:
		imgui.Text(fmt.Sprintf("%d findings (frame %d)", len(report.Findings), report.Frame))
		for _, f := range report.Findings {
			imgui.BulletText(fmt.Sprintf("%s: %s", f.Kind, f))
		}
	}
	if rl.reaudit != nil && imgui.Button("Re-run audit") {
		rl.reaudit()
	}

	imgui.End()
}

package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/layercams/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame time in seconds to the history.
func (ps *PerformanceStatsComponent) Record(deltaTime float32) {
	if ps.historyFrames == 0 {
		return
	}
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.samples = min(ps.samples+1, ps.historyFrames)
}

// AverageFrameTime is the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStatsComponent) AverageFrameTime() float32 {
	if ps.samples == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory[:ps.samples] {
		total += ft
	}
	return total / float32(ps.samples)
}

// History returns the recorded frame times, oldest first.
func (ps *PerformanceStatsComponent) History() []float32 {
	out := make([]float32, 0, ps.samples)
	if ps.samples < ps.historyFrames {
		return append(out, ps.frameHistory[:ps.samples]...)
	}
	out = append(out, ps.frameHistory[ps.frameIndex:]...)
	return append(out, ps.frameHistory[:ps.frameIndex]...)
}

func (ps *PerformanceStatsComponent) Render(storage *ecs.Storage, scheduler *ecs.SchedulerStats, deltaTime float32) {
	ps.Record(deltaTime)

	imgui.SetNextWindowPosV(imgui.NewVec2(900, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	if avg := ps.AverageFrameTime(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	if samples := ps.History(); len(samples) > 0 {
		if implot.BeginPlotV("Frame Time (ms)", imgui.NewVec2(-1, 150), 0) {
			implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
			implot.PlotLineFloatPtrInt("frame", &samples[0], int32(len(samples)))
			implot.EndPlot()
		}
	}

	if scheduler != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Stage")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range scheduler.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.Stage.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.Round(time.Microsecond).String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}

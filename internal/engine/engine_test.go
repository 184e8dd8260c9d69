package engine_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/internal/engine"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	e := engine.New()

	window := e.Window()
	require.NotNil(t, window)
	assert.Equal(t, engine.DefaultWidth, window.Width)
	assert.Equal(t, engine.DefaultHeight, window.Height)
	assert.Equal(t, engine.DefaultTitle, window.Title)
	assert.Equal(t, engine.DefaultClearColor, ecs.GetSingleton[render.ClearColor](e.Storage).Color)
	assert.NotNil(t, ecs.GetSingleton[ui.Cursor](e.Storage))
	assert.NotNil(t, e.Logger)
	assert.Equal(t, 5, e.Scheduler.GetStats().SystemCount)
}

func TestNewOptions(t *testing.T) {
	e := engine.New(
		engine.WithWindowSize(640, 480),
		engine.WithTitle("test"),
		engine.WithClearColor(render.White),
		engine.WithLogger(nil),
	)

	assert.Equal(t, render.Window{Title: "test", Width: 640, Height: 480}, *e.Window())
	assert.Equal(t, render.White, ecs.GetSingleton[render.ClearColor](e.Storage).Color)
	assert.NotNil(t, e.Logger, "nil logger keeps the discard logger")
}

func spawnCamera(e *engine.Engine, order int, layers render.RenderLayers) ecs.EntityId {
	bundle := render.NewCamera3dBundle()
	bundle.Camera.Order = order
	return e.Storage.Spawn(bundle, layers)
}

type spawnUi struct {
	camera *ecs.EntityId
}

func (s *spawnUi) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(ui.NodeBundle{}, ui.TargetCamera{Entity: *s.camera})
}

func TestAuditRenderLayers(t *testing.T) {
	e := engine.New()
	a := spawnCamera(e, 0, render.Layer(0))
	b := spawnCamera(e, 1, render.Layers(0, 4))
	c := spawnCamera(e, 1, render.Layer(4))
	e.AddStartup(&spawnUi{camera: &c})
	e.Update(0)

	findings := engine.AuditRenderLayers(e.Storage)

	var root ecs.EntityId
	for item := range ecs.NewView[struct {
		Id ecs.EntityId
		*ui.Node
	}](e.Storage).Values() {
		root = item.Id
	}

	assert.Equal(t, []engine.Finding{
		{Kind: engine.FindingCameraLayers, A: a, B: b, Shared: render.Layer(0)},
		{Kind: engine.FindingCameraLayers, A: b, B: c, Shared: render.Layer(4)},
		{Kind: engine.FindingUiLayers, A: root, B: b, Shared: render.Layer(4)},
		{Kind: engine.FindingCameraOrder, A: b, B: c},
	}, findings)
	assert.Equal(t, findings, e.Report().Findings)
	assert.Equal(t, 2, e.Report().Count(engine.FindingCameraLayers))
}

func TestLayerAuditLogsOnce(t *testing.T) {
	var logs bytes.Buffer
	e := engine.New(engine.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	spawnCamera(e, 0, render.Layer(3))
	spawnCamera(e, 1, render.Layer(3))

	e.Update(0)
	e.Update(0)
	assert.Equal(t, 1, strings.Count(logs.String(), "render layer collision"))
	assert.Contains(t, logs.String(), "equal=true")

	e.Reaudit()
	e.Update(0)
	assert.Equal(t, 2, strings.Count(logs.String(), "render layer collision"))
	assert.Equal(t, int64(2), e.Report().Frame)
}

func TestLayerAuditClean(t *testing.T) {
	e := engine.New()
	spawnCamera(e, 1, render.Layer(2))
	spawnCamera(e, 2, render.Layer(1))
	e.Update(0)

	assert.True(t, e.Report().Ran)
	assert.Empty(t, e.Report().Findings)
}

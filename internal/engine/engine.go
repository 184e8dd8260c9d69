// Package engine wires the ECS, render and ui packages into a runnable world.
package engine

import (
	"log/slog"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
)

const (
	DefaultTitle  = "layercams"
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// DefaultClearColor is used by cameras whose clear mode is ClearDefault.
var DefaultClearColor = render.SrgbU8(43, 44, 47)

type config struct {
	logger *slog.Logger
	window render.Window
	clear  render.Color
}

// Option configures New.
type Option func(*config)

// WithLogger sets the logger used by the engine and its systems. Nil keeps
// logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWindowSize sets the initial primary window size in pixels.
func WithWindowSize(width, height int) Option {
	return func(c *config) {
		c.window.Width = width
		c.window.Height = height
	}
}

func WithTitle(title string) Option {
	return func(c *config) {
		c.window.Title = title
	}
}

// WithClearColor sets the ClearColor resource.
func WithClearColor(clear render.Color) Option {
	return func(c *config) {
		c.clear = clear
	}
}

// Engine owns the world and the system schedule.
type Engine struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Logger    *slog.Logger

	audit *LayerAuditSystem
}

// New creates a world with every render and ui component registered, the
// engine resources added and the per-frame systems scheduled in this order:
// visibility, ui targets, layer audit, ui layout, ui interaction.
func New(opts ...Option) *Engine {
	cfg := config{
		logger: NopLogger(),
		window: render.Window{Title: DefaultTitle, Width: DefaultWidth, Height: DefaultHeight},
		clear:  DefaultClearColor,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := ecs.NewComponentRegistry()
	render.RegisterComponents(registry)
	ui.RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	render.InitResources(storage, cfg.clear, cfg.window)
	ui.InitResources(storage)
	ecs.NewSingleton[LayerReport](storage)

	e := &Engine{
		Registry:  registry,
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Logger:    cfg.logger,
		audit:     &LayerAuditSystem{Logger: cfg.logger},
	}

	e.Scheduler.Register(&render.VisibilitySystem{})
	e.Scheduler.Register(&ui.TargetSystem{})
	e.Scheduler.Register(e.audit)
	e.Scheduler.Register(&ui.LayoutSystem{})
	e.Scheduler.Register(&ui.InteractionSystem{})
	return e
}

// AddStartup chains systems onto the startup stage.
func (e *Engine) AddStartup(systems ...ecs.System) {
	e.Scheduler.RegisterStartup(systems...)
}

// AddSystem appends a per-frame system after the built-in ones.
func (e *Engine) AddSystem(system ecs.System) {
	e.Scheduler.Register(system)
}

// Update runs one frame. The first call also runs the startup stage.
func (e *Engine) Update(dt float64) {
	e.Scheduler.Once(dt)
}

// Window returns the primary window resource.
func (e *Engine) Window() *render.Window {
	return ecs.GetSingleton[render.Window](e.Storage)
}

// Report returns the findings of the most recent layer audit.
func (e *Engine) Report() *LayerReport {
	return ecs.GetSingleton[LayerReport](e.Storage)
}

// Reaudit makes the layer audit run again on the next frame.
func (e *Engine) Reaudit() {
	e.audit.done = false
}

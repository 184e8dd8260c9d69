// Package scene builds the layered camera demo: a lit 3D scene on one render
// layer, a UI camera on another and a button routed to the UI camera.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/internal/engine"
	"github.com/plus3/layercams/render"
)

// Setting either layer to 0 while the off-screen camera is spawned makes
// that layer collide with the off-screen camera.
const (
	SpawnDummyRenderLayer0Camera = true
	UIRenderLayer                = 1
	MainRenderLayer              = 2
	MainCameraOrder              = 1
	UICameraOrder                = 2
)

const (
	OffscreenSize = 512
	ButtonLabel   = "Play Card"
)

// PlayerCamera marks the main 3D camera.
type PlayerCamera struct{}

// CameraUi marks the camera that UI is routed to.
type CameraUi struct{}

// Config carries the scene constants so they can be varied.
type Config struct {
	SpawnDummyRenderLayer0Camera bool
	UIRenderLayer                int
	MainRenderLayer              int
	MainCameraOrder              int
	UICameraOrder                int
}

// DefaultConfig returns the package constants.
func DefaultConfig() Config {
	return Config{
		SpawnDummyRenderLayer0Camera: SpawnDummyRenderLayer0Camera,
		UIRenderLayer:                UIRenderLayer,
		MainRenderLayer:              MainRenderLayer,
		MainCameraOrder:              MainCameraOrder,
		UICameraOrder:                UICameraOrder,
	}
}

// Validate checks that both layers are in range.
func (c Config) Validate() error {
	if err := checkLayer("ui", c.UIRenderLayer); err != nil {
		return err
	}
	return checkLayer("main", c.MainRenderLayer)
}

func checkLayer(name string, layer int) error {
	if layer < 0 || layer >= render.TotalLayers {
		return fmt.Errorf("layercams: %s render layer %d out of range [0, %d)", name, layer, render.TotalLayers)
	}
	return nil
}

// RegisterComponents registers the scene marker components.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[PlayerCamera](registry)
	ecs.RegisterComponent[CameraUi](registry)
}

// Systems returns the startup chain: scene, UI camera, button.
func Systems(cfg Config, logger *slog.Logger) []ecs.System {
	return []ecs.System{
		&SceneBuilder{Config: cfg},
		&UiCameraBuilder{Config: cfg},
		&ButtonBuilder{Logger: logger},
	}
}

// Install registers the scene components and chains its startup systems.
func Install(e *engine.Engine, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	RegisterComponents(e.Registry)
	e.AddStartup(Systems(cfg, e.Logger)...)
	return nil
}

package ecs_test

import "github.com/plus3/layercams/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

// Marker is a zero-size tag component.
type Marker struct{}

// Custom primitive types for testing non-pointer components
type Score int32
type Temperature float64

// movingBundle spawns a Position and a Velocity together.
type movingBundle struct {
	Position Position
	Velocity Velocity
}

func (b movingBundle) Components() []any {
	return []any{b.Position, b.Velocity}
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Temperature](registry)
	return registry
}

package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/layercams/ecs"
	"github.com/stretchr/testify/assert"
)

func TestDescendants(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands(storage)

	var a, a1, a2, b ecs.EntityId
	root := commands.Spawn(Name{Value: "root"}).WithChildren(func(parent *ecs.ChildBuilder) {
		a = parent.Spawn(Name{Value: "a"}).WithChildren(func(parent *ecs.ChildBuilder) {
			a1 = parent.Spawn(Name{Value: "a1"}).Id()
			a2 = parent.Spawn(Name{Value: "a2"}).Id()
		}).Id()
		b = parent.Spawn(Name{Value: "b"}).Id()
	}).Id()
	commands.Flush(storage)

	assert.Equal(t, []ecs.EntityId{a, a1, a2, b}, slices.Collect(ecs.Descendants(storage, root)))
	assert.Equal(t, []ecs.EntityId{a1, a2}, slices.Collect(ecs.Descendants(storage, a)))
	assert.Empty(t, slices.Collect(ecs.Descendants(storage, b)))

	assert.Equal(t, root, ecs.Root(storage, a2))
	assert.Equal(t, root, ecs.Root(storage, root))
}

package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
// Spawned entities get their ID immediately so they can be referenced by
// other commands in the same buffer.
type Commands struct {
	storage *Storage
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands creates an empty command buffer that reserves IDs from storage.
func NewCommands(storage *Storage) *Commands {
	return &Commands{storage: storage}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	id         EntityId
	components []any
	children   []EntityId
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// EntityCommands adds to a queued spawn.
type EntityCommands struct {
	commands *Commands
	index    int
}

// ChildBuilder spawns children of one parent inside WithChildren.
type ChildBuilder struct {
	commands *Commands
	parent   int
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) *EntityCommands {
	c.spawns = append(c.spawns, spawnCommand{
		id:         c.storage.Reserve(),
		components: components,
	})
	return &EntityCommands{commands: c, index: len(c.spawns) - 1}
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Id returns the entity ID reserved for the spawn.
func (e *EntityCommands) Id() EntityId {
	return e.commands.spawns[e.index].id
}

// Insert adds components to the queued spawn.
func (e *EntityCommands) Insert(components ...any) *EntityCommands {
	cmd := &e.commands.spawns[e.index]
	cmd.components = append(cmd.components, components...)
	return e
}

// WithChildren runs build with a ChildBuilder whose spawns become children of
// this entity. Each child gets a Parent component and this entity gets a
// Children component listing them in spawn order.
func (e *EntityCommands) WithChildren(build func(parent *ChildBuilder)) *EntityCommands {
	build(&ChildBuilder{commands: e.commands, parent: e.index})
	return e
}

// ParentId returns the ID of the entity the builder spawns children for.
func (b *ChildBuilder) ParentId() EntityId {
	return b.commands.spawns[b.parent].id
}

// Spawn queues a child entity.
func (b *ChildBuilder) Spawn(components ...any) *EntityCommands {
	parentId := b.ParentId()
	child := b.commands.Spawn(append(components, Parent{Entity: parentId})...)

	parent := &b.commands.spawns[b.parent]
	parent.children = append(parent.children, child.Id())
	return child
}

// Flush flushes all commands to the provided storage, reseting the buffer state.
// Deletes run first, then removes, adds, spawns in queue order, and finally
// deferred functions.
func (c *Commands) Flush(storage *Storage) {
	deletedEntities := make(map[EntityId]bool)

	for _, cmd := range c.deletes {
		storage.Delete(cmd)
		deletedEntities[cmd] = true
	}

	for _, cmd := range c.removes {
		if !deletedEntities[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !deletedEntities[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		if deletedEntities[cmd.id] || !storage.Alive(cmd.id) {
			continue
		}
		components := cmd.components
		if len(cmd.children) > 0 {
			components = append(components, Children{Entities: cmd.children})
		}
		storage.SpawnReserved(cmd.id, components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

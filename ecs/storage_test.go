package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/layercams/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		generation uint32
		index      uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("generation=%d,index=%d", tt.generation, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.generation, tt.index)
			assert.Equal(t, tt.generation, id.Generation())
			assert.Equal(t, tt.index, id.Index())
			assert.NotEqual(t, ecs.NoEntity, id)
		})
	}
}

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.NotEqual(t, ecs.NoEntity, id)
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.EntityCount())

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(1.0), pos.X)
	assert.Equal(t, Score(32), *ecs.ReadComponent[Score](storage, id))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	t.Run("no components", func(t *testing.T) {
		assert.Panics(t, func() { storage.Spawn() })
	})

	t.Run("unregistered component", func(t *testing.T) {
		type Unregistered struct{}
		assert.PanicsWithValue(t, "component type ecs_test.Unregistered not registered", func() {
			storage.Spawn(Unregistered{})
		})
	})

	t.Run("map component", func(t *testing.T) {
		assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	})

	t.Run("duplicate component type", func(t *testing.T) {
		assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
	})
}

func TestSpawnFlattensBundles(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(movingBundle{
		Position: Position{X: 3, Y: 4},
		Velocity: Velocity{DX: 1},
	}, Name{Value: "bundled"})

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.Equal(t, "bundled", ecs.ReadComponent[Name](storage, id).Value)
}

func TestDeleteKeepsOtherEntitiesStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, 5)
	for i := range ids {
		ids[i] = storage.Spawn(Position{X: float32(i)})
	}

	storage.Delete(ids[1])
	storage.Delete(ids[3])

	assert.False(t, storage.Alive(ids[1]))
	assert.Nil(t, ecs.ReadComponent[Position](storage, ids[1]))

	for _, i := range []int{0, 2, 4} {
		pos := ecs.ReadComponent[Position](storage, ids[i])
		require.NotNil(t, pos, "entity %d", i)
		assert.Equal(t, float32(i), pos.X)
	}
	assert.Equal(t, 3, storage.EntityCount())
}

func TestDeletedIdIsNotReused(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{})
	storage.Delete(first)
	second := storage.Spawn(Position{X: 9})

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first, second)
	assert.False(t, storage.Alive(first))
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))

	// Deleting a stale ID must not touch the new occupant of the slot.
	storage.Delete(first)
	assert.True(t, storage.Alive(second))
}

func TestAddComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2})
	other := storage.Spawn(Position{X: 5, Y: 6})

	storage.AddComponent(id, Velocity{DX: 3})

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, id).X)
	assert.Equal(t, float32(3), ecs.ReadComponent[Velocity](storage, id).DX)
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, other).X)

	t.Run("replaces existing component", func(t *testing.T) {
		storage.AddComponent(id, Velocity{DX: 7})
		assert.Equal(t, float32(7), ecs.ReadComponent[Velocity](storage, id).DX)
	})
}

func TestRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	storage.RemoveComponent(id, reflect.TypeFor[Velocity]())

	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, id).X)

	storage.RemoveComponent(id, reflect.TypeFor[Position]())
	assert.True(t, storage.Alive(id), "entity without components stays alive")
	assert.Equal(t, 0, storage.ArchetypeOf(id).Mask().Count())
}

func TestReserveAndSpawnReserved(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Reserve()
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 0, storage.EntityCount())
	assert.Nil(t, storage.ArchetypeOf(id))

	storage.SpawnReserved(id, Name{Value: "late"})
	assert.Equal(t, 1, storage.EntityCount())
	assert.Equal(t, "late", ecs.ReadComponent[Name](storage, id).Value)

	assert.Panics(t, func() { storage.SpawnReserved(id, Name{}) })
}

func TestReadComponentMissing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, ecs.NoEntity))
}

func TestArchetypesInCreationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Name{})
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Name{})

	var counts []int
	var ids []uint32
	for a := range storage.Archetypes() {
		counts = append(counts, a.Len())
		ids = append(ids, a.ID())
	}
	assert.Equal(t, []int{2, 1}, counts)
	assert.Equal(t, []uint32{1, 2}, ids)
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	first := ecs.NewSingleton[Health](storage, Health{Current: 10, Max: 10})
	second := ecs.NewSingleton[Health](storage, Health{Current: 99})

	assert.Equal(t, 10, second.Get().Current, "initializer ignored once the singleton exists")

	second.Get().Current = 4
	assert.Equal(t, 4, first.Get().Current)
	assert.Equal(t, 4, ecs.GetSingleton[Health](storage).Current)

	storage.AddSingleton(Health{Current: 1, Max: 2})
	assert.Equal(t, 1, first.Get().Current, "AddSingleton replaces in place")

	var lazy ecs.Singleton[Score]
	lazy.Init(storage)
	assert.False(t, lazy.Exists())
	assert.Nil(t, lazy.Get())
	storage.AddSingleton(Score(3))
	assert.True(t, lazy.Exists())
	assert.Equal(t, Score(3), *lazy.Get())
}

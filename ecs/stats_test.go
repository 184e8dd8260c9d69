package ecs

import (
	"testing"
	"time"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	if stats.ArchetypeCount != 0 {
		t.Errorf("expected 0 archetypes, got %d", stats.ArchetypeCount)
	}
	if stats.TotalEntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 0 {
		t.Errorf("expected 0 singletons, got %d", stats.SingletonCount)
	}

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()

	if stats.ArchetypeCount != 2 {
		t.Errorf("expected 2 archetypes, got %d", stats.ArchetypeCount)
	}
	if stats.TotalEntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 2 {
		t.Errorf("expected 2 singletons, got %d", stats.SingletonCount)
	}
	if len(stats.SingletonTypes) != 2 || stats.SingletonTypes[0] != "float64" {
		t.Errorf("expected sorted singleton types, got %v", stats.SingletonTypes)
	}

	if len(stats.ArchetypeBreakdown) != 2 {
		t.Fatalf("expected 2 archetype breakdown entries, got %d", len(stats.ArchetypeBreakdown))
	}
	if stats.ArchetypeBreakdown[0].EntityCount != 2 || stats.ArchetypeBreakdown[1].EntityCount != 1 {
		t.Errorf("archetype breakdown incorrect: %+v", stats.ArchetypeBreakdown)
	}
	if got := stats.ArchetypeBreakdown[0].ComponentTypes; len(got) != 2 || got[0] != "int" || got[1] != "string" {
		t.Errorf("expected component types ordered by registration, got %v", got)
	}
}

type TestSystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *TestSystem) Execute(frame *UpdateFrame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

func TestSchedulerStats(t *testing.T) {
	registry := NewComponentRegistry()
	storage := NewStorage(registry)
	scheduler := NewScheduler(storage)

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}

	sys1 := &TestSystem{sleepDur: 1 * time.Millisecond}
	sys2 := &TestSystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(sys1)
	scheduler.Register(sys2)

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	stats = scheduler.GetStats()

	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions (2 systems * 3 runs), got %d", stats.TotalExecutions)
	}

	for _, sysStats := range stats.Systems {
		if sysStats.Name != "TestSystem" {
			t.Errorf("expected system name 'TestSystem', got '%s'", sysStats.Name)
		}
		if sysStats.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sysStats.ExecutionCount)
		}
		if sysStats.MinDuration == 0 || sysStats.MaxDuration == 0 || sysStats.AvgDuration == 0 {
			t.Errorf("expected non-zero durations, got %+v", sysStats)
		}
		if sysStats.MinDuration > sysStats.AvgDuration {
			t.Errorf("min duration (%v) should be <= avg duration (%v)", sysStats.MinDuration, sysStats.AvgDuration)
		}
		if sysStats.AvgDuration > sysStats.MaxDuration {
			t.Errorf("avg duration (%v) should be <= max duration (%v)", sysStats.AvgDuration, sysStats.MaxDuration)
		}
	}
}

func TestMask(t *testing.T) {
	var m Mask
	m = m.with(3).with(64).with(255)

	if !m.Has(3) || !m.Has(64) || !m.Has(255) || m.Has(4) {
		t.Errorf("unexpected mask contents %v", m)
	}
	if m.Count() != 3 {
		t.Errorf("expected 3 bits, got %d", m.Count())
	}
	if !m.Contains(Mask{}.with(64)) || m.Contains(Mask{}.with(5)) {
		t.Errorf("Contains mismatch for %v", m)
	}
	if m.without(64).Has(64) {
		t.Errorf("without did not clear bit")
	}
}

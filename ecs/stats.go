package ecs

import (
	"sort"
)

// StorageStats is a snapshot of storage occupancy.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype in a StorageStats snapshot.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats builds a StorageStats snapshot. Archetypes appear in creation
// order and singleton type names are sorted.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.archetypeList),
		SingletonCount: len(s.singletons),
	}

	for _, a := range s.archetypeList {
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    a.Len(),
		})
		stats.TotalEntityCount += a.Len()
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}

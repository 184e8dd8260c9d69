package debugui

import (
	"github.com/plus3/layercams/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	samples       int
}

type RenderLayersComponent struct {
	selectedCamera ecs.EntityId
	reaudit        func()
}

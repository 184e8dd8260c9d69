package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Layers         render.RenderLayers
	ComponentTypes []string
}

type EntityBrowserCache struct {
	entities           []EntityInfo
	lastArchetypeCount int
	lastEntityCount    int
	sortColumn         int
	sortAscending      bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache:              &EntityBrowserCache{sortAscending: true},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	filtered := eb.getFilteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Layers")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.getFilteredEntities()
		}

		start, end := pageBounds(eb.currentPage, eb.maxEntitiesPerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(entity.ID.String(), eb.selectedEntityId == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Layers.String())

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// pageBounds clamps one page of a list of n items.
func pageBounds(page, perPage, n int) (int, int) {
	if perPage <= 0 {
		return 0, n
	}
	start := min(page*perPage, n)
	return start, min(start+perPage, n)
}

func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	archetypes := 0
	for range storage.Archetypes() {
		archetypes++
	}
	if eb.cache.lastArchetypeCount != archetypes || eb.cache.lastEntityCount != storage.EntityCount() {
		eb.cache.entities = nil
		eb.cache.lastArchetypeCount = archetypes
		eb.cache.lastEntityCount = storage.EntityCount()
	}

	if eb.cache.entities == nil {
		eb.rebuildCache(storage)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(storage *ecs.Storage) {
	eb.cache.entities = make([]EntityInfo, 0, storage.EntityCount())

	for archetype := range storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for entityId := range archetype.Iter() {
			eb.cache.entities = append(eb.cache.entities, EntityInfo{
				ID:             entityId,
				Layers:         render.LayersOrDefault(storage, entityId),
				ComponentTypes: componentTypes,
			})
		}
	}

	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	slices.SortStableFunc(eb.cache.entities, func(a, b EntityInfo) int {
		var c int
		switch eb.cache.sortColumn {
		case 1:
			c = cmp.Compare(a.Layers, b.Layers)
		case 2:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		}
		if c == 0 {
			c = cmp.Compare(a.ID.Index(), b.ID.Index())
		}
		if !eb.cache.sortAscending {
			return -c
		}
		return c
	})
}

func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	if eb.filterText == "" {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		idStr := strings.ToLower(entity.ID.String())
		layersStr := strings.ToLower(entity.Layers.String())
		componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

		if !strings.Contains(idStr, filterLower) &&
			!strings.Contains(layersStr, filterLower) &&
			!strings.Contains(componentsStr, filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}

	return filtered
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

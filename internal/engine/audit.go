package engine

import (
	"fmt"
	"log/slog"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
)

// FindingKind classifies an audit finding.
type FindingKind uint8

const (
	// FindingCameraLayers: two cameras share render layers.
	FindingCameraLayers FindingKind = iota
	// FindingUiLayers: a UI tree inherits layers that another camera also renders.
	FindingUiLayers
	// FindingCameraOrder: two cameras on one target share an Order.
	FindingCameraOrder
)

func (k FindingKind) String() string {
	switch k {
	case FindingCameraLayers:
		return "camera-layers"
	case FindingUiLayers:
		return "ui-layers"
	case FindingCameraOrder:
		return "camera-order"
	default:
		return "unknown"
	}
}

// Finding is one render layer problem. For FindingUiLayers, A is the UI root
// and B the foreign camera; otherwise both are cameras.
type Finding struct {
	Kind   FindingKind
	A, B   ecs.EntityId
	Shared render.RenderLayers
	Equal  bool
}

func (f Finding) String() string {
	switch f.Kind {
	case FindingUiLayers:
		return fmt.Sprintf("ui root %s shares %s with camera %s (equal=%t)", f.A, f.Shared, f.B, f.Equal)
	case FindingCameraOrder:
		return fmt.Sprintf("cameras %s and %s share an order on one target", f.A, f.B)
	default:
		return fmt.Sprintf("cameras %s and %s share %s (equal=%t)", f.A, f.B, f.Shared, f.Equal)
	}
}

// LayerReport is the resource holding the latest audit.
type LayerReport struct {
	Findings []Finding
	Frame    int64
	Ran      bool
}

// Count returns the number of findings of kind k.
func (r *LayerReport) Count(k FindingKind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// AuditRenderLayers cross-checks every active camera pair and every UI root
// against the cameras it is not targeted at. UI roots must have their
// ComputedTarget resolved.
func AuditRenderLayers(storage *ecs.Storage) []Finding {
	var findings []Finding
	for _, c := range render.CheckCameraLayerCollisions(storage) {
		findings = append(findings, Finding{Kind: FindingCameraLayers, A: c.A, B: c.B, Shared: c.Shared, Equal: c.Equal})
	}

	cameras := render.SortedCameras(storage)
	roots := ecs.NewView[struct {
		Id ecs.EntityId
		*ui.Node
		*ui.ComputedTarget
		Parent *ecs.Parent `ecs:"optional"`
	}](storage)
	for root := range roots.Values() {
		if root.Parent != nil || root.ComputedTarget.Camera == ecs.NoEntity {
			continue
		}
		layers := root.ComputedTarget.Layers
		for _, camera := range cameras {
			if camera.Entity == root.ComputedTarget.Camera || !camera.Layers.Intersects(layers) {
				continue
			}
			findings = append(findings, Finding{
				Kind:   FindingUiLayers,
				A:      root.Id,
				B:      camera.Entity,
				Shared: camera.Layers & layers,
				Equal:  camera.Layers.Equal(layers),
			})
		}
	}

	for _, o := range render.CheckCameraOrderAmbiguities(storage) {
		findings = append(findings, Finding{Kind: FindingCameraOrder, A: o.A, B: o.B})
	}
	return findings
}

// LayerAuditSystem runs AuditRenderLayers on the first frame after startup,
// stores the result in LayerReport and logs a warning per finding.
type LayerAuditSystem struct {
	Report ecs.Singleton[LayerReport]
	Logger *slog.Logger

	done bool
}

func (s *LayerAuditSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true

	findings := AuditRenderLayers(frame.Storage)
	if report := s.Report.Get(); report != nil {
		*report = LayerReport{Findings: findings, Frame: frame.Frame, Ran: true}
	}

	logger := s.Logger
	if logger == nil {
		logger = NopLogger()
	}
	if len(findings) == 0 {
		logger.Debug("render layers are disjoint")
		return
	}
	for _, f := range findings {
		logger.Warn("render layer collision",
			"kind", f.Kind.String(),
			"a", f.A.String(),
			"b", f.B.String(),
			"layers", f.Shared.String(),
			"equal", f.Equal,
		)
	}
}

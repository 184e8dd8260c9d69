// Package renderer draws the world with ebiten: every active camera renders
// the meshes it can see into its target, then the UI nodes routed to it.
package renderer

import (
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/layercams/ecs"
	"github.com/plus3/layercams/render"
	"github.com/plus3/layercams/ui"
)

// maxVertices is the most vertices one DrawTriangles call can index.
const maxVertices = 1 << 16

// Stats describes the last drawn frame.
type Stats struct {
	Cameras   int
	Triangles int
	UiNodes   int
}

// Renderer draws a world's cameras. It is not safe for concurrent use.
type Renderer struct {
	storage *ecs.Storage
	logger  *slog.Logger
	fonts   *fonts
	targets map[uint32]*ebiten.Image
	white   *ebiten.Image

	tris  []screenTri
	verts []ebiten.Vertex
	inds  []uint16
	stats Stats
}

// New loads the UI font and prepares a renderer for storage.
func New(storage *ecs.Storage, logger *slog.Logger) (*Renderer, error) {
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Renderer{
		storage: storage,
		logger:  logger,
		fonts:   f,
		targets: make(map[uint32]*ebiten.Image),
		white:   white,
	}, nil
}

// Install makes UI layout measure text with the renderer's font.
func (r *Renderer) Install() {
	if m := ecs.GetSingleton[ui.TextMeasurer](r.storage); m != nil {
		m.Measure = r.fonts.Measure
	}
}

// Stats returns what the last call to Draw drew.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Target returns the ebiten image backing an image render target, or nil if
// no camera has drawn into it yet.
func (r *Renderer) Target(h render.Handle[render.Image]) *ebiten.Image {
	return r.targets[h.ID()]
}

// Draw renders every active camera in order. Cameras targeting the window
// draw into screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	r.stats = Stats{}
	fallback := render.ClearColor{Color: render.Black}
	if c := ecs.GetSingleton[render.ClearColor](r.storage); c != nil {
		fallback = *c
	}

	for _, cam := range render.SortedCameras(r.storage) {
		dst := screen
		if !cam.Camera.Target.IsWindow() {
			dst = r.imageTarget(cam.Camera.Target.Image)
			if dst == nil {
				continue
			}
		}
		r.stats.Cameras++

		if bg, ok := cam.Camera.ClearColor.Resolve(fallback); ok {
			dst.Fill(bg.RGBA())
		}
		r.drawMeshes(dst, cam)
		r.drawUi(dst, cam.Entity)
	}
}

// imageTarget returns the ebiten image for an Image asset, creating it from
// the asset's pixels on first use. Assets that are not render attachments
// cannot be drawn into.
func (r *Renderer) imageTarget(h render.Handle[render.Image]) *ebiten.Image {
	if img, ok := r.targets[h.ID()]; ok {
		return img
	}
	images := ecs.GetSingleton[render.Assets[render.Image]](r.storage)
	if images == nil {
		return nil
	}
	asset := images.Get(h)
	if asset == nil || !asset.IsRenderTarget() {
		return nil
	}

	img := ebiten.NewImage(asset.Width, asset.Height)
	img.WritePixels(premultipliedRGBA(asset))
	r.targets[h.ID()] = img
	if r.logger != nil {
		r.logger.Debug("created render target", "image", h.String(), "width", asset.Width, "height", asset.Height, "format", asset.Format.String())
	}
	return img
}

func (r *Renderer) drawMeshes(dst *ebiten.Image, cam render.SortedCamera) {
	visible := ecs.ReadComponent[render.VisibleEntities](r.storage, cam.Entity)
	meshes := ecs.GetSingleton[render.Assets[render.Mesh]](r.storage)
	materials := ecs.GetSingleton[render.Assets[render.StandardMaterial]](r.storage)
	if visible == nil || meshes == nil || materials == nil {
		return
	}

	lights := make([]litPoint, 0, len(visible.Lights))
	for _, id := range visible.Lights {
		light := ecs.ReadComponent[render.PointLight](r.storage, id)
		transform := ecs.ReadComponent[render.Transform](r.storage, id)
		if light != nil && transform != nil {
			lights = append(lights, litPoint{Position: transform.Translation, Light: *light})
		}
	}

	bounds := dst.Bounds()
	vp := newViewport(*cam.Transform, *cam.Projection, bounds.Dx(), bounds.Dy())

	r.tris = r.tris[:0]
	for _, id := range visible.Meshes {
		handle := ecs.ReadComponent[render.Handle[render.Mesh]](r.storage, id)
		transform := ecs.ReadComponent[render.Transform](r.storage, id)
		if handle == nil || transform == nil {
			continue
		}
		mesh := meshes.Get(*handle)
		if mesh == nil {
			continue
		}
		material := render.MaterialFromColor(render.White)
		if m := ecs.ReadComponent[render.Handle[render.StandardMaterial]](r.storage, id); m != nil {
			if asset := materials.Get(*m); asset != nil {
				material = *asset
			}
		}
		r.tris = vp.appendMesh(r.tris, mesh, *transform, material, lights)
	}
	sortBackToFront(r.tris)

	for _, tri := range r.tris {
		base := r.reserve(dst, 3)
		for _, p := range tri.P {
			r.verts = append(r.verts, vertex(p[0], p[1], tri.Color))
		}
		r.inds = append(r.inds, base, base+1, base+2)
	}
	r.flush(dst)
	r.stats.Triangles += len(r.tris)
}

func (r *Renderer) drawUi(dst *ebiten.Image, camera ecs.EntityId) {
	for _, id := range ui.NodesForCamera(r.storage, camera) {
		if hiddenInTree(r.storage, id) {
			continue
		}
		node := ecs.ReadComponent[ui.Node](r.storage, id)
		if node == nil {
			continue
		}
		r.stats.UiNodes++

		var radii [4]float32
		if br := ecs.ReadComponent[ui.BorderRadius](r.storage, id); br != nil {
			radii = br.Resolve(node.Rect.Width, node.Rect.Height)
		}
		if bg := ecs.ReadComponent[ui.BackgroundColor](r.storage, id); bg != nil && bg.Color.A > 0 {
			r.fillBox(dst, node.Rect, radii, bg.Color)
		}
		if bc := ecs.ReadComponent[ui.BorderColor](r.storage, id); bc != nil && bc.Color.A > 0 && node.Border != (ui.Edges{}) {
			r.strokeBox(dst, node.Rect, node.Border, radii, bc.Color)
		}
		if t := ecs.ReadComponent[ui.Text](r.storage, id); t != nil {
			r.drawText(dst, node.ContentRect(), t)
		}
	}
	r.flush(dst)
}

func (r *Renderer) fillBox(dst *ebiten.Image, rect ui.Rect, radii [4]float32, c render.Color) {
	if isSquare(radii) {
		r.flush(dst)
		vector.DrawFilledRect(dst, rect.X, rect.Y, rect.Width, rect.Height, c.RGBA(), true)
		return
	}

	outline := roundedOutline(rect, radii)
	base := r.reserve(dst, len(outline)+1)
	r.verts = append(r.verts, vertex(rect.X+rect.Width/2, rect.Y+rect.Height/2, c))
	for _, p := range outline {
		r.verts = append(r.verts, vertex(p[0], p[1], c))
	}
	r.inds = fanIndices(r.inds, base, len(outline))
}

func (r *Renderer) strokeBox(dst *ebiten.Image, rect ui.Rect, border ui.Edges, radii [4]float32, c render.Color) {
	if isSquare(radii) {
		r.flush(dst)
		col := c.RGBA()
		inner := rect.Inset(border)
		vector.DrawFilledRect(dst, rect.X, rect.Y, rect.Width, border.Top, col, true)
		vector.DrawFilledRect(dst, rect.X, inner.Y+inner.Height, rect.Width, border.Bottom, col, true)
		vector.DrawFilledRect(dst, rect.X, inner.Y, border.Left, inner.Height, col, true)
		vector.DrawFilledRect(dst, inner.X+inner.Width, inner.Y, border.Right, inner.Height, col, true)
		return
	}

	outer := roundedOutline(rect, radii)
	inner := roundedOutline(rect.Inset(border), innerRadii(radii, border))
	base := r.reserve(dst, len(outer)+len(inner))
	for _, p := range outer {
		r.verts = append(r.verts, vertex(p[0], p[1], c))
	}
	for _, p := range inner {
		r.verts = append(r.verts, vertex(p[0], p[1], c))
	}
	r.inds = ringIndices(r.inds, base, len(outer))
}

func (r *Renderer) drawText(dst *ebiten.Image, rect ui.Rect, t *ui.Text) {
	r.flush(dst)
	x := float64(rect.X)
	for _, section := range t.Sections {
		face := r.fonts.face(section.Style.FontSize)
		op := &text.DrawOptions{}
		op.LineSpacing = lineHeight(face)
		op.GeoM.Translate(x, float64(rect.Y))
		op.ColorScale.ScaleWithColor(section.Style.Color.RGBA())
		text.Draw(dst, section.Value, face, op)

		w, _ := text.Measure(section.Value, face, op.LineSpacing)
		x += w
	}
}

// reserve makes room for n more vertices in the pending batch, flushing it
// into dst when full, and returns the index of the first new vertex.
func (r *Renderer) reserve(dst *ebiten.Image, n int) uint16 {
	if len(r.verts)+n > maxVertices {
		r.flush(dst)
	}
	return uint16(len(r.verts))
}

func (r *Renderer) flush(dst *ebiten.Image) {
	if len(r.inds) > 0 {
		op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
		dst.DrawTriangles(r.verts, r.inds, r.white, op)
	}
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

func vertex(x, y float32, c render.Color) ebiten.Vertex {
	a := c.A
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: c.R * a,
		ColorG: c.G * a,
		ColorB: c.B * a,
		ColorA: a,
	}
}

// hiddenInTree reports whether id or any ancestor is Hidden.
func hiddenInTree(storage *ecs.Storage, id ecs.EntityId) bool {
	for id != ecs.NoEntity {
		if v := ecs.ReadComponent[render.Visibility](storage, id); v != nil {
			switch *v {
			case render.Hidden:
				return true
			case render.Visible:
				return false
			}
		}
		id = ecs.ParentOf(storage, id)
	}
	return false
}

// premultipliedRGBA converts an Image asset's texels to the layout
// ebiten.Image.WritePixels expects.
func premultipliedRGBA(img *render.Image) []byte {
	out := make([]byte, img.Width*img.Height*4)
	for i := 0; i+3 < len(img.Data) && i+3 < len(out); i += 4 {
		r, g, b, a := img.Data[i], img.Data[i+1], img.Data[i+2], img.Data[i+3]
		if img.Format == render.TextureFormatBgra8UnormSrgb {
			r, b = b, r
		}
		out[i] = uint8(uint16(r) * uint16(a) / 255)
		out[i+1] = uint8(uint16(g) * uint16(a) / 255)
		out[i+2] = uint8(uint16(b) * uint16(a) / 255)
		out[i+3] = a
	}
	return out
}

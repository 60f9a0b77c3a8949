package bough

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// screenSubmitter draws batcher output onto an Ebitengine image. Single
// sprites go through DrawImage; merged runs through DrawTriangles32.
type screenSubmitter struct {
	target *ebiten.Image
	view   [6]float64

	op    ebiten.DrawImageOptions
	triOp ebiten.DrawTrianglesOptions

	drawCalls int
}

func (r *screenSubmitter) begin(target *ebiten.Image, view [6]float64) {
	r.target = target
	r.view = view
	r.drawCalls = 0
}

// end drops the frame's target so it isn't retained past Draw.
func (r *screenSubmitter) end() {
	r.target = nil
}

// DrawSingle draws one sprite with DrawImage.
func (r *screenSubmitter) DrawSingle(s *Sprite, key DrawKey) {
	src := s.Image.subImage()
	if src == nil || s.Image.Width == 0 || s.Image.Height == 0 {
		return
	}

	op := &r.op
	op.GeoM.Reset()

	// Stretch the clip rectangle to the sprite size, centered on the origin.
	op.GeoM.Scale(s.Size.X/float64(s.Image.Width), s.Size.Y/float64(s.Image.Height))
	op.GeoM.Translate(-s.Size.X/2, -s.Size.Y/2)

	// Apply world then view transform
	op.GeoM.Concat(affineGeoM(s.Transform.Matrix()))
	op.GeoM.Concat(affineGeoM(r.view))

	// Apply premultiplied color scale
	op.ColorScale.Reset()
	cr, cg, cb, ca := key.Color.premultiplied()
	op.ColorScale.Scale(cr, cg, cb, ca)

	r.target.DrawImage(src, op)
	r.drawCalls++
}

// DrawBatch submits a merged run as a single DrawTriangles32 call.
func (r *screenSubmitter) DrawBatch(key DrawKey, verts []ebiten.Vertex, inds []uint32) {
	if key.Texture == nil || key.Texture.img == nil || len(verts) == 0 {
		return
	}
	r.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	r.target.DrawTriangles32(verts, inds, key.Texture.img, &r.triOp)
	r.drawCalls++
}

// affineGeoM converts a [6]float64 affine matrix into an ebiten.GeoM.
func affineGeoM(t [6]float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}

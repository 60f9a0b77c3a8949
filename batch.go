package bough

import "github.com/hajimehoshi/ebiten/v2"

// DrawKey groups drawables that can be submitted in a single draw call:
// same texture (by identity) and same color multiplier.
type DrawKey struct {
	Texture *Texture
	Color   Color
}

// Quad holds a drawable's four vertices in TL, TR, BL, BR order.
type Quad [4]ebiten.Vertex

// quadIndices is the index pattern for one quad: TL-TR-BL, TR-BR-BL.
var quadIndices = [6]uint32{0, 1, 2, 1, 3, 2}

// Submitter is the graphics binding the batcher draws through.
type Submitter[D any] interface {
	// DrawSingle draws a run with exactly one member.
	DrawSingle(item D, key DrawKey)
	// DrawBatch draws the merged geometry of a run in one call. The slices
	// are reused by the batcher and must not be retained after returning.
	DrawBatch(key DrawKey, verts []ebiten.Vertex, inds []uint32)
}

// BatchStats describes the most recent Batcher.Draw pass.
type BatchStats struct {
	Drawables int // items submitted to Draw
	Runs      int // maximal same-key runs, i.e. draw calls issued
	Batches   int // runs drawn as merged geometry
	Singles   int // runs drawn individually
}

// Batcher turns an ordered list of drawables into as few draw calls as
// possible without changing paint order: each maximal run of neighbours
// with equal draw keys becomes one call.
type Batcher[D any] struct {
	key  func(D) DrawKey
	quad func(D, *Quad)

	verts []ebiten.Vertex
	inds  []uint32
	q     Quad
	stats BatchStats
}

// NewBatcher creates a batcher that reads draw keys with key and geometry
// with quad.
func NewBatcher[D any](key func(D) DrawKey, quad func(D, *Quad)) *Batcher[D] {
	return &Batcher[D]{key: key, quad: quad}
}

// Draw partitions items into runs and submits them in order. Items are only
// read during the call.
func (b *Batcher[D]) Draw(items []D, sub Submitter[D]) {
	b.stats = BatchStats{Drawables: len(items)}
	if len(items) == 0 {
		return
	}

	start := 0
	runKey := b.key(items[0])
	for i := 1; i < len(items); i++ {
		k := b.key(items[i])
		if k == runKey {
			continue
		}
		b.flush(items[start:i], runKey, sub)
		start = i
		runKey = k
	}
	b.flush(items[start:], runKey, sub)
}

// flush submits one run.
func (b *Batcher[D]) flush(run []D, key DrawKey, sub Submitter[D]) {
	b.stats.Runs++
	if len(run) == 1 {
		b.stats.Singles++
		sub.DrawSingle(run[0], key)
		return
	}

	b.stats.Batches++
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	for i, item := range run {
		b.quad(item, &b.q)
		b.verts = append(b.verts, b.q[:]...)
		base := uint32(4 * i)
		for _, idx := range quadIndices {
			b.inds = append(b.inds, base+idx)
		}
	}
	sub.DrawBatch(key, b.verts, b.inds)

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// Stats returns the statistics of the most recent Draw.
func (b *Batcher[D]) Stats() BatchStats {
	return b.stats
}

// CountRuns reports how many draw calls Draw would issue for items.
func CountRuns[D any](items []D, key func(D) DrawKey) int {
	if len(items) == 0 {
		return 0
	}
	count := 1
	prev := key(items[0])
	for i := 1; i < len(items); i++ {
		cur := key(items[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}

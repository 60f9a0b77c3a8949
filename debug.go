package bough

import (
	"fmt"
	"os"
	"time"

	"github.com/petermattis/goid"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime  time.Duration
	collectTime time.Duration
	submitTime  time.Duration
	spriteCount int
	drawn       int
	batch       BatchStats
	drawCalls   int
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.updateTime + stats.collectTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[bough] update: %v | collect: %v | submit: %v | total: %v\n",
		stats.updateTime, stats.collectTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[bough] sprites: %d | drawn: %d | runs: %d (batched %d, single %d) | draw calls: %d\n",
		stats.spriteCount, stats.drawn, stats.batch.Runs, stats.batch.Batches, stats.batch.Singles, stats.drawCalls)
}

// debugCheckOwner panics when the scene is used from a goroutine other than
// the one that first touched it. The scene is single-threaded; Ebitengine
// calls Update and Draw from the same goroutine.
func debugCheckOwner(s *Scene, op string) {
	id := goid.Get()
	if s.owner == 0 {
		s.owner = id
		return
	}
	if s.owner != id {
		panic(fmt.Sprintf("bough debug: %s called from goroutine %d, scene is owned by goroutine %d", op, id, s.owner))
	}
}

// debugCheckSpriteCount warns on stderr if the scene holds more sprites than
// a frame can comfortably update.
const debugMaxSpriteCount = 50000

func debugCheckSpriteCount(s *Scene) {
	if len(s.sprites) > debugMaxSpriteCount {
		_, _ = fmt.Fprintf(os.Stderr, "[bough] warning: scene has %d sprites (threshold %d)\n",
			len(s.sprites), debugMaxSpriteCount)
	}
}

package spherelife

import (
	"math"

	"sphere-ca/internal/core"
	pcore "sphere-ca/pkg/core"
)

// Initialize clears every cell and applies one seeding strategy. Unknown
// patterns fall back to random. The tick counter and the update clock are
// reset.
func (e *Engine) Initialize(p Pattern, density float64) {
	for i := range e.cells {
		e.cells[i] = core.CellState{}
		e.next[i] = false
	}
	e.tickCount = 0
	e.clock.Reset()

	e.cfg.Params.Pattern = p
	e.cfg.Params.Density = density

	switch p {
	case PatternCluster:
		e.seedClusters()
	case PatternRing:
		e.seedRing()
	default:
		e.seedRandom(density)
	}
}

func (e *Engine) seedRandom(density float64) {
	for i := range e.cells {
		if pcore.Chance(e.rng, density) {
			e.cells[i].Alive = true
		}
	}
}

// seedClusters lights random seed nodes together with their direct
// neighbors. Seeds are drawn with replacement and clusters may overlap.
func (e *Engine) seedClusters() {
	n := len(e.cells)
	if n == 0 {
		return
	}
	for s := 0; s < e.cfg.Params.ClusterSeeds; s++ {
		seed := e.rng.IntN(n)
		e.cells[seed].Alive = true
		for _, nb := range e.adj.Neighbors(seed) {
			e.cells[nb].Alive = true
		}
	}
}

// seedRing lights the band around the equator. The polar axis is +Y.
func (e *Engine) seedRing() {
	band := e.cfg.Params.RingBand * e.adj.Radius()
	for i := range e.cells {
		if math.Abs(e.adj.Position(i).Y) <= band {
			e.cells[i].Alive = true
		}
	}
}

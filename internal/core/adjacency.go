package core

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Neighbor degree bounds of a hex/pentagon sphere tiling.
const (
	MinDegree = 5
	MaxDegree = 6
)

var (
	ErrEmptyTopology      = errors.New("topology has no nodes")
	ErrNeighborOutOfRange = errors.New("neighbor id out of range")
	ErrSelfNeighbor       = errors.New("node lists itself as a neighbor")
	ErrDuplicateNeighbor  = errors.New("duplicate neighbor id")
	ErrDegree             = errors.New("unsupported neighbor count")
	ErrAsymmetric         = errors.New("neighbor relation is not symmetric")
)

// Adjacency is a flattened, validated copy of a topology. Neighbor lists are
// stored back to back in one slice and addressed through offsets.
type Adjacency struct {
	positions []r3.Vec
	offsets   []int
	neighbors []int
	radius    float64
}

// NewAdjacency copies and validates the provided topology. Degree checks use
// MinDegree and MaxDegree.
func NewAdjacency(t Topology) (*Adjacency, error) {
	return newAdjacency(t, MinDegree, MaxDegree)
}

// NewAdjacencyDegree is NewAdjacency with caller-chosen degree bounds, used by
// small hand-built graphs.
func NewAdjacencyDegree(t Topology, minDegree, maxDegree int) (*Adjacency, error) {
	return newAdjacency(t, minDegree, maxDegree)
}

func newAdjacency(t Topology, minDegree, maxDegree int) (*Adjacency, error) {
	if t == nil || t.NodeCount() <= 0 {
		return nil, ErrEmptyTopology
	}
	n := t.NodeCount()
	a := &Adjacency{
		positions: make([]r3.Vec, n),
		offsets:   make([]int, n+1),
		neighbors: make([]int, 0, n*maxDegree),
	}
	var radiusSum float64
	for id := 0; id < n; id++ {
		a.positions[id] = t.Position(id)
		radiusSum += r3.Norm(a.positions[id])

		ns := t.Neighbors(id)
		if len(ns) < minDegree || len(ns) > maxDegree {
			return nil, fmt.Errorf("node %d has %d neighbors: %w", id, len(ns), ErrDegree)
		}
		for i, nb := range ns {
			if nb < 0 || nb >= n {
				return nil, fmt.Errorf("node %d neighbor %d: %w", id, nb, ErrNeighborOutOfRange)
			}
			if nb == id {
				return nil, fmt.Errorf("node %d: %w", id, ErrSelfNeighbor)
			}
			for _, prev := range ns[:i] {
				if prev == nb {
					return nil, fmt.Errorf("node %d neighbor %d: %w", id, nb, ErrDuplicateNeighbor)
				}
			}
		}
		a.offsets[id] = len(a.neighbors)
		a.neighbors = append(a.neighbors, ns...)
	}
	a.offsets[n] = len(a.neighbors)
	a.radius = radiusSum / float64(n)

	for id := 0; id < n; id++ {
		for _, nb := range a.Neighbors(id) {
			if !a.HasNeighbor(nb, id) {
				return nil, fmt.Errorf("node %d lists %d but not the reverse: %w", id, nb, ErrAsymmetric)
			}
		}
	}
	return a, nil
}

// NodeCount returns the number of nodes.
func (a *Adjacency) NodeCount() int { return len(a.positions) }

// Position returns the position of node id.
func (a *Adjacency) Position(id int) r3.Vec { return a.positions[id] }

// Positions exposes the backing position slice. Callers must not modify it.
func (a *Adjacency) Positions() []r3.Vec { return a.positions }

// Neighbors returns the neighbor ids of node id. The returned slice aliases
// internal storage and must not be modified.
func (a *Adjacency) Neighbors(id int) []int {
	return a.neighbors[a.offsets[id]:a.offsets[id+1]]
}

// HasNeighbor reports whether nb is listed as a neighbor of id.
func (a *Adjacency) HasNeighbor(id, nb int) bool {
	for _, v := range a.Neighbors(id) {
		if v == nb {
			return true
		}
	}
	return false
}

// Radius returns the mean distance of the nodes from the origin.
func (a *Adjacency) Radius() float64 { return a.radius }

// Package geodesic provides a hex/pentagon sphere tiling built from a
// subdivided icosahedron. Every vertex of the subdivided mesh is one cell: the
// twelve icosahedron vertices have five neighbors, all others have six.
package geodesic

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"sphere-ca/internal/core"
)

// MaxLevel bounds the subdivision depth (10*4^7+2 = 163842 nodes).
const MaxLevel = 7

var (
	ErrRadius = errors.New("radius must be positive")
	ErrLevel  = errors.New("subdivision level out of range")
)

// Config controls the generated tiling.
type Config struct {
	Radius       float64
	Subdivisions int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Radius: 1, Subdivisions: 3}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["subdivisions"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= MaxLevel {
			c.Subdivisions = parsed
		}
	}
	return c
}

// Sphere is a geodesic tiling of a sphere centred on the origin.
type Sphere struct {
	radius    float64
	level     int
	positions []r3.Vec
	neighbors [][]int
}

// New builds a tiling with the given radius and subdivision level.
func New(radius float64, level int) (*Sphere, error) {
	s := &Sphere{}
	if err := s.Regenerate(radius, level); err != nil {
		return nil, err
	}
	return s, nil
}

// NodeCount returns the number of cells.
func (s *Sphere) NodeCount() int { return len(s.positions) }

// Position returns the cell centre of node id.
func (s *Sphere) Position(id int) r3.Vec { return s.positions[id] }

// Neighbors returns the ids adjacent to node id in ascending order.
func (s *Sphere) Neighbors(id int) []int { return s.neighbors[id] }

// Radius returns the sphere radius.
func (s *Sphere) Radius() float64 { return s.radius }

// Level returns the subdivision level.
func (s *Sphere) Level() int { return s.level }

// Regenerate rebuilds the tiling. Node ids from the previous tiling are
// invalidated.
func (s *Sphere) Regenerate(radius float64, level int) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return fmt.Errorf("geodesic: radius %v: %w", radius, ErrRadius)
	}
	if level < 0 || level > MaxLevel {
		return fmt.Errorf("geodesic: level %d: %w", level, ErrLevel)
	}

	verts, faces := icosahedron()
	for i := 0; i < level; i++ {
		verts, faces = subdivide(verts, faces)
	}

	positions := make([]r3.Vec, len(verts))
	for i, v := range verts {
		positions[i] = r3.Scale(radius, r3.Unit(v))
	}

	neighbors := make([][]int, len(verts))
	link := func(a, b int) {
		if !slices.Contains(neighbors[a], b) {
			neighbors[a] = append(neighbors[a], b)
		}
	}
	for _, f := range faces {
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			link(a, b)
			link(b, a)
		}
	}
	for i := range neighbors {
		slices.Sort(neighbors[i])
	}

	s.radius = radius
	s.level = level
	s.positions = positions
	s.neighbors = neighbors
	return nil
}

func icosahedron() ([]r3.Vec, [][3]int) {
	t := (1 + math.Sqrt(5)) / 2
	verts := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return verts, faces
}

// subdivide splits every triangle into four, sharing midpoints along edges.
func subdivide(verts []r3.Vec, faces [][3]int) ([]r3.Vec, [][3]int) {
	mid := make(map[[2]int]int, len(faces)*3/2)
	midpoint := func(a, b int) int {
		key := [2]int{min(a, b), max(a, b)}
		if idx, ok := mid[key]; ok {
			return idx
		}
		verts = append(verts, r3.Unit(r3.Add(verts[a], verts[b])))
		idx := len(verts) - 1
		mid[key] = idx
		return idx
	}

	out := make([][3]int, 0, len(faces)*4)
	for _, f := range faces {
		ab := midpoint(f[0], f[1])
		bc := midpoint(f[1], f[2])
		ca := midpoint(f[2], f[0])
		out = append(out,
			[3]int{f[0], ab, ca},
			[3]int{f[1], bc, ab},
			[3]int{f[2], ca, bc},
			[3]int{ab, bc, ca},
		)
	}
	return verts, out
}

func init() {
	core.Register("geodesic", func(cfg map[string]string) (core.Regenerator, error) {
		c := FromMap(cfg)
		return New(c.Radius, c.Subdivisions)
	})
}

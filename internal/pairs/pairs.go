// Package pairs matches qualified organisms whose centroids sit on opposite
// sides of the sphere.
package pairs

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"sphere-ca/internal/core"
	"sphere-ca/internal/organisms"
)

// GoldenAngle is the hue step between consecutive pairs, in degrees.
const GoldenAngle = 137.5

// Pair associates two qualified organisms from the same detection pass.
type Pair struct {
	Index int
	// A and B are organism ids with A < B.
	A, B int
	// Hue in degrees [0, 360), derived from Index.
	Hue float64
	// Angle between the two centroid directions, in degrees.
	Angle float64
}

// Config controls the opposition test.
type Config struct {
	// AngularTolerance is the accepted deviation from 180 degrees.
	AngularTolerance float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{AngularTolerance: 15}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["angular_tolerance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.AngularTolerance = parsed
		}
	}
	return c
}

// Resolver recomputes the pair list from each organism pass.
type Resolver struct {
	cfg   Config
	log   core.Logger
	pairs []Pair
}

// NewResolver returns a resolver with the provided configuration.
func NewResolver(cfg Config, log core.Logger) *Resolver {
	if log == nil {
		log = core.NoOpLogger{}
	}
	return &Resolver{cfg: cfg, log: log}
}

// Pairs returns the result of the latest Resolve call.
func (r *Resolver) Pairs() []Pair { return r.pairs }

// SetAngularTolerance sets the accepted deviation from 180 degrees.
func (r *Resolver) SetAngularTolerance(degrees float64) { r.cfg.AngularTolerance = degrees }

// Tolerance returns the accepted deviation from 180 degrees.
func (r *Resolver) Tolerance() float64 { return r.cfg.AngularTolerance }

// Reset drops the current pairs.
func (r *Resolver) Reset() { r.pairs = nil }

// Resolve greedily pairs qualified organisms in the order given. Candidate
// pairs are visited with i ascending then j ascending and the first match for
// an organism wins, so each organism appears in at most one pair.
func (r *Resolver) Resolve(orgs []organisms.Organism) []Pair {
	qualified := organisms.Qualified(orgs)
	paired := make([]bool, len(qualified))
	out := make([]Pair, 0)
	for i := range qualified {
		if paired[i] {
			continue
		}
		for j := i + 1; j < len(qualified); j++ {
			if paired[j] {
				continue
			}
			angle, ok := Opposite(qualified[i].Centroid, qualified[j].Centroid, r.cfg.AngularTolerance)
			if !ok {
				continue
			}
			idx := len(out)
			out = append(out, Pair{
				Index: idx,
				A:     qualified[i].ID,
				B:     qualified[j].ID,
				Hue:   PairHue(idx),
				Angle: angle,
			})
			paired[i] = true
			paired[j] = true
			break
		}
	}

	r.pairs = out
	r.log.Debugf("pairs: %d from %d qualified organisms", len(out), len(qualified))
	return out
}

// Opposite reports whether the directions of a and b are within tolerance
// degrees of antipodal, along with the angle between them. Zero vectors have
// no direction and are never opposite.
func Opposite(a, b r3.Vec, tolerance float64) (float64, bool) {
	if r3.Norm(a) == 0 || r3.Norm(b) == 0 {
		return 0, false
	}
	ua, ub := r3.Unit(a), r3.Unit(b)
	// Measure the deviation from the antipode directly; exact antipodes give
	// a zero cross product and therefore exactly zero deviation.
	deviation := math.Atan2(r3.Norm(r3.Cross(ua, ub)), -r3.Dot(ua, ub)) * 180 / math.Pi
	return 180 - deviation, deviation <= tolerance
}

// PairHue returns the hue for the pair at index i.
func PairHue(i int) float64 {
	return math.Mod(float64(i)*GoldenAngle, 360)
}

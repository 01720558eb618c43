//go:build !ebiten

package ui

import (
	"sphere-ca/internal/organisms"
	"sphere-ca/internal/pairs"
)

// Analysis mirrors the GUI build's overlay source.
type Analysis interface {
	Tracker() *organisms.Tracker
	Resolver() *pairs.Resolver
}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(Analysis) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, any, float64) {}

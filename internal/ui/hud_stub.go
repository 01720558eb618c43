//go:build !ebiten

package ui

import "sphere-ca/internal/core"

// Source mirrors the GUI build's HUD source.
type Source interface {
	core.ParameterProvider
	Name() string
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Source, int) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}

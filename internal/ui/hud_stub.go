//go:build !ebiten

package ui

import "contagion/internal/core"

// MinHUDHeight matches the GUI build.
const MinHUDHeight = 360

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(int) *HUD { return nil }

// Update is a no-op in the headless build.
func (h *HUD) Update(core.Sim, string, bool) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}

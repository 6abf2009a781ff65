//go:build js

package game

import "github.com/plus3/neonpulse/ecs"

// The ImGui backend needs cgo, so browser builds run without the overlay.

func registerDebugComponents(*ecs.ComponentRegistry) {}

func newOverlay(g *Game, title string) overlay {
	logger.Printf("debug overlay is not available in the browser")
	return nil
}

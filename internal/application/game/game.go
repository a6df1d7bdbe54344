// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tower/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
//
// The simulation integrates the real frame time, so unless SetDT fixes it,
// each Update passes the wall-clock time since the previous one.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	fixed   bool

	now  func() time.Time
	last time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // First frame, before there is a previous one
		now:     time.Now,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameDT())
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

func (g *Game) frameDT() float64 {
	if g.fixed {
		return g.dt
	}
	now := g.now()
	last := g.last
	g.last = now
	if last.IsZero() || !now.After(last) {
		return g.dt
	}
	return now.Sub(last).Seconds()
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT fixes the delta time used for updates instead of measuring it.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
	g.fixed = true
}

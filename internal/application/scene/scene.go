// Package scene defines what the game loop drives each frame.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the tower. The playing scene owns the menu,
// pause and hiscore screens itself, so a transition only happens when a
// scene hands back a different Scene from Update.
type Scene interface {
	// Update advances the scene by dt seconds. A nil next keeps the
	// current scene; a non-nil error stops the game loop.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current.
	OnEnter()

	// OnExit runs when the scene is replaced and once more at shutdown,
	// which is where pending recordings get flushed.
	OnExit()
}

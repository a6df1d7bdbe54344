// Package audio plays the game's synthesised sound effects.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/tower/internal/application/system"
)

const sampleRate = beep.SampleRate(44100)

// Sfx identifies a sound effect
type Sfx int

const (
	SfxJump Sfx = iota
	SfxCoin
	SfxPowerUp
	SfxPlayerHit
	SfxEnemyHit
	SfxExplode
	SfxSelect
)

// String returns the sound id
func (s Sfx) String() string {
	switch s {
	case SfxJump:
		return "JUMP"
	case SfxCoin:
		return "COIN"
	case SfxPowerUp:
		return "POWERUP"
	case SfxPlayerHit:
		return "PLAYER_HIT"
	case SfxEnemyHit:
		return "ENEMY_HIT"
	case SfxExplode:
		return "EXPLODE"
	case SfxSelect:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

// SfxForEvent picks the sound for a simulation event. Silent events return false.
func SfxForEvent(kind system.EventKind) (Sfx, bool) {
	switch kind {
	case system.EventJump:
		return SfxJump, true
	case system.EventCoin:
		return SfxCoin, true
	case system.EventPowerUp:
		return SfxPowerUp, true
	case system.EventPlayerHit, system.EventFallDamage, system.EventPlayerDied:
		return SfxPlayerHit, true
	case system.EventEnemyHit, system.EventEnemyKilled:
		return SfxEnemyHit, true
	case system.EventExplode:
		return SfxExplode, true
	case system.EventWeaponSwitched:
		return SfxSelect, true
	default:
		return 0, false
	}
}

// Player mixes effects onto the speaker. Until Initialize succeeds every
// Play is a no-op, so a machine without audio just runs silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates a player with an empty mixer
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted silences or restores playback
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Play starts one effect and returns immediately
func (p *Player) Play(s Sfx) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(NewSound(s, sampleRate))
	speaker.Unlock()
}

// PlayEvents plays the sound of every audible event, once per distinct sound
func (p *Player) PlayEvents(events []system.Event) {
	var played [SfxSelect + 1]bool
	for _, ev := range events {
		s, ok := SfxForEvent(ev.Kind)
		if !ok || played[s] {
			continue
		}
		played[s] = true
		p.Play(s)
	}
}

// Cleanup drops every playing effect
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

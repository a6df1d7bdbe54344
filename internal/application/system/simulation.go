package system

import (
	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// Simulation advances a World by one variable-length frame
type Simulation struct {
	config *config.PhysicsConfig

	// Feedback hooks, forwarded to the combat system
	OnHitstop     func(frames int)
	OnScreenShake func(intensity float64)
}

// NewSimulation creates a simulation using the given tuning
func NewSimulation(cfg *config.PhysicsConfig) *Simulation {
	return &Simulation{config: cfg}
}

// Tick runs one frame to completion: player intents, player movement, fall
// damage and hazards, pickups, enemies, projectiles, particles, combat, and
// finally deferred removal. The returned events are for observers only.
func (s *Simulation) Tick(w *World, dt float64, intents []Intent) []Event {
	if maxDt := s.config.Physics.MaxDt; maxDt > 0 && dt > maxDt {
		dt = maxDt
	}

	physics := NewPhysicsSystem(s.config, w.Grid)
	enemies := NewEnemySystem(s.config, physics)
	combat := NewCombatSystem(s.config, physics)
	combat.OnHitstop = s.OnHitstop
	combat.OnScreenShake = s.OnScreenShake

	var events []Event
	p := w.Player
	wasAlive := p.Alive()

	if p.Alive() {
		for _, intent := range intents {
			events = s.applyIntent(w, intent, events)
		}
	}

	wasFalling, preVY := p.Falling, p.Vel.Y
	physics.UpdatePlayer(p, dt)
	events = combat.ApplyFallDamage(p, wasFalling, preVY, events)
	combat.ApplyHazards(p)
	p.UpdateAnimation(dt)
	p.UpdateAnimationState()
	if p.Alive() {
		events = combat.CollectPickups(w, events)
	}

	for _, e := range w.Enemies {
		if e.Dead() {
			continue
		}
		if intent := enemies.Update(e, p.Pos, dt); intent != nil {
			events = s.applyIntent(w, intent, events)
		}
	}

	for i := range w.Projectiles {
		if !w.Projectiles[i].Destroyed() {
			physics.UpdateProjectile(&w.Projectiles[i], dt)
		}
	}
	for i := range w.Particles {
		physics.UpdateParticle(&w.Particles[i], dt)
	}

	events = combat.ResolveMelee(w, events)
	events = combat.ResolveContact(w, events)
	events = combat.ResolveProjectiles(w, events)
	combat.RemoveDestroyed(w)

	if wasAlive && !p.Alive() {
		events = append(events, Event{Kind: EventPlayerDied, Pos: p.Pos, Amount: p.Score})
	}
	return events
}

func (s *Simulation) applyIntent(w *World, intent Intent, events []Event) []Event {
	p := w.Player
	climb := s.config.Player.ClimbSpeed

	switch in := intent.(type) {
	case MoveIntent:
		p.Vel.X = float64(in.Dir) * s.config.Player.Speed
	case StopIntent:
		if float64(in.Dir)*p.Vel.X > 0 {
			p.Vel.X = 0
		}
	case JumpIntent:
		if p.Climbing {
			p.Vel.Y = climb
		} else if !p.Falling {
			p.Vel.Y = s.config.Player.JumpSpeed
			events = append(events, Event{Kind: EventJump, Pos: p.Pos})
		}
	case ClimbIntent:
		if p.Climbing {
			p.Vel.Y = float64(in.Dir) * climb
		}
	case ClimbStopIntent:
		if p.Climbing {
			p.Vel.Y = 0
		}
	case AttackIntent:
		switch p.Weapon {
		case entity.WeaponSword:
			p.Attack()
		case entity.WeaponBow:
			if arrow, ok := p.Shoot(); ok {
				w.SpawnProjectile(arrow)
				events = append(events, Event{Kind: EventArrowFired, Pos: arrow.Pos})
			}
		}
	case WeaponIntent:
		if p.Weapon != in.Weapon {
			p.Weapon = in.Weapon
			events = append(events, Event{Kind: EventWeaponSwitched, Pos: p.Pos})
		}
	case FireIntent:
		if shooter, ok := w.Enemy(in.EntityID); !ok || shooter.Dead() {
			break
		}
		fireball := entity.NewProjectile(entity.ProjectileFireball, in.Origin.X, in.Origin.Y, 0.3, 0.3)
		fireball.Vel.X = in.VX
		fireball.Flipped = in.VX < 0
		w.SpawnProjectile(fireball)
		events = append(events, Event{Kind: EventFireballFired, Pos: in.Origin, Source: in.EntityID})
	}
	return events
}

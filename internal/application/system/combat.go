package system

import (
	"math"
	"slices"

	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// CombatSystem resolves damage between the player, enemies, projectiles and the level
type CombatSystem struct {
	config  *config.PhysicsConfig
	physics *PhysicsSystem

	// Event callbacks
	OnHitstop     func(frames int)
	OnScreenShake func(intensity float64)
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.PhysicsConfig, physics *PhysicsSystem) *CombatSystem {
	return &CombatSystem{
		config:  cfg,
		physics: physics,
	}
}

// ApplyFallDamage hurts the player for landing faster than the safe fall speed.
// wasFalling and preVY are the player's state before the movement step.
func (s *CombatSystem) ApplyFallDamage(p *entity.Player, wasFalling bool, preVY float64, events []Event) []Event {
	limit := s.config.Combat.MaxSafeFallSpeed
	if !wasFalling || p.Falling || preVY >= -limit {
		return events
	}
	damage := int(-math.Floor((preVY + limit) / s.config.Combat.FallDamageDivisor))
	if p.ApplyDamage(damage) {
		events = append(events, Event{Kind: EventFallDamage, Pos: p.Pos, Amount: damage})
	}
	return events
}

// ApplyHazards kills the player on lava, or on spikes when landing faster than climbing speed
func (s *CombatSystem) ApplyHazards(p *entity.Player) {
	if !p.Alive() {
		return
	}
	if s.physics.TouchingTile(p.Box(), entity.TileLava) {
		p.Kill()
		return
	}
	if s.physics.TouchingTile(p.Box(), entity.TileSpikes) && p.Vel.Y < -s.config.Player.ClimbSpeed {
		p.Kill()
	}
}

// CollectPickups consumes at most one overlapping pickup per tick
func (s *CombatSystem) CollectPickups(w *World, events []Event) []Event {
	p := w.Player
	for i, pk := range w.Pickups {
		if !p.Intersects(pk.Box()) || !pk.Apply(p) {
			continue
		}
		kind := EventPowerUp
		if pk.IsTreasure() {
			kind = EventCoin
		}
		events = append(events, Event{Kind: kind, Pos: pk.Box().Center})
		w.Pickups = slices.Delete(w.Pickups, i, i+1)
		return events
	}
	return events
}

// ResolveMelee applies the active sword swing to every enemy it touches
func (s *CombatSystem) ResolveMelee(w *World, events []Event) []Event {
	box, ok := w.Player.AttackHitbox()
	if !ok {
		return events
	}
	for _, e := range w.Enemies {
		if e.Dead() || !e.Intersects(box) {
			continue
		}
		events = s.damageEnemy(w, e, s.config.Combat.MeleeDamage, events)
	}
	return events
}

// ResolveContact handles body contact between the player and enemies.
// Landing on an enemy from above hurts it and bounces the player; any other
// touch hurts the player.
func (s *CombatSystem) ResolveContact(w *World, events []Event) []Event {
	p := w.Player
	for _, e := range w.Enemies {
		if e.Dead() || !p.Intersects(e.Box()) {
			continue
		}

		if s.isStomp(p, e) {
			p.Vel.Y = -p.Vel.Y * s.config.Combat.StompBounce
			events = s.damageEnemy(w, e, s.config.Combat.MeleeDamage, events)
			continue
		}

		if damage := e.ContactDamage(); damage > 0 && p.ApplyDamage(damage) {
			events = append(events, Event{Kind: EventPlayerHit, Pos: p.Pos, Amount: damage})
			s.shake(1.5)
		}
		e.ResetAttackCooldown()
	}
	return events
}

func (s *CombatSystem) isStomp(p *entity.Player, e *entity.Enemy) bool {
	return p.Pos.Y > e.Pos.Y &&
		p.Vel.Y < -s.config.Player.ClimbSpeed &&
		!p.Climbing &&
		p.Alive()
}

// ResolveProjectiles destroys projectiles that hit a wall or an opposing body.
// Fireballs burst into flame against walls.
func (s *CombatSystem) ResolveProjectiles(w *World, events []Event) []Event {
	p := w.Player
	for i := range w.Projectiles {
		pr := &w.Projectiles[i]
		if pr.Destroyed() {
			continue
		}

		if s.physics.ProjectileBlocked(pr) {
			if pr.Kind == entity.ProjectileFireball {
				w.SpawnParticles(entity.ParticleFire, pr.Pos, 10, 0.1, 1, 3, 0, 2*math.Pi)
				events = append(events, Event{Kind: EventExplode, Pos: pr.Pos})
			}
			pr.Destroy()
			continue
		}

		if pr.Hostile() {
			if p.Alive() && p.Intersects(pr.Box()) {
				damage := s.config.Combat.FireballDamage
				if p.ApplyDamage(damage) {
					events = append(events, Event{Kind: EventPlayerHit, Pos: p.Pos, Amount: damage})
					s.shake(1.5)
				}
				pr.Destroy()
			}
			continue
		}

		for _, e := range w.Enemies {
			if e.Dead() || !e.Intersects(pr.Box()) {
				continue
			}
			events = s.damageEnemy(w, e, s.config.Combat.ArrowDamage, events)
			pr.Destroy()
			break
		}
	}
	return events
}

// RemoveDestroyed drops dead enemies, destroyed projectiles and expired
// particles in one pass each, after every rule has run.
func (s *CombatSystem) RemoveDestroyed(w *World) {
	w.Enemies = slices.DeleteFunc(w.Enemies, func(e *entity.Enemy) bool {
		return e.Dead()
	})
	w.Projectiles = slices.DeleteFunc(w.Projectiles, func(p entity.Projectile) bool {
		return p.Destroyed()
	})
	w.Particles = slices.DeleteFunc(w.Particles, func(p entity.Particle) bool {
		return p.Expired()
	})
}

func (s *CombatSystem) damageEnemy(w *World, e *entity.Enemy, amount int, events []Event) []Event {
	if !e.ApplyDamage(amount) {
		return events
	}
	w.SpawnParticles(entity.ParticleBlood, e.Pos, 8, 0.1, 1, 3, 0, math.Pi)
	events = append(events, Event{Kind: EventEnemyHit, Pos: e.Pos, Amount: amount, Source: e.ID})
	s.hitstop()
	s.shake(1)

	if e.Dead() {
		w.Player.Score += e.Score()
		events = append(events, Event{Kind: EventEnemyKilled, Pos: e.Pos, Amount: e.Score(), Source: e.ID})
	}
	return events
}

func (s *CombatSystem) hitstop() {
	if s.OnHitstop != nil && s.config.Feedback.Hitstop.Enabled {
		s.OnHitstop(s.config.Feedback.Hitstop.Frames)
	}
}

func (s *CombatSystem) shake(scale float64) {
	if s.OnScreenShake != nil && s.config.Feedback.ScreenShake.Enabled {
		s.OnScreenShake(s.config.Feedback.ScreenShake.Intensity * scale)
	}
}

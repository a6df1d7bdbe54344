package system

import (
	"math"

	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// landingResidual is the vertical velocity left after landing. It keeps the body
// pressed into the floor so the next frame finds the tile again.
const landingResidual = -0.01

// PhysicsSystem moves bodies through the tile grid with axis-separated push-out
type PhysicsSystem struct {
	config *config.PhysicsConfig
	grid   *entity.Grid
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, grid *entity.Grid) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		grid:   grid,
	}
}

// UpdatePlayer runs one movement step for the player: x pass, climb clamp,
// midpoint gravity, y pass, ladder scan, then world clamps and timers.
func (s *PhysicsSystem) UpdatePlayer(p *entity.Player, dt float64) {
	p.FaceVelocity()

	p.Pos.X += p.Vel.X * dt
	s.uncollideX(&p.Body, solidObstacle)

	if p.Climbing {
		climb := s.config.Player.ClimbSpeed
		p.Vel.Y = math.Max(-climb, math.Min(climb, p.Vel.Y))
	}

	s.integrateY(&p.Body, p.Falling && !p.Climbing, dt)

	p.Falling = true
	p.Climbing = false
	forEachTile(s.grid, p.Box(), func(x, y int, kind entity.TileKind) {
		if kind.Transparent() {
			return
		}
		switch p.UncollideY(entity.TileBox(x, y)) {
		case entity.ContactAbove:
			p.Falling = false
			p.Vel.Y = landingResidual
		case entity.ContactBelow:
			p.Falling = true
		}
	})

	// Ladders are checked after solids so they never pull the player into a wall.
	forEachTile(s.grid, p.Box(), func(x, y int, kind entity.TileKind) {
		if kind == entity.TileLadder && p.Intersects(entity.TileBox(x, y)) {
			p.Climbing = true
			p.Falling = false
		}
	})

	s.clampToWorld(p)
	p.TickAttackTimers(dt)
	p.DamageCooldown -= dt
}

func (s *PhysicsSystem) clampToWorld(p *entity.Player) {
	maxX := float64(s.grid.Width - 1)
	if p.Pos.X < 0 {
		p.Pos.X = 0
	} else if p.Pos.X > maxX {
		p.Pos.X = maxX
	}
	if minY := 1 - (1-p.Dim.Y)/2; p.Pos.Y < minY {
		p.Pos.Y = minY
	}
}

// MoveEnemyX advances the enemy horizontally when advance is set, then pushes it
// out of every tile blocks accepts. Returns true if any such tile was overlapped.
func (s *PhysicsSystem) MoveEnemyX(e *entity.Enemy, dt float64, advance bool, blocks obstacleFunc) bool {
	if advance {
		e.Pos.X += e.Vel.X * dt
	}
	return s.uncollideX(&e.Body, blocks)
}

// FallEnemy runs the vertical half of an enemy step and ticks its cooldowns
func (s *PhysicsSystem) FallEnemy(e *entity.Enemy, dt float64) {
	s.integrateY(&e.Body, e.Falling, dt)

	e.Falling = true
	forEachTile(s.grid, e.Box(), func(x, y int, kind entity.TileKind) {
		if kind.Transparent() {
			return
		}
		switch e.UncollideY(entity.TileBox(x, y)) {
		case entity.ContactAbove:
			e.Falling = false
			e.Vel.Y = landingResidual
		case entity.ContactBelow:
			e.Falling = true
		}
	})

	e.TickCooldowns(dt)
	e.UpdateAnimation(dt)
}

// UpdateProjectile moves a projectile in a straight line. Projectiles ignore gravity.
func (s *PhysicsSystem) UpdateProjectile(p *entity.Projectile, dt float64) {
	p.Pos = p.Pos.Add(entity.Vec2{X: p.Vel.X * dt, Y: p.Vel.Y * dt})
	p.UpdateAnimation(dt)
}

// ProjectileBlocked reports whether a projectile is inside a solid tile or has left the grid
func (s *PhysicsSystem) ProjectileBlocked(p *entity.Projectile) bool {
	if s.grid.IsOutOfBounds(int(math.Round(p.Pos.X)), int(math.Round(p.Pos.Y))) {
		return true
	}
	hit := false
	forEachTile(s.grid, p.Box(), func(x, y int, kind entity.TileKind) {
		if !hit && !kind.Transparent() && p.Intersects(entity.TileBox(x, y)) {
			hit = true
		}
	})
	return hit
}

// UpdateParticle moves a particle under gravity. It stops dead against walls
// and settles where it lands.
func (s *PhysicsSystem) UpdateParticle(pt *entity.Particle, dt float64) {
	pt.Timer -= dt

	pt.Pos.X += pt.Vel.X * dt
	if s.uncollideX(&pt.Body, solidObstacle) {
		pt.Vel.X = 0
	}

	s.integrateY(&pt.Body, pt.Falling, dt)

	pt.Falling = true
	forEachTile(s.grid, pt.Box(), func(x, y int, kind entity.TileKind) {
		if kind.Transparent() {
			return
		}
		switch pt.UncollideY(entity.TileBox(x, y)) {
		case entity.ContactAbove:
			pt.Falling = false
			pt.Vel.Y = landingResidual
			pt.Vel.X = 0
		case entity.ContactBelow:
			pt.Falling = true
		}
	})
}

// TouchingTile reports whether the box intersects a tile of the given kind.
// Spikes use their reduced hitbox.
func (s *PhysicsSystem) TouchingTile(b entity.Box, kind entity.TileKind) bool {
	return touchingTile(s.grid, b, kind)
}

// AtLedge reports whether the box overlaps an open tile with no floor beneath it
func (s *PhysicsSystem) AtLedge(b entity.Box) bool {
	return atLedge(s.grid, b)
}

func (s *PhysicsSystem) uncollideX(b *entity.Body, blocks obstacleFunc) bool {
	collided := false
	forEachTile(s.grid, b.Box(), func(x, y int, kind entity.TileKind) {
		if blocks(s.grid, x, y, kind) && b.UncollideX(entity.TileBox(x, y), s.config.Physics.CollisionEpsilon) {
			collided = true
		}
	})
	return collided
}

// integrateY advances y in two half steps around the gravity update
func (s *PhysicsSystem) integrateY(b *entity.Body, gravity bool, dt float64) {
	b.Pos.Y += b.Vel.Y / 2 * dt
	if gravity {
		b.Vel.Y -= s.config.Physics.Gravity * dt
	}
	b.Pos.Y += b.Vel.Y / 2 * dt
}

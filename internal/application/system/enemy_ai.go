package system

import (
	"math"

	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// EnemySystem runs the Idle/Wander/Chase machine for every archetype
type EnemySystem struct {
	config  *config.PhysicsConfig
	physics *PhysicsSystem
}

// NewEnemySystem creates a new enemy behaviour system
func NewEnemySystem(cfg *config.PhysicsConfig, physics *PhysicsSystem) *EnemySystem {
	return &EnemySystem{
		config:  cfg,
		physics: physics,
	}
}

// Update steps one enemy: behaviour, horizontal move, then falling.
// A non-nil intent asks the caller to spawn something on the enemy's behalf.
func (s *EnemySystem) Update(e *entity.Enemy, playerPos entity.Vec2, dt float64) Intent {
	var intent Intent

	switch e.Archetype {
	case entity.ArchetypePatroller:
		s.updatePatroller(e, playerPos, dt)
	case entity.ArchetypeFlier:
		s.updateFlier(e, playerPos, dt)
	case entity.ArchetypeGroundJumper:
		s.updateGroundJumper(e, playerPos, dt)
	case entity.ArchetypeRangedIdle:
		intent = s.updateRangedIdle(e, playerPos, dt)
	}

	s.physics.FallEnemy(e, dt)
	e.FaceVelocity()
	return intent
}

// updatePatroller walks back and forth, turning at walls and ledges
func (s *EnemySystem) updatePatroller(e *entity.Enemy, player entity.Vec2, dt float64) {
	if s.physics.MoveEnemyX(e, dt, shouldAdvance(e, player), ledgeObstacle) {
		e.Vel.X = -e.Vel.X
		e.Pos.X += e.Vel.X * dt
	}
}

func (s *EnemySystem) updateFlier(e *entity.Enemy, player entity.Vec2, dt float64) {
	collided := s.physics.MoveEnemyX(e, dt, shouldAdvance(e, player), ledgeObstacle)

	switch e.State {
	case entity.AIWander:
		if collided {
			e.Vel.X = -e.Vel.X
			e.Pos.X += e.Vel.X * dt
		}
		if canSee(e, player) {
			e.State = entity.AIChase
		}
	case entity.AIChase:
		speed := e.Stats.ChaseSpeed
		if speed == 0 {
			speed = math.Abs(e.Vel.X)
		}
		steerToward(e, player.X, speed)

		if distance(e, player) > e.Stats.ChaseRange {
			e.State = entity.AIWander
			e.Vel.X = e.Stats.WanderSpeed * signum(e.Vel.X)
		}
	}
}

// updateGroundJumper rests at ledges and hops obstacles while chasing
func (s *EnemySystem) updateGroundJumper(e *entity.Enemy, player entity.Vec2, dt float64) {
	moving := e.State == entity.AIWander || e.State == entity.AIChase
	collided := s.physics.MoveEnemyX(e, dt, moving && shouldAdvance(e, player), solidObstacle)
	atEdge := e.State == entity.AIWander && s.physics.AtLedge(e.Box())

	climb := s.config.Player.ClimbSpeed
	if s.physics.TouchingTile(e.Box(), entity.TileLava) ||
		(s.physics.TouchingTile(e.Box(), entity.TileSpikes) && e.Vel.Y <= -climb) {
		e.Health = 0
	}

	dist := distance(e, player)
	if dist < e.Stats.ChaseRange {
		e.State = entity.AIChase
		e.Vel.X = e.Stats.ChaseSpeed * signum(e.Vel.X)
	}

	switch e.State {
	case entity.AIWander:
		e.SetAnimation(1.0, 2, 3)
		if collided || atEdge {
			e.State = entity.AIIdle
			e.Idle = -4.5
		}
		if e.Idle < -5 {
			e.State = entity.AIIdle
			e.Idle = 5
		}
	case entity.AIChase:
		e.Idle = 0
		e.SetAnimation(0.4, 2, 3)
		steerToward(e, player.X, e.Stats.ChaseSpeed)

		if dist > e.Stats.ChaseRange && e.Vel.Y <= 0 {
			e.State = entity.AIWander
			e.Vel.X = e.Stats.WanderSpeed * signum(e.Vel.X)
		}
		if collided && !e.Falling && e.State == entity.AIChase {
			e.Vel.Y = e.Stats.HopSpeed
		}
	case entity.AIIdle:
		e.SetAnimation(1.0, 0, 1)
		if e.Idle < -5 {
			e.Idle = 5
			e.State = entity.AIWander
			e.Vel.X = -e.Vel.X
		}
	}

	e.Idle -= dt
}

// updateRangedIdle mostly stands still and throws fireballs along its facing
func (s *EnemySystem) updateRangedIdle(e *entity.Enemy, player entity.Vec2, dt float64) Intent {
	advance := e.State != entity.AIIdle && shouldAdvance(e, player)
	collided := s.physics.MoveEnemyX(e, dt, advance, ledgeObstacle)

	var intent Intent
	switch e.State {
	case entity.AIWander:
		if canSee(e, player) {
			e.State = entity.AIChase
		}
		e.SetAnimation(1.0, 2, 3)
		if collided {
			e.State = entity.AIIdle
			e.Idle = 0
		}
		if e.Idle < -2 {
			e.Idle = 2
			e.State = entity.AIIdle
		}
	case entity.AIChase:
		e.SetAnimation(0.4, 2, 3)
		steerToward(e, player.X, e.Stats.ChaseSpeed)

		if distance(e, player) > e.Stats.ChaseRange {
			e.State = entity.AIWander
			e.Vel.X = e.Stats.WanderSpeed * signum(e.Vel.X)
		}
		if e.Idle < -1 {
			e.State = entity.AIIdle
			e.Idle = 2
		}
	case entity.AIIdle:
		e.SetAnimation(1.0, 0, 1)
		if e.Idle < -2 {
			e.Idle = 2
			if canSee(e, player) {
				e.State = entity.AIChase
			} else {
				e.State = entity.AIWander
				e.Vel.X = -e.Vel.X
			}
		}

		if e.AttackCooldown < 0 {
			dir := signum(e.Vel.X)
			e.Anim.Timer = 0.75
			intent = FireIntent{
				EntityID: e.ID,
				Origin:   entity.Vec2{X: e.Pos.X + dir*0.7, Y: e.Pos.Y - 0.1},
				VX:       e.Stats.ProjectileSpeed * dir,
			}
			e.AttackCooldown = e.Stats.AttackCooldown
		}
	}

	e.Idle -= dt
	return intent
}

// shouldAdvance stops an enemy that is already on top of the player
func shouldAdvance(e *entity.Enemy, player entity.Vec2) bool {
	return math.Abs(player.X-e.Pos.X) > 0.7 || math.Abs(player.Y-e.Pos.Y) > 0.2
}

func distance(e *entity.Enemy, player entity.Vec2) float64 {
	return e.Pos.Sub(player).Len()
}

// canSee is the chase trigger for archetypes that need the player on their level
func canSee(e *entity.Enemy, player entity.Vec2) bool {
	return distance(e, player) < e.Stats.ChaseRange && math.Abs(e.Pos.Y-player.Y) < 1
}

// steerToward points the enemy at x, with a dead zone so it does not jitter underneath
func steerToward(e *entity.Enemy, x, speed float64) {
	if e.Pos.X < x-0.5 {
		e.Vel.X = speed
	} else if e.Pos.X > x+0.5 {
		e.Vel.X = -speed
	}
}

// signum returns 1 or -1, never 0
func signum(v float64) float64 {
	return math.Copysign(1, v)
}

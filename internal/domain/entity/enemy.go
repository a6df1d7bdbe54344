package entity

import "fmt"

// Archetype defines the behavior profile of an enemy
type Archetype int

const (
	ArchetypePatroller Archetype = iota
	ArchetypeFlier
	ArchetypeGroundJumper
	ArchetypeRangedIdle
)

// String returns the config name of the archetype
func (a Archetype) String() string {
	switch a {
	case ArchetypePatroller:
		return "patroller"
	case ArchetypeFlier:
		return "flier"
	case ArchetypeGroundJumper:
		return "groundJumper"
	case ArchetypeRangedIdle:
		return "rangedIdle"
	default:
		return "unknown"
	}
}

// ParseArchetype converts a config name into an Archetype
func ParseArchetype(s string) (Archetype, error) {
	switch s {
	case "patroller":
		return ArchetypePatroller, nil
	case "flier":
		return ArchetypeFlier, nil
	case "groundJumper":
		return ArchetypeGroundJumper, nil
	case "rangedIdle":
		return ArchetypeRangedIdle, nil
	default:
		return 0, fmt.Errorf("unknown archetype %q", s)
	}
}

// AIState is the enemy behavior state
type AIState int

const (
	AIIdle AIState = iota
	AIWander
	AIChase
)

// String returns the string representation of the AI state
func (s AIState) String() string {
	switch s {
	case AIIdle:
		return "Idle"
	case AIWander:
		return "Wander"
	case AIChase:
		return "Chase"
	default:
		return "Unknown"
	}
}

// EnemyStats holds the per-archetype numbers an enemy is spawned with
type EnemyStats struct {
	Archetype      Archetype
	Width          float64
	Height         float64
	Health         int
	Score          int
	Damage         int
	DamageCooldown float64
	AttackCooldown float64

	WanderSpeed     float64
	ChaseSpeed      float64
	ChaseRange      float64
	HopSpeed        float64
	ProjectileSpeed float64
}

// Enemy represents an enemy entity
type Enemy struct {
	Body
	ID        EntityID
	Archetype Archetype
	Stats     EnemyStats

	Health int
	State  AIState

	DamageCooldown float64
	AttackCooldown float64
	// Idle counts down every tick; behaviors compare it against negative thresholds
	Idle float64

	Falling bool
}

// NewEnemy creates an enemy in Wander, patrolling left when flipped
func NewEnemy(id EntityID, x, y float64, stats EnemyStats, flipped bool) *Enemy {
	e := &Enemy{
		Body:      NewBody(x, y, stats.Width, stats.Height),
		ID:        id,
		Archetype: stats.Archetype,
		Stats:     stats,
		Health:    stats.Health,
		State:     AIWander,
	}
	e.Vel.X = stats.WanderSpeed
	e.Flipped = flipped
	if flipped {
		e.Vel.X = -e.Vel.X
	}
	e.SetAnimation(0.5, 0, 1)
	return e
}

// Dead returns true once health has dropped to zero
func (e *Enemy) Dead() bool {
	return e.Health <= 0
}

// ApplyDamage subtracts health unless the enemy was hit within the damage cooldown.
// Returns true if the hit registered.
func (e *Enemy) ApplyDamage(amount int) bool {
	if e.DamageCooldown > 0 || amount <= 0 {
		return false
	}
	e.Health -= amount
	e.DamageCooldown = e.Stats.DamageCooldown
	return true
}

// ContactDamage returns how much damage touching the enemy deals right now.
// It is zero while the attack cooldown runs.
func (e *Enemy) ContactDamage() int {
	if e.AttackCooldown > 0 {
		return 0
	}
	return e.Stats.Damage
}

// ResetAttackCooldown re-arms the attack cooldown once the previous window has expired
func (e *Enemy) ResetAttackCooldown() {
	if e.AttackCooldown < 0 {
		e.AttackCooldown = e.Stats.AttackCooldown
	}
}

// Score returns the points awarded for killing this enemy
func (e *Enemy) Score() int {
	return e.Stats.Score
}

// TickCooldowns counts down the damage and attack cooldowns
func (e *Enemy) TickCooldowns(dt float64) {
	e.DamageCooldown -= dt
	e.AttackCooldown -= dt
}

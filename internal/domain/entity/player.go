package entity

// Weapon is the player's active weapon mode
type Weapon int

const (
	WeaponSword Weapon = iota
	WeaponBow
)

// String returns the string representation of the weapon
func (w Weapon) String() string {
	switch w {
	case WeaponSword:
		return "Sword"
	case WeaponBow:
		return "Bow"
	default:
		return "Unknown"
	}
}

// PlayerStats holds the tunables a player is created with
type PlayerStats struct {
	Width          float64
	Height         float64
	MaxHealth      int
	Arrows         int
	DamageCooldown float64
	AttackCooldown float64
	AttackTimer    float64
	ArrowSpeed     float64
}

// DefaultPlayerStats returns the stock player tunables
func DefaultPlayerStats() PlayerStats {
	return PlayerStats{
		Width:          0.75,
		Height:         0.8125,
		MaxHealth:      4,
		Arrows:         3,
		DamageCooldown: 0.3,
		AttackCooldown: 0.5,
		AttackTimer:    0.2,
		ArrowSpeed:     6,
	}
}

// Player represents the player entity
type Player struct {
	Body
	Stats PlayerStats

	Health    int
	MaxHealth int
	Score     int
	Arrows    int
	Weapon    Weapon

	// Timers count down; negative means expired
	DamageCooldown float64
	AttackCooldown float64
	AttackTimer    float64

	Falling  bool
	Climbing bool
}

// NewPlayer creates a player standing at (x, y)
func NewPlayer(x, y float64, stats PlayerStats) *Player {
	p := &Player{
		Body:      NewBody(x, y, stats.Width, stats.Height),
		Stats:     stats,
		Health:    stats.MaxHealth,
		MaxHealth: stats.MaxHealth,
		Arrows:    stats.Arrows,
		Weapon:    WeaponSword,
	}
	p.UpdateAnimationState()
	return p
}

// Alive returns true while the player has health left
func (p *Player) Alive() bool {
	return p.Health > 0
}

// ApplyDamage subtracts health if the damage cooldown has run out.
// Returns true if the damage was applied.
func (p *Player) ApplyDamage(amount int) bool {
	if p.DamageCooldown > 0 || amount <= 0 || p.Health <= 0 {
		return false
	}
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	p.DamageCooldown = p.Stats.DamageCooldown
	return true
}

// Kill drops health to zero regardless of cooldowns
func (p *Player) Kill() {
	p.Health = 0
}

// Attack starts a sword swing if the attack cooldown allows it.
// Returns true if a swing started.
func (p *Player) Attack() bool {
	if p.AttackCooldown > 0 {
		return false
	}
	p.AttackCooldown = p.Stats.AttackCooldown
	p.AttackTimer = p.Stats.AttackTimer
	return true
}

// Shoot fires an arrow in the facing direction, inheriting the player's horizontal velocity.
func (p *Player) Shoot() (Projectile, bool) {
	if p.AttackCooldown > 0 || p.Arrows <= 0 {
		return Projectile{}, false
	}
	p.AttackCooldown = p.Stats.AttackCooldown
	p.AttackTimer = p.Stats.AttackTimer

	offset, vx := 0.8, p.Stats.ArrowSpeed
	if p.Flipped {
		offset, vx = -0.8, -p.Stats.ArrowSpeed
	}
	arrow := NewProjectile(ProjectileArrow, p.Pos.X+offset, p.Pos.Y-0.1, 0.5, 0.5)
	arrow.Vel.X = vx + p.Vel.X
	arrow.Flipped = p.Flipped
	p.Arrows--

	return arrow, true
}

// AttackHitbox returns the sword's hit area while a swing is active
func (p *Player) AttackHitbox() (Box, bool) {
	if p.AttackTimer <= 0 || p.Health <= 0 || p.Weapon != WeaponSword {
		return Box{}, false
	}
	x := p.Pos.X + 0.8
	if p.Flipped {
		x = p.Pos.X - 0.8
	}
	return Box{Center: Vec2{x, p.Pos.Y + 0.3}, Dim: Vec2{1, 1}}, true
}

// TickAttackTimers counts down the attack timers
func (p *Player) TickAttackTimers(dt float64) {
	p.AttackTimer -= dt
	p.AttackCooldown -= dt
}

// UpdateAnimationState picks the idle, walk or jump frames
func (p *Player) UpdateAnimationState() {
	switch {
	case p.Falling:
		p.SetAnimation(1.0, 6, 7)
	case p.Vel.X != 0:
		p.SetAnimation(1.0, 2, 5)
	default:
		p.SetAnimation(1.0, 0, 1)
	}
}

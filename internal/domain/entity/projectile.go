package entity

// ProjectileKind tags a projectile's owner. Destroyed marks it for removal at the end of the tick.
type ProjectileKind int

const (
	ProjectileArrow ProjectileKind = iota
	ProjectileFireball
	ProjectileDestroyed
)

// String returns the string representation of the projectile kind
func (k ProjectileKind) String() string {
	switch k {
	case ProjectileArrow:
		return "Arrow"
	case ProjectileFireball:
		return "Fireball"
	case ProjectileDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Projectile represents an arrow or fireball in flight
type Projectile struct {
	Body
	Kind ProjectileKind
}

// NewProjectile creates a projectile at rest
func NewProjectile(kind ProjectileKind, x, y, w, h float64) Projectile {
	return Projectile{Body: NewBody(x, y, w, h), Kind: kind}
}

// Hostile returns true if the projectile was fired by an enemy
func (p *Projectile) Hostile() bool {
	return p.Kind == ProjectileFireball
}

// Destroy marks the projectile for deferred removal
func (p *Projectile) Destroy() {
	p.Kind = ProjectileDestroyed
}

// Destroyed returns true once the projectile is marked for removal
func (p *Projectile) Destroyed() bool {
	return p.Kind == ProjectileDestroyed
}

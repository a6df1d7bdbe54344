package entity

import "math"

// ParticleKind is a cosmetic particle category
type ParticleKind int

const (
	ParticleBlood ParticleKind = iota
	ParticleFire
)

// Lifetime returns how long a particle of this kind lives, in seconds
func (k ParticleKind) Lifetime() float64 {
	switch k {
	case ParticleFire:
		return 1.0
	default:
		return 3.0
	}
}

// Particle is purely visual. It never takes part in combat but rides the tile collision.
type Particle struct {
	Body
	Kind    ParticleKind
	Timer   float64
	Falling bool
}

// NewParticle launches a square particle of size sz at the given speed and angle (radians)
func NewParticle(kind ParticleKind, x, y, sz, speed, angle float64) Particle {
	b := NewBody(x, y, sz, sz)
	b.Vel = Vec2{speed * math.Cos(angle), speed * math.Sin(angle)}
	return Particle{
		Body:    b,
		Kind:    kind,
		Timer:   kind.Lifetime(),
		Falling: true,
	}
}

// Expired returns true once the particle's timer has run out
func (p *Particle) Expired() bool {
	return p.Timer <= 0
}

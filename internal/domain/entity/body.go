package entity

import "math"

// Vec2 is a 2D vector in tile units
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Box is an axis-aligned bounding box given by its center and full size
type Box struct {
	Center Vec2
	Dim    Vec2
}

// TileBox returns the unit box of tile (x, y)
func TileBox(x, y int) Box {
	return Box{Center: Vec2{float64(x), float64(y)}, Dim: Vec2{1, 1}}
}

// Intersects reports strict overlap on both axes. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	return b.Center.X-b.Dim.X/2 < o.Center.X+o.Dim.X/2 &&
		b.Center.Y-b.Dim.Y/2 < o.Center.Y+o.Dim.Y/2 &&
		b.Center.X+b.Dim.X/2 > o.Center.X-o.Dim.X/2 &&
		b.Center.Y+b.Dim.Y/2 > o.Center.Y-o.Dim.Y/2
}

// Contact describes which side of an obstacle a vertical push-out moved the body to
type Contact int

const (
	ContactNone Contact = iota
	ContactAbove
	ContactBelow
)

// Animation is a looping frame window. Only renderers read the frame.
type Animation struct {
	Duration float64
	Start    int
	End      int
	Timer    float64
}

// Body is the physical state shared by the player, enemies, projectiles and particles.
// Pos is the center and Dim the full width/height.
type Body struct {
	Pos     Vec2
	Dim     Vec2
	Vel     Vec2
	Flipped bool

	Anim Animation
}

// NewBody creates a body at rest
func NewBody(x, y, w, h float64) Body {
	return Body{Pos: Vec2{x, y}, Dim: Vec2{w, h}}
}

// Box returns the body's bounding box
func (b *Body) Box() Box {
	return Box{Center: b.Pos, Dim: b.Dim}
}

// Intersects reports whether the body overlaps the given box
func (b *Body) Intersects(o Box) bool {
	return b.Box().Intersects(o)
}

// FaceVelocity flips the body to match the sign of its horizontal velocity.
// A velocity of exactly zero keeps the current facing.
func (b *Body) FaceVelocity() {
	if b.Vel.X < 0 {
		b.Flipped = true
	} else if b.Vel.X > 0 {
		b.Flipped = false
	}
}

// UncollideX pushes the body out of the obstacle along x.
// eps is added beyond the touching position so the next frame does not re-trigger.
// Returns true if the body was overlapping.
func (b *Body) UncollideX(o Box, eps float64) bool {
	if !b.Intersects(o) {
		return false
	}
	// Coincident centers resolve against the direction of travel.
	if b.Pos.X > o.Center.X || (b.Pos.X == o.Center.X && b.Vel.X <= 0) {
		b.Pos.X = o.Center.X + o.Dim.X/2 + b.Dim.X/2 + eps
	} else {
		b.Pos.X = o.Center.X - o.Dim.X/2 - b.Dim.X/2 - eps
	}
	return true
}

// UncollideY pushes the body out of the obstacle along y and reports the side it ended up on.
// Pushing down also kills upward velocity.
func (b *Body) UncollideY(o Box) Contact {
	if !b.Intersects(o) {
		return ContactNone
	}
	if b.Pos.Y > o.Center.Y || (b.Pos.Y == o.Center.Y && b.Vel.Y <= 0) {
		b.Pos.Y = o.Center.Y + o.Dim.Y/2 + b.Dim.Y/2
		return ContactAbove
	}
	b.Pos.Y = o.Center.Y - o.Dim.Y/2 - b.Dim.Y/2
	b.Vel.Y = 0
	return ContactBelow
}

// SetAnimation selects the frame window
func (b *Body) SetAnimation(duration float64, start, end int) {
	b.Anim.Duration = duration
	b.Anim.Start = start
	b.Anim.End = end
}

// UpdateAnimation advances the animation timer, wrapping at the duration
func (b *Body) UpdateAnimation(dt float64) {
	if b.Anim.Duration <= 0 {
		return
	}
	b.Anim.Timer += dt
	b.Anim.Timer -= math.Floor(b.Anim.Timer/b.Anim.Duration) * b.Anim.Duration
}

// Frame returns the current frame index within the animation window
func (b *Body) Frame() int {
	if b.Anim.Duration <= 0 {
		return b.Anim.Start
	}
	frames := b.Anim.End - b.Anim.Start + 1
	f := int(float64(frames) * b.Anim.Timer / b.Anim.Duration)
	if f >= frames {
		f = frames - 1
	}
	return b.Anim.Start + f
}

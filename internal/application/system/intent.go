package system

import "github.com/younwookim/tower/internal/domain/entity"

// Intent represents an action that an entity wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent starts horizontal movement. Dir is -1 for left, 1 for right.
type MoveIntent struct {
	Dir int
}

func (MoveIntent) isIntent() {}

// StopIntent ends horizontal movement in Dir. It only stops the player
// if they are still moving that way.
type StopIntent struct {
	Dir int
}

func (StopIntent) isIntent() {}

// JumpIntent jumps when standing, or climbs up when on a ladder
type JumpIntent struct{}

func (JumpIntent) isIntent() {}

// ClimbIntent sets ladder speed. Dir is -1 for down, 1 for up.
type ClimbIntent struct {
	Dir int
}

func (ClimbIntent) isIntent() {}

// ClimbStopIntent holds the player still on a ladder
type ClimbStopIntent struct{}

func (ClimbStopIntent) isIntent() {}

// AttackIntent swings the sword or fires an arrow depending on the weapon
type AttackIntent struct{}

func (AttackIntent) isIntent() {}

// WeaponIntent switches the active weapon
type WeaponIntent struct {
	Weapon entity.Weapon
}

func (WeaponIntent) isIntent() {}

// FireIntent is issued by a ranged enemy that wants a fireball spawned
type FireIntent struct {
	EntityID entity.EntityID
	Origin   entity.Vec2
	VX       float64
}

func (FireIntent) isIntent() {}

package system

import "github.com/younwookim/tower/internal/domain/entity"

// EventKind identifies something that happened during a tick
type EventKind int

const (
	EventJump EventKind = iota
	EventCoin
	EventPowerUp
	EventPlayerHit
	EventFallDamage
	EventEnemyHit
	EventEnemyKilled
	EventArrowFired
	EventFireballFired
	EventExplode
	EventWeaponSwitched
	EventPlayerDied
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "Jump"
	case EventCoin:
		return "Coin"
	case EventPowerUp:
		return "PowerUp"
	case EventPlayerHit:
		return "PlayerHit"
	case EventFallDamage:
		return "FallDamage"
	case EventEnemyHit:
		return "EnemyHit"
	case EventEnemyKilled:
		return "EnemyKilled"
	case EventArrowFired:
		return "ArrowFired"
	case EventFireballFired:
		return "FireballFired"
	case EventExplode:
		return "Explode"
	case EventWeaponSwitched:
		return "WeaponSwitched"
	case EventPlayerDied:
		return "PlayerDied"
	default:
		return "Unknown"
	}
}

// Event is a fire-and-forget notification for audio and other observers.
// Amount carries damage dealt or score awarded where that applies.
// Source names the enemy involved, zero when only the player is.
type Event struct {
	Kind   EventKind
	Pos    entity.Vec2
	Amount int
	Source entity.EntityID
}

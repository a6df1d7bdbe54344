package entity

// PickupKind is an item the player collects by touching it
type PickupKind int

const (
	PickupGold PickupKind = iota
	PickupSmallGold
	PickupHeal
	PickupHealthBoost
	PickupArrows
)

// String returns the string representation of the pickup kind
func (k PickupKind) String() string {
	switch k {
	case PickupGold:
		return "Gold"
	case PickupSmallGold:
		return "SmallGold"
	case PickupHeal:
		return "Heal"
	case PickupHealthBoost:
		return "HealthBoost"
	case PickupArrows:
		return "Arrows"
	default:
		return "Unknown"
	}
}

// Pickup sits on a tile cell
type Pickup struct {
	Kind PickupKind
	X, Y int
}

// Box returns the pickup's tile-sized hit area
func (p Pickup) Box() Box {
	return TileBox(p.X, p.Y)
}

// Apply gives the pickup's effect to the player.
// Returns false when the pickup has no effect and should stay in the world.
func (p Pickup) Apply(pl *Player) bool {
	switch p.Kind {
	case PickupGold:
		pl.Score += 50
	case PickupSmallGold:
		pl.Score += 10
	case PickupHeal:
		if pl.Health >= pl.MaxHealth {
			return false
		}
		pl.Health++
	case PickupHealthBoost:
		pl.MaxHealth++
		pl.Health++
	case PickupArrows:
		pl.Arrows += 2
	default:
		return false
	}
	return true
}

// IsTreasure returns true for score pickups
func (p Pickup) IsTreasure() bool {
	return p.Kind == PickupGold || p.Kind == PickupSmallGold
}

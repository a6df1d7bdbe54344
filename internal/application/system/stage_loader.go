package system

import (
	"fmt"
	"math/rand"

	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// RoomSize is the width and height of a room template in tiles
const RoomSize = 16

// DefaultFloors is the height of a generated tower in rooms
const DefaultFloors = 48

const (
	// floorStride is one room plus the slab above it
	floorStride = RoomSize + 1
	towerWidth  = RoomSize + 2
)

// SpawnKind is a template marker that may place something when the tower is built
type SpawnKind int

const (
	SpawnMaybeTreasure SpawnKind = iota
	SpawnTreasure
	SpawnMaybeEnemy
	SpawnEnemy
	SpawnPickup
)

// Spawn is a marker position inside a room template
type Spawn struct {
	Kind SpawnKind
	X, Y int
}

// RoomTemplate is a parsed room with y pointing up, so row 0 is the bottom
type RoomTemplate struct {
	Name       string
	tiles      [RoomSize * RoomSize]entity.TileKind
	background [RoomSize * RoomSize]entity.BackgroundKind
	Spawns     []Spawn
}

// Tile returns the foreground tile at (x, y), or Air outside the room
func (t *RoomTemplate) Tile(x, y int) entity.TileKind {
	if x < 0 || y < 0 || x >= RoomSize || y >= RoomSize {
		return entity.TileAir
	}
	return t.tiles[y*RoomSize+x]
}

// Background returns the decoration at (x, y), or Empty outside the room
func (t *RoomTemplate) Background(x, y int) entity.BackgroundKind {
	if x < 0 || y < 0 || x >= RoomSize || y >= RoomSize {
		return entity.BackgroundEmpty
	}
	return t.background[y*RoomSize+x]
}

// ParseRoomTemplate converts an ASCII room. The first row is the top of the room.
// Unknown characters become open air in front of a plain wall.
func ParseRoomTemplate(cfg config.RoomConfig) (*RoomTemplate, error) {
	if len(cfg.Rows) != RoomSize {
		return nil, fmt.Errorf("room %s: %w: %d rows", cfg.Name, config.ErrBadTemplate, len(cfg.Rows))
	}

	t := &RoomTemplate{Name: cfg.Name}
	for i, row := range cfg.Rows {
		y := RoomSize - 1 - i
		runes := []rune(row)
		if len(runes) != RoomSize {
			return nil, fmt.Errorf("room %s: %w: row %d has %d columns", cfg.Name, config.ErrBadTemplate, i, len(runes))
		}
		for x, ch := range runes {
			idx := y*RoomSize + x
			t.tiles[idx] = tileForChar(ch)
			t.background[idx] = backgroundForChar(ch)

			// Two-tile decorations continue into the row below their marker.
			switch t.Background(x, y+1) {
			case entity.BackgroundBannerTop:
				t.background[idx] = entity.BackgroundBannerBottom
			case entity.BackgroundBigWindowTop:
				t.background[idx] = entity.BackgroundBigWindowBottom
			}

			if kind, ok := spawnForChar(ch); ok {
				t.Spawns = append(t.Spawns, Spawn{Kind: kind, X: x, Y: y})
			}
		}
	}
	return t, nil
}

// ParseRoomTemplates parses every room in the config
func ParseRoomTemplates(cfg *config.RoomsConfig) ([]*RoomTemplate, error) {
	if cfg == nil {
		return nil, nil
	}
	templates := make([]*RoomTemplate, 0, len(cfg.Rooms))
	for _, room := range cfg.Rooms {
		t, err := ParseRoomTemplate(room)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func tileForChar(ch rune) entity.TileKind {
	switch ch {
	case '#':
		return entity.TileBrick
	case '|':
		return entity.TileLadder
	case '@':
		return entity.TileBrickTile
	case '=':
		return entity.TileBrickTile2
	case '!':
		return entity.TileLava
	case '^':
		return entity.TileSpikes
	default:
		return entity.TileAir
	}
}

func backgroundForChar(ch rune) entity.BackgroundKind {
	switch ch {
	case 'b':
		return entity.BackgroundBannerTop
	case 's':
		return entity.BackgroundSkull
	case 'w':
		return entity.BackgroundWindow
	case 'W':
		return entity.BackgroundBarredWindow
	case 'p':
		return entity.BackgroundPainting
	case '*':
		return entity.BackgroundBigWindowTop
	default:
		return entity.BackgroundWall
	}
}

func spawnForChar(ch rune) (SpawnKind, bool) {
	switch ch {
	case 'g':
		return SpawnMaybeTreasure, true
	case 'G':
		return SpawnTreasure, true
	case 'e':
		return SpawnMaybeEnemy, true
	case 'E':
		return SpawnEnemy, true
	case '?':
		return SpawnPickup, true
	default:
		return 0, false
	}
}

// EnemySpawn places a named enemy from entities.json
type EnemySpawn struct {
	Name    string
	X, Y    float64
	Flipped bool
}

// Tower is a generated level before any entity is created
type Tower struct {
	Grid    *entity.Grid
	Enemies []EnemySpawn
	Pickups []entity.Pickup
	Floors  int
}

// GenerateTower stacks one random template per floor. Every slab between floors
// gets a gap in the middle. Without templates every floor is an empty room.
func GenerateTower(templates []*RoomTemplate, floors int, rng *rand.Rand) *Tower {
	tower := &Tower{
		Grid:   entity.NewGrid(towerWidth, floorStride*floors+1),
		Floors: floors,
	}

	for floor := 0; floor < floors; floor++ {
		if len(templates) == 0 {
			tower.emptyRoom(floor)
		} else {
			tower.stampRoom(templates[rng.Intn(len(templates))], floor, rng)
		}

		for x := RoomSize/2 - 1; x < RoomSize/2+3; x++ {
			tower.Grid.Set(x, (floor+1)*floorStride, entity.TileAir)
		}
	}

	// Keep the spawn point standable whatever the first room holds.
	tower.Grid.Set(1, 1, entity.TileAir)
	return tower
}

func (t *Tower) emptyRoom(floor int) {
	for x := 0; x < RoomSize; x++ {
		for y := 0; y < RoomSize; y++ {
			t.Grid.Set(x+1, y+floor*floorStride+1, entity.TileAir)
		}
	}
}

func (t *Tower) stampRoom(tmpl *RoomTemplate, floor int, rng *rand.Rand) {
	offsetY := floor*floorStride + 1
	for x := 0; x < RoomSize; x++ {
		for y := 0; y < RoomSize; y++ {
			t.Grid.Set(x+1, y+offsetY, tmpl.Tile(x, y))
			t.Grid.SetBackground(x+1, y+offsetY, tmpl.Background(x, y))
		}
	}

	for _, s := range tmpl.Spawns {
		x, y := s.X+1, s.Y+offsetY
		switch s.Kind {
		case SpawnMaybeTreasure:
			roll := rng.Intn(100)
			if roll < 10 {
				t.Pickups = append(t.Pickups, entity.Pickup{Kind: entity.PickupGold, X: x, Y: y})
			} else if roll < 50 {
				t.Pickups = append(t.Pickups, entity.Pickup{Kind: entity.PickupSmallGold, X: x, Y: y})
			}
		case SpawnTreasure:
			t.Pickups = append(t.Pickups, entity.Pickup{Kind: entity.PickupGold, X: x, Y: y})
		case SpawnMaybeEnemy:
			roll := rng.Intn(100)
			flipped := rng.Intn(2) == 1
			if name := maybeEnemyName(roll); name != "" {
				t.Enemies = append(t.Enemies, EnemySpawn{Name: name, X: float64(x), Y: float64(y), Flipped: flipped})
			}
		case SpawnEnemy:
			flipped := rng.Intn(2) == 1
			t.Enemies = append(t.Enemies, EnemySpawn{Name: "chicken", X: float64(x), Y: float64(y), Flipped: flipped})
		case SpawnPickup:
			t.Pickups = append(t.Pickups, entity.Pickup{Kind: pickupForRoll(rng.Intn(100)), X: x, Y: y})
		}
	}
}

func maybeEnemyName(roll int) string {
	switch {
	case roll < 30:
		return "slime"
	case roll < 40:
		return "eyeball"
	case roll < 50:
		return "chicken"
	case roll < 60:
		return "demon"
	default:
		return ""
	}
}

func pickupForRoll(roll int) entity.PickupKind {
	switch {
	case roll < 40:
		return entity.PickupArrows
	case roll < 80:
		return entity.PickupHeal
	default:
		return entity.PickupHealthBoost
	}
}

// PlayerSpawn returns where a new player stands in a tower: the bottom-left
// corner of the first room, feet on the ground row.
func PlayerSpawn(height float64) entity.Vec2 {
	return entity.Vec2{X: 1, Y: 1 - (1-height)/2}
}

// NewTowerWorld builds a ready-to-play world. Generation and the simulation
// share one seed.
func NewTowerWorld(cfg *config.GameConfig, floors int, seed int64) (*World, error) {
	templates, err := ParseRoomTemplates(cfg.Rooms)
	if err != nil {
		return nil, err
	}

	world := NewWorld(nil, nil, seed)
	tower := GenerateTower(templates, floors, world.Rand())

	stats := PlayerStatsFromConfig(cfg.Physics)
	spawn := PlayerSpawn(stats.Height)
	world.Grid = tower.Grid
	world.Player = entity.NewPlayer(spawn.X, spawn.Y, stats)
	world.Pickups = tower.Pickups
	world.Floors = floors

	for _, s := range tower.Enemies {
		es, err := cfg.Entities.EnemyStats(s.Name, cfg.Physics.Combat)
		if err != nil {
			return nil, fmt.Errorf("failed to spawn enemy: %w", err)
		}
		world.SpawnEnemy(s.X, s.Y, es, s.Flipped)
	}

	return world, nil
}

// PlayerStatsFromConfig maps physics.json onto player stats
func PlayerStatsFromConfig(cfg *config.PhysicsConfig) entity.PlayerStats {
	return entity.PlayerStats{
		Width:          cfg.Player.Width,
		Height:         cfg.Player.Height,
		MaxHealth:      cfg.Player.MaxHealth,
		Arrows:         cfg.Player.Arrows,
		DamageCooldown: cfg.Combat.DamageCooldown,
		AttackCooldown: cfg.Combat.AttackCooldown,
		AttackTimer:    cfg.Combat.AttackTimer,
		ArrowSpeed:     cfg.Player.ArrowSpeed,
	}
}

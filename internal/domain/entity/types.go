package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileKind represents the foreground type of a tile
type TileKind uint8

const (
	TileAir TileKind = iota
	TileBrick
	TileBrickTile
	TileBrickTile2
	TileLadder
	TileLava
	TileSpikes
)

// Transparent reports whether the tile lets entities pass through it.
// Lava and spikes are passable but checked separately as hazards.
func (k TileKind) Transparent() bool {
	switch k {
	case TileAir, TileLadder, TileLava, TileSpikes:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tile kind
func (k TileKind) String() string {
	switch k {
	case TileAir:
		return "Air"
	case TileBrick:
		return "Brick"
	case TileBrickTile:
		return "BrickTile"
	case TileBrickTile2:
		return "BrickTile2"
	case TileLadder:
		return "Ladder"
	case TileLava:
		return "Lava"
	case TileSpikes:
		return "Spikes"
	default:
		return "Unknown"
	}
}

// BackgroundKind is a decorative tile drawn behind the foreground.
// It has no physical effect.
type BackgroundKind uint8

const (
	BackgroundEmpty BackgroundKind = iota
	BackgroundWall
	BackgroundBannerTop
	BackgroundBannerBottom
	BackgroundSkull
	BackgroundWindow
	BackgroundBarredWindow
	BackgroundPainting
	BackgroundBigWindowTop
	BackgroundBigWindowBottom
)

// Grid holds the tower's tile data. Row 0 is the bottom of the tower.
type Grid struct {
	Width      int
	Height     int
	tiles      []TileKind
	background []BackgroundKind
}

// NewGrid creates a grid filled with brick and a plain wall background
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		Width:      width,
		Height:     height,
		tiles:      make([]TileKind, width*height),
		background: make([]BackgroundKind, width*height),
	}
	for i := range g.tiles {
		g.tiles[i] = TileBrick
		g.background[i] = BackgroundWall
	}
	return g
}

// IsOutOfBounds reports whether (x, y) lies outside the grid
func (g *Grid) IsOutOfBounds(x, y int) bool {
	return x < 0 || y < 0 || x >= g.Width || y >= g.Height
}

// Get returns the tile at (x, y). Anything outside the grid reads as air.
func (g *Grid) Get(x, y int) TileKind {
	if g.IsOutOfBounds(x, y) {
		return TileAir
	}
	return g.tiles[y*g.Width+x]
}

// Set writes a tile. Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, kind TileKind) {
	if g.IsOutOfBounds(x, y) {
		return
	}
	g.tiles[y*g.Width+x] = kind
}

// Background returns the decoration at (x, y), or BackgroundEmpty outside the grid
func (g *Grid) Background(x, y int) BackgroundKind {
	if g.IsOutOfBounds(x, y) {
		return BackgroundEmpty
	}
	return g.background[y*g.Width+x]
}

// SetBackground writes a decoration. Writes outside the grid are ignored.
func (g *Grid) SetBackground(x, y int, kind BackgroundKind) {
	if g.IsOutOfBounds(x, y) {
		return
	}
	g.background[y*g.Width+x] = kind
}

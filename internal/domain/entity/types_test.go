package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestGrid() *Grid {
	// 4x3 grid: floor row of brick, air above, a ladder and a spike
	g := NewGrid(4, 3)
	for x := 0; x < 4; x++ {
		g.Set(x, 1, TileAir)
		g.Set(x, 2, TileAir)
	}
	g.Set(1, 1, TileLadder)
	g.Set(2, 1, TileSpikes)
	return g
}

func TestGrid_Get(t *testing.T) {
	g := createTestGrid()

	tests := []struct {
		name string
		x, y int
		want TileKind
	}{
		{"floor brick", 0, 0, TileBrick},
		{"air above floor", 0, 1, TileAir},
		{"ladder", 1, 1, TileLadder},
		{"spikes", 2, 1, TileSpikes},
		{"left of grid", -1, 1, TileAir},
		{"below grid", 0, -1, TileAir},
		{"right of grid", 4, 0, TileAir},
		{"above grid", 0, 3, TileAir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Get(tt.x, tt.y))
		})
	}
}

func TestGrid_SetOutOfBoundsIsNoop(t *testing.T) {
	g := createTestGrid()
	before := append([]TileKind(nil), g.tiles...)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}, {-5, -5}} {
		g.Set(p[0], p[1], TileLava)
		g.SetBackground(p[0], p[1], BackgroundSkull)
	}

	assert.Equal(t, before, g.tiles)
	assert.Equal(t, TileAir, g.Get(-1, 0))
}

func TestGrid_IsOutOfBounds(t *testing.T) {
	g := NewGrid(2, 2)

	assert.False(t, g.IsOutOfBounds(0, 0))
	assert.False(t, g.IsOutOfBounds(1, 1))
	assert.True(t, g.IsOutOfBounds(2, 1))
	assert.True(t, g.IsOutOfBounds(1, 2))
	assert.True(t, g.IsOutOfBounds(-1, 0))
}

func TestNewGrid_FillsWithBrick(t *testing.T) {
	g := NewGrid(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, TileBrick, g.Get(x, y))
			assert.Equal(t, BackgroundWall, g.Background(x, y))
		}
	}
	assert.Equal(t, BackgroundEmpty, g.Background(3, 0))
}

func TestTileKind_Transparent(t *testing.T) {
	tests := []struct {
		kind TileKind
		want bool
	}{
		{TileAir, true},
		{TileLadder, true},
		{TileLava, true},
		{TileSpikes, true},
		{TileBrick, false},
		{TileBrickTile, false},
		{TileBrickTile2, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Transparent())
		})
	}
}

func TestTileKind_String(t *testing.T) {
	assert.Equal(t, "Lava", TileLava.String())
	assert.Equal(t, "Unknown", TileKind(99).String())
}

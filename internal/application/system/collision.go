package system

import (
	"math"

	"github.com/younwookim/tower/internal/domain/entity"
)

// footprint returns the half-open tile range a box can overlap,
// widened by one tile on every side so sub-tile offsets are never missed.
func footprint(b entity.Box) (x0, y0, x1, y1 int) {
	hw := math.Ceil(b.Dim.X)/2 + 1
	hh := math.Ceil(b.Dim.Y)/2 + 1
	x0 = int(math.Floor(b.Center.X - hw))
	y0 = int(math.Floor(b.Center.Y - hh))
	x1 = int(math.Ceil(b.Center.X + hw))
	y1 = int(math.Ceil(b.Center.Y + hh))
	return x0, y0, x1, y1
}

// forEachTile calls fn for every in-bounds tile in the box's footprint.
// The range is fixed before the first call, so fn may move the body.
func forEachTile(g *entity.Grid, b entity.Box, fn func(x, y int, kind entity.TileKind)) {
	x0, y0, x1, y1 := footprint(b)
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			if g.IsOutOfBounds(x, y) {
				continue
			}
			fn(x, y, g.Get(x, y))
		}
	}
}

// tileHitbox returns the box used for hazard checks. Spikes only occupy
// the lower half of their tile.
func tileHitbox(x, y int, kind entity.TileKind) entity.Box {
	if kind == entity.TileSpikes {
		return entity.Box{
			Center: entity.Vec2{X: float64(x), Y: float64(y) - 0.25},
			Dim:    entity.Vec2{X: 0.8, Y: 0.5},
		}
	}
	return entity.TileBox(x, y)
}

// touchingTile reports whether the box intersects any tile of the given kind
func touchingTile(g *entity.Grid, b entity.Box, kind entity.TileKind) bool {
	touching := false
	forEachTile(g, b, func(x, y int, k entity.TileKind) {
		if k == kind && !touching && b.Intersects(tileHitbox(x, y, k)) {
			touching = true
		}
	})
	return touching
}

// obstacleFunc decides whether a tile blocks a horizontal move
type obstacleFunc func(g *entity.Grid, x, y int, kind entity.TileKind) bool

func solidObstacle(_ *entity.Grid, _, _ int, kind entity.TileKind) bool {
	return !kind.Transparent()
}

// ledgeObstacle also blocks open tiles with nothing to stand on, so walkers turn at ledges.
func ledgeObstacle(g *entity.Grid, x, y int, kind entity.TileKind) bool {
	if !kind.Transparent() {
		return true
	}
	return !g.IsOutOfBounds(x, y-1) && g.Get(x, y-1).Transparent()
}

// atLedge reports whether the box hangs over an open tile with no floor beneath it
func atLedge(g *entity.Grid, b entity.Box) bool {
	edge := false
	forEachTile(g, b, func(x, y int, kind entity.TileKind) {
		if edge || !kind.Transparent() || !ledgeObstacle(g, x, y, kind) {
			return
		}
		if b.Intersects(entity.TileBox(x, y)) {
			edge = true
		}
	})
	return edge
}

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

func createTestPhysicsConfig() *config.PhysicsConfig {
	return config.DefaultPhysicsConfig()
}

// createTestGrid builds a 10x8 room: brick floor on row 0, brick walls on
// columns 0 and 9, air everywhere else.
func createTestGrid() *entity.Grid {
	grid := entity.NewGrid(10, 8)
	for x := 1; x < 9; x++ {
		for y := 1; y < 8; y++ {
			grid.Set(x, y, entity.TileAir)
		}
	}
	return grid
}

func createTestPlayer(x, y float64) *entity.Player {
	return entity.NewPlayer(x, y, entity.DefaultPlayerStats())
}

// groundY is where the default player stands on row 0
func groundY() float64 {
	return 1 - (1-entity.DefaultPlayerStats().Height)/2
}

func TestNewPhysicsSystem(t *testing.T) {
	cfg := createTestPhysicsConfig()
	grid := createTestGrid()

	sys := NewPhysicsSystem(cfg, grid)

	require.NotNil(t, sys)
	assert.Equal(t, cfg, sys.config)
	assert.Equal(t, grid, sys.grid)
}

func TestPhysicsSystem_UpdatePlayer_FallingInvariant(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestGrid())
	player := createTestPlayer(4, 5)

	sys.UpdatePlayer(player, testDT)

	assert.True(t, player.Falling, "nothing beneath the player")
	assert.False(t, player.Climbing)

	sys.UpdatePlayer(player, testDT)
	assert.Less(t, player.Vel.Y, 0.0, "gravity applies once falling")
	assert.Less(t, player.Pos.Y, 5.0)
}

func TestPhysicsSystem_UpdatePlayer_Landing(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestGrid())
	player := createTestPlayer(4, 3)
	player.Falling = true

	for i := 0; i < 120 && player.Falling; i++ {
		sys.UpdatePlayer(player, testDT)
	}

	assert.False(t, player.Falling)
	assert.InDelta(t, groundY(), player.Pos.Y, 1e-9)
	assert.Equal(t, landingResidual, player.Vel.Y)

	// Standing still stays put
	for i := 0; i < 60; i++ {
		sys.UpdatePlayer(player, testDT)
		require.False(t, player.Falling)
	}
	assert.InDelta(t, groundY(), player.Pos.Y, 1e-9)
}

func TestPhysicsSystem_UpdatePlayer_WallStopsX(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		vx    float64
		wantX float64
	}{
		{"right wall", 7.5, 3, 9 - 0.5 - 0.375 - 0.001},
		{"left wall", 1.5, -3, 0 + 0.5 + 0.375 + 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestGrid())
			player := createTestPlayer(tt.x, groundY())
			player.Vel.X = tt.vx

			for i := 0; i < 60; i++ {
				sys.UpdatePlayer(player, testDT)
			}

			assert.InDelta(t, tt.wantX, player.Pos.X, 1e-9)
			assert.Equal(t, tt.vx < 0, player.Flipped)
		})
	}
}

func TestPhysicsSystem_UpdatePlayer_Ceiling(t *testing.T) {
	grid := createTestGrid()
	grid.Set(4, 3, entity.TileBrick)
	sys := NewPhysicsSystem(createTestPhysicsConfig(), grid)

	player := createTestPlayer(4, groundY())
	player.Vel.Y = 9

	maxY := player.Pos.Y
	for i := 0; i < 60; i++ {
		sys.UpdatePlayer(player, testDT)
		if player.Pos.Y > maxY {
			maxY = player.Pos.Y
		}
	}

	assert.LessOrEqual(t, maxY, 2.5-player.Dim.Y/2+1e-9, "head stops at the ceiling tile")
	assert.False(t, player.Falling, "back on the floor")
}

func TestPhysicsSystem_UpdatePlayer_Ladder(t *testing.T) {
	grid := createTestGrid()
	for y := 1; y < 6; y++ {
		grid.Set(5, y, entity.TileLadder)
	}
	sys := NewPhysicsSystem(createTestPhysicsConfig(), grid)

	player := createTestPlayer(5, groundY())
	sys.UpdatePlayer(player, testDT)
	require.True(t, player.Climbing)
	require.False(t, player.Falling)

	player.Vel.Y = 10
	sys.UpdatePlayer(player, testDT)
	assert.Equal(t, 4.0, player.Vel.Y, "climb speed is clamped")

	player.Vel.Y = 0
	y := player.Pos.Y
	for i := 0; i < 30; i++ {
		sys.UpdatePlayer(player, testDT)
	}
	assert.InDelta(t, y, player.Pos.Y, 1e-9, "no gravity while holding a ladder")
}

func TestPhysicsSystem_UpdatePlayer_ClampsToWorld(t *testing.T) {
	grid := entity.NewGrid(6, 6)
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			grid.Set(x, y, entity.TileAir)
		}
	}
	sys := NewPhysicsSystem(createTestPhysicsConfig(), grid)

	player := createTestPlayer(0.01, 0.5)
	player.Vel.X = -3
	sys.UpdatePlayer(player, testDT)

	assert.Equal(t, 0.0, player.Pos.X)
	assert.InDelta(t, groundY(), player.Pos.Y, 1e-9)

	player.Pos.X = 4.99
	player.Vel.X = 3
	sys.UpdatePlayer(player, testDT)
	assert.Equal(t, 5.0, player.Pos.X)
}

func TestPhysicsSystem_UpdatePlayer_TicksTimers(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestGrid())
	player := createTestPlayer(4, groundY())
	require.True(t, player.ApplyDamage(1))
	require.True(t, player.Attack())

	sys.UpdatePlayer(player, 0.1)

	assert.InDelta(t, 0.2, player.DamageCooldown, 1e-9)
	assert.InDelta(t, 0.4, player.AttackCooldown, 1e-9)
	assert.InDelta(t, 0.1, player.AttackTimer, 1e-9)
}

func TestPhysicsSystem_FallEnemy(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestGrid())
	enemy := entity.NewEnemy(1, 4, 3, createTestEnemyStats(entity.ArchetypePatroller), false)
	enemy.Falling = true

	for i := 0; i < 120 && enemy.Falling; i++ {
		sys.FallEnemy(enemy, testDT)
	}

	assert.False(t, enemy.Falling)
	assert.InDelta(t, 1.0, enemy.Pos.Y, 1e-9)
	assert.Less(t, enemy.AttackCooldown, 0.0, "cooldowns tick every step")
}

func TestPhysicsSystem_MoveEnemyX(t *testing.T) {
	grid := createTestGrid()
	grid.Set(6, 0, entity.TileAir)
	sys := NewPhysicsSystem(createTestPhysicsConfig(), grid)

	tests := []struct {
		name         string
		x            float64
		blocks       obstacleFunc
		wantCollided bool
	}{
		{"open floor", 3, ledgeObstacle, false},
		{"ledge blocks walkers", 5.06, ledgeObstacle, true},
		{"ledge ignored by solid-only", 5.06, solidObstacle, false},
		{"wall blocks everyone", 8.06, solidObstacle, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enemy := entity.NewEnemy(1, tt.x, 1, createTestEnemyStats(entity.ArchetypePatroller), false)
			got := sys.MoveEnemyX(enemy, testDT, true, tt.blocks)
			assert.Equal(t, tt.wantCollided, got)
		})
	}

	enemy := entity.NewEnemy(1, 3, 1, createTestEnemyStats(entity.ArchetypePatroller), false)
	sys.MoveEnemyX(enemy, testDT, false, ledgeObstacle)
	assert.Equal(t, 3.0, enemy.Pos.X, "no advance when told to hold")
}

func TestPhysicsSystem_Projectile(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestGrid())

	arrow := entity.NewProjectile(entity.ProjectileArrow, 4, 3, 0.5, 0.5)
	arrow.Vel.X = 6
	sys.UpdateProjectile(&arrow, 0.5)
	assert.InDelta(t, 7.0, arrow.Pos.X, 1e-9)
	assert.InDelta(t, 3.0, arrow.Pos.Y, 1e-9, "no gravity on projectiles")
	assert.False(t, sys.ProjectileBlocked(&arrow))

	sys.UpdateProjectile(&arrow, 0.25)
	assert.True(t, sys.ProjectileBlocked(&arrow), "inside the right wall")

	lost := entity.NewProjectile(entity.ProjectileArrow, 4, 20, 0.5, 0.5)
	assert.True(t, sys.ProjectileBlocked(&lost), "outside the grid")
}

func TestPhysicsSystem_UpdateParticle(t *testing.T) {
	sys := NewPhysicsSystem(createTestPhysicsConfig(), createTestGrid())

	pt := entity.NewParticle(entity.ParticleBlood, 4, 2, 0.1, 1, 0)
	for i := 0; i < 180 && pt.Falling; i++ {
		sys.UpdateParticle(&pt, testDT)
	}
	assert.False(t, pt.Falling)
	assert.Equal(t, 0.0, pt.Vel.X, "settles where it lands")
	assert.InDelta(t, 0.55, pt.Pos.Y, 1e-9)
	assert.Less(t, pt.Timer, 3.0)

	wall := entity.NewParticle(entity.ParticleFire, 8.43, 3, 0.1, 3, 0)
	sys.UpdateParticle(&wall, testDT)
	assert.Equal(t, 0.0, wall.Vel.X, "stops against the wall")
}

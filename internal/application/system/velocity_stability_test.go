package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVelocityStabilityWhenIdle tests that player velocity remains stable when standing still
func TestVelocityStabilityWhenIdle(t *testing.T) {
	sim := NewSimulation(createTestPhysicsConfig())
	world := NewWorld(createTestGrid(), createTestPlayer(4, groundY()), 1)
	player := world.Player

	// Settle onto the floor
	for i := 0; i < 5; i++ {
		sim.Tick(world, testDT, nil)
	}
	require.False(t, player.Falling)

	t.Run("VX should remain 0 when idle", func(t *testing.T) {
		for i := 0; i < 60; i++ {
			sim.Tick(world, testDT, nil)
			assert.Equal(t, 0.0, player.Vel.X, "Frame %d: VX should be 0, got %f", i, player.Vel.X)
		}
	})

	t.Run("VY should remain stable when on ground", func(t *testing.T) {
		vyValues := make([]float64, 0, 60)
		for i := 0; i < 60; i++ {
			sim.Tick(world, testDT, nil)
			vyValues = append(vyValues, player.Vel.Y)
		}

		t.Logf("VY values: min=%f, max=%f", minFloat(vyValues), maxFloat(vyValues))
		assert.Equal(t, landingResidual, minFloat(vyValues))
		assert.Equal(t, landingResidual, maxFloat(vyValues))
		assert.False(t, player.Falling)
		assert.InDelta(t, groundY(), player.Pos.Y, 1e-9)
	})

	t.Run("Variable frame times do not sink the player", func(t *testing.T) {
		rng := rand.New(rand.NewSource(12345))
		for i := 0; i < 600; i++ {
			dt := 1.0/144 + rng.Float64()*(1.0/30-1.0/144)
			sim.Tick(world, dt, nil)
			require.False(t, player.Falling, "Frame %d: dt=%f", i, dt)
		}
		assert.InDelta(t, groundY(), player.Pos.Y, 1e-9)
	})

	t.Run("Walking keeps feet on the floor", func(t *testing.T) {
		sim.Tick(world, testDT, []Intent{MoveIntent{Dir: 1}})
		for i := 0; i < 30; i++ {
			sim.Tick(world, testDT, nil)
			require.False(t, player.Falling, "Frame %d", i)
			assert.InDelta(t, groundY(), player.Pos.Y, 1e-9)
		}
		assert.Equal(t, 3.0, player.Vel.X)
		assert.Greater(t, player.Pos.X, 5.0)
	})
}

func minFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

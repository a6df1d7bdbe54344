package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tower/internal/application/replay"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

func createTestConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := loadConfig("")
	require.NoError(t, err)
	return cfg
}

// writeTestReplay records a short run: walk right, jump, swing, walk back
func writeTestReplay(t *testing.T, frames int) string {
	t.Helper()
	data := replay.CreateTestReplayData(frames, testDT)
	data.Floors = 2
	script := map[int][]replay.ActionInput{
		10: {{A: "Right", P: true}},
		40: {{A: "Up", P: true}},
		41: {{A: "Up"}},
		60: {{A: "Right"}, {A: "Attack", P: true}},
		70: {{A: "Left", P: true}},
		90: {{A: "Left"}},
	}
	for f, actions := range script {
		if f < frames {
			data.Frames[f].A = actions
		}
	}
	for i := range data.Frames {
		data.Frames[i].DT = testDT * (1 + 0.2*float64(i%5))
	}

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, replay.SaveReplay(path, data))
	return path
}

func TestLoadConfig_Embedded(t *testing.T) {
	cfg := createTestConfig(t)

	assert.Equal(t, 320, cfg.Physics.Display.ScreenWidth)
	assert.NotEmpty(t, cfg.Rooms.Rooms)
	a, ok := cfg.Input.Action("ArrowUp")
	assert.True(t, ok)
	assert.Equal(t, config.ActionUp, a)
}

func TestLoadConfig_KeysOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte("W=Up\nA=Left\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	a, ok := cfg.Input.Action("W")
	assert.True(t, ok)
	assert.Equal(t, config.ActionUp, a)
	_, ok = cfg.Input.Action("ArrowUp")
	assert.False(t, ok, "the override replaces the built-in layout")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRunReplay_Deterministic(t *testing.T) {
	cfg := createTestConfig(t)
	path := writeTestReplay(t, 120)

	first, err := runReplay(cfg, path)
	require.NoError(t, err)
	second, err := runReplay(cfg, path)
	require.NoError(t, err)

	assert.Equal(t, 120, first.Frames)
	assert.Equal(t, int64(12345), first.Seed)
	assert.Equal(t, 2, first.Floors)
	assert.Equal(t, first, second)
	assert.Contains(t, first.String(), "seed 12345, 2 floors: 120 frames")
}

func TestRunReplay_IdleStaysPut(t *testing.T) {
	cfg := createTestConfig(t)
	data := replay.CreateTestReplayData(60, testDT)
	data.Floors = 1
	path := filepath.Join(t.TempDir(), "idle.json")
	require.NoError(t, replay.SaveReplay(path, data))

	res, err := runReplay(cfg, path)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Pos.X)
	assert.InDelta(t, 1-(1-cfg.Physics.Player.Height)/2, res.Pos.Y, 1e-9)
}

func TestRunReplay_Errors(t *testing.T) {
	cfg := createTestConfig(t)

	_, err := runReplay(cfg, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"version":"2.0","frames":[]}`), 0o644))
	_, err = runReplay(cfg, empty)
	assert.ErrorIs(t, err, replay.ErrNoFrames)
}

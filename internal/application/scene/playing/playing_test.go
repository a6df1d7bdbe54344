package playing

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tower/internal/application/replay"
	"github.com/younwookim/tower/internal/application/scene"
	"github.com/younwookim/tower/internal/application/state"
	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
	"github.com/younwookim/tower/internal/infrastructure/persistence"
)

const testDT = 1.0 / 60.0

type fakeSound struct {
	events []system.Event
}

func (f *fakeSound) PlayEvents(events []system.Event) {
	f.events = append(f.events, events...)
}

type fakePublisher struct {
	published int
}

func (f *fakePublisher) Publish(*system.World) error {
	f.published++
	return nil
}

type fakeStore struct {
	table    *persistence.Table
	loadErr  error
	recorded map[string]int
}

func (f *fakeStore) Load() (*persistence.Table, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.table, nil
}

func (f *fakeStore) Record(runID string, score int) error {
	if f.recorded == nil {
		f.recorded = make(map[string]int)
	}
	f.recorded[runID] = score
	return nil
}

func (f *fakeStore) Close() error { return nil }

// createTestConfig loads the shipped configuration
func createTestConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.NewLoader("../../../../cmd/game/configs").LoadAll()
	require.NoError(t, err)
	return cfg
}

// createTestPlaying builds a two-floor tower with no enemies and lets the player land
func createTestPlaying(t *testing.T, opts Options) *Playing {
	t.Helper()
	if opts.Floors == 0 {
		opts.Floors = 2
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	p, err := New(createTestConfig(t), opts)
	require.NoError(t, err)

	p.world.Enemies = nil
	p.world.Pickups = nil
	for i := 0; i < 3; i++ {
		require.NoError(t, p.step(testDT, nil))
	}
	return p
}

func press(a config.Action) []system.ActionEvent {
	return []system.ActionEvent{{Action: a, Pressed: true}}
}

func release(a config.Action) []system.ActionEvent {
	return []system.ActionEvent{{Action: a, Pressed: false}}
}

// killPlayer turns the player's tile to lava so the next frame is fatal
func killPlayer(p *Playing) {
	pos := p.world.Player.Pos
	p.world.Grid.Set(int(pos.X+0.5), int(pos.Y+0.5), entity.TileLava)
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestNew(t *testing.T) {
	p, err := New(createTestConfig(t), Options{Seed: 7, Floors: 2})
	require.NoError(t, err)

	assert.Equal(t, state.StatePlaying, p.State())
	require.NotNil(t, p.World())
	assert.Equal(t, 2, p.World().Floors)
	assert.Equal(t, int64(7), p.seed)
	_, err = uuid.Parse(p.runID)
	assert.NoError(t, err)
	assert.Nil(t, p.recorder, "no recorder without a path")

	w, h := p.Layout(1280, 960)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestNew_DefaultFloors(t *testing.T) {
	p, err := New(createTestConfig(t), Options{Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, system.DefaultFloors, p.World().Floors)
}

func TestNew_Hiscores(t *testing.T) {
	cfg := createTestConfig(t)

	p, err := New(cfg, Options{Seed: 1, Floors: 1, Scores: &fakeStore{table: persistence.NewTable(50, 40)}})
	require.NoError(t, err)
	assert.Equal(t, 50, p.hiscores.Best())

	p, err = New(cfg, Options{Seed: 1, Floors: 1, Scores: &fakeStore{loadErr: errors.New("down")}})
	require.NoError(t, err, "an unreachable store is not fatal")
	assert.Empty(t, p.hiscores.Scores())
}

func TestPlaying_PauseFreezesWorld(t *testing.T) {
	p := createTestPlaying(t, Options{})
	frames := p.frames
	pos := p.world.Player.Pos

	require.NoError(t, p.step(testDT, press(config.ActionEscape)))
	assert.Equal(t, state.StatePaused, p.State())

	for i := 0; i < 5; i++ {
		require.NoError(t, p.step(testDT, nil))
	}
	assert.Equal(t, frames, p.frames)
	assert.Equal(t, pos, p.world.Player.Pos)

	require.NoError(t, p.step(testDT, press(config.ActionEscape)))
	assert.Equal(t, state.StatePlaying, p.State())
	assert.Equal(t, frames, p.frames, "the resume frame does not simulate")

	require.NoError(t, p.step(testDT, nil))
	assert.Equal(t, frames+1, p.frames)
}

func TestPlaying_ReleaseWhilePausedIsKept(t *testing.T) {
	p := createTestPlaying(t, Options{})

	require.NoError(t, p.step(testDT, press(config.ActionRight)))
	assert.Equal(t, 3.0, p.world.Player.Vel.X)

	require.NoError(t, p.step(testDT, press(config.ActionEscape)))
	require.NoError(t, p.step(testDT, release(config.ActionRight)))
	require.NoError(t, p.step(testDT, press(config.ActionEscape)))
	assert.Len(t, p.pending, 1)
	assert.Equal(t, 3.0, p.world.Player.Vel.X)

	require.NoError(t, p.step(testDT, nil))
	assert.Zero(t, p.world.Player.Vel.X)
	assert.Empty(t, p.pending)
}

func TestPlaying_Hitstop(t *testing.T) {
	p := createTestPlaying(t, Options{})
	frames := p.frames
	p.hitstopFrames = 2

	require.NoError(t, p.step(testDT, press(config.ActionBow)))
	assert.Equal(t, frames, p.frames)
	assert.Equal(t, 1, p.hitstopFrames)
	assert.Equal(t, entity.WeaponSword, p.world.Player.Weapon)

	require.NoError(t, p.step(testDT, nil))
	assert.Equal(t, frames, p.frames)

	require.NoError(t, p.step(testDT, nil))
	assert.Equal(t, frames+1, p.frames)
	assert.Equal(t, entity.WeaponBow, p.world.Player.Weapon, "input held through hitstop still lands")
}

func TestPlaying_GameOverRecordsScore(t *testing.T) {
	store := &fakeStore{table: persistence.NewTable()}
	sound := &fakeSound{}
	pub := &fakePublisher{}
	p := createTestPlaying(t, Options{Scores: store, Sound: sound, Spectators: pub})
	runID := p.runID

	p.world.Player.Score = 120
	killPlayer(p)
	require.NoError(t, p.step(testDT, nil))

	assert.Equal(t, state.StateGameOver, p.State())
	assert.Equal(t, map[string]int{runID: 120}, store.recorded)
	assert.Equal(t, []int{120}, p.hiscores.Scores())
	assert.True(t, p.newHiscore)
	assert.Equal(t, 4, pub.published)

	var died []system.Event
	for _, ev := range sound.events {
		if ev.Kind == system.EventPlayerDied {
			died = append(died, ev)
		}
	}
	require.Len(t, died, 1)
	assert.Equal(t, 120, died[0].Amount)

	frames := p.frames
	require.NoError(t, p.step(testDT, press(config.ActionEscape)))
	assert.Equal(t, state.StateGameOver, p.State(), "escape does not leave the game over screen")
	assert.Equal(t, frames, p.frames)
}

func TestPlaying_ScreenFlow(t *testing.T) {
	p := createTestPlaying(t, Options{})
	firstRun := p.runID
	killPlayer(p)
	require.NoError(t, p.step(testDT, nil))
	require.Equal(t, state.StateGameOver, p.State())

	require.NoError(t, p.step(testDT, press(config.ActionAttack)))
	assert.Equal(t, state.StateHighScores, p.State())

	require.NoError(t, p.step(testDT, nil))
	assert.Equal(t, state.StateHighScores, p.State())

	require.NoError(t, p.step(testDT, press(config.ActionAttack)))
	assert.Equal(t, state.StateMenu, p.State())

	require.NoError(t, p.step(testDT, press(config.ActionAttack)))
	assert.Equal(t, state.StatePlaying, p.State())
	assert.NotEqual(t, firstRun, p.runID)
	assert.Zero(t, p.frames)
	assert.True(t, p.world.Player.Alive())
}

func TestPlaying_QuitFromPause(t *testing.T) {
	p := createTestPlaying(t, Options{})

	require.NoError(t, p.step(testDT, press(config.ActionEscape)))
	require.NoError(t, p.step(testDT, press(config.ActionAttack)))

	assert.Equal(t, state.StateMenu, p.State())
}

func TestPlaying_RecordingReplaysDeterministically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	cfg := createTestConfig(t)
	p, err := New(cfg, Options{Seed: 99, Floors: 2, RecordPath: path})
	require.NoError(t, err)

	script := map[int][]system.ActionEvent{
		5:  press(config.ActionRight),
		30: press(config.ActionUp),
		31: release(config.ActionUp),
		40: press(config.ActionEscape),
		42: release(config.ActionRight),
		44: press(config.ActionEscape),
		50: press(config.ActionLeft),
		60: press(config.ActionAttack),
		75: release(config.ActionLeft),
	}
	for i := 0; i < 90; i++ {
		if i == 55 {
			p.hitstopFrames = 3
		}
		dt := testDT * (1 + 0.5*float64(i%4))
		require.NoError(t, p.step(dt, script[i]))
	}
	p.OnExit()
	assert.False(t, p.recorder.IsRecording())
	assert.Equal(t, p.frames, p.recorder.FrameCount())

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, p.runID, data.RunID)

	w, err := system.NewTowerWorld(cfg, data.Floors, data.Seed)
	require.NoError(t, err)
	res := replay.Run(w, system.NewSimulation(cfg.Physics), replay.NewReplayer(*data))

	assert.Equal(t, p.frames, res.Frames)
	assert.Equal(t, p.world.Player.Pos, res.Pos)
	assert.Equal(t, p.world.Player.Health, res.Health)
	assert.Equal(t, p.world.Player.Score, res.Score)
}

func TestRecorder_RecordFrame(t *testing.T) {
	r := NewRecorder("run", 5, 3)

	r.RecordFrame(0.02, []system.ActionEvent{{Action: config.ActionLeft, Pressed: true}})
	r.RecordFrame(0.03, nil)

	data := r.GetData()
	assert.Equal(t, replay.Version, data.Version)
	assert.Equal(t, int64(5), data.Seed)
	assert.Equal(t, 3, data.Floors)
	require.Len(t, data.Frames, 2)
	assert.Equal(t, replay.FrameInput{F: 0, DT: 0.02, A: []replay.ActionInput{{A: "Left", P: true}}}, data.Frames[0])
	assert.Equal(t, replay.FrameInput{F: 1, DT: 0.03}, data.Frames[1])

	r.Stop()
	r.RecordFrame(0.01, nil)
	assert.Equal(t, 2, r.FrameCount())
	assert.False(t, r.IsRecording())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("run", 1, 1)

	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, replay.ErrNoFrames)
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()

	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}

package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// ErrNoFrames is returned when saving or loading a replay without frames
var ErrNoFrames = errors.New("no frames")

// ReplayInput is one frame of playback
type ReplayInput struct {
	DT      float64
	Actions []system.ActionEvent
}

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if len(data.Frames) == 0 {
		return nil, fmt.Errorf("failed to load replay %s: %w", filename, ErrNoFrames)
	}

	return &data, nil
}

// SaveReplay writes replay data to a file
func SaveReplay(filename string, data ReplayData) error {
	if len(data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (ReplayInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return ReplayInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	input := ReplayInput{DT: fi.DT}
	for _, a := range fi.A {
		input.Actions = append(input.Actions, system.ActionEvent{Action: config.Action(a.A), Pressed: a.P})
	}
	return input, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Floors returns the tower height used for the replay
func (r *Replayer) Floors() int {
	return r.data.Floors
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing (idle player)
func CreateTestReplayData(frames int, dt float64) ReplayData {
	data := ReplayData{
		Version:   Version,
		RunID:     "00000000-0000-0000-0000-000000000000",
		Seed:      12345,
		Floors:    3,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F:  i,
			DT: dt,
		}
	}

	return data
}

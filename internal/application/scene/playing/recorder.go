package playing

import (
	"fmt"
	"time"

	"github.com/younwookim/tower/internal/application/replay"
	"github.com/younwookim/tower/internal/application/system"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      replay.ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for one run of a seeded tower
func NewRecorder(runID string, seed int64, floors int) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   replay.Version,
			RunID:     runID,
			Seed:      seed,
			Floors:    floors,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
		frame:     0,
	}
}

// RecordFrame records one simulated frame: its time step and the actions fed to it
func (r *Recorder) RecordFrame(dt float64, actions []system.ActionEvent) {
	if !r.recording {
		return
	}

	frameInput := replay.FrameInput{F: r.frame, DT: dt}
	for _, a := range actions {
		frameInput.A = append(frameInput.A, replay.ActionInput{A: string(a.Action), P: a.Pressed})
	}

	r.data.Frames = append(r.data.Frames, frameInput)
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	return replay.SaveReplay(filename, r.data)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() replay.ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

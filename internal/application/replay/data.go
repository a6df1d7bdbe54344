package replay

// Version is written into every recording
const Version = "2.0"

// ActionInput is one bound action changing state during a frame
type ActionInput struct {
	A string `json:"a"`           // Action name
	P bool   `json:"p,omitempty"` // Pressed; false is a release
}

// FrameInput records one simulated frame. The simulation integrates the
// real frame time, so dt is part of the input.
type FrameInput struct {
	F  int           `json:"f"`           // Frame number
	DT float64       `json:"dt"`          // Frame time in seconds
	A  []ActionInput `json:"a,omitempty"` // Actions this frame
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	RunID     string       `json:"runId"`
	Seed      int64        `json:"seed"`
	Floors    int          `json:"floors"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

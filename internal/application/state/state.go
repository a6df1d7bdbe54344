package state

// GameState represents the current screen of the game
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateHighScores
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateHighScores:
		return "HighScores"
	default:
		return "Unknown"
	}
}

// Trigger is something that can move the game between screens
type Trigger int

const (
	TriggerConfirm Trigger = iota
	TriggerEscape
	TriggerDied
)

// Next returns the screen after t. Triggers a screen does not react to leave it unchanged.
func (s GameState) Next(t Trigger) GameState {
	switch s {
	case StateMenu:
		switch t {
		case TriggerConfirm:
			return StatePlaying
		case TriggerEscape:
			return StateHighScores
		}
	case StatePlaying:
		switch t {
		case TriggerEscape:
			return StatePaused
		case TriggerDied:
			return StateGameOver
		}
	case StatePaused:
		switch t {
		case TriggerEscape:
			return StatePlaying
		case TriggerConfirm:
			return StateMenu
		}
	case StateGameOver:
		if t == TriggerConfirm {
			return StateHighScores
		}
	case StateHighScores:
		if t == TriggerConfirm || t == TriggerEscape {
			return StateMenu
		}
	}
	return s
}

// Simulating reports whether the world advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}

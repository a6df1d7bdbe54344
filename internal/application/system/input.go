package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// KeyEvent is a key press or release, named the way input_settings.txt names keys
type KeyEvent struct {
	Key     string
	Pressed bool
}

// InputSystem turns key events into player intents through the bindings
type InputSystem struct {
	bindings *config.InputConfig

	pressed  []ebiten.Key
	released []ebiten.Key
}

// NewInputSystem creates a new input system
func NewInputSystem(bindings *config.InputConfig) *InputSystem {
	return &InputSystem{bindings: bindings}
}

// Poll reads this frame's key transitions from ebiten
func (s *InputSystem) Poll() []KeyEvent {
	s.pressed = inpututil.AppendJustPressedKeys(s.pressed[:0])
	s.released = inpututil.AppendJustReleasedKeys(s.released[:0])

	events := make([]KeyEvent, 0, len(s.pressed)+len(s.released))
	for _, k := range s.pressed {
		events = append(events, KeyEvent{Key: k.String(), Pressed: true})
	}
	for _, k := range s.released {
		events = append(events, KeyEvent{Key: k.String(), Pressed: false})
	}
	return events
}

// ActionEvent is a key event after binding lookup. Replays store these so
// they play back the same under any keyboard layout.
type ActionEvent struct {
	Action  config.Action
	Pressed bool
}

// Actions resolves key events through the bindings, dropping unbound keys
func (s *InputSystem) Actions(events []KeyEvent) []ActionEvent {
	var actions []ActionEvent
	for _, ev := range events {
		action, ok := s.bindings.Action(ev.Key)
		if !ok {
			continue
		}
		actions = append(actions, ActionEvent{Action: action, Pressed: ev.Pressed})
	}
	return actions
}

// Intents translates key events. Escape is not a player intent; it is
// reported through pause instead.
func (s *InputSystem) Intents(events []KeyEvent) (intents []Intent, pause bool) {
	return IntentsFor(s.Actions(events))
}

// IntentsFor translates already-resolved actions
func IntentsFor(actions []ActionEvent) (intents []Intent, pause bool) {
	for _, ev := range actions {
		if ev.Action == config.ActionEscape {
			if ev.Pressed {
				pause = true
			}
			continue
		}
		if intent := translate(ev.Action, ev.Pressed); intent != nil {
			intents = append(intents, intent)
		}
	}
	return intents, pause
}

func translate(action config.Action, pressed bool) Intent {
	if !pressed {
		switch action {
		case config.ActionUp, config.ActionDown:
			return ClimbStopIntent{}
		case config.ActionLeft:
			return StopIntent{Dir: -1}
		case config.ActionRight:
			return StopIntent{Dir: 1}
		}
		return nil
	}

	switch action {
	case config.ActionUp:
		return JumpIntent{}
	case config.ActionDown:
		return ClimbIntent{Dir: -1}
	case config.ActionLeft:
		return MoveIntent{Dir: -1}
	case config.ActionRight:
		return MoveIntent{Dir: 1}
	case config.ActionAttack:
		return AttackIntent{}
	case config.ActionSword:
		return WeaponIntent{Weapon: entity.WeaponSword}
	case config.ActionBow:
		return WeaponIntent{Weapon: entity.WeaponBow}
	}
	return nil
}

package termview

import (
	"sort"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/tower/internal/application/system"
)

// HoldWindow is how long a key counts as held after its last press or repeat.
// Terminals report no key releases, so one is synthesised once this lapses.
const HoldWindow = 600 * time.Millisecond

// KeyName maps a terminal key to the name input_settings.txt uses
func KeyName(key tcell.Key, r rune) (string, bool) {
	switch key {
	case tcell.KeyLeft:
		return "ArrowLeft", true
	case tcell.KeyRight:
		return "ArrowRight", true
	case tcell.KeyUp:
		return "ArrowUp", true
	case tcell.KeyDown:
		return "ArrowDown", true
	case tcell.KeyEscape:
		return "Escape", true
	case tcell.KeyEnter:
		return "Enter", true
	case tcell.KeyRune:
	default:
		return "", false
	}

	switch {
	case r == ' ':
		return "Space", true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), true
	case r < unicode.MaxASCII && unicode.IsLetter(r):
		return string(unicode.ToUpper(r)), true
	}
	return "", false
}

// KeyTracker turns a stream of terminal presses and repeats into
// press/release pairs
type KeyTracker struct {
	lastSeen  map[string]time.Time
	window    time.Duration
	momentary map[string]bool
}

// NewKeyTracker creates a tracker releasing keys after window.
// Escape and Enter are momentary: each press is released at once.
func NewKeyTracker(window time.Duration) *KeyTracker {
	return &KeyTracker{
		lastSeen:  make(map[string]time.Time),
		window:    window,
		momentary: map[string]bool{"Escape": true, "Enter": true},
	}
}

// Press records a key. A repeat of a held key refreshes it without a new event.
func (t *KeyTracker) Press(name string, now time.Time) []system.KeyEvent {
	if t.momentary[name] {
		return []system.KeyEvent{{Key: name, Pressed: true}, {Key: name, Pressed: false}}
	}
	_, held := t.lastSeen[name]
	t.lastSeen[name] = now
	if held {
		return nil
	}
	return []system.KeyEvent{{Key: name, Pressed: true}}
}

// Expire releases every key not seen within the window, in name order
func (t *KeyTracker) Expire(now time.Time) []system.KeyEvent {
	var released []string
	for name, seen := range t.lastSeen {
		if now.Sub(seen) >= t.window {
			released = append(released, name)
		}
	}
	sort.Strings(released)

	events := make([]system.KeyEvent, 0, len(released))
	for _, name := range released {
		delete(t.lastSeen, name)
		events = append(events, system.KeyEvent{Key: name, Pressed: false})
	}
	return events
}

// Held reports whether a key is currently considered down
func (t *KeyTracker) Held(name string) bool {
	_, ok := t.lastSeen[name]
	return ok
}

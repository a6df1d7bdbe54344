package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUnknownAction is returned for a binding whose action is not recognised
var ErrUnknownAction = errors.New("unknown action")

// Action is a logical input the game reacts to
type Action string

const (
	ActionAttack Action = "Attack"
	ActionRight  Action = "Right"
	ActionLeft   Action = "Left"
	ActionUp     Action = "Up"
	ActionDown   Action = "Down"
	ActionSword  Action = "Sword"
	ActionBow    Action = "Bow"
	ActionEscape Action = "Escape"
)

var knownActions = map[Action]bool{
	ActionAttack: true,
	ActionRight:  true,
	ActionLeft:   true,
	ActionUp:     true,
	ActionDown:   true,
	ActionSword:  true,
	ActionBow:    true,
	ActionEscape: true,
}

// InputConfig maps key names to actions. It is read from "key=Action" lines.
type InputConfig struct {
	bindings map[string]Action
}

// DefaultInputConfig returns the stock keyboard layout
func DefaultInputConfig() *InputConfig {
	return &InputConfig{bindings: map[string]Action{
		"ArrowLeft":  ActionLeft,
		"ArrowRight": ActionRight,
		"ArrowUp":    ActionUp,
		"ArrowDown":  ActionDown,
		"Z":          ActionAttack,
		"Digit1":     ActionSword,
		"Digit2":     ActionBow,
		"Escape":     ActionEscape,
	}}
}

// ParseInputConfig reads bindings. Blank lines and lines starting with '#' are skipped.
func ParseInputConfig(r io.Reader) (*InputConfig, error) {
	cfg := &InputConfig{bindings: make(map[string]Action)}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, action, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=Action, got %q", line, text)
		}
		key = strings.TrimSpace(key)
		a := Action(strings.TrimSpace(action))
		if !knownActions[a] {
			return nil, fmt.Errorf("line %d: %w %q", line, ErrUnknownAction, a)
		}
		cfg.bindings[key] = a
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input bindings: %w", err)
	}
	return cfg, nil
}

// Action returns the action bound to the key name
func (c *InputConfig) Action(key string) (Action, bool) {
	a, ok := c.bindings[key]
	return a, ok
}

// Bind sets or replaces a binding
func (c *InputConfig) Bind(key string, a Action) {
	c.bindings[key] = a
}

// Keys returns the bound key names in sorted order
func (c *InputConfig) Keys() []string {
	keys := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteTo writes the bindings back in the file format
func (c *InputConfig) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, k := range c.Keys() {
		n, err := fmt.Fprintf(w, "%s=%s\n", k, c.bindings[k])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

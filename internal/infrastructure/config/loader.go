package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
	Rooms    *RoomsConfig
	Input    *InputConfig
}

// Loader loads game configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	cfg := DefaultPhysicsConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}

	return cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "entities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entities.json: %w", err)
	}

	var cfg EntitiesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse entities.json: %w", err)
	}

	return &cfg, nil
}

// LoadRooms loads rooms.yaml
func (l *Loader) LoadRooms() (*RoomsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "rooms.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read rooms.yaml: %w", err)
	}

	cfg := RoomsConfig{RoomSize: 16}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rooms.yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rooms.yaml: %w", err)
	}

	return &cfg, nil
}

// LoadInput loads input_settings.txt
func (l *Loader) LoadInput() (*InputConfig, error) {
	data, err := fs.ReadFile(l.fsys, "input_settings.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to read input_settings.txt: %w", err)
	}

	cfg, err := ParseInputConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse input_settings.txt: %w", err)
	}

	return cfg, nil
}

// LoadAll loads every configuration file
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	rooms, err := l.LoadRooms()
	if err != nil {
		return nil, err
	}

	input, err := l.LoadInput()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
		Rooms:    rooms,
		Input:    input,
	}, nil
}

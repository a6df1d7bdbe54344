package main

import (
	"fmt"

	"github.com/younwookim/tower/internal/application/replay"
	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/infrastructure/config"
)

// ReplayResult is what a headless playback reports
type ReplayResult struct {
	replay.Result
	Seed   int64
	Floors int
}

func (r ReplayResult) String() string {
	outcome := "alive"
	if r.Died {
		outcome = "died"
	}
	return fmt.Sprintf("seed %d, %d floors: %d frames, score %d, health %d, %s at (%.3f, %.3f)",
		r.Seed, r.Floors, r.Frames, r.Score, r.Health, outcome, r.Pos.X, r.Pos.Y)
}

// runReplay rebuilds the recorded tower and plays every frame back through the simulation
func runReplay(cfg *config.GameConfig, filename string) (ReplayResult, error) {
	data, err := replay.LoadReplay(filename)
	if err != nil {
		return ReplayResult{}, err
	}

	world, err := system.NewTowerWorld(cfg, data.Floors, data.Seed)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("failed to rebuild tower: %w", err)
	}

	res := replay.Run(world, system.NewSimulation(cfg.Physics), replay.NewReplayer(*data))
	return ReplayResult{Result: res, Seed: data.Seed, Floors: data.Floors}, nil
}

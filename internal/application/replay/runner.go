package replay

import (
	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/domain/entity"
)

// Result summarises a replayed run
type Result struct {
	Frames int
	Score  int
	Health int
	Pos    entity.Vec2
	Died   bool
	Events int
}

// Run feeds every recorded frame through the simulation without a window.
// The world must have been built from the replay's seed and floors.
func Run(w *system.World, sim *system.Simulation, r *Replayer) Result {
	var res Result
	for {
		input, ok := r.GetInput()
		if !ok {
			break
		}
		intents, _ := system.IntentsFor(input.Actions)
		events := sim.Tick(w, input.DT, intents)

		res.Frames++
		res.Events += len(events)
		for _, ev := range events {
			if ev.Kind == system.EventPlayerDied {
				res.Died = true
			}
		}
	}

	res.Score = w.Player.Score
	res.Health = w.Player.Health
	res.Pos = w.Player.Pos
	return res
}

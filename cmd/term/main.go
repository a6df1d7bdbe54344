// Command term plays the tower in a terminal.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/infrastructure/config"
	"github.com/younwookim/tower/internal/infrastructure/persistence"
	"github.com/younwookim/tower/internal/infrastructure/termview"
)

func main() {
	configFlag := flag.String("config", "cmd/game/configs", "Directory holding the configuration files")
	seedFlag := flag.Int64("seed", 0, "Tower seed (0 picks one from the clock)")
	floorsFlag := flag.Int("floors", system.DefaultFloors, "Number of floors in the tower")
	hiscoreFlag := flag.String("hiscores", "hiscores.txt", "File keeping the high score table")
	flag.Parse()

	cfg, err := config.NewLoader(*configFlag).LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world, err := system.NewTowerWorld(cfg, *floorsFlag, seed)
	if err != nil {
		log.Fatalf("Failed to build tower: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}

	store := persistence.NewFileStore(*hiscoreFlag)
	runID := uuid.NewString()
	var recordErr error
	score := run(screen, cfg, world, func(score int) {
		recordErr = store.Record(runID, score)
	})
	screen.Fini()

	if recordErr != nil {
		log.Printf("failed to record hiscore: %v", recordErr)
	}
	if table, err := store.Load(); err == nil {
		log.Printf("Score %d, best %d", score, table.Best())
	}
}

// run drives the simulation until the player quits and returns the final score.
// gameOver is called once, when the player dies; the last frame stays on
// screen until quit.
func run(screen tcell.Screen, cfg *config.GameConfig, world *system.World, gameOver func(score int)) int {
	input := system.NewInputSystem(cfg.Input)
	sim := system.NewSimulation(cfg.Physics)
	renderer := termview.NewRenderer(screen)
	keys := termview.NewKeyTracker(termview.HoldWindow)

	// Start input handling goroutine
	inputChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(inputChan)
				return
			}
			inputChan <- ev
		}
	}()

	frame := time.Second / time.Duration(cfg.Physics.Display.Framerate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	paused, over := false, false
	// intents that arrive while paused are applied on resume
	var pending []system.Intent
	for {
		var events []system.KeyEvent

	drain:
		for {
			select {
			case ev, ok := <-inputChan:
				if !ok {
					return world.Player.Score
				}
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
						return world.Player.Score
					}
					if name, ok := termview.KeyName(ev.Key(), ev.Rune()); ok {
						events = append(events, keys.Press(name, time.Now())...)
					}
				case *tcell.EventResize:
					screen.Sync()
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		// Held keys are not released while paused
		if !paused {
			events = append(events, keys.Expire(now)...)
		}

		intents, pause := input.Intents(events)
		if pause && !over {
			paused = !paused
		}
		switch {
		case over:
		case paused:
			pending = append(pending, intents...)
		default:
			intents = append(pending, intents...)
			pending = nil
			for _, ev := range sim.Tick(world, dt, intents) {
				if ev.Kind == system.EventPlayerDied {
					over = true
					gameOver(world.Player.Score)
				}
			}
		}
		renderer.Draw(world)

		<-ticker.C
	}
}

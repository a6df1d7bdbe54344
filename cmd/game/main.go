package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tower/internal/application/game"
	"github.com/younwookim/tower/internal/application/scene/playing"
	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/infrastructure/audio"
	"github.com/younwookim/tower/internal/infrastructure/config"
	"github.com/younwookim/tower/internal/infrastructure/persistence"
	"github.com/younwookim/tower/internal/infrastructure/spectate"
)

// loadConfig reads the embedded configuration, optionally replacing the key bindings
func loadConfig(keysPath string) (*config.GameConfig, error) {
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	cfg, err := config.NewFSLoader(fsys, "configs").LoadAll()
	if err != nil {
		return nil, err
	}

	if keysPath != "" {
		f, err := os.Open(keysPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open key bindings: %w", err)
		}
		defer f.Close()
		if cfg.Input, err = config.ParseInputConfig(f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", keysPath, err)
		}
	}
	return cfg, nil
}

// openStore prefers Postgres and falls back to the local file
func openStore(dsn, path string) persistence.Store {
	if dsn != "" {
		store, err := persistence.NewPostgresStore(dsn)
		if err == nil {
			return store
		}
		log.Printf("hiscore database unavailable, using %s: %v", path, err)
	}
	return persistence.NewFileStore(path)
}

func serveSpectators(addr string, hub *spectate.Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/spectate", hub)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("spectator server stopped: %v", err)
		}
	}()
	log.Printf("Spectators: ws://%s/spectate", addr)
	return srv
}

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play a recording back without a window and print the result")
	seedFlag := flag.Int64("seed", 0, "Tower seed (0 picks one from the clock)")
	floorsFlag := flag.Int("floors", system.DefaultFloors, "Number of floors in the tower")
	keysFlag := flag.String("keys", "", "Key bindings file replacing the built-in input_settings.txt")
	hiscoreFlag := flag.String("hiscores", "hiscores.txt", "File keeping the high score table")
	pgFlag := flag.String("pg", "", "PostgreSQL connection string for high scores")
	spectateFlag := flag.String("spectate", "", "Serve a spectator websocket on this address (e.g., -spectate localhost:8080)")
	muteFlag := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	cfg, err := loadConfig(*keysFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		res, err := runReplay(cfg, *replayFlag)
		if err != nil {
			log.Fatalf("Failed to replay: %v", err)
		}
		fmt.Println(res)
		return
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store := openStore(*pgFlag, *hiscoreFlag)
	defer store.Close()

	sound := audio.NewPlayer()
	sound.SetMuted(*muteFlag)
	if !*muteFlag {
		if err := sound.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		}
	}
	defer sound.Cleanup()

	opts := playing.Options{
		Seed:       seed,
		Floors:     *floorsFlag,
		RecordPath: *recordFlag,
		Sound:      sound,
		Scores:     store,
	}

	if *spectateFlag != "" {
		hub := spectate.NewHub()
		defer hub.Close()
		srv := serveSpectators(*spectateFlag, hub)
		defer srv.Close()
		opts.Spectators = hub
	}

	scene, err := playing.New(cfg, opts)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight)

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Tower")
	ebiten.SetTPS(display.Framerate)

	// Run game
	err = ebiten.RunGame(g)
	scene.OnExit()
	if err != nil {
		log.Fatal(err)
	}
}

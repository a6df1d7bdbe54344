// Package playing provides the main gameplay scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/tower/internal/application/replay"
	"github.com/younwookim/tower/internal/application/scene"
	"github.com/younwookim/tower/internal/application/state"
	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/domain/entity"
	"github.com/younwookim/tower/internal/infrastructure/config"
	"github.com/younwookim/tower/internal/infrastructure/persistence"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorWall       = color.RGBA{40, 40, 56, 255}
	colorBrick      = color.RGBA{110, 80, 70, 255}
	colorBrickTile  = color.RGBA{90, 90, 110, 255}
	colorBrickTile2 = color.RGBA{70, 100, 110, 255}
	colorLadder     = color.RGBA{160, 120, 60, 255}
	colorLava       = color.RGBA{230, 90, 20, 255}
	colorSpike      = color.RGBA{200, 50, 50, 255}
	colorDecor      = color.RGBA{60, 60, 90, 255}
	colorWindow     = color.RGBA{90, 110, 160, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorSword      = color.RGBA{230, 230, 230, 200}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorArrow      = color.RGBA{230, 210, 160, 255}
	colorFireball   = color.RGBA{255, 140, 40, 255}
	colorBlood      = color.RGBA{160, 0, 0, 255}
	colorFire       = color.RGBA{255, 180, 60, 255}
	colorGold       = color.RGBA{255, 215, 0, 255}
	colorPotion     = color.RGBA{220, 60, 120, 255}
	colorQuiver     = color.RGBA{160, 160, 120, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
)

// SoundPlayer plays the effects for a frame's events
type SoundPlayer interface {
	PlayEvents(events []system.Event)
}

// Publisher receives the world after every simulated frame
type Publisher interface {
	Publish(w *system.World) error
}

// Options configures a Playing scene. Everything but Floors is optional.
type Options struct {
	// Seed for the first run; later runs reseed from the clock
	Seed   int64
	Floors int

	// RecordPath, if set, saves a replay of each run there
	RecordPath string

	Sound      SoundPlayer
	Scores     persistence.Store
	Spectators Publisher
}

// Playing is the main gameplay scene
type Playing struct {
	config *config.GameConfig
	opts   Options

	state state.GameState
	world *system.World
	sim   *system.Simulation
	input *system.InputSystem

	runID  string
	seed   int64
	frames int

	// Actions that arrived while the world was not advancing. They are
	// applied on the next simulated frame so no release is lost.
	pending []system.ActionEvent

	// Feedback
	hitstopFrames int
	screenShake   float64
	shakeDecay    float64
	jitter        *rand.Rand

	hiscores   *persistence.Table
	newHiscore bool

	screenW  int
	screenH  int
	tileSize int

	recorder *Recorder
}

// New creates a Playing scene and generates the first tower
func New(cfg *config.GameConfig, opts Options) (*Playing, error) {
	if opts.Floors <= 0 {
		opts.Floors = system.DefaultFloors
	}

	display := cfg.Physics.Display
	p := &Playing{
		config:     cfg,
		opts:       opts,
		sim:        system.NewSimulation(cfg.Physics),
		input:      system.NewInputSystem(cfg.Input),
		shakeDecay: cfg.Physics.Feedback.ScreenShake.Decay,
		jitter:     rand.New(rand.NewSource(1)),
		hiscores:   persistence.NewTable(),
		screenW:    display.ScreenWidth,
		screenH:    display.ScreenHeight,
		tileSize:   display.TileSize,
	}

	p.sim.OnHitstop = func(frames int) {
		p.hitstopFrames = frames
	}
	p.sim.OnScreenShake = func(intensity float64) {
		p.screenShake = intensity
	}

	if opts.Scores != nil {
		table, err := opts.Scores.Load()
		if err != nil {
			log.Printf("failed to load hiscores, starting empty: %v", err)
		} else {
			p.hiscores = table
		}
	}

	if err := p.newRun(opts.Seed); err != nil {
		return nil, err
	}
	return p, nil
}

// newRun generates a fresh tower and starts playing it
func (p *Playing) newRun(seed int64) error {
	world, err := system.NewTowerWorld(p.config, p.opts.Floors, seed)
	if err != nil {
		return fmt.Errorf("failed to build tower: %w", err)
	}

	p.world = world
	p.seed = seed
	p.runID = uuid.NewString()
	p.frames = 0
	p.pending = nil
	p.hitstopFrames = 0
	p.screenShake = 0
	p.newHiscore = false
	p.state = state.StatePlaying

	if p.opts.RecordPath != "" {
		p.recorder = NewRecorder(p.runID, seed, p.opts.Floors)
		log.Printf("Recording enabled: %s (seed: %d)", p.opts.RecordPath, seed)
	}
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	actions := p.input.Actions(p.input.Poll())
	if err := p.step(dt, actions); err != nil {
		return nil, err
	}
	return nil, nil // nil = stay on this scene
}

func pressed(actions []system.ActionEvent, a config.Action) bool {
	for _, ev := range actions {
		if ev.Action == a && ev.Pressed {
			return true
		}
	}
	return false
}

// hold queues actions for the next simulated frame. Escape is a screen
// control, never a world input.
func (p *Playing) hold(actions []system.ActionEvent) {
	for _, ev := range actions {
		if ev.Action != config.ActionEscape {
			p.pending = append(p.pending, ev)
		}
	}
}

// step runs one frame of the screen flow with already-resolved actions
func (p *Playing) step(dt float64, actions []system.ActionEvent) error {
	escape := pressed(actions, config.ActionEscape)
	confirm := pressed(actions, config.ActionAttack)

	switch p.state {
	case state.StatePlaying:
		if escape {
			p.state = p.state.Next(state.TriggerEscape)
			p.hold(actions)
			return nil
		}
		if p.hitstopFrames > 0 {
			p.hitstopFrames--
			p.hold(actions)
			return nil
		}
		p.simulate(dt, actions)

	case state.StatePaused:
		switch {
		case escape:
			p.state = p.state.Next(state.TriggerEscape)
		case confirm:
			p.state = p.state.Next(state.TriggerConfirm)
			p.saveRecording()
			return nil
		}
		p.hold(actions)

	default:
		var next state.GameState
		switch {
		case escape:
			next = p.state.Next(state.TriggerEscape)
		case confirm:
			next = p.state.Next(state.TriggerConfirm)
		default:
			return nil
		}
		if p.state == state.StateMenu && next == state.StatePlaying {
			return p.newRun(time.Now().UnixNano())
		}
		p.state = next
	}
	return nil
}

func (p *Playing) simulate(dt float64, actions []system.ActionEvent) {
	frame := p.pending
	p.pending = nil
	for _, ev := range actions {
		if ev.Action != config.ActionEscape {
			frame = append(frame, ev)
		}
	}

	intents, _ := system.IntentsFor(frame)
	if p.recorder != nil {
		p.recorder.RecordFrame(dt, frame)
	}

	events := p.sim.Tick(p.world, dt, intents)
	p.frames++

	if p.opts.Sound != nil {
		p.opts.Sound.PlayEvents(events)
	}
	p.screenShake *= p.shakeDecay

	if p.opts.Spectators != nil {
		if err := p.opts.Spectators.Publish(p.world); err != nil {
			log.Printf("failed to publish snapshot: %v", err)
		}
	}

	for _, ev := range events {
		if ev.Kind == system.EventPlayerDied {
			p.gameOver()
		}
	}
}

// gameOver ends the run and records its score
func (p *Playing) gameOver() {
	p.state = p.state.Next(state.TriggerDied)

	score := p.world.Player.Score
	p.newHiscore = p.hiscores.Add(score)
	if p.opts.Scores != nil {
		if err := p.opts.Scores.Record(p.runID, score); err != nil {
			log.Printf("failed to record hiscore: %v", err)
		}
	}

	p.saveRecording()
}

// saveRecording saves the current recording to file, once per run
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()

	filename := p.opts.RecordPath
	if filename == "" {
		filename = GenerateFilename()
	}

	err := p.recorder.Save(filename)
	switch {
	case errors.Is(err, replay.ErrNoFrames):
		return
	case err != nil:
		log.Printf("Failed to save recording: %v", err)
	default:
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// State returns the current screen
func (p *Playing) State() state.GameState {
	return p.state
}

// World returns the world of the current run
func (p *Playing) World() *system.World {
	return p.world
}

// camera is the world point drawn at the screen center
func (p *Playing) camera() entity.Vec2 {
	cam := p.world.Player.Pos
	if p.screenShake > 0.01 {
		ts := float64(p.tileSize)
		cam.X += p.screenShake * (2*p.jitter.Float64() - 1) / ts
		cam.Y += p.screenShake * (2*p.jitter.Float64() - 1) / ts
	}

	// Keep a narrow tower centered and never show below the ground
	halfW := float64(p.screenW) / float64(2*p.tileSize)
	halfH := float64(p.screenH) / float64(2*p.tileSize)
	if w := float64(p.world.Grid.Width); w <= 2*halfW {
		cam.X = (w - 1) / 2
	}
	if cam.Y < halfH-0.5 {
		cam.Y = halfH - 0.5
	}
	return cam
}

// toScreen converts a world point to pixels. World y grows upward, screen y downward.
func (p *Playing) toScreen(cam entity.Vec2, x, y float64) (float64, float64) {
	ts := float64(p.tileSize)
	return (x-cam.X)*ts + float64(p.screenW)/2, float64(p.screenH)/2 - (y-cam.Y)*ts
}

func (p *Playing) drawBox(screen *ebiten.Image, cam entity.Vec2, b entity.Box, c color.Color) {
	x, y := p.toScreen(cam, b.Center.X-b.Dim.X/2, b.Center.Y+b.Dim.Y/2)
	ts := float64(p.tileSize)
	ebitenutil.DrawRect(screen, x, y, b.Dim.X*ts, b.Dim.Y*ts, c)
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	switch p.state {
	case state.StateMenu:
		p.drawMenu(screen)
		return
	case state.StateHighScores:
		p.drawHighScores(screen)
		return
	}

	cam := p.camera()
	p.drawTiles(screen, cam)
	p.drawPickups(screen, cam)
	p.drawEnemies(screen, cam)
	p.drawProjectiles(screen, cam)
	p.drawParticles(screen, cam)
	p.drawPlayer(screen, cam)

	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateGameOver:
		p.drawGameOverOverlay(screen)
	}
}

func tileColor(k entity.TileKind) color.Color {
	switch k {
	case entity.TileBrick:
		return colorBrick
	case entity.TileBrickTile:
		return colorBrickTile
	case entity.TileBrickTile2:
		return colorBrickTile2
	case entity.TileLadder:
		return colorLadder
	case entity.TileLava:
		return colorLava
	case entity.TileSpikes:
		return colorSpike
	default:
		return nil
	}
}

func backgroundColor(k entity.BackgroundKind) color.Color {
	switch k {
	case entity.BackgroundWall:
		return colorWall
	case entity.BackgroundWindow, entity.BackgroundBarredWindow,
		entity.BackgroundBigWindowTop, entity.BackgroundBigWindowBottom:
		return colorWindow
	case entity.BackgroundEmpty:
		return nil
	default:
		return colorDecor
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam entity.Vec2) {
	halfW := p.screenW/(2*p.tileSize) + 2
	halfH := p.screenH/(2*p.tileSize) + 2
	cx, cy := int(cam.X), int(cam.Y)
	grid := p.world.Grid

	for ty := cy - halfH; ty <= cy+halfH; ty++ {
		for tx := cx - halfW; tx <= cx+halfW; tx++ {
			if grid.IsOutOfBounds(tx, ty) {
				continue
			}
			box := entity.TileBox(tx, ty)
			if c := backgroundColor(grid.Background(tx, ty)); c != nil {
				p.drawBox(screen, cam, box, c)
			}
			kind := grid.Get(tx, ty)
			c := tileColor(kind)
			if c == nil {
				continue
			}
			switch kind {
			case entity.TileSpikes:
				// Only the bottom half hurts, so only it is drawn
				box.Center.Y -= 0.25
				box.Dim.Y = 0.5
			case entity.TileLadder:
				box.Dim.X = 0.6
			}
			p.drawBox(screen, cam, box, c)
		}
	}
}

func (p *Playing) drawPickups(screen *ebiten.Image, cam entity.Vec2) {
	for _, pk := range p.world.Pickups {
		var c color.Color
		switch pk.Kind {
		case entity.PickupGold, entity.PickupSmallGold:
			c = colorGold
		case entity.PickupArrows:
			c = colorQuiver
		default:
			c = colorPotion
		}
		box := pk.Box()
		box.Dim = entity.Vec2{X: 0.5, Y: 0.5}
		box.Center.Y -= 0.25
		p.drawBox(screen, cam, box, c)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam entity.Vec2) {
	pl := p.world.Player
	c := colorPlayer
	// Flash while the damage cooldown runs
	if pl.DamageCooldown > 0 && int(pl.DamageCooldown*20)%2 == 0 {
		c = color.RGBA{255, 255, 255, 200}
	}
	p.drawBox(screen, cam, pl.Box(), c)

	if hit, ok := pl.AttackHitbox(); ok {
		p.drawBox(screen, cam, hit, colorSword)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image, cam entity.Vec2) {
	for _, e := range p.world.Enemies {
		c := colorEnemy
		// Flash on hit
		if e.DamageCooldown > 0 {
			c = color.RGBA{255, 255, 255, 255}
		}
		p.drawBox(screen, cam, e.Box(), c)
	}
}

func (p *Playing) drawProjectiles(screen *ebiten.Image, cam entity.Vec2) {
	for i := range p.world.Projectiles {
		pr := &p.world.Projectiles[i]
		if pr.Destroyed() {
			continue
		}
		c := colorArrow
		if pr.Hostile() {
			c = colorFireball
		}
		p.drawBox(screen, cam, pr.Box(), c)
	}
}

func (p *Playing) drawParticles(screen *ebiten.Image, cam entity.Vec2) {
	for i := range p.world.Particles {
		pt := &p.world.Particles[i]
		c := colorBlood
		if pt.Kind == entity.ParticleFire {
			c = colorFire
		}
		p.drawBox(screen, cam, pt.Box(), c)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	pl := p.world.Player

	// Health bar
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)

	healthRatio := 0.0
	if pl.MaxHealth > 0 {
		healthRatio = float64(pl.Health) / float64(pl.MaxHealth)
	}
	if healthRatio < 0 {
		healthRatio = 0
	}
	ebitenutil.DrawRect(screen, barX, barY, barW*healthRatio, barH, colorHealthFG)

	weapon := pl.Weapon.String()
	if pl.Weapon == entity.WeaponBow {
		weapon = fmt.Sprintf("Bow x%d", pl.Arrows)
	}
	status := fmt.Sprintf("Score: %d  Floor: %d/%d  %s", pl.Score, p.world.Floor()+1, p.world.Floors, weapon)
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-35)

	ebitenutil.DebugPrint(screen, "Arrows: Move/Climb | Up: Jump | Z: Attack | 1/2: Sword/Bow | ESC: Pause")
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := "PAUSED\n\nESC to resume\nZ to quit to menu"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{100, 0, 0, 180}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := fmt.Sprintf("GAME OVER\n\nScore: %d", p.world.Player.Score)
	if p.newHiscore {
		text += "\nNEW HIGH SCORE!"
	}
	text += "\n\nPress Z"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

func (p *Playing) drawMenu(screen *ebiten.Image) {
	text := fmt.Sprintf("TOWER\n\nBest: %d\n\nZ to climb\nESC for high scores", p.hiscores.Best())
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-40)
}

func (p *Playing) drawHighScores(screen *ebiten.Image) {
	text := "HIGH SCORES\n\n"
	for i, s := range p.hiscores.Scores() {
		text += fmt.Sprintf("%d. %6d\n", i+1, s)
	}
	text += "\nZ to continue"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-50)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

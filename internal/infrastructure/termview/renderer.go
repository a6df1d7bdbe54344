// Package termview draws the tower in a terminal.
package termview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/domain/entity"
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLadder = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleHazard = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleItem   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleShot   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// TileGlyph returns the cell used for a foreground tile
func TileGlyph(k entity.TileKind) (rune, tcell.Style) {
	switch k {
	case entity.TileBrick, entity.TileBrickTile:
		return '#', styleWall
	case entity.TileBrickTile2:
		return '=', styleWall
	case entity.TileLadder:
		return 'H', styleLadder
	case entity.TileLava:
		return '~', styleHazard
	case entity.TileSpikes:
		return '^', styleHazard
	default:
		return ' ', tcell.StyleDefault
	}
}

func enemyGlyph(a entity.Archetype) rune {
	switch a {
	case entity.ArchetypePatroller:
		return 's'
	case entity.ArchetypeFlier:
		return 'o'
	case entity.ArchetypeGroundJumper:
		return 'c'
	case entity.ArchetypeRangedIdle:
		return 'D'
	default:
		return '?'
	}
}

func pickupGlyph(k entity.PickupKind) rune {
	switch k {
	case entity.PickupGold:
		return '$'
	case entity.PickupSmallGold:
		return '.'
	case entity.PickupHeal:
		return '+'
	case entity.PickupHealthBoost:
		return '%'
	case entity.PickupArrows:
		return '|'
	default:
		return '?'
	}
}

// Renderer draws a window of the world centered on the player,
// with a status line on the bottom row
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for the screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// view maps world cells to screen cells. World y grows upward.
type view struct {
	offX int
	top  int
	cols int
	rows int
}

func (v view) cell(x, y int) (int, int, bool) {
	sx, sy := x+v.offX, v.top-y
	return sx, sy, sx >= 0 && sx < v.cols && sy >= 0 && sy < v.rows
}

func (v view) at(p entity.Vec2) (int, int, bool) {
	return v.cell(int(math.Round(p.X)), int(math.Round(p.Y)))
}

func (r *Renderer) newView(w *system.World) view {
	cols, rows := r.screen.Size()
	rows-- // status line
	v := view{cols: cols, rows: rows}
	if w.Grid.Width < cols {
		v.offX = (cols - w.Grid.Width) / 2
	} else {
		v.offX = cols/2 - int(math.Round(w.Player.Pos.X))
	}
	v.top = int(math.Round(w.Player.Pos.Y)) + rows/2
	return v
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(w *system.World) {
	r.screen.Clear()
	v := r.newView(w)

	for sy := 0; sy < v.rows; sy++ {
		y := v.top - sy
		for x := 0; x < w.Grid.Width; x++ {
			if w.Grid.IsOutOfBounds(x, y) {
				continue
			}
			ch, style := TileGlyph(w.Grid.Get(x, y))
			if sx, _, ok := v.cell(x, y); ok && ch != ' ' {
				r.screen.SetContent(sx, sy, ch, nil, style)
			}
		}
	}

	for _, p := range w.Pickups {
		if sx, sy, ok := v.cell(p.X, p.Y); ok {
			r.screen.SetContent(sx, sy, pickupGlyph(p.Kind), nil, styleItem)
		}
	}
	for _, e := range w.Enemies {
		if sx, sy, ok := v.at(e.Pos); ok {
			r.screen.SetContent(sx, sy, enemyGlyph(e.Archetype), nil, styleEnemy)
		}
	}
	for i := range w.Projectiles {
		pr := &w.Projectiles[i]
		if pr.Destroyed() {
			continue
		}
		ch := '-'
		if pr.Hostile() {
			ch = '*'
		}
		if sx, sy, ok := v.at(pr.Pos); ok {
			r.screen.SetContent(sx, sy, ch, nil, styleShot)
		}
	}

	p := w.Player
	if sx, sy, ok := v.at(p.Pos); ok {
		ch := '@'
		if !p.Alive() {
			ch = 'X'
		}
		r.screen.SetContent(sx, sy, ch, nil, stylePlayer)
	}

	r.drawStatus(v, w)
	r.screen.Show()
}

// StatusLine is the text of the bottom row
func StatusLine(w *system.World) string {
	p := w.Player
	line := fmt.Sprintf(" HP %d/%d  SCORE %d  FLOOR %d/%d  %s", p.Health, p.MaxHealth, p.Score, w.Floor()+1, w.Floors, p.Weapon)
	if p.Weapon == entity.WeaponBow {
		line += fmt.Sprintf(" x%d", p.Arrows)
	}
	if !p.Alive() {
		line += "  GAME OVER (q to quit)"
	}
	return line
}

func (r *Renderer) drawStatus(v view, w *system.World) {
	row := v.rows
	col := 0
	for _, ch := range StatusLine(w) {
		if col >= v.cols {
			return
		}
		r.screen.SetContent(col, row, ch, nil, styleHUD)
		col++
	}
	for ; col < v.cols; col++ {
		r.screen.SetContent(col, row, ' ', nil, styleHUD)
	}
}

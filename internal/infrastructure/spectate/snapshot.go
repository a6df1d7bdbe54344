package spectate

import (
	"math"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/younwookim/tower/internal/application/system"
	"github.com/younwookim/tower/internal/domain/entity"
)

// BodyState is one drawable entity on the feed
type BodyState struct {
	ID      uint32  `msgpack:"id,omitempty"`
	Kind    string  `msgpack:"k"`
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	W       float64 `msgpack:"w"`
	H       float64 `msgpack:"h"`
	Flipped bool    `msgpack:"f,omitempty"`
	Frame   int     `msgpack:"fr,omitempty"`
}

// Snapshot is the read-only view of a world sent to spectators
type Snapshot struct {
	Tick        uint64      `msgpack:"t"`
	Floor       int         `msgpack:"fl"`
	Score       int         `msgpack:"sc"`
	Health      int         `msgpack:"hp"`
	MaxHealth   int         `msgpack:"mhp"`
	Player      BodyState   `msgpack:"p"`
	Enemies     []BodyState `msgpack:"e"`
	Projectiles []BodyState `msgpack:"pr"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func bodyState(id uint32, kind string, b *entity.Body) BodyState {
	return BodyState{
		ID:      id,
		Kind:    kind,
		X:       round2(b.Pos.X),
		Y:       round2(b.Pos.Y),
		W:       b.Dim.X,
		H:       b.Dim.Y,
		Flipped: b.Flipped,
		Frame:   b.Frame(),
	}
}

// NewSnapshot copies what spectators need out of the world
func NewSnapshot(w *system.World, tick uint64) Snapshot {
	p := w.Player
	snap := Snapshot{
		Tick:        tick,
		Floor:       w.Floor(),
		Score:       p.Score,
		Health:      p.Health,
		MaxHealth:   p.MaxHealth,
		Player:      bodyState(0, "player", &p.Body),
		Enemies:     make([]BodyState, 0, len(w.Enemies)),
		Projectiles: make([]BodyState, 0, len(w.Projectiles)),
	}
	for _, e := range w.Enemies {
		snap.Enemies = append(snap.Enemies, bodyState(uint32(e.ID), e.Archetype.String(), &e.Body))
	}
	for i := range w.Projectiles {
		pr := &w.Projectiles[i]
		if pr.Destroyed() {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, bodyState(0, pr.Kind.String(), &pr.Body))
	}
	return snap
}

// Encode serialises a snapshot for the wire
func Encode(s *Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// Decode parses a snapshot received from a hub
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

package system

import (
	"math/rand"

	"github.com/younwookim/tower/internal/domain/entity"
)

// World is the whole simulation state. A tick owns it exclusively.
type World struct {
	Grid        *entity.Grid
	Player      *entity.Player
	Enemies     []*entity.Enemy
	Projectiles []entity.Projectile
	Particles   []entity.Particle
	Pickups     []entity.Pickup

	Floors int
	Seed   int64

	rng    *rand.Rand
	nextID entity.EntityID
}

// NewWorld creates an empty world around a grid. All randomness after
// generation comes from the seeded source so replays stay deterministic.
func NewWorld(grid *entity.Grid, player *entity.Player, seed int64) *World {
	return &World{
		Grid:   grid,
		Player: player,
		Seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Rand returns the world's random source
func (w *World) Rand() *rand.Rand {
	return w.rng
}

// SpawnEnemy adds an enemy with a fresh ID
func (w *World) SpawnEnemy(x, y float64, stats entity.EnemyStats, flipped bool) *entity.Enemy {
	w.nextID++
	e := entity.NewEnemy(w.nextID, x, y, stats, flipped)
	w.Enemies = append(w.Enemies, e)
	return e
}

// SpawnProjectile queues a projectile
func (w *World) SpawnProjectile(p entity.Projectile) {
	w.Projectiles = append(w.Projectiles, p)
}

// SpawnParticles launches n particles of one kind from pos in random directions
// within [minAngle, maxAngle] at speeds in [minSpeed, maxSpeed].
func (w *World) SpawnParticles(kind entity.ParticleKind, pos entity.Vec2, n int, size, minSpeed, maxSpeed, minAngle, maxAngle float64) {
	for i := 0; i < n; i++ {
		speed := minSpeed + w.rng.Float64()*(maxSpeed-minSpeed)
		angle := minAngle + w.rng.Float64()*(maxAngle-minAngle)
		w.Particles = append(w.Particles, entity.NewParticle(kind, pos.X, pos.Y, size, speed, angle))
	}
}

// Enemy returns the live enemy with the given ID
func (w *World) Enemy(id entity.EntityID) (*entity.Enemy, bool) {
	for _, e := range w.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Floor returns the tower floor the player is on, counting from zero
func (w *World) Floor() int {
	return int(w.Player.Pos.Y) / floorStride
}

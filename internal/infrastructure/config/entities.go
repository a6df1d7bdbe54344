package config

import (
	"fmt"
	"sort"

	"github.com/younwookim/tower/internal/domain/entity"
)

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Enemies map[string]EnemyConfig `json:"enemies"`
}

type EnemyConfig struct {
	Archetype string     `json:"archetype"`
	Size      SizeConfig `json:"size"`
	Stats     EnemyStats `json:"stats"`
	AI        AIConfig   `json:"ai"`
}

type SizeConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type EnemyStats struct {
	Health        int `json:"health"`
	Score         int `json:"score"`
	ContactDamage int `json:"contactDamage"`
}

// AIConfig holds the behavior tunables. Fields an archetype does not use stay zero.
type AIConfig struct {
	WanderSpeed     float64 `json:"wanderSpeed"`
	ChaseSpeed      float64 `json:"chaseSpeed,omitempty"`
	ChaseRange      float64 `json:"chaseRange,omitempty"`
	HopSpeed        float64 `json:"hopSpeed,omitempty"`
	ProjectileSpeed float64 `json:"projectileSpeed,omitempty"`
}

// Names returns the enemy names in sorted order
func (c *EntitiesConfig) Names() []string {
	names := make([]string, 0, len(c.Enemies))
	for name := range c.Enemies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnemyStats builds spawn stats for the named enemy.
// Cooldowns come from the combat section of physics.json.
func (c *EntitiesConfig) EnemyStats(name string, combat CombatConfig) (entity.EnemyStats, error) {
	ec, ok := c.Enemies[name]
	if !ok {
		return entity.EnemyStats{}, fmt.Errorf("unknown enemy %q", name)
	}
	archetype, err := entity.ParseArchetype(ec.Archetype)
	if err != nil {
		return entity.EnemyStats{}, fmt.Errorf("enemy %s: %w", name, err)
	}
	return entity.EnemyStats{
		Archetype:      archetype,
		Width:          ec.Size.Width,
		Height:         ec.Size.Height,
		Health:         ec.Stats.Health,
		Score:          ec.Stats.Score,
		Damage:         ec.Stats.ContactDamage,
		DamageCooldown: combat.DamageCooldown,
		AttackCooldown: combat.EnemyAttackCooldown,

		WanderSpeed:     ec.AI.WanderSpeed,
		ChaseSpeed:      ec.AI.ChaseSpeed,
		ChaseRange:      ec.AI.ChaseRange,
		HopSpeed:        ec.AI.HopSpeed,
		ProjectileSpeed: ec.AI.ProjectileSpeed,
	}, nil
}

// DefaultEntitiesConfig returns the stock roster of the four tower enemies
func DefaultEntitiesConfig() *EntitiesConfig {
	size := SizeConfig{Width: 0.9, Height: 1.0}
	return &EntitiesConfig{
		Enemies: map[string]EnemyConfig{
			"slime": {
				Archetype: "patroller",
				Size:      size,
				Stats:     EnemyStats{Health: 1, Score: 10, ContactDamage: 1},
				AI:        AIConfig{WanderSpeed: 0.5},
			},
			"eyeball": {
				Archetype: "flier",
				Size:      size,
				Stats:     EnemyStats{Health: 1, Score: 15, ContactDamage: 1},
				AI:        AIConfig{WanderSpeed: 1.0, ChaseSpeed: 1.5, ChaseRange: 5},
			},
			"chicken": {
				Archetype: "groundJumper",
				Size:      size,
				Stats:     EnemyStats{Health: 2, Score: 25, ContactDamage: 1},
				AI:        AIConfig{WanderSpeed: 1.5, ChaseSpeed: 2, ChaseRange: 5, HopSpeed: 6},
			},
			"demon": {
				Archetype: "rangedIdle",
				Size:      size,
				Stats:     EnemyStats{Health: 3, Score: 50, ContactDamage: 2},
				AI:        AIConfig{WanderSpeed: 1.1, ChaseSpeed: 1.4, ChaseRange: 5, ProjectileSpeed: 4},
			},
		},
	}
}

package config

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display  DisplayConfig   `json:"display"`
	Physics  PhysicsSettings `json:"physics"`
	Player   PlayerConfig    `json:"player"`
	Combat   CombatConfig    `json:"combat"`
	Feedback FeedbackConfig  `json:"feedback"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
	TileSize     int `json:"tileSize"`
}

type PhysicsSettings struct {
	Gravity float64 `json:"gravity"`
	// MaxDt clamps the frame delta. Zero keeps the raw wall-clock delta.
	MaxDt            float64 `json:"maxDt"`
	CollisionEpsilon float64 `json:"collisionEpsilon"`
}

type PlayerConfig struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Speed      float64 `json:"speed"`
	JumpSpeed  float64 `json:"jumpSpeed"`
	ClimbSpeed float64 `json:"climbSpeed"`
	MaxHealth  int     `json:"maxHealth"`
	Arrows     int     `json:"arrows"`
	ArrowSpeed float64 `json:"arrowSpeed"`
}

type CombatConfig struct {
	DamageCooldown      float64 `json:"damageCooldown"`
	AttackCooldown      float64 `json:"attackCooldown"`
	AttackTimer         float64 `json:"attackTimer"`
	EnemyAttackCooldown float64 `json:"enemyAttackCooldown"`
	MaxSafeFallSpeed    float64 `json:"maxSafeFallSpeed"`
	FallDamageDivisor   float64 `json:"fallDamageDivisor"`
	StompBounce         float64 `json:"stompBounce"`
	MeleeDamage         int     `json:"meleeDamage"`
	ArrowDamage         int     `json:"arrowDamage"`
	FireballDamage      int     `json:"fireballDamage"`
}

type FeedbackConfig struct {
	Hitstop     HitstopConfig     `json:"hitstop"`
	ScreenShake ScreenShakeConfig `json:"screenShake"`
}

type HitstopConfig struct {
	Enabled bool `json:"enabled"`
	Frames  int  `json:"frames"`
}

type ScreenShakeConfig struct {
	Enabled   bool    `json:"enabled"`
	Intensity float64 `json:"intensity"`
	Decay     float64 `json:"decay"`
}

// DefaultPhysicsConfig returns the stock tuning. Tests and tools that run
// without config files start from here.
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        3,
			Framerate:    60,
			TileSize:     16,
		},
		Physics: PhysicsSettings{
			Gravity:          16,
			CollisionEpsilon: 0.001,
		},
		Player: PlayerConfig{
			Width:      0.75,
			Height:     0.8125,
			Speed:      3,
			JumpSpeed:  9,
			ClimbSpeed: 4,
			MaxHealth:  4,
			Arrows:     3,
			ArrowSpeed: 6,
		},
		Combat: CombatConfig{
			DamageCooldown:      0.3,
			AttackCooldown:      0.5,
			AttackTimer:         0.2,
			EnemyAttackCooldown: 1.0,
			MaxSafeFallSpeed:    14,
			FallDamageDivisor:   12,
			StompBounce:         0.75,
			MeleeDamage:         1,
			ArrowDamage:         1,
			FireballDamage:      1,
		},
		Feedback: FeedbackConfig{
			Hitstop:     HitstopConfig{Enabled: true, Frames: 3},
			ScreenShake: ScreenShakeConfig{Enabled: true, Intensity: 4, Decay: 0.85},
		},
	}
}

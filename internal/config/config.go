// Package config provides YAML-based gameplay tuning for the platformer,
// with embedded defaults and difficulty presets.
package config

// PlumberConfig contains all tuning for the platformer simulation.
type PlumberConfig struct {
	Movement MovementConfig `yaml:"movement"`
	Combat   CombatConfig   `yaml:"combat"`
	Enemies  EnemiesConfig  `yaml:"enemies"`
	Items    ItemsConfig    `yaml:"items"`
	Objects  ObjectsConfig  `yaml:"objects"`
	Session  SessionConfig  `yaml:"session"`
	Camera   CameraConfig   `yaml:"camera"`
}

// MovementConfig defines player locomotion parameters.
// Jump force and gravity are derived from max_jump_height/max_jump_time:
//
//	JumpForce = 2h / (t/2)
//	Gravity   = -2h / (t/2)²
type MovementConfig struct {
	NormalSpeed   float64 `yaml:"normal_speed"`    // walk target speed, units/s
	FastSpeed     float64 `yaml:"fast_speed"`      // sprint target speed, units/s
	Acceleration  float64 `yaml:"acceleration"`    // units/s² toward target
	Deceleration  float64 `yaml:"deceleration"`    // units/s² when reversing
	MaxJumpHeight float64 `yaml:"max_jump_height"` // apex height in units
	MaxJumpTime   float64 `yaml:"max_jump_time"`   // full up+down time in seconds
}

// CombatConfig defines form-transition and invulnerability timing.
type CombatConfig struct {
	GrowDuration    float64 `yaml:"grow_duration"`     // grow/shrink flicker length, seconds
	PostShrinkInvul float64 `yaml:"post_shrink_invul"` // post-shrink invulnerability window, seconds
	StarDuration    float64 `yaml:"star_duration"`     // star power length, seconds
	FlickerCadence  int     `yaml:"flicker_cadence"`   // frames per flicker toggle
	DeathResetDelay float64 `yaml:"death_reset_delay"` // death-to-level-reset delay, seconds
}

// EnemiesConfig defines enemy locomotion and despawn timing.
type EnemiesConfig struct {
	GoombaSpeed    float64 `yaml:"goomba_speed"`
	KoopaSpeed     float64 `yaml:"koopa_speed"`
	ShellSpeed     float64 `yaml:"shell_speed"`     // pushed shell speed
	FlattenDespawn float64 `yaml:"flatten_despawn"` // flattened goomba removal delay, seconds
	HitDespawn     float64 `yaml:"hit_despawn"`     // death-arc removal delay, seconds
}

// ItemsConfig defines power-up item behavior.
type ItemsConfig struct {
	EmergeDuration float64 `yaml:"emerge_duration"` // rise-out-of-block time, seconds
	MushroomSpeed  float64 `yaml:"mushroom_speed"`
}

// ObjectsConfig defines interactive level object timing.
type ObjectsConfig struct {
	BlockBounce  float64 `yaml:"block_bounce"`  // block bump animation, seconds
	PipeTravel   float64 `yaml:"pipe_travel"`   // enter/sink duration, seconds
	PipeEmerge   float64 `yaml:"pipe_emerge"`   // offset-exit emerge duration, seconds
	FlagDescent  float64 `yaml:"flag_descent"`  // flagpole slide speed, units/s
	CastleWalk   float64 `yaml:"castle_walk"`   // post-flag walk speed, units/s
	MusicRestore float64 `yaml:"music_restore"` // invincibility music window, seconds
}

// SessionConfig defines the session counters' initial values and limits.
type SessionConfig struct {
	InitialLives int `yaml:"initial_lives"`
	CoinsPerLife int `yaml:"coins_per_life"` // coin count that wraps into a life
}

// CameraConfig defines view-follow behavior.
type CameraConfig struct {
	EdgeMargin float64 `yaml:"edge_margin"` // player clamp margin from screen edges, units
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

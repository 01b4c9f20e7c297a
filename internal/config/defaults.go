package config

import (
	_ "embed"
)

//go:embed defaults/plumber.yaml
var defaultPlumberYAML []byte

// DefaultPlumberConfig returns the default platformer configuration.
// Keep in sync with defaults/plumber.yaml; this is the fallback if the
// embedded file fails to parse.
func DefaultPlumberConfig() PlumberConfig {
	return PlumberConfig{
		Movement: MovementConfig{
			NormalSpeed:   8.0,
			FastSpeed:     12.0,
			Acceleration:  30.0,
			Deceleration:  60.0,
			MaxJumpHeight: 5.0,
			MaxJumpTime:   1.0,
		},
		Combat: CombatConfig{
			GrowDuration:    0.5,
			PostShrinkInvul: 1.0,
			StarDuration:    10.0,
			FlickerCadence:  4,
			DeathResetDelay: 3.0,
		},
		Enemies: EnemiesConfig{
			GoombaSpeed:    2.0,
			KoopaSpeed:     2.0,
			ShellSpeed:     12.0,
			FlattenDespawn: 0.5,
			HitDespawn:     3.0,
		},
		Items: ItemsConfig{
			EmergeDuration: 0.5,
			MushroomSpeed:  3.0,
		},
		Objects: ObjectsConfig{
			BlockBounce:  0.25,
			PipeTravel:   1.0,
			PipeEmerge:   1.0,
			FlagDescent:  6.0,
			CastleWalk:   4.0,
			MusicRestore: 9.0,
		},
		Session: SessionConfig{
			InitialLives: 3,
			CoinsPerLife: 100,
		},
		Camera: CameraConfig{
			EdgeMargin: 0.5,
		},
	}
}

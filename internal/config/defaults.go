package config

import _ "embed"

//go:embed defaults/slicer.yaml
var defaultSlicerYAML []byte

// DefaultSlicerConfig returns the built-in slicer configuration.
// It mirrors defaults/slicer.yaml and backs it up if the embed fails to parse.
func DefaultSlicerConfig() SlicerConfig {
	return SlicerConfig{
		Canvas: CanvasConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Physics: PhysicsConfig{
			Gravity:               900,
			MaxDT:                 0.1,
			ParticleGravityFactor: 0.4,
			DespawnOffset:         60,
		},
		Spawn: SpawnConfig{
			FirstDelay:     0.6,
			SingleInterval: 1.1,
			WaveInterval:   0.8,
			WaveChance:     0.2,
			WaveMin:        3,
			WaveMax:        6,
			WaveSpacing:    0.15,
			BombBase:       0.08,
			BombSlope:      0.06,
			BombCap:        0.25,
			ApexMin:        0.15,
			ApexMax:        0.45,
			TargetSpread:   0.25,
			LaunchMargin:   0.1,
			MaxSpin:        3.0,
		},
		Combo: ComboConfig{
			Window:         0.3,
			BasePoints:     10,
			BonusPerLevel:  5,
			LabelScaleStep: 0.2,
		},
		Effects: EffectsConfig{
			SliceParticles:  20,
			BombParticles:   30,
			ParticleSpeed:   320,
			ParticleDecay:   1.6,
			FragmentDecay:   0.9,
			FragmentImpulse: 140,
			FragmentSpin:    4.0,
			LabelDecay:      1.2,
			LabelRise:       70,
			LabelOffset:     40,
			FlashDecay:      2.5,
			ShakeMagnitude:  14,
			ShakeDuration:   0.4,
		},
		Gameplay: GameplayConfig{
			Lives:            3,
			TrailLength:      10,
			CollisionSamples: 4,
			Bombs:            true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			ScoreScale:   500,
			Cap:          2.0,
			GravityScale: 0.3,
			SpinScale:    0.5,
		},
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/skyraid.yaml
var defaultSkyRaidYAML []byte

//go:embed defaults/upgrades.yaml
var defaultUpgradesYAML []byte

// DefaultSkyRaidConfig returns the default Sky Raid configuration.
func DefaultSkyRaidConfig() SkyRaidConfig {
	return SkyRaidConfig{
		Playfield: SkyRaidPlayfield{
			Width:       400,
			Height:      600,
			SpatialCell: 64,
			ScrollSpeed: 0.6,
		},
		Player: SkyRaidPlayer{
			Width:             24,
			Height:            24,
			HP:                3,
			Speed:             4.5,
			Lives:             3,
			Bombs:             2,
			WeaponLevel:       1,
			FireInterval:      10,
			HitInvincible:     90,
			RespawnInvincible: 150,
			ShieldGrace:       30,
		},
		Weapons: SkyRaidWeapons{
			MaxLevel:     5,
			BulletSpeed:  10,
			BulletWidth:  4,
			BulletHeight: 10,
			Damage:       1,
			CullMargin:   60,
		},
		Enemies: SkyRaidEnemies{
			BulletSpeed:   3.2,
			BulletSize:    6,
			ContactDamage: 5,
			CullSide:      120,
			CullAbove:     400,
			MaxMinions:    12,
			HPScale:       1.0,
			SpeedScale:    1.0,
			FireScale:     1.0,
		},
		Boss: SkyRaidBoss{
			EntrySpeed: 1.5,
			RestY:      70,
		},
		Combo: SkyRaidCombo{
			Window: 150,
			Step:   0.5,
			Cap:    5,
		},
		PowerUps: SkyRaidPowerUps{
			FallSpeed:     1.4,
			Size:          16,
			MaxLive:       3,
			MagnetSpeed:   5,
			ShieldHitCost: 150,
			ShrinkScale:   0.6,
			ExpandScale:   1.4,
			MaxBombs:      5,
			Durations: SkyRaidDurations{
				Shield:     600, // 10 seconds
				RapidFire:  480,
				Magnet:     600,
				SideGunner: 600,
				Pierce:     420,
				Shrink:     480,
				Expand:     480,
			},
		},
		Bomb: SkyRaidBomb{
			Cooldown:   60,
			BossDamage: 50,
		},
		Timers: SkyRaidTimers{
			Briefing:       120,
			BossIntro:      150,
			Banner:         180,
			WaveDelay:      90,
			FirstWaveDelay: 60,
			WaveAdvanceAt:  3,
		},
	}
}

// DefaultProgression returns an unupgraded ship and the built-in world table.
func DefaultProgression() Progression {
	return Progression{
		Difficulty: []DifficultyRow{
			{World: 1, HPMult: 1.0, SpeedMult: 1.0, FireRateMult: 1.0, TierScale: 0.02},
			{World: 2, HPMult: 1.1, SpeedMult: 1.05, FireRateMult: 0.95, TierScale: 0.02},
			{World: 3, HPMult: 1.25, SpeedMult: 1.1, FireRateMult: 0.9, TierScale: 0.03},
			{World: 4, HPMult: 1.4, SpeedMult: 1.15, FireRateMult: 0.85, TierScale: 0.03},
			{World: 5, HPMult: 1.6, SpeedMult: 1.2, FireRateMult: 0.8, TierScale: 0.04},
			{World: 6, HPMult: 1.8, SpeedMult: 1.25, FireRateMult: 0.75, TierScale: 0.04},
			{World: 7, HPMult: 2.0, SpeedMult: 1.3, FireRateMult: 0.7, TierScale: 0.05},
			{World: 8, HPMult: 2.3, SpeedMult: 1.35, FireRateMult: 0.65, TierScale: 0.05},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML by name ("skyraid" or "upgrades").
func GetDefaultYAML(name string) []byte {
	switch name {
	case "skyraid":
		return defaultSkyRaidYAML
	case "upgrades":
		return defaultUpgradesYAML
	default:
		return nil
	}
}

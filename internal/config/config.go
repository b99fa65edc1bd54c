// Package config provides YAML-based game configuration loading and
// difficulty management for Sky Raid.
package config

// SkyRaidConfig contains all tuning for the Sky Raid simulation.
// Distances are playfield units, durations are frames (60 per second).
type SkyRaidConfig struct {
	Playfield SkyRaidPlayfield `yaml:"playfield"`
	Player    SkyRaidPlayer    `yaml:"player"`
	Weapons   SkyRaidWeapons   `yaml:"weapons"`
	Enemies   SkyRaidEnemies   `yaml:"enemies"`
	Boss      SkyRaidBoss      `yaml:"boss"`
	Combo     SkyRaidCombo     `yaml:"combo"`
	PowerUps  SkyRaidPowerUps  `yaml:"powerups"`
	Bomb      SkyRaidBomb      `yaml:"bomb"`
	Timers    SkyRaidTimers    `yaml:"timers"`
}

// SkyRaidPlayfield defines the simulated area, independent of the terminal size.
type SkyRaidPlayfield struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpatialCell float64 `yaml:"spatial_cell"` // Broad-phase grid cell size
	ScrollSpeed float64 `yaml:"scroll_speed"` // Starfield scroll per frame
}

// SkyRaidPlayer defines the player craft.
type SkyRaidPlayer struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	HP                int     `yaml:"hp"`
	Speed             float64 `yaml:"speed"`
	Lives             int     `yaml:"lives"`
	Bombs             int     `yaml:"bombs"`
	WeaponLevel       int     `yaml:"weapon_level"`
	FireInterval      int     `yaml:"fire_interval"`
	HitInvincible     int     `yaml:"hit_invincible"`
	RespawnInvincible int     `yaml:"respawn_invincible"`
	ShieldGrace       int     `yaml:"shield_grace"`
}

// SkyRaidWeapons defines player projectiles.
type SkyRaidWeapons struct {
	MaxLevel     int     `yaml:"max_level"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletWidth  float64 `yaml:"bullet_width"`
	BulletHeight float64 `yaml:"bullet_height"`
	Damage       int     `yaml:"damage"`
	CullMargin   float64 `yaml:"cull_margin"` // Bullets are removed this far outside the playfield
}

// SkyRaidEnemies defines shared enemy parameters.
type SkyRaidEnemies struct {
	BulletSpeed   float64 `yaml:"bullet_speed"`
	BulletSize    float64 `yaml:"bullet_size"`
	ContactDamage int     `yaml:"contact_damage"` // Damage an enemy takes when ramming the player
	CullSide      float64 `yaml:"cull_side"`      // Margin left, right and below
	CullAbove     float64 `yaml:"cull_above"`
	MaxMinions    int     `yaml:"max_minions"` // Boss stops spawning above this live count
	HPScale       float64 `yaml:"hp_scale"`    // Global multipliers set by difficulty presets
	SpeedScale    float64 `yaml:"speed_scale"`
	FireScale     float64 `yaml:"fire_scale"`
}

// SkyRaidBoss defines shared boss parameters.
type SkyRaidBoss struct {
	EntrySpeed float64 `yaml:"entry_speed"`
	RestY      float64 `yaml:"rest_y"`
}

// SkyRaidCombo defines the kill combo multiplier.
type SkyRaidCombo struct {
	Window int     `yaml:"window"` // Frames before the combo decays to zero
	Step   float64 `yaml:"step"`   // Multiplier added per combo count
	Cap    float64 `yaml:"cap"`    // Maximum multiplier
}

// SkyRaidPowerUps defines pickups and timed buffs.
type SkyRaidPowerUps struct {
	FallSpeed     float64 `yaml:"fall_speed"`
	Size          float64 `yaml:"size"`
	MaxLive       int     `yaml:"max_live"` // Drops are suppressed at this many live pickups
	MagnetSpeed   float64 `yaml:"magnet_speed"`
	ShieldHitCost int     `yaml:"shield_hit_cost"`
	ShrinkScale   float64 `yaml:"shrink_scale"`
	ExpandScale   float64 `yaml:"expand_scale"`
	MaxBombs      int     `yaml:"max_bombs"`

	Durations SkyRaidDurations `yaml:"durations"`
}

// SkyRaidDurations defines buff durations in frames.
type SkyRaidDurations struct {
	Shield     int `yaml:"shield"`
	RapidFire  int `yaml:"rapid_fire"`
	Magnet     int `yaml:"magnet"`
	SideGunner int `yaml:"side_gunner"`
	Pierce     int `yaml:"pierce"`
	Shrink     int `yaml:"shrink"`
	Expand     int `yaml:"expand"`
}

// SkyRaidBomb defines the screen-clearing bomb.
type SkyRaidBomb struct {
	Cooldown   int `yaml:"cooldown"`
	BossDamage int `yaml:"boss_damage"`
}

// SkyRaidTimers defines screen and wave timers.
type SkyRaidTimers struct {
	Briefing       int `yaml:"briefing"`
	BossIntro      int `yaml:"boss_intro"`
	Banner         int `yaml:"banner"`
	WaveDelay      int `yaml:"wave_delay"`
	FirstWaveDelay int `yaml:"first_wave_delay"`
	WaveAdvanceAt  int `yaml:"wave_advance_at"` // Next wave may start at or below this live count
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown names yield "".
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables per-world scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

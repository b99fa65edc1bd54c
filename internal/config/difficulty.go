package config

import "math"

// Upgrades are the purchased ship upgrade levels supplied by the progression system.
// Each level has a fixed effect, see the accessor methods.
type Upgrades struct {
	MaxHP       int `yaml:"max_hp"`       // +1 hp per level
	Speed       int `yaml:"speed"`        // +0.3 units/frame per level
	WeaponLevel int `yaml:"weapon_level"` // +1 starting weapon level per level
	Bombs       int `yaml:"bombs"`        // +1 starting bomb per level
	FireRate    int `yaml:"fire_rate"`    // -1 frame between shots per level
	Shield      int `yaml:"shield"`       // +60 frames of shield per level
}

// ExtraMaxHP returns the hp bonus.
func (u Upgrades) ExtraMaxHP() int { return max(0, u.MaxHP) }

// ExtraSpeed returns the movement speed bonus.
func (u Upgrades) ExtraSpeed() float64 { return 0.3 * float64(max(0, u.Speed)) }

// ExtraWeaponLevel returns the starting weapon level bonus.
func (u Upgrades) ExtraWeaponLevel() int { return max(0, u.WeaponLevel) }

// ExtraBombs returns the starting bomb bonus.
func (u Upgrades) ExtraBombs() int { return max(0, u.Bombs) }

// FireRateReduction returns how many frames are removed from the fire interval.
func (u Upgrades) FireRateReduction() int { return max(0, u.FireRate) }

// ShieldBonus returns the extra shield duration in frames.
func (u Upgrades) ShieldBonus() int { return 60 * max(0, u.Shield) }

// Tier returns the sum of all upgrade levels.
func (u Upgrades) Tier() int {
	return max(0, u.MaxHP) + max(0, u.Speed) + max(0, u.WeaponLevel) +
		max(0, u.Bombs) + max(0, u.FireRate) + max(0, u.Shield)
}

// DifficultyRow scales enemies created in one world.
// TierScale raises hp and speed per upgrade tier so upgraded ships meet tougher enemies.
type DifficultyRow struct {
	World        int     `yaml:"world"`
	HPMult       float64 `yaml:"hp_mult"`
	SpeedMult    float64 `yaml:"speed_mult"`
	FireRateMult float64 `yaml:"fire_rate_mult"` // Below 1.0 fires more often
	TierScale    float64 `yaml:"tier_scale"`
}

// Progression is the read-only input from the external progression system.
type Progression struct {
	Upgrades   Upgrades        `yaml:"upgrades"`
	Difficulty []DifficultyRow `yaml:"difficulty"`
}

// neutralRow is used when the table has no matching row.
var neutralRow = DifficultyRow{HPMult: 1, SpeedMult: 1, FireRateMult: 1}

// Row returns the difficulty for a world, scaled by the upgrade tier.
// Worlds beyond the table use the highest row at or below them.
func (p Progression) Row(world int) DifficultyRow {
	row := neutralRow
	row.World = world
	best := -1
	for _, r := range p.Difficulty {
		if r.World <= world && r.World > best {
			best = r.World
			row = r
		}
	}
	row.HPMult = positiveOr(row.HPMult, 1)
	row.SpeedMult = positiveOr(row.SpeedMult, 1)
	row.FireRateMult = positiveOr(row.FireRateMult, 1)

	scale := 1 + math.Max(0, row.TierScale)*float64(p.Upgrades.Tier())
	row.HPMult *= scale
	row.SpeedMult *= 1 + (scale-1)/2
	row.FireRateMult /= 1 + (scale-1)/2
	return row
}

// ApplyProgressionPreset disables world scaling for the fixed preset.
func ApplyProgressionPreset(p *Progression, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		p.Difficulty = nil
	}
}

func positiveOr(v, fallback float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

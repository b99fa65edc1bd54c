package sim

import (
	"github.com/vovakirdan/skyraid/internal/core"
)

// PowerUpType represents different types of power-up pickups.
type PowerUpType int

const (
	PowerUpWeaponUp   PowerUpType = iota // Immediate: weapon level +1
	PowerUpBomb                          // Immediate: bomb charge +1
	PowerUpShield                        // Timed: absorbs hits by draining duration
	PowerUpRapidFire                     // Timed: halves the fire interval
	PowerUpMagnet                        // Timed: pickups home on the ship
	PowerUpSideGunner                    // Timed: two outboard guns
	PowerUpPierce                        // Timed: bullets pass through targets
	PowerUpShrink                        // Timed: smaller hitbox
	PowerUpExpand                        // Timed: larger hull, double damage
	PowerUpTypeCount                     // Sentinel for counting types
)

var powerUpNames = [PowerUpTypeCount]string{
	"weapon_up", "bomb", "shield", "rapid_fire", "magnet", "side_gunner", "pierce", "shrink", "expand",
}

// String returns the name of the power-up type.
func (p PowerUpType) String() string {
	if p < 0 || p >= PowerUpTypeCount {
		return "?"
	}
	return powerUpNames[p]
}

// Glyph returns the display character for a power-up type.
func (p PowerUpType) Glyph() rune {
	switch p {
	case PowerUpWeaponUp:
		return 'P'
	case PowerUpBomb:
		return 'B'
	case PowerUpShield:
		return 'S'
	case PowerUpRapidFire:
		return 'R'
	case PowerUpMagnet:
		return 'M'
	case PowerUpSideGunner:
		return 'G'
	case PowerUpPierce:
		return 'I'
	case PowerUpShrink:
		return '-'
	case PowerUpExpand:
		return '+'
	default:
		return '?'
	}
}

// Timed reports whether collecting the type registers a buff.
func (p PowerUpType) Timed() bool {
	return p != PowerUpWeaponUp && p != PowerUpBomb
}

// Drop weights (relative, higher = more common)
var dropWeights = [PowerUpTypeCount]int{
	PowerUpWeaponUp:   22,
	PowerUpBomb:       10,
	PowerUpShield:     14,
	PowerUpRapidFire:  14,
	PowerUpMagnet:     10,
	PowerUpSideGunner: 10,
	PowerUpPierce:     8,
	PowerUpShrink:     6,
	PowerUpExpand:     6,
}

// rollPowerUpType selects a random type based on weights.
func rollPowerUpType(rng *SimpleRNG) PowerUpType {
	total := 0
	for _, w := range dropWeights {
		total += w
	}
	roll := rng.Intn(total)
	cumulative := 0
	for t, w := range dropWeights {
		cumulative += w
		if roll < cumulative {
			return PowerUpType(t)
		}
	}
	return PowerUpWeaponUp
}

// tryDrop rolls an enemy's drop chance at its center. Drops are suppressed
// while the live pickup cap is reached.
func tryDrop(s *State, e Enemy) {
	cfg := s.env.Config.PowerUps
	if len(s.Pickups) >= cfg.MaxLive {
		return
	}
	if s.RNG.Float64() >= e.DropChance {
		return
	}
	cx, cy := e.Center()
	spawnPickup(s, rollPowerUpType(&s.RNG), cx, cy)
}

// spawnPickup places a pickup centered on (cx, cy).
func spawnPickup(s *State, t PowerUpType, cx, cy float64) {
	cfg := s.env.Config.PowerUps
	s.Pickups = append(s.Pickups, Pickup{
		ID:     s.allocID(),
		Type:   t,
		X:      cx - cfg.Size/2,
		Y:      cy - cfg.Size/2,
		W:      cfg.Size,
		H:      cfg.Size,
		VY:     cfg.FallSpeed,
		Homing: s.hasBuff(PowerUpMagnet),
	})
}

// movePickups drops pickups or pulls them toward the ship under a magnet,
// and removes those that fell past the bottom edge.
func movePickups(s *State) {
	cfg := s.env.Config.PowerUps
	magnet := s.hasBuff(PowerUpMagnet)
	px, py := s.Player.Center()
	bottom := s.field().H
	kept := s.Pickups[:0]
	for _, p := range s.Pickups {
		if magnet {
			p.Homing = true
		}
		if p.Homing {
			cx, cy := p.X+p.W/2, p.Y+p.H/2
			nx, ny := core.Normalize(px-cx, py-cy, 0, 1)
			p.X += nx * cfg.MagnetSpeed
			p.Y += ny * cfg.MagnetSpeed
		} else {
			p.Y += p.VY
		}
		if p.Y > bottom {
			continue
		}
		kept = append(kept, p)
	}
	s.Pickups = kept
}

// collectPickups applies every pickup overlapping the ship.
func collectPickups(s *State, out *Outcome) {
	if s.Player.HP <= 0 {
		return
	}
	ship := s.Player.Box()
	kept := s.Pickups[:0]
	var collected []PowerUpType
	for _, p := range s.Pickups {
		if p.Box().Overlaps(ship) {
			collected = append(collected, p.Type)
			continue
		}
		kept = append(kept, p)
	}
	s.Pickups = kept
	for _, t := range collected {
		applyPowerUp(s, t)
		out.audio(AudioPowerUp)
	}
}

// applyPowerUp applies an immediate effect or registers a timed buff.
func applyPowerUp(s *State, t PowerUpType) {
	cfg := s.env.Config
	p := &s.Player
	switch t {
	case PowerUpWeaponUp:
		p.WeaponLevel = min(cfg.Weapons.MaxLevel, p.WeaponLevel+1)
	case PowerUpBomb:
		p.Bombs = min(cfg.PowerUps.MaxBombs, p.Bombs+1)
	case PowerUpShrink:
		s.removeBuff(PowerUpExpand)
		s.addBuff(t, buffDuration(s, t))
		applyShipSize(s)
	case PowerUpExpand:
		s.removeBuff(PowerUpShrink)
		s.addBuff(t, buffDuration(s, t))
		applyShipSize(s)
	default:
		if t.Timed() {
			s.addBuff(t, buffDuration(s, t))
		}
	}
}

// buffDuration returns the configured duration, extended by upgrades for the shield.
func buffDuration(s *State, t PowerUpType) int {
	d := s.env.Config.PowerUps.Durations
	switch t {
	case PowerUpShield:
		return d.Shield + s.env.Progression.Upgrades.ShieldBonus()
	case PowerUpRapidFire:
		return d.RapidFire
	case PowerUpMagnet:
		return d.Magnet
	case PowerUpSideGunner:
		return d.SideGunner
	case PowerUpPierce:
		return d.Pierce
	case PowerUpShrink:
		return d.Shrink
	case PowerUpExpand:
		return d.Expand
	default:
		return 0
	}
}

// addBuff adds a buff or refreshes the existing one of the same type.
func (s *State) addBuff(t PowerUpType, duration int) {
	for i := range s.Buffs {
		if s.Buffs[i].Type == t {
			s.Buffs[i].Remaining = duration
			return
		}
	}
	s.Buffs = append(s.Buffs, ActiveBuff{Type: t, Remaining: duration})
}

// removeBuff removes a buff by type and reports whether it was active.
func (s *State) removeBuff(t PowerUpType) bool {
	for i := range s.Buffs {
		if s.Buffs[i].Type == t {
			s.Buffs = append(s.Buffs[:i], s.Buffs[i+1:]...)
			return true
		}
	}
	return false
}

// buffIndex returns the index of an active buff, or -1.
func (s *State) buffIndex(t PowerUpType) int {
	for i := range s.Buffs {
		if s.Buffs[i].Type == t {
			return i
		}
	}
	return -1
}

func (s *State) hasBuff(t PowerUpType) bool {
	return s.buffIndex(t) >= 0
}

// BuffRemaining returns frames left on a buff, or 0 if not active.
func (s *State) BuffRemaining(t PowerUpType) int {
	if i := s.buffIndex(t); i >= 0 {
		return s.Buffs[i].Remaining
	}
	return 0
}

// tickBuffs counts buffs down and runs expiry cleanup once per expired buff.
func tickBuffs(s *State) {
	var expired []PowerUpType
	kept := s.Buffs[:0]
	for _, b := range s.Buffs {
		b.Remaining--
		if b.Remaining <= 0 {
			expired = append(expired, b.Type)
			continue
		}
		kept = append(kept, b)
	}
	s.Buffs = kept
	for _, t := range expired {
		expireBuff(s, t)
	}
}

// expireBuff undoes a buff's side effect. Shared side effects are only
// cleared when no buff of the same category remains, so running it twice
// or for two buffs of one category in the same frame is harmless.
func expireBuff(s *State, t PowerUpType) {
	switch t {
	case PowerUpMagnet:
		if !s.hasBuff(PowerUpMagnet) {
			for i := range s.Pickups {
				s.Pickups[i].Homing = false
			}
		}
	case PowerUpShrink, PowerUpExpand:
		applyShipSize(s)
	}
}

// applyShipSize recomputes the hitbox from the size buffs still active,
// keeping the ship centered.
func applyShipSize(s *State) {
	cfg := s.env.Config.PowerUps
	p := &s.Player
	scale := 1.0
	switch {
	case s.hasBuff(PowerUpShrink):
		scale = cfg.ShrinkScale
	case s.hasBuff(PowerUpExpand):
		scale = cfg.ExpandScale
	}
	cx, cy := p.Center()
	p.W = p.BaseW * scale
	p.H = p.BaseH * scale
	p.X = cx - p.W/2
	p.Y = cy - p.H/2
}

package sim

import (
	"math"
	"testing"
)

func TestCollectRefreshesBuff(t *testing.T) {
	s := combatState(t)
	applyPowerUp(s, PowerUpRapidFire)
	s.Buffs[0].Remaining = 10
	applyPowerUp(s, PowerUpRapidFire)

	if len(s.Buffs) != 1 {
		t.Fatalf("Buffs = %d, expected 1", len(s.Buffs))
	}
	if got, want := s.Buffs[0].Remaining, s.env.Config.PowerUps.Durations.RapidFire; got != want {
		t.Errorf("Remaining = %d, expected refreshed %d", got, want)
	}
}

func TestImmediatePowerUpsCapped(t *testing.T) {
	s := combatState(t)
	for i := 0; i < 10; i++ {
		applyPowerUp(s, PowerUpWeaponUp)
		applyPowerUp(s, PowerUpBomb)
	}
	if s.Player.WeaponLevel != 5 {
		t.Errorf("WeaponLevel = %d, expected 5", s.Player.WeaponLevel)
	}
	if s.Player.Bombs != 5 {
		t.Errorf("Bombs = %d, expected 5", s.Player.Bombs)
	}
	if len(s.Buffs) != 0 {
		t.Errorf("Immediate power-ups registered %d buffs", len(s.Buffs))
	}
}

func TestShrinkAndExpandCancel(t *testing.T) {
	s := combatState(t)
	base := s.Player.BaseW
	cx, cy := s.Player.Center()

	applyPowerUp(s, PowerUpShrink)
	if s.Player.W >= base {
		t.Errorf("W = %.1f after shrink, expected < %.1f", s.Player.W, base)
	}

	applyPowerUp(s, PowerUpExpand)
	if s.hasBuff(PowerUpShrink) {
		t.Error("Expand should cancel shrink")
	}
	if s.Player.W <= base {
		t.Errorf("W = %.1f after expand, expected > %.1f", s.Player.W, base)
	}

	nx, ny := s.Player.Center()
	if math.Abs(nx-cx) > 1e-9 || math.Abs(ny-cy) > 1e-9 {
		t.Errorf("Center moved from (%.1f,%.1f) to (%.1f,%.1f)", cx, cy, nx, ny)
	}
}

func TestBuffExpiryRestoresSize(t *testing.T) {
	s := combatState(t)
	applyPowerUp(s, PowerUpShrink)
	s.Buffs[0].Remaining = 1

	tickBuffs(s)

	if len(s.Buffs) != 0 {
		t.Errorf("Buffs = %d, expected 0", len(s.Buffs))
	}
	if s.Player.W != s.Player.BaseW || s.Player.H != s.Player.BaseH {
		t.Errorf("Size = %.1fx%.1f, expected base %.1fx%.1f",
			s.Player.W, s.Player.H, s.Player.BaseW, s.Player.BaseH)
	}

	// Running cleanup again must not change anything
	expireBuff(s, PowerUpShrink)
	if s.Player.W != s.Player.BaseW {
		t.Errorf("W = %.1f after repeated cleanup, expected %.1f", s.Player.W, s.Player.BaseW)
	}
}

func TestMagnetExpiryClearsHoming(t *testing.T) {
	s := combatState(t)
	applyPowerUp(s, PowerUpMagnet)
	spawnPickup(s, PowerUpBomb, 100, 100)
	if !s.Pickups[0].Homing {
		t.Fatal("Pickup should home while a magnet is active")
	}

	s.Buffs[0].Remaining = 1
	tickBuffs(s)

	if s.Pickups[0].Homing {
		t.Error("Homing should be cleared when the magnet expires")
	}
}

func TestShieldDurationIncludesUpgrade(t *testing.T) {
	env := DefaultEnv()
	env.Progression.Upgrades.Shield = 2
	s := NewSession(env, 1, 1, 1)

	applyPowerUp(s, PowerUpShield)

	want := env.Config.PowerUps.Durations.Shield + env.Progression.Upgrades.ShieldBonus()
	if got := s.BuffRemaining(PowerUpShield); got != want {
		t.Errorf("Shield = %d, expected %d", got, want)
	}
}

func TestDropSuppressedAtCap(t *testing.T) {
	s := combatState(t)
	for i := 0; i < s.env.Config.PowerUps.MaxLive; i++ {
		spawnPickup(s, PowerUpBomb, 50, 50)
	}
	e := Enemy{X: 100, Y: 100, W: 20, H: 20, DropChance: 1}

	tryDrop(s, e)

	if len(s.Pickups) != s.env.Config.PowerUps.MaxLive {
		t.Errorf("Pickups = %d, expected cap %d", len(s.Pickups), s.env.Config.PowerUps.MaxLive)
	}
}

func TestCollectPickup(t *testing.T) {
	s := combatState(t)
	cx, cy := s.Player.Center()
	spawnPickup(s, PowerUpPierce, cx, cy)
	out := &Outcome{}

	collectPickups(s, out)

	if len(s.Pickups) != 0 {
		t.Errorf("Pickups = %d, expected 0", len(s.Pickups))
	}
	if !s.hasBuff(PowerUpPierce) {
		t.Error("Expected pierce buff")
	}
	if countAudio(*out, AudioPowerUp) != 1 {
		t.Errorf("Expected one powerup event, got %v", out.Audio)
	}
}

func TestComboMultiplier(t *testing.T) {
	tests := []struct {
		combo int
		want  float64
	}{
		{0, 1},
		{1, 1.5},
		{4, 3},
		{8, 5},
		{50, 5},
	}

	s := combatState(t)
	for _, tt := range tests {
		s.Combo = tt.combo
		if got := comboMultiplier(s); got != tt.want {
			t.Errorf("comboMultiplier(%d) = %v, expected %v", tt.combo, got, tt.want)
		}
	}
}

func TestComboDecays(t *testing.T) {
	s := combatState(t)
	s.Combo = 3
	s.ComboTimer = 2

	decayCombo(s)
	if s.Combo != 3 {
		t.Errorf("Combo = %d, expected 3 before the window closes", s.Combo)
	}
	decayCombo(s)
	if s.Combo != 0 {
		t.Errorf("Combo = %d, expected 0", s.Combo)
	}
}

func TestStarRating(t *testing.T) {
	tests := []struct {
		deaths int
		ratio  float64
		want   int
	}{
		{0, 1, 3},
		{0, 0.8, 3},
		{0, 0.5, 2},
		{1, 0.9, 2},
		{3, 0.6, 2},
		{3, 0.2, 1},
	}

	for _, tt := range tests {
		if got := starRating(tt.deaths, tt.ratio); got != tt.want {
			t.Errorf("starRating(%d, %.1f) = %d, expected %d", tt.deaths, tt.ratio, got, tt.want)
		}
	}
}

func TestSummaryCredits(t *testing.T) {
	s := combatState(t)
	s.LevelStartScore = 1000
	s.Score = 3550
	s.LevelSpawned = 10
	s.LevelKills = 9

	sum := summarize(s, false)

	if sum.Score != 2550 {
		t.Errorf("Score = %d, expected 2550", sum.Score)
	}
	if sum.Stars != 3 {
		t.Errorf("Stars = %d, expected 3", sum.Stars)
	}
	if sum.Credits != 25+150 {
		t.Errorf("Credits = %d, expected 175", sum.Credits)
	}
	if sum.KillRatio != 0.9 {
		t.Errorf("KillRatio = %v, expected 0.9", sum.KillRatio)
	}
}

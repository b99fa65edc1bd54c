package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Bullet is a player or enemy projectile moving in a straight line.
type Bullet struct {
	ID       ID
	X, Y     float64 // Top-left corner
	VX, VY   float64
	W, H     float64
	Damage   int
	Owner    Owner
	Piercing bool // Not consumed on hit
}

// Box returns the bullet's hitbox.
func (b Bullet) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// shot is one barrel of a weapon fan: x offset from the ship center and
// angle in degrees off straight up.
type shot struct {
	DX    float64
	Angle float64
}

var weaponFans = [...][]shot{
	1: {{0, 0}},
	2: {{-6, 0}, {6, 0}},
	3: {{0, 0}, {-4, -10}, {4, 10}},
	4: {{-6, 0}, {6, 0}, {-8, -12}, {8, 12}},
	5: {{0, 0}, {-8, 0}, {8, 0}, {-10, -15}, {10, 15}},
}

// weaponFan returns the fan for a weapon level, clamped to 1..5.
func weaponFan(level int) []shot {
	return weaponFans[clampInt(level, 1, len(weaponFans)-1)]
}

// spawnBullet appends a bullet centered on (cx, cy).
func spawnBullet(s *State, cx, cy, vx, vy, w, h float64, damage int, owner Owner, piercing bool) {
	s.Bullets = append(s.Bullets, Bullet{
		ID:       s.allocID(),
		X:        cx - w/2,
		Y:        cy - h/2,
		VX:       vx,
		VY:       vy,
		W:        w,
		H:        h,
		Damage:   damage,
		Owner:    owner,
		Piercing: piercing,
	})
}

// playerFireInterval returns frames between volleys after upgrades and buffs.
func playerFireInterval(s *State) int {
	interval := max(3, s.env.Config.Player.FireInterval-s.env.Progression.Upgrades.FireRateReduction())
	if s.hasBuff(PowerUpRapidFire) {
		interval = max(2, interval/2)
	}
	return interval
}

// firePlayer fires one volley when the fire timer allows it.
func firePlayer(s *State, in Input, out *Outcome) {
	p := &s.Player
	if !in.Fire || p.FireTimer > 0 || p.HP <= 0 {
		return
	}
	cfg := s.env.Config.Weapons
	p.FireTimer = playerFireInterval(s)

	damage := max(1, cfg.Damage)
	if s.hasBuff(PowerUpExpand) {
		damage *= 2
	}
	piercing := s.hasBuff(PowerUpPierce)
	cx, _ := p.Center()
	muzzleY := p.Y

	for _, sh := range weaponFan(p.WeaponLevel) {
		rad := sh.Angle * math.Pi / 180
		vx := math.Sin(rad) * cfg.BulletSpeed
		vy := -math.Cos(rad) * cfg.BulletSpeed
		spawnBullet(s, cx+sh.DX, muzzleY, vx, vy, cfg.BulletWidth, cfg.BulletHeight, damage, OwnerPlayer, piercing)
	}
	if s.hasBuff(PowerUpSideGunner) {
		offset := p.W/2 + 6
		spawnBullet(s, cx-offset, muzzleY+p.H/2, 0, -cfg.BulletSpeed, cfg.BulletWidth, cfg.BulletHeight, damage, OwnerPlayer, piercing)
		spawnBullet(s, cx+offset, muzzleY+p.H/2, 0, -cfg.BulletSpeed, cfg.BulletWidth, cfg.BulletHeight, damage, OwnerPlayer, piercing)
	}
	out.audio(AudioPlayerShot)
}

// enemyBullet fires one enemy bullet from (cx, cy) along (dx, dy) at speed.
// A zero-length direction fires straight down.
func enemyBullet(s *State, cx, cy, dx, dy, speed float64) {
	nx, ny := core.Normalize(dx, dy, 0, 1)
	size := s.env.Config.Enemies.BulletSize
	spawnBullet(s, cx, cy, nx*speed, ny*speed, size, size, 1, OwnerEnemy, false)
}

// fireAimed fires one bullet at the target point.
func fireAimed(s *State, cx, cy, tx, ty, speed float64) {
	enemyBullet(s, cx, cy, tx-cx, ty-cy, speed)
}

// fireSpread fires count bullets evenly across spreadDeg centered on the
// given heading (radians, 0 = right, pi/2 = down).
func fireSpread(s *State, cx, cy, heading, spreadDeg float64, count int, speed float64) {
	if count <= 0 {
		return
	}
	if count == 1 {
		enemyBullet(s, cx, cy, math.Cos(heading), math.Sin(heading), speed)
		return
	}
	spread := spreadDeg * math.Pi / 180
	step := spread / float64(count-1)
	start := heading - spread/2
	for i := 0; i < count; i++ {
		a := start + step*float64(i)
		enemyBullet(s, cx, cy, math.Cos(a), math.Sin(a), speed)
	}
}

// fireRing fires count bullets evenly around a full circle.
func fireRing(s *State, cx, cy float64, count int, speed, offset float64) {
	if count <= 0 {
		return
	}
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		a := offset + step*float64(i)
		enemyBullet(s, cx, cy, math.Cos(a), math.Sin(a), speed)
	}
}

// fireSpiral fires one bullet per arm at the current spin angle.
func fireSpiral(s *State, cx, cy float64, arms int, speed, spin float64) {
	fireRing(s, cx, cy, arms, speed, spin)
}

// fireTracking fires a tight three-shot burst at the target.
func fireTracking(s *State, cx, cy, tx, ty, speed float64) {
	heading := math.Atan2(ty-cy, tx-cx)
	if math.IsNaN(heading) {
		heading = math.Pi / 2
	}
	fireSpread(s, cx, cy, heading, 12, 3, speed)
}

// advanceBullets moves every bullet and removes those outside the
// playfield plus the cull margin.
func advanceBullets(s *State) {
	margin := s.env.Config.Weapons.CullMargin
	f := s.field()
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		b.X = core.Finite(b.X+b.VX, b.X)
		b.Y = core.Finite(b.Y+b.VY, b.Y)
		if b.X+b.W < -margin || b.X > f.W+margin || b.Y+b.H < -margin || b.Y > f.H+margin {
			continue
		}
		kept = append(kept, b)
	}
	s.Bullets = kept
}

// clearEnemyBullets removes every enemy-owned bullet.
func clearEnemyBullets(s *State) {
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.Owner == OwnerPlayer {
			kept = append(kept, b)
		}
	}
	s.Bullets = kept
}

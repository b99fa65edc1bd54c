package sim

import (
	"math"
	"strings"

	"github.com/vovakirdan/skyraid/internal/core"
)

// EnemyType is one of the thirteen enemy craft.
type EnemyType int

const (
	EnemyScout EnemyType = iota
	EnemyFighter
	EnemyBomber
	EnemyInterceptor
	EnemyKamikaze
	EnemyTurret
	EnemyCloaker
	EnemyDrone
	EnemyPhantom
	EnemyMirror
	EnemySwarmer
	EnemyGunship
	EnemyHeavy
	EnemyTypeCount // Sentinel for counting types
)

var enemyNames = [EnemyTypeCount]string{
	"scout", "fighter", "bomber", "interceptor", "kamikaze", "turret", "cloaker",
	"drone", "phantom", "mirror", "swarmer", "gunship", "heavy",
}

// String returns the lowercase name used in level files.
func (t EnemyType) String() string {
	if t < 0 || t >= EnemyTypeCount {
		return "unknown"
	}
	return enemyNames[t]
}

// Glyph returns the display character for an enemy type.
func (t EnemyType) Glyph() rune {
	switch t {
	case EnemyScout:
		return 'v'
	case EnemyFighter:
		return 'W'
	case EnemyBomber:
		return 'B'
	case EnemyInterceptor:
		return 'Y'
	case EnemyKamikaze:
		return '*'
	case EnemyTurret:
		return 'T'
	case EnemyCloaker:
		return 'C'
	case EnemyDrone:
		return 'o'
	case EnemyPhantom:
		return 'P'
	case EnemyMirror:
		return 'M'
	case EnemySwarmer:
		return 'x'
	case EnemyGunship:
		return 'G'
	case EnemyHeavy:
		return 'H'
	default:
		return '?'
	}
}

// ParseEnemyType looks up an enemy type by name, case-insensitively.
func ParseEnemyType(name string) (EnemyType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range enemyNames {
		if n == name {
			return EnemyType(i), true
		}
	}
	return EnemyScout, false
}

// enemyStats are the base values of a type before difficulty scaling.
type enemyStats struct {
	W, H       float64
	HP         int
	Speed      float64
	FireRate   int // Frames between shots, 0 never fires
	BaseScore  int
	XP         int
	DropChance float64
	Behavior   Behavior
}

var enemyTable = [EnemyTypeCount]enemyStats{
	EnemyScout:       {W: 24, H: 20, HP: 1, Speed: 1.2, FireRate: 0, BaseScore: 100, XP: 5, DropChance: 0.05, Behavior: BehaviorFormation},
	EnemyFighter:     {W: 26, H: 22, HP: 2, Speed: 1.5, FireRate: 120, BaseScore: 150, XP: 8, DropChance: 0.08, Behavior: BehaviorZigzag},
	EnemyBomber:      {W: 36, H: 28, HP: 5, Speed: 0.8, FireRate: 90, BaseScore: 300, XP: 15, DropChance: 0.15, Behavior: BehaviorDrift},
	EnemyInterceptor: {W: 24, H: 22, HP: 2, Speed: 2.2, FireRate: 150, BaseScore: 200, XP: 10, DropChance: 0.08, Behavior: BehaviorChase},
	EnemyKamikaze:    {W: 20, H: 20, HP: 1, Speed: 2.0, FireRate: 0, BaseScore: 120, XP: 6, DropChance: 0.05, Behavior: BehaviorKamikaze},
	EnemyTurret:      {W: 30, H: 30, HP: 6, Speed: 1.0, FireRate: 80, BaseScore: 250, XP: 12, DropChance: 0.12, Behavior: BehaviorStatic},
	EnemyCloaker:     {W: 26, H: 24, HP: 3, Speed: 1.2, FireRate: 110, BaseScore: 300, XP: 15, DropChance: 0.12, Behavior: BehaviorCloak},
	EnemyDrone:       {W: 18, H: 18, HP: 1, Speed: 1.4, FireRate: 0, BaseScore: 80, XP: 4, DropChance: 0.04, Behavior: BehaviorOrbit},
	EnemyPhantom:     {W: 26, H: 26, HP: 3, Speed: 1.6, FireRate: 100, BaseScore: 350, XP: 18, DropChance: 0.12, Behavior: BehaviorPhase},
	EnemyMirror:      {W: 26, H: 24, HP: 3, Speed: 1.4, FireRate: 100, BaseScore: 300, XP: 15, DropChance: 0.10, Behavior: BehaviorMirror},
	EnemySwarmer:     {W: 16, H: 16, HP: 1, Speed: 2.4, FireRate: 0, BaseScore: 60, XP: 3, DropChance: 0.03, Behavior: BehaviorSwoop},
	EnemyGunship:     {W: 40, H: 30, HP: 8, Speed: 0.9, FireRate: 60, BaseScore: 500, XP: 25, DropChance: 0.20, Behavior: BehaviorStrafe},
	EnemyHeavy:       {W: 44, H: 36, HP: 12, Speed: 0.7, FireRate: 70, BaseScore: 600, XP: 30, DropChance: 0.25, Behavior: BehaviorDive},
}

// statsFor returns base stats, failing closed to the scout for unknown types.
func statsFor(t EnemyType) enemyStats {
	if t < 0 || t >= EnemyTypeCount {
		return enemyTable[EnemyScout]
	}
	return enemyTable[t]
}

// Enemy is a hostile craft.
type Enemy struct {
	ID         ID
	Type       EnemyType
	X, Y       float64 // Top-left corner
	VX, VY     float64
	W, H       float64
	HP, MaxHP  int
	Behavior   Behavior
	Speed      float64
	FireTimer  int
	FireRate   int
	Cloaked    bool
	Ticks      int // Frames since spawn, drives behaviors
	Locked     bool
	AnchorX    float64 // Spawn point used by orbit and sway behaviors
	AnchorY    float64
	Dir        float64 // Horizontal heading for strafe and swoop, -1 or 1
	BaseScore  int
	XP         int
	DropChance float64
}

// Box returns the enemy's hitbox.
func (e Enemy) Box() core.Box {
	return core.NewBox(e.X, e.Y, e.W, e.H)
}

// Center returns the center of the enemy's hitbox.
func (e Enemy) Center() (float64, float64) {
	return e.X + e.W/2, e.Y + e.H/2
}

// Alive reports whether the enemy still has hp.
func (e Enemy) Alive() bool {
	return e.HP > 0
}

// spawnEnemy creates an enemy at (x, y) scaled by the current world's
// difficulty. The scaling is fixed at creation.
func spawnEnemy(s *State, t EnemyType, x, y float64) {
	st := statsFor(t)
	cfg := s.env.Config.Enemies
	row := s.env.Progression.Row(s.World)

	hp := max(1, int(math.Round(float64(st.HP)*row.HPMult*positive(cfg.HPScale))))
	speed := st.Speed * row.SpeedMult * positive(cfg.SpeedScale)
	fireRate := 0
	if st.FireRate > 0 {
		fireRate = max(20, int(math.Round(float64(st.FireRate)*row.FireRateMult*positive(cfg.FireScale))))
	}

	dir := 1.0
	if x+st.W/2 > s.env.Config.Playfield.Width/2 {
		dir = -1
	}

	e := Enemy{
		ID:         s.allocID(),
		Type:       t,
		X:          x,
		Y:          y,
		W:          st.W,
		H:          st.H,
		HP:         hp,
		MaxHP:      hp,
		Behavior:   st.Behavior,
		Speed:      speed,
		FireRate:   fireRate,
		AnchorX:    x,
		AnchorY:    y,
		Dir:        dir,
		BaseScore:  st.BaseScore,
		XP:         st.XP,
		DropChance: st.DropChance,
	}
	if fireRate > 0 {
		// Stagger the first shot so a formation does not fire in unison
		e.FireTimer = fireRate/2 + s.RNG.Intn(fireRate/2+1)
	}
	s.Enemies = append(s.Enemies, e)
	s.LevelSpawned++
}

func positive(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	return v
}

// moveEnemies applies each enemy's behavior and integrates its position.
func moveEnemies(s *State) {
	field := s.field()
	px, py := s.Player.Center()
	for i := range s.Enemies {
		e := &s.Enemies[i]
		vx, vy := steer(e, px, py, field)
		e.VX = core.Finite(vx, 0)
		e.VY = core.Finite(vy, 0)
		e.X = core.Finite(e.X+e.VX, e.X)
		e.Y = core.Finite(e.Y+e.VY, e.Y)
		e.Ticks++
	}
}

// fireEnemies counts down enemy fire timers and fires aimed shots.
// Cloaked and off-screen enemies hold their fire.
func fireEnemies(s *State, out *Outcome) {
	field := s.field()
	px, py := s.Player.Center()
	speed := s.env.Config.Enemies.BulletSpeed
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if e.FireRate <= 0 || e.Cloaked || !e.Alive() {
			continue
		}
		if e.Y+e.H < 0 || e.Y > field.H {
			continue
		}
		e.FireTimer--
		if e.FireTimer > 0 {
			continue
		}
		e.FireTimer = e.FireRate
		cx, cy := e.Center()
		fireAimed(s, cx, cy+e.H/2, px, py, speed)
		out.audio(AudioEnemyShot)
	}
}

// cullEnemies removes enemies that left the generous off-screen margins
// and any enemy without hp.
func cullEnemies(s *State) {
	cfg := s.env.Config.Enemies
	field := s.field()
	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if e.X+e.W < -cfg.CullSide || e.X > field.W+cfg.CullSide {
			continue
		}
		if e.Y > field.H+cfg.CullSide || e.Y+e.H < -cfg.CullAbove {
			continue
		}
		kept = append(kept, e)
	}
	s.Enemies = kept
}

// field is the playfield size.
type field struct {
	W, H float64
}

func (s *State) field() field {
	return field{W: s.env.Config.Playfield.Width, H: s.env.Config.Playfield.Height}
}

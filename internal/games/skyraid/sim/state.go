package sim

// State is a complete snapshot of a play session.
//
// Entities refer to each other only by ID. Step never modifies a State it
// receives; it works on a Clone.
type State struct {
	Screen       Screen
	ResumeScreen Screen // Screen to return to when unpausing
	ScreenTimer  int    // Countdown for briefing, boss intro and banner
	AwaitConfirm bool   // Level complete waits for a confirm input

	World     int
	Level     int
	LevelName string
	BossLevel bool
	BossKind  BossKind

	Frame  uint64
	Scroll float64 // Starfield offset

	Player    Player
	Enemies   []Enemy
	Bullets   []Bullet
	Pickups   []Pickup
	Buffs     []ActiveBuff
	Particles []Particle
	Boss      *Boss

	Waves []WaveDef // Level content, never modified
	Wave  WaveState

	Score      int
	XP         int
	Kills      int
	Deaths     int
	Combo      int
	ComboTimer int // Frames until the combo decays
	MaxCombo   int

	LevelStartScore int
	LevelKills      int
	LevelDeaths     int
	LevelSpawned    int
	Summary         *LevelSummary

	NextID   ID
	RNG      SimpleRNG // Gameplay randomness
	FxRNG    SimpleRNG // Cosmetic randomness, never affects gameplay
	GameOver bool

	env *Env
}

// Env returns the environment the session runs in.
func (s *State) Env() *Env {
	return s.env
}

// Clone returns a deep copy. Wave definitions are shared because they are
// read-only content.
func (s *State) Clone() *State {
	c := *s
	c.Enemies = cloneSlice(s.Enemies)
	c.Bullets = cloneSlice(s.Bullets)
	c.Pickups = cloneSlice(s.Pickups)
	c.Buffs = cloneSlice(s.Buffs)
	c.Particles = cloneSlice(s.Particles)
	if s.Boss != nil {
		b := *s.Boss
		b.Parts = cloneSlice(s.Boss.Parts)
		c.Boss = &b
	}
	if s.Summary != nil {
		sum := *s.Summary
		c.Summary = &sum
	}
	return &c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// allocID hands out the next session-unique identifier.
func (s *State) allocID() ID {
	s.NextID++
	return s.NextID
}

// NewSession creates the state for a new play session starting at the given
// world and level. Unknown levels fall back to world 1 level 1.
func NewSession(env *Env, world, level int, seed int64) *State {
	if env == nil {
		env = DefaultEnv()
	}
	s := &State{
		env:   env,
		RNG:   NewSimpleRNG(seed),
		FxRNG: NewSimpleRNG(seed ^ 0x5eed),
	}
	s.Player = newPlayer(env)
	s.loadLevel(world, level)
	return s
}

// newPlayer creates the craft with progression upgrades applied.
func newPlayer(env *Env) Player {
	cfg := env.Config.Player
	up := env.Progression.Upgrades
	hp := max(1, cfg.HP+up.ExtraMaxHP())
	return Player{
		W:           cfg.Width,
		H:           cfg.Height,
		BaseW:       cfg.Width,
		BaseH:       cfg.Height,
		HP:          hp,
		MaxHP:       hp,
		Speed:       cfg.Speed + up.ExtraSpeed(),
		WeaponLevel: clampInt(cfg.WeaponLevel+up.ExtraWeaponLevel(), 1, env.Config.Weapons.MaxLevel),
		Lives:       max(1, cfg.Lives),
		Bombs:       startingBombs(env),
	}
}

func startingBombs(env *Env) int {
	return clampInt(env.Config.Player.Bombs+env.Progression.Upgrades.ExtraBombs(), 0, env.Config.PowerUps.MaxBombs)
}

// loadLevel replaces level content and resets per-level state. Session
// totals, lives, weapon level and active buffs carry over.
func (s *State) loadLevel(world, level int) {
	def, ok := s.env.Content.Level(world, level)
	if !ok {
		def, ok = s.env.Content.Level(1, 1)
		if !ok {
			def = LevelDef{World: 1, Level: 1, Name: "Open Sky"}
		}
	}

	s.World = def.World
	s.Level = def.Level
	s.LevelName = def.Name
	s.BossLevel = def.Boss
	s.BossKind = def.BossKind
	s.Waves = def.Waves
	s.Wave = WaveState{Delay: s.env.Config.Timers.FirstWaveDelay}

	s.Enemies = nil
	s.Bullets = nil
	s.Pickups = nil
	s.Boss = nil
	s.Summary = nil

	s.Combo = 0
	s.ComboTimer = 0
	s.LevelStartScore = s.Score
	s.LevelKills = 0
	s.LevelDeaths = 0
	s.LevelSpawned = 0

	cfg := s.env.Config
	p := &s.Player
	p.HP = p.MaxHP
	p.Bombs = startingBombs(s.env)
	p.BombCooldown = 0
	p.FireTimer = 0
	p.Invincible = 0
	applyShipSize(s)
	p.X = cfg.Playfield.Width/2 - p.W/2
	p.Y = cfg.Playfield.Height - p.H - 30

	s.Screen = ScreenBriefing
	s.ResumeScreen = ""
	s.ScreenTimer = cfg.Timers.Briefing
	s.AwaitConfirm = false
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

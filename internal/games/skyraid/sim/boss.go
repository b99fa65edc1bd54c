package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// BossKind selects one of the eight boss behaviors.
type BossKind int

const (
	BossHiveQueen BossKind = iota
	BossIronColossus
	BossPhantomWraith
	BossLeviathan
	BossTwinReactor
	BossStormCaller
	BossSiegeTitan
	BossVoidEmperor
	BossKindCount // Sentinel for counting kinds
)

// ChargeState is the charge-attack sub-machine.
type ChargeState int

const (
	ChargeNone       ChargeState = iota
	ChargeWinding                // Shaking in place
	ChargeCharging               // Launching toward the player's last x
	ChargeRecovering             // Returning to rest height
)

// String returns the state name for debugging and HUD display.
func (c ChargeState) String() string {
	switch c {
	case ChargeNone:
		return "none"
	case ChargeWinding:
		return "winding"
	case ChargeCharging:
		return "charging"
	case ChargeRecovering:
		return "recovering"
	default:
		return "unknown"
	}
}

// Charge timings in frames.
const (
	chargeWindFrames     = 40
	chargeMaxFrames      = 50
	chargeRecoverFrames  = 90
	chargeCooldownFrames = 240
	chargeSpeed          = 6.0
	chargeReturnSpeed    = 2.5
	chargeShake          = 2.0
)

// Vulnerability cycle timings in frames.
const (
	mouthOpenFrames     = 90
	teleportVanish      = 30
	reactorCycle        = 160
	reactorShieldFrames = 40 // Both reactors shielded for the end of each cycle
)

var (
	mouthClosedFrames = [3]int{150, 110, 80}
	teleportInterval  = [3]int{180, 140, 100}
)

// BossPart is a sub-hitbox relative to the boss's top-left corner.
// Parts are cosmetic for collision: bullets are tested against the boss box.
type BossPart struct {
	OffsetX, OffsetY float64
	W, H             float64
	WeakPoint        bool
	Vulnerable       bool
}

// Boss is the level's end boss. At most one exists.
type Boss struct {
	ID     ID
	Kind   BossKind
	Name   string
	X, Y   float64
	VX, VY float64
	W, H   float64
	HP     int
	MaxHP  int
	Phase  int // 1..3, never decreases
	Parts  []BossPart

	FireTimer      int
	MouthTimer     int // Mouth cycle, also the reactor alternation timer
	MouthOpen      bool
	Charge         ChargeState
	ChargeTimer    int
	ChargeTargetX  float64
	ChargeCooldown int
	TeleportTimer  int
	Teleporting    bool
	SpawnTimer     int
	PatternStep    int
	Spin           float64 // Spiral angle in radians

	Entering bool
	Defeated bool
	RestY    float64
	Dir      float64
	Ticks    int
}

// Box returns the boss's bounding box.
func (b Boss) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// Center returns the center of the bounding box.
func (b Boss) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// PartBox returns the absolute box of part i.
func (b Boss) PartBox(i int) core.Box {
	p := b.Parts[i]
	return core.NewBox(b.X+p.OffsetX, b.Y+p.OffsetY, p.W, p.H)
}

// Tangible reports whether the boss can collide with anything.
func (b Boss) Tangible() bool {
	return !b.Defeated && !b.Teleporting
}

// spawnBoss creates the level's boss above the playfield.
func spawnBoss(s *State) {
	p := profileFor(s.BossKind)
	row := s.env.Progression.Row(s.World)
	hp := max(1, int(math.Round(float64(p.HP)*row.HPMult*positive(s.env.Config.Enemies.HPScale))))
	f := s.field()

	b := &Boss{
		ID:             s.allocID(),
		Kind:           s.BossKind,
		Name:           p.Name,
		X:              f.W/2 - p.W/2,
		Y:              -p.H,
		W:              p.W,
		H:              p.H,
		HP:             hp,
		MaxHP:          hp,
		Phase:          1,
		Parts:          cloneSlice(p.Parts),
		FireTimer:      90,
		MouthTimer:     mouthClosedFrames[0],
		ChargeCooldown: chargeCooldownFrames / 2,
		TeleportTimer:  teleportInterval[0],
		SpawnTimer:     p.SpawnInterval[0],
		Entering:       true,
		RestY:          s.env.Config.Boss.RestY,
		Dir:            1,
	}
	resetGate(b, p)
	syncParts(b)
	s.Boss = b
}

// updateBoss runs the boss AI for one frame: entrance, vulnerability cycle,
// charge sub-machine, movement and minion spawning.
func updateBoss(s *State, out *Outcome) {
	b := s.Boss
	if b == nil || b.Defeated {
		return
	}
	b.Ticks++
	if b.Entering {
		b.Y += s.env.Config.Boss.EntrySpeed
		if b.Y >= b.RestY {
			b.Y = b.RestY
			b.Entering = false
		}
		syncParts(b)
		return
	}

	p := profileFor(b.Kind)
	updateGate(s, b, p, out)
	if !updateCharge(s, b, p, out) {
		moveBoss(s, b, p)
	}
	clampBoss(s, b)
	syncParts(b)
	spawnMinions(s, b, p)
}

func updateGate(s *State, b *Boss, p *bossProfile, out *Outcome) {
	switch p.gate(b.Phase) {
	case gateMouth:
		b.MouthTimer--
		if b.MouthTimer <= 0 {
			b.MouthOpen = !b.MouthOpen
			if b.MouthOpen {
				b.MouthTimer = mouthOpenFrames
			} else {
				b.MouthTimer = mouthClosedFrames[b.Phase-1]
			}
		}
	case gateTeleport:
		if b.Charge != ChargeNone {
			return
		}
		b.TeleportTimer--
		if b.TeleportTimer > 0 {
			return
		}
		cx, cy := b.Center()
		emitBurst(s, cx, cy, 12, 2.5, 20, '~', core.ColorMagenta)
		if b.Teleporting {
			f := s.field()
			b.X = s.RNG.Range(20, math.Max(21, f.W-b.W-20))
			b.Teleporting = false
			b.TeleportTimer = teleportInterval[b.Phase-1]
		} else {
			b.Teleporting = true
			b.TeleportTimer = teleportVanish
		}
		out.audio(AudioBossTeleport)
	case gateReactors:
		b.MouthTimer--
		if b.MouthTimer <= 0 {
			b.MouthOpen = !b.MouthOpen
			b.MouthTimer = reactorCycle
		}
	}
}

// resetGate puts the vulnerability cycle of the current phase in its
// starting position.
func resetGate(b *Boss, p *bossProfile) {
	switch p.gate(b.Phase) {
	case gateMouth:
		b.MouthOpen = false
		b.MouthTimer = mouthClosedFrames[b.Phase-1]
		b.Teleporting = false
	case gateTeleport:
		b.MouthOpen = false
		b.Teleporting = false
		b.TeleportTimer = teleportInterval[b.Phase-1]
	case gateReactors:
		b.MouthOpen = false
		b.MouthTimer = reactorCycle
	default:
		b.MouthOpen = true
		b.Teleporting = false
	}
}

// bossVulnerable reports whether damage to the boss is accepted this frame.
func bossVulnerable(b *Boss) bool {
	if b.Entering || b.Defeated {
		return false
	}
	switch profileFor(b.Kind).gate(b.Phase) {
	case gateMouth:
		return b.MouthOpen
	case gateTeleport:
		return !b.Teleporting
	case gateReactors:
		return b.MouthTimer > reactorShieldFrames
	default:
		return true
	}
}

// syncParts mirrors the gate onto the weak-point parts.
func syncParts(b *Boss) {
	open := bossVulnerable(b)
	reactors := profileFor(b.Kind).gate(b.Phase) == gateReactors
	for i := range b.Parts {
		part := &b.Parts[i]
		switch {
		case !part.WeakPoint:
			part.Vulnerable = false
		case reactors:
			// Reactor 0 is exposed while MouthOpen is false, reactor 1 otherwise
			part.Vulnerable = open && (i == 1) == b.MouthOpen
		default:
			part.Vulnerable = open
		}
	}
}

// updateCharge runs the charge sub-machine. It returns true while the
// charge controls the boss's movement.
func updateCharge(s *State, b *Boss, p *bossProfile, out *Outcome) bool {
	if b.ChargeCooldown > 0 {
		b.ChargeCooldown--
	}
	f := s.field()

	switch b.Charge {
	case ChargeNone:
		if p.ChargeFrom == 0 || b.Phase < p.ChargeFrom || b.ChargeCooldown > 0 || b.Teleporting {
			return false
		}
		px, _ := s.Player.Center()
		b.Charge = ChargeWinding
		b.ChargeTimer = chargeWindFrames
		b.ChargeTargetX = px - b.W/2
		b.VX, b.VY = 0, 0
		out.audio(AudioBossCharge)
	case ChargeWinding:
		if b.Ticks%2 == 0 {
			b.X += chargeShake
		} else {
			b.X -= chargeShake
		}
		b.ChargeTimer--
		if b.ChargeTimer <= 0 {
			b.Charge = ChargeCharging
			b.ChargeTimer = chargeMaxFrames
		}
	case ChargeCharging:
		targetY := f.H*0.7 - b.H/2
		dx, dy := b.ChargeTargetX-b.X, targetY-b.Y
		dist := math.Hypot(dx, dy)
		b.ChargeTimer--
		if dist <= chargeSpeed || b.ChargeTimer <= 0 {
			if dist <= chargeSpeed {
				b.X, b.Y = b.ChargeTargetX, targetY
			}
			b.Charge = ChargeRecovering
			b.ChargeTimer = chargeRecoverFrames
			b.VX, b.VY = 0, 0
			break
		}
		nx, ny := core.Normalize(dx, dy, 0, 1)
		b.VX, b.VY = nx*chargeSpeed, ny*chargeSpeed
		b.X += b.VX
		b.Y += b.VY
	case ChargeRecovering:
		b.VY = -chargeReturnSpeed
		b.Y += b.VY
		b.ChargeTimer--
		if b.Y <= b.RestY || b.ChargeTimer <= 0 {
			b.Y = b.RestY
			b.VY = 0
			b.Charge = ChargeNone
			b.ChargeCooldown = chargeCooldownFrames
		}
	}
	return true
}

// moveBoss sways the boss horizontally at rest height.
func moveBoss(s *State, b *Boss, p *bossProfile) {
	if b.Teleporting {
		b.VX = 0
		return
	}
	f := s.field()
	speed := p.Speed * (1 + 0.25*float64(b.Phase-1))
	b.VX = b.Dir * speed
	b.X += b.VX
	if b.X <= 10 {
		b.Dir = 1
	} else if b.X+b.W >= f.W-10 {
		b.Dir = -1
	}
	b.Y = b.RestY + math.Sin(float64(b.Ticks)*0.03)*p.Bob
}

func clampBoss(s *State, b *Boss) {
	f := s.field()
	b.X = core.ClampF(core.Finite(b.X, f.W/2-b.W/2), 0, math.Max(0, f.W-b.W))
	b.Y = core.ClampF(core.Finite(b.Y, b.RestY), -b.H, f.H-b.H)
}

// spawnMinions releases minions when the spawn timer expires.
func spawnMinions(s *State, b *Boss, p *bossProfile) {
	b.SpawnTimer--
	if b.SpawnTimer > 0 {
		return
	}
	b.SpawnTimer = p.SpawnInterval[b.Phase-1]
	if len(s.Enemies) >= s.env.Config.Enemies.MaxMinions {
		return
	}
	types := p.minions(s, b)
	if len(types) > 4 {
		types = types[:4]
	}
	f := s.field()
	for i, t := range types {
		st := statsFor(t)
		x := float64(i+1)*f.W/float64(len(types)+1) - st.W/2
		spawnEnemy(s, t, x, -st.H-20)
	}
}

// fireBoss runs the boss's fire-pattern selector.
func fireBoss(s *State, out *Outcome) {
	b := s.Boss
	if b == nil || b.Defeated || b.Entering || b.Teleporting || b.Charge != ChargeNone {
		return
	}
	b.FireTimer--
	if b.FireTimer > 0 {
		return
	}
	p := profileFor(b.Kind)
	p.fire(s, b)
	b.FireTimer = p.FireInterval[b.Phase-1]
	b.PatternStep++
	out.audio(AudioEnemyShot)
}

// damageBoss applies damage and resolves phase changes and defeat.
// The caller is responsible for vulnerability gating.
func damageBoss(s *State, dmg int, out *Outcome) {
	b := s.Boss
	if b == nil || b.Defeated || dmg <= 0 {
		return
	}
	b.HP -= dmg
	if b.HP <= 0 {
		b.HP = 0
		b.Defeated = true
		p := profileFor(b.Kind)
		s.Score += p.Score
		s.XP += p.XP
		cx, cy := b.Center()
		emitBurst(s, cx, cy, 60, 5, 60, '*', core.ColorOrange)
		emitBurst(s, cx, cy, 30, 3, 45, '#', core.ColorBrightYellow)
		out.audio(AudioBossDefeated)
		return
	}
	out.audio(AudioBossHit)
	advancePhase(s, b, out)
}

// advancePhase moves the boss to the phase its hp calls for. Phase only
// ever increases, so crossing a threshold fires exactly once.
func advancePhase(s *State, b *Boss, out *Outcome) {
	p := profileFor(b.Kind)
	target := p.phaseFor(b.HP, b.MaxHP)
	if target <= b.Phase {
		return
	}
	b.Phase = target
	resetGate(b, p)
	b.ChargeCooldown = max(b.ChargeCooldown, chargeCooldownFrames/2)
	b.FireTimer = min(b.FireTimer, 30)
	syncParts(b)

	cx, cy := b.Center()
	emitBurst(s, cx, cy, 24, 4, 40, '+', core.ColorBrightMagenta)
	out.audio(AudioBossPhase)
	out.BossPhase = b.Phase
	out.narrate(NarrativeBossPhase)
}

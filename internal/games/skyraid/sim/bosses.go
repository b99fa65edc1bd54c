package sim

import (
	"math"
	"strings"
)

// gateKind is how a boss guards its weak point.
type gateKind int

const (
	gateExposed  gateKind = iota // Always vulnerable
	gateMouth                    // Vulnerable while the mouth is open
	gateTeleport                 // Vulnerable while not teleporting
	gateReactors                 // One of two reactors exposed, then both shielded
)

// bossProfile holds everything that distinguishes one boss from another.
// The shared state machine in boss.go interprets it.
type bossProfile struct {
	Key           string
	Name          string
	HP            int
	W, H          float64
	Score, XP     int
	Thresholds    []float64 // hp fractions, phase advances below each
	Gates         [3]gateKind
	ChargeFrom    int // First phase with charge attacks, 0 never
	Speed         float64
	Bob           float64 // Vertical bob amplitude at rest
	FireInterval  [3]int
	SpawnInterval [3]int
	Parts         []BossPart

	fire    func(s *State, b *Boss)
	minions func(s *State, b *Boss) []EnemyType
}

func (p *bossProfile) gate(phase int) gateKind {
	return p.Gates[clampInt(phase, 1, 3)-1]
}

// phaseFor returns the phase an hp value calls for.
func (p *bossProfile) phaseFor(hp, maxHP int) int {
	if maxHP <= 0 {
		return 1
	}
	frac := float64(hp) / float64(maxHP)
	phase := 1
	for _, t := range p.Thresholds {
		if frac < t {
			phase++
		}
	}
	return min(phase, 3)
}

func all3(g gateKind) [3]gateKind {
	return [3]gateKind{g, g, g}
}

func weakCore(x, y, w, h float64) BossPart {
	return BossPart{OffsetX: x, OffsetY: y, W: w, H: h, WeakPoint: true}
}

func armor(x, y, w, h float64) BossPart {
	return BossPart{OffsetX: x, OffsetY: y, W: w, H: h}
}

var bossProfiles [BossKindCount]bossProfile

func init() {
	bossProfiles = [BossKindCount]bossProfile{
		BossHiveQueen: {
			Key: "hive_queen", Name: "Hive Queen",
			HP: 600, W: 120, H: 70, Score: 5000, XP: 200,
			Thresholds: []float64{0.5}, Gates: all3(gateMouth),
			Speed: 1.0, Bob: 6,
			FireInterval: [3]int{70, 55, 55}, SpawnInterval: [3]int{300, 240, 240},
			Parts:   []BossPart{weakCore(45, 50, 30, 20)},
			fire:    fireHiveQueen,
			minions: func(_ *State, b *Boss) []EnemyType { return repeat(EnemySwarmer, 1+b.Phase) },
		},
		BossIronColossus: {
			Key: "iron_colossus", Name: "Iron Colossus",
			HP: 800, W: 140, H: 80, Score: 7500, XP: 300,
			Thresholds: []float64{0.6, 0.3}, Gates: all3(gateExposed), ChargeFrom: 2,
			Speed: 0.8,
			FireInterval: [3]int{60, 70, 60}, SpawnInterval: [3]int{300, 260, 220},
			Parts:   []BossPart{weakCore(55, 30, 30, 30)},
			fire:    fireIronColossus,
			minions: func(_ *State, b *Boss) []EnemyType { return repeat(EnemyFighter, []int{1, 2, 2}[b.Phase-1]) },
		},
		BossPhantomWraith: {
			Key: "phantom_wraith", Name: "Phantom Wraith",
			HP: 700, W: 100, H: 70, Score: 10000, XP: 400,
			Thresholds: []float64{0.5, 0.25}, Gates: all3(gateTeleport),
			Speed: 1.4,
			FireInterval: [3]int{80, 65, 50}, SpawnInterval: [3]int{320, 280, 240},
			Parts:   []BossPart{weakCore(35, 25, 30, 25)},
			fire:    firePhantomWraith,
			minions: func(_ *State, b *Boss) []EnemyType { return repeat(EnemyCloaker, []int{1, 1, 2}[b.Phase-1]) },
		},
		BossLeviathan: {
			Key: "leviathan", Name: "Leviathan",
			HP: 900, W: 160, H: 60, Score: 12500, XP: 500,
			Thresholds: []float64{0.5}, Gates: all3(gateMouth), ChargeFrom: 2,
			Speed: 0.7, Bob: 15,
			FireInterval: [3]int{8, 7, 7}, SpawnInterval: [3]int{280, 220, 220},
			Parts:   []BossPart{weakCore(65, 35, 30, 25), armor(0, 10, 40, 40)},
			fire:    fireLeviathan,
			minions: func(_ *State, b *Boss) []EnemyType { return repeat(EnemyKamikaze, []int{2, 3, 3}[b.Phase-1]) },
		},
		BossTwinReactor: {
			Key: "twin_reactor", Name: "Twin Reactor",
			HP: 1000, W: 180, H: 70, Score: 15000, XP: 600,
			Thresholds: []float64{0.66, 0.33}, Gates: all3(gateReactors),
			Speed: 0.4,
			FireInterval: [3]int{90, 75, 60}, SpawnInterval: [3]int{360, 300, 260},
			Parts:   []BossPart{weakCore(20, 20, 40, 40), weakCore(120, 20, 40, 40)},
			fire:    fireTwinReactor,
			minions: twinReactorMinions,
		},
		BossStormCaller: {
			Key: "storm_caller", Name: "Storm Caller",
			HP: 1100, W: 120, H: 80, Score: 17500, XP: 700,
			Thresholds: []float64{0.5, 0.25}, Gates: all3(gateExposed),
			Speed: 1.2,
			FireInterval: [3]int{10, 9, 8}, SpawnInterval: [3]int{320, 280, 240},
			Parts:   []BossPart{weakCore(45, 30, 30, 30)},
			fire:    fireStormCaller,
			minions: func(_ *State, b *Boss) []EnemyType { return repeat(EnemyPhantom, []int{1, 2, 2}[b.Phase-1]) },
		},
		BossSiegeTitan: {
			Key: "siege_titan", Name: "Siege Titan",
			HP: 1300, W: 180, H: 90, Score: 20000, XP: 800,
			Thresholds: []float64{0.5, 0.25}, Gates: all3(gateMouth), ChargeFrom: 2,
			Speed: 0.6,
			FireInterval: [3]int{60, 50, 40}, SpawnInterval: [3]int{420, 360, 300},
			Parts:   []BossPart{weakCore(70, 60, 40, 25), armor(0, 0, 180, 30)},
			fire:    fireSiegeTitan,
			minions: siegeTitanMinions,
		},
		BossVoidEmperor: {
			Key: "void_emperor", Name: "Void Emperor",
			HP: 1600, W: 160, H: 90, Score: 30000, XP: 1200,
			Thresholds: []float64{0.66, 0.33}, Gates: [3]gateKind{gateMouth, gateTeleport, gateExposed}, ChargeFrom: 3,
			Speed: 1.0, Bob: 8,
			FireInterval: [3]int{40, 32, 25}, SpawnInterval: [3]int{300, 240, 180},
			Parts:   []BossPart{weakCore(65, 50, 30, 25), armor(30, 0, 100, 20)},
			fire:    fireVoidEmperor,
			minions: voidEmperorMinions,
		},
	}
}

// profileFor returns the boss profile, failing closed to the Hive Queen.
func profileFor(k BossKind) *bossProfile {
	if k < 0 || k >= BossKindCount {
		return &bossProfiles[BossHiveQueen]
	}
	return &bossProfiles[k]
}

// String returns the boss's display name.
func (k BossKind) String() string {
	return profileFor(k).Name
}

// Key returns the name used in level files.
func (k BossKind) Key() string {
	return profileFor(k).Key
}

// ParseBossKind looks up a boss by its level-file key or display name.
func ParseBossKind(name string) (BossKind, bool) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	for i := range bossProfiles {
		if bossProfiles[i].Key == norm {
			return BossKind(i), true
		}
	}
	return BossHiveQueen, false
}

func repeat(t EnemyType, n int) []EnemyType {
	out := make([]EnemyType, n)
	for i := range out {
		out[i] = t
	}
	return out
}

// muzzle is where boss bullets leave the hull.
func muzzle(b *Boss) (float64, float64) {
	return b.X + b.W/2, b.Y + b.H*0.8
}

func bulletSpeed(s *State, scale float64) float64 {
	return s.env.Config.Enemies.BulletSpeed * scale
}

const down = math.Pi / 2

func fireHiveQueen(s *State, b *Boss) {
	cx, cy := muzzle(b)
	if b.Phase == 1 {
		fireSpread(s, cx, cy, down, 30, 3, bulletSpeed(s, 1))
		return
	}
	px, py := s.Player.Center()
	fireSpread(s, cx, cy, down, 50, 5, bulletSpeed(s, 1))
	fireAimed(s, cx, cy, px, py, bulletSpeed(s, 1.2))
}

func fireIronColossus(s *State, b *Boss) {
	cx, cy := muzzle(b)
	px, py := s.Player.Center()
	switch b.Phase {
	case 1:
		fireAimed(s, cx, cy, px, py, bulletSpeed(s, 1.3))
	case 2:
		fireSpread(s, cx, cy, down, 60, 5, bulletSpeed(s, 1))
		fireAimed(s, cx, cy, px, py, bulletSpeed(s, 1.3))
	default:
		if b.PatternStep%2 == 0 {
			fireRing(s, cx, cy, 12, bulletSpeed(s, 0.9), 0)
		} else {
			fireSpread(s, cx, cy, down, 60, 5, bulletSpeed(s, 1))
		}
	}
}

func firePhantomWraith(s *State, b *Boss) {
	cx, cy := muzzle(b)
	px, py := s.Player.Center()
	switch b.Phase {
	case 1:
		fireTracking(s, cx, cy, px, py, bulletSpeed(s, 1.2))
	case 2:
		fireTracking(s, cx, cy, px, py, bulletSpeed(s, 1.2))
		if b.PatternStep%2 == 1 {
			fireRing(s, cx, cy, 10, bulletSpeed(s, 0.8), 0)
		}
	default:
		fireRing(s, cx, cy, 14, bulletSpeed(s, 0.8), float64(b.PatternStep)*0.2)
		fireTracking(s, cx, cy, px, py, bulletSpeed(s, 1.3))
	}
}

func fireLeviathan(s *State, b *Boss) {
	cx, cy := b.Center()
	arms := 2
	if b.Phase >= 2 {
		arms = 3
	}
	fireSpiral(s, cx, cy, arms, bulletSpeed(s, 0.9), b.Spin)
	b.Spin += 0.35
}

func fireTwinReactor(s *State, b *Boss) {
	cx, cy := b.Center()
	count := []int{8, 12, 16}[b.Phase-1]
	fireRing(s, cx, cy, count, bulletSpeed(s, 0.85), b.Spin)
	b.Spin += 0.2
}

func fireStormCaller(s *State, b *Boss) {
	cx, cy := b.Center()
	fireSpiral(s, cx, cy, b.Phase+1, bulletSpeed(s, 0.9), b.Spin)
	b.Spin += 0.3
	if b.PatternStep%4 == 0 {
		mx, my := muzzle(b)
		fireSpread(s, mx, my, down, 45, []int{3, 5, 7}[b.Phase-1], bulletSpeed(s, 1.1))
	}
}

func fireSiegeTitan(s *State, b *Boss) {
	cx, cy := muzzle(b)
	px, py := s.Player.Center()
	fireTracking(s, cx, cy, px, py, bulletSpeed(s, 1.2))
	if b.Phase >= 2 && b.PatternStep%2 == 0 {
		count := 5
		if b.Phase == 3 {
			count = 7
		}
		fireSpread(s, cx, cy, down, 70, count, bulletSpeed(s, 1))
	}
}

// fireVoidEmperor rotates through every pattern, growing with phase.
func fireVoidEmperor(s *State, b *Boss) {
	cx, cy := muzzle(b)
	px, py := s.Player.Center()
	switch b.PatternStep % 5 {
	case 0:
		fireSpread(s, cx, cy, down, 60, 3+2*b.Phase, bulletSpeed(s, 1))
	case 1:
		fireAimed(s, cx, cy, px, py, bulletSpeed(s, 1.4))
	case 2:
		fireRing(s, cx, cy, 8+4*b.Phase, bulletSpeed(s, 0.85), b.Spin)
	case 3:
		fireSpiral(s, cx, cy, b.Phase+1, bulletSpeed(s, 0.9), b.Spin)
		b.Spin += 0.4
	default:
		fireTracking(s, cx, cy, px, py, bulletSpeed(s, 1.3))
	}
}

func twinReactorMinions(_ *State, b *Boss) []EnemyType {
	switch b.Phase {
	case 1:
		return []EnemyType{EnemyTurret}
	case 2:
		return []EnemyType{EnemyDrone, EnemyDrone}
	default:
		return []EnemyType{EnemyDrone, EnemyTurret, EnemyDrone}
	}
}

func siegeTitanMinions(_ *State, b *Boss) []EnemyType {
	if b.Phase < 3 {
		return []EnemyType{EnemyGunship}
	}
	return []EnemyType{EnemyHeavy, EnemyGunship}
}

var voidEmperorRoster = []EnemyType{
	EnemyFighter, EnemyInterceptor, EnemyKamikaze, EnemyCloaker, EnemyPhantom, EnemyMirror,
}

func voidEmperorMinions(s *State, b *Boss) []EnemyType {
	n := min(4, b.Phase+1)
	out := make([]EnemyType, n)
	for i := range out {
		out[i] = voidEmperorRoster[s.RNG.Intn(len(voidEmperorRoster))]
	}
	return out
}

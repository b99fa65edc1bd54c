package skyraid

import (
	"math"
)

// Snapshot contains the gameplay-relevant session state for replay and
// determinism checks. Positions are stored in hundredths of a playfield
// unit so the snapshot holds primitive integers only.
type Snapshot struct {
	Frame  uint64
	Screen string
	World  int
	Level  int
	Score  int
	XP     int
	Kills  int
	Deaths int
	Combo  int

	PlayerX     int
	PlayerY     int
	PlayerHP    int
	Lives       int
	Bombs       int
	WeaponLevel int

	// Each enemy is 4 ints: Type, X, Y, HP
	EnemyCount int
	EnemyData  []int

	// Each bullet is 4 ints: Owner, X, Y, Damage
	BulletCount int
	BulletData  []int

	// Each pickup is 3 ints: Type, X, Y
	PickupCount int
	PickupData  []int

	BossHP    int
	BossPhase int

	RNGState uint64
	NextID   uint64
}

// fixed converts a playfield coordinate to hundredths.
func fixed(v float64) int {
	return int(math.Round(v * 100))
}

// Snapshot returns the current session as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	snap := Snapshot{
		Frame:       s.Frame,
		Screen:      string(s.Screen),
		World:       s.World,
		Level:       s.Level,
		Score:       s.Score,
		XP:          s.XP,
		Kills:       s.Kills,
		Deaths:      s.Deaths,
		Combo:       s.Combo,
		PlayerX:     fixed(s.Player.X),
		PlayerY:     fixed(s.Player.Y),
		PlayerHP:    s.Player.HP,
		Lives:       s.Player.Lives,
		Bombs:       s.Player.Bombs,
		WeaponLevel: s.Player.WeaponLevel,
		EnemyCount:  len(s.Enemies),
		BulletCount: len(s.Bullets),
		PickupCount: len(s.Pickups),
		RNGState:    s.RNG.State,
		NextID:      uint64(s.NextID),
	}

	snap.EnemyData = make([]int, 0, len(s.Enemies)*4)
	for _, e := range s.Enemies {
		snap.EnemyData = append(snap.EnemyData, int(e.Type), fixed(e.X), fixed(e.Y), e.HP)
	}

	snap.BulletData = make([]int, 0, len(s.Bullets)*4)
	for _, b := range s.Bullets {
		snap.BulletData = append(snap.BulletData, int(b.Owner), fixed(b.X), fixed(b.Y), b.Damage)
	}

	snap.PickupData = make([]int, 0, len(s.Pickups)*3)
	for _, p := range s.Pickups {
		snap.PickupData = append(snap.PickupData, int(p.Type), fixed(p.X), fixed(p.Y))
	}

	if s.Boss != nil {
		snap.BossHP = s.Boss.HP
		snap.BossPhase = s.Boss.Phase
	}

	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	for _, c := range snap.Screen {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	for _, v := range []int{
		snap.World, snap.Level, snap.Score, snap.XP, snap.Kills, snap.Deaths, snap.Combo,
		snap.PlayerX, snap.PlayerY, snap.PlayerHP, snap.Lives, snap.Bombs, snap.WeaponLevel,
		snap.EnemyCount, snap.BulletCount, snap.PickupCount, snap.BossHP, snap.BossPhase,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.PickupData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState
	h = h*31 + snap.NextID

	return h
}

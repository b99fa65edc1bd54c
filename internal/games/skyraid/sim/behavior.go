package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Behavior is an enemy movement strategy.
type Behavior int

const (
	BehaviorFormation Behavior = iota // Slow descent with a gentle sway
	BehaviorZigzag                    // Descends while swinging side to side
	BehaviorChase                     // Homes on the player until level with it
	BehaviorKamikaze                  // Drifts, then locks on and rams
	BehaviorStatic                    // Descends to a firing line and holds
	BehaviorCloak                     // Drifts and toggles its cloak
	BehaviorDrift                     // Slow descent with a wide sway
	BehaviorOrbit                     // Circles a descending anchor
	BehaviorPhase                     // Alternates dashes and hovers
	BehaviorMirror                    // Mirrors the player's x with jitter
	BehaviorSwoop                     // Fast arcing descent
	BehaviorStrafe                    // Holds high and sweeps across the field
	BehaviorDive                      // Hovers, then dives straight down
	BehaviorCount                     // Sentinel for counting behaviors
)

const (
	kamikazeLockTicks = 40
	cloakToggleTicks  = 90
	phaseToggleTicks  = 60
	holdTicks         = 600 // Holding behaviors leave after this long
	diveTicks         = 90
	orbitRadius       = 40
)

// behaviorFunc computes an enemy's velocity for this frame from its position,
// its ticks and the player's center. It may update behavior bookkeeping
// fields (Cloaked, Locked, Dir, AnchorY) but never hp or position.
type behaviorFunc func(e *Enemy, px, py float64, f field) (vx, vy float64)

var behaviors = [BehaviorCount]behaviorFunc{
	BehaviorFormation: steerFormation,
	BehaviorZigzag:    steerZigzag,
	BehaviorChase:     steerChase,
	BehaviorKamikaze:  steerKamikaze,
	BehaviorStatic:    steerStatic,
	BehaviorCloak:     steerCloak,
	BehaviorDrift:     steerDrift,
	BehaviorOrbit:     steerOrbit,
	BehaviorPhase:     steerPhase,
	BehaviorMirror:    steerMirror,
	BehaviorSwoop:     steerSwoop,
	BehaviorStrafe:    steerStrafe,
	BehaviorDive:      steerDive,
}

// steer dispatches on the enemy's behavior. Unknown behaviors drift straight down.
func steer(e *Enemy, px, py float64, f field) (float64, float64) {
	if e.Behavior < 0 || e.Behavior >= BehaviorCount {
		return 0, e.Speed
	}
	return behaviors[e.Behavior](e, px, py, f)
}

func ticks(e *Enemy) float64 {
	return float64(e.Ticks)
}

func steerFormation(e *Enemy, _, _ float64, _ field) (float64, float64) {
	return math.Sin(ticks(e)*0.03) * e.Speed * 0.5, e.Speed * 0.6
}

func steerZigzag(e *Enemy, _, _ float64, _ field) (float64, float64) {
	return math.Cos(ticks(e)/30*math.Pi) * e.Speed * 1.5, e.Speed * 0.8
}

func steerChase(e *Enemy, px, py float64, _ field) (float64, float64) {
	cx, cy := e.Center()
	if cy >= py {
		// Overshot the player: keep going down and out
		return 0, e.Speed
	}
	nx, ny := core.Normalize(px-cx, py-cy, 0, 1)
	return nx * e.Speed, math.Max(ny*e.Speed, e.Speed*0.4)
}

func steerKamikaze(e *Enemy, px, py float64, _ field) (float64, float64) {
	if e.Locked {
		return e.VX, e.VY
	}
	if e.Ticks < kamikazeLockTicks {
		return 0, e.Speed * 0.5
	}
	e.Locked = true
	cx, cy := e.Center()
	nx, ny := core.Normalize(px-cx, py-cy, 0, 1)
	return nx * e.Speed * 2, ny * e.Speed * 2
}

// holdLine descends to a fraction of the field height, holds, then leaves.
func holdLine(e *Enemy, f field, frac float64) float64 {
	if e.Ticks > holdTicks {
		return e.Speed
	}
	if e.Y < f.H*frac {
		return e.Speed
	}
	return 0
}

func steerStatic(e *Enemy, _, _ float64, f field) (float64, float64) {
	return 0, holdLine(e, f, 0.2)
}

func steerCloak(e *Enemy, _, _ float64, _ field) (float64, float64) {
	e.Cloaked = (e.Ticks/cloakToggleTicks)%2 == 1
	return math.Sin(ticks(e)*0.04) * e.Speed * 0.6, e.Speed * 0.6
}

func steerDrift(e *Enemy, _, _ float64, _ field) (float64, float64) {
	return math.Sin(ticks(e)*0.02+e.AnchorX*0.01) * e.Speed * 0.8, e.Speed * 0.5
}

func steerOrbit(e *Enemy, _, _ float64, _ field) (float64, float64) {
	e.AnchorY += e.Speed * 0.4
	angle := ticks(e) * 0.05
	tx := e.AnchorX + math.Cos(angle)*orbitRadius
	ty := e.AnchorY + math.Sin(angle)*orbitRadius
	return tx - e.X, ty - e.Y
}

func steerPhase(e *Enemy, _, _ float64, _ field) (float64, float64) {
	if (e.Ticks/phaseToggleTicks)%2 == 1 {
		return math.Sin(ticks(e)*0.1) * e.Speed * 0.5, 0
	}
	return 0, e.Speed * 2.5
}

func steerMirror(e *Enemy, px, _ float64, f field) (float64, float64) {
	jitter := math.Sin(ticks(e)*0.2) * 12
	target := f.W - px + jitter
	cx, _ := e.Center()
	limit := e.Speed * 1.5
	vx := core.ClampF((target-cx)*0.1, -limit, limit)
	return vx, holdLine(e, f, 0.25)
}

func steerSwoop(e *Enemy, _, _ float64, _ field) (float64, float64) {
	return math.Cos(ticks(e)*0.04) * e.Speed * 1.8 * e.Dir, e.Speed
}

func steerStrafe(e *Enemy, _, _ float64, f field) (float64, float64) {
	vy := holdLine(e, f, 0.15)
	if vy > 0 && e.Ticks <= holdTicks {
		return 0, vy
	}
	if e.X <= 0 {
		e.Dir = 1
	} else if e.X+e.W >= f.W {
		e.Dir = -1
	}
	return e.Dir * e.Speed * 1.5, vy
}

func steerDive(e *Enemy, _, _ float64, _ field) (float64, float64) {
	if e.Ticks < diveTicks {
		return 0, e.Speed * 0.4
	}
	return 0, e.Speed * 3
}

package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Particle is a cosmetic spark. It never takes part in collision.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Glyph   rune
	Color   core.Color
}

const (
	maxParticles = 400
	particleDrag = 0.94
)

// emitBurst scatters count particles from (x, y) in random directions.
// It draws only from the cosmetic RNG.
func emitBurst(s *State, x, y float64, count int, speed float64, life int, glyph rune, color core.Color) {
	for i := 0; i < count && len(s.Particles) < maxParticles; i++ {
		angle := s.FxRNG.Range(0, 2*math.Pi)
		v := s.FxRNG.Range(speed*0.3, speed)
		l := life/2 + s.FxRNG.Intn(life/2+1)
		s.Particles = append(s.Particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * v,
			VY:      math.Sin(angle) * v,
			Life:    l,
			MaxLife: l,
			Glyph:   glyph,
			Color:   color,
		})
	}
}

// explosion is the burst for a destroyed craft, sized by its footprint.
func explosion(s *State, b core.Box) {
	cx, cy := b.Center()
	count := 6 + int(math.Min(b.W*b.H/60, 24))
	emitBurst(s, cx, cy, count, 3, 30, '*', core.ColorOrange)
}

// spark is a small hit flash.
func spark(s *State, x, y float64) {
	emitBurst(s, x, y, 3, 2, 10, '.', core.ColorYellow)
}

// updateParticles moves particles with drag and removes expired ones.
func updateParticles(s *State) {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		p.VX *= particleDrag
		p.VY *= particleDrag
		kept = append(kept, p)
	}
	s.Particles = kept
}

// Fade returns remaining life as a fraction of the initial life.
func (p Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

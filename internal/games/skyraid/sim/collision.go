package sim

import (
	"github.com/vovakirdan/skyraid/internal/core"
)

// resolveCollisions runs the collision pass in its fixed order: player
// bullets vs enemies, player bullets vs boss, enemy bullets vs player,
// enemy bodies vs player, boss body vs player.
//
// Enemy hp is reduced in place as bullets are resolved, so several bullets
// landing in the same frame can stack into a kill.
func resolveCollisions(s *State, out *Outcome) {
	cfg := s.env.Config
	f := s.field()
	margin := cfg.Enemies.CullAbove
	hash := core.NewSpatialHash(-cfg.Enemies.CullSide, -margin,
		f.W+2*cfg.Enemies.CullSide, f.H+margin+cfg.Enemies.CullSide, cfg.Playfield.SpatialCell)
	for i, e := range s.Enemies {
		hash.Insert(e.Box(), i)
	}

	spent := make([]bool, len(s.Bullets))
	var candidates []int

	for bi := range s.Bullets {
		b := &s.Bullets[bi]
		if b.Owner != OwnerPlayer {
			continue
		}
		box := b.Box()

		// Candidates are distinct, so each target is tested at most once per bullet
		candidates = hash.Query(box, candidates[:0])
		for _, idx := range candidates {
			e := &s.Enemies[idx]
			if !e.Alive() || e.Cloaked || !box.Overlaps(e.Box()) {
				continue
			}
			damageEnemy(s, idx, b.Damage, out)
			if !b.Piercing {
				spent[bi] = true
				break
			}
		}
		if spent[bi] {
			continue
		}

		boss := s.Boss
		if boss == nil || !boss.Tangible() || !box.Overlaps(boss.Box()) {
			continue
		}
		// A closed weak point still stops the bullet
		if bossVulnerable(boss) {
			damageBoss(s, b.Damage, out)
		} else {
			spark(s, b.X+b.W/2, b.Y)
		}
		if !b.Piercing {
			spent[bi] = true
		}
	}

	p := &s.Player
	if p.HP > 0 && p.Invincible == 0 {
		ship := p.Box()
		for bi := range s.Bullets {
			b := &s.Bullets[bi]
			if b.Owner != OwnerEnemy || spent[bi] || !b.Box().Overlaps(ship) {
				continue
			}
			spent[bi] = true
			hitPlayer(s, out)
			break
		}
	}

	if p.HP > 0 && p.Invincible == 0 {
		ship := p.Box()
		for i := range s.Enemies {
			e := &s.Enemies[i]
			if !e.Alive() || e.Cloaked || !e.Box().Overlaps(ship) {
				continue
			}
			hitPlayer(s, out)
			damageEnemy(s, i, cfg.Enemies.ContactDamage, out)
			break
		}
	}

	if p.HP > 0 && p.Invincible == 0 && s.Boss != nil && s.Boss.Tangible() && !s.Boss.Entering {
		if s.Boss.Box().Overlaps(p.Box()) {
			hitPlayer(s, out)
		}
	}

	kept := s.Bullets[:0]
	for i, b := range s.Bullets {
		if !spent[i] {
			kept = append(kept, b)
		}
	}
	s.Bullets = kept

	alive := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	s.Enemies = alive
}

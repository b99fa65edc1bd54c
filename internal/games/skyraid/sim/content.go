package sim

import (
	"fmt"
	"sort"
)

// LevelDef is the content of one level: its waves and whether a boss waits
// at the end.
type LevelDef struct {
	World    int
	Level    int
	Name     string
	Waves    []WaveDef
	Boss     bool
	BossKind BossKind
}

// Content supplies level definitions to a session. The simulation only
// consumes content, it never validates it.
type Content interface {
	// Level returns the definition for a world and level.
	Level(world, level int) (LevelDef, bool)
	// Next returns the level following the given one, or false at the end
	// of the campaign.
	Next(world, level int) (int, int, bool)
}

type levelKey struct {
	world, level int
}

// Campaign is an ordered set of levels.
type Campaign struct {
	defs  map[levelKey]LevelDef
	order []levelKey
}

// NewCampaign builds a campaign from level definitions. Later definitions
// replace earlier ones with the same key. Levels are played in world, then
// level order.
func NewCampaign(defs []LevelDef) *Campaign {
	c := &Campaign{defs: make(map[levelKey]LevelDef, len(defs))}
	for _, d := range defs {
		k := levelKey{d.World, d.Level}
		if _, ok := c.defs[k]; !ok {
			c.order = append(c.order, k)
		}
		c.defs[k] = d
	}
	sort.Slice(c.order, func(i, j int) bool {
		if c.order[i].world != c.order[j].world {
			return c.order[i].world < c.order[j].world
		}
		return c.order[i].level < c.order[j].level
	})
	return c
}

// Level implements Content.
func (c *Campaign) Level(world, level int) (LevelDef, bool) {
	d, ok := c.defs[levelKey{world, level}]
	return d, ok
}

// Next implements Content.
func (c *Campaign) Next(world, level int) (int, int, bool) {
	for i, k := range c.order {
		if k.world == world && k.level == level {
			if i+1 < len(c.order) {
				n := c.order[i+1]
				return n.world, n.level, true
			}
			return 0, 0, false
		}
	}
	return 0, 0, false
}

// Levels returns every level in play order.
func (c *Campaign) Levels() []LevelDef {
	out := make([]LevelDef, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.defs[k])
	}
	return out
}

// Len returns the number of levels.
func (c *Campaign) Len() int {
	return len(c.order)
}

// worldTheme is the built-in roster of one world.
type worldTheme struct {
	name   string
	common []EnemyType // Filler for every wave
	elite  []EnemyType // Introduced in later waves
}

var worldThemes = [...]worldTheme{
	{"Outer Rim", []EnemyType{EnemyScout, EnemySwarmer}, []EnemyType{EnemyFighter, EnemyDrone}},
	{"Iron Belt", []EnemyType{EnemyScout, EnemyFighter}, []EnemyType{EnemyBomber, EnemyTurret}},
	{"Ghost Nebula", []EnemyType{EnemyFighter, EnemyDrone}, []EnemyType{EnemyCloaker, EnemyInterceptor}},
	{"Deep Current", []EnemyType{EnemySwarmer, EnemyKamikaze}, []EnemyType{EnemyInterceptor, EnemyBomber}},
	{"Reactor Fields", []EnemyType{EnemyDrone, EnemyFighter}, []EnemyType{EnemyTurret, EnemyMirror}},
	{"Storm Front", []EnemyType{EnemyInterceptor, EnemySwarmer}, []EnemyType{EnemyPhantom, EnemyGunship}},
	{"Siege Line", []EnemyType{EnemyFighter, EnemyKamikaze}, []EnemyType{EnemyGunship, EnemyHeavy}},
	{"Void Gate", []EnemyType{EnemyPhantom, EnemyCloaker}, []EnemyType{EnemyHeavy, EnemyMirror}},
}

var waveFormations = [...]Formation{
	FormationLine, FormationV, FormationGrid, FormationSingleFile, FormationScatter, FormationCircle,
}

// DefaultCampaign returns the built-in campaign: eight worlds of three
// levels each. The third level of every world ends with that world's boss.
func DefaultCampaign() *Campaign {
	defs := make([]LevelDef, 0, len(worldThemes)*3)
	for wi, theme := range worldThemes {
		world := wi + 1
		for level := 1; level <= 3; level++ {
			def := LevelDef{
				World: world,
				Level: level,
				Name:  fmt.Sprintf("%s %d", theme.name, level),
				Waves: themeWaves(theme, world, level),
			}
			if level == 3 {
				def.Boss = true
				def.BossKind = BossKind(wi)
			}
			defs = append(defs, def)
		}
	}
	return NewCampaign(defs)
}

// themeWaves generates a level's waves. Later worlds and levels get more
// waves and larger groups.
func themeWaves(t worldTheme, world, level int) []WaveDef {
	count := 3 + level + world/3
	waves := make([]WaveDef, 0, count)
	for i := 0; i < count; i++ {
		size := 4 + (world+level+i)%4
		w := WaveDef{Groups: []SpawnGroup{{
			Enemy:     t.common[i%len(t.common)],
			Count:     size,
			Formation: waveFormations[(i+level)%len(waveFormations)],
		}}}
		if i >= 2 {
			w.Groups = append(w.Groups, SpawnGroup{
				Enemy:     t.elite[(i+world)%len(t.elite)],
				Count:     1 + (i+level)%3,
				Formation: FormationLine,
			})
		}
		waves = append(waves, w)
	}
	return waves
}

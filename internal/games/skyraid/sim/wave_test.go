package sim

import (
	"reflect"
	"testing"
)

func TestFormationsSpawnAboveTopEdge(t *testing.T) {
	s := combatState(t)
	w, h := 24.0, 20.0
	for f := Formation(0); f < FormationCount; f++ {
		for _, count := range []int{1, 5, 12} {
			slots := formationSlots(s, f, count, w, h)
			if len(slots) != count {
				t.Errorf("%s x%d: %d slots", f, count, len(slots))
			}
			for _, p := range slots {
				if p.Y+h > 0 {
					t.Errorf("%s x%d: slot at y=%.1f reaches the playfield", f, count, p.Y)
				}
				if p.X < 0 || p.X+w > s.field().W {
					t.Errorf("%s x%d: slot at x=%.1f outside the field", f, count, p.X)
				}
			}
		}
	}
}

func TestOnlyScatterUsesRNG(t *testing.T) {
	for f := Formation(0); f < FormationCount; f++ {
		s := combatState(t)
		rng := s.RNG
		formationSlots(s, f, 6, 24, 20)
		if changed := s.RNG != rng; changed != (f == FormationScatter) {
			t.Errorf("%s: RNG used = %v", f, changed)
		}
	}
}

func TestLongFormationsSurviveFirstFrame(t *testing.T) {
	for _, f := range []Formation{FormationSingleFile, FormationGrid, FormationCircle, FormationV} {
		s := combatState(t)
		spawnWave(s, WaveDef{Groups: []SpawnGroup{{Enemy: EnemyHeavy, Count: 12, Formation: f}}})
		if s.LevelSpawned != 12 {
			t.Fatalf("%s: LevelSpawned = %d, expected 12", f, s.LevelSpawned)
		}

		next, _ := Step(s, Input{})
		if len(next.Enemies) != 12 {
			t.Errorf("%s: %d enemies alive after one frame, expected 12", f, len(next.Enemies))
		}
		limit := -s.env.Config.Enemies.CullAbove
		for _, e := range next.Enemies {
			if e.Y+e.H < limit {
				t.Errorf("%s: enemy at y=%.1f is past the cull line %.1f", f, e.Y, limit)
			}
		}
	}
}

func TestParseFormation(t *testing.T) {
	tests := []struct {
		name string
		want Formation
		ok   bool
	}{
		{"line", FormationLine, true},
		{"V_SHAPE", FormationV, true},
		{"single-file", FormationSingleFile, true},
		{"circle", FormationCircle, true},
		{"spiral", FormationLine, false},
	}
	for _, tt := range tests {
		got, ok := ParseFormation(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormation(%q) = %v, %v, expected %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWaveAdvancesAtThreshold(t *testing.T) {
	s := combatState(t)
	s.Waves = []WaveDef{
		{Groups: []SpawnGroup{{Enemy: EnemyScout, Count: 6, Formation: FormationLine}}},
		{Groups: []SpawnGroup{{Enemy: EnemyScout, Count: 2, Formation: FormationLine}}},
	}
	s.Wave = WaveState{Delay: 0}
	out := &Outcome{}

	updateWaves(s, out)
	if len(s.Enemies) != 6 || !s.Wave.Spawned {
		t.Fatalf("Enemies = %d, expected the first wave of 6", len(s.Enemies))
	}
	if countAudio(*out, AudioWaveStart) != 1 {
		t.Errorf("Expected a wave_start event, got %v", out.Audio)
	}

	updateWaves(s, out)
	if s.Wave.Current != 0 {
		t.Fatalf("Advanced with %d enemies alive", len(s.Enemies))
	}

	s.Enemies = s.Enemies[:3]
	updateWaves(s, out)
	if s.Wave.Current != 1 || s.Wave.Delay != s.env.Config.Timers.WaveDelay {
		t.Errorf("Wave = %+v, expected wave 1 with a fresh delay", s.Wave)
	}

	for i := 0; i <= s.env.Config.Timers.WaveDelay; i++ {
		updateWaves(s, out)
	}
	if len(s.Enemies) != 5 {
		t.Errorf("Enemies = %d, expected 5 after the second wave", len(s.Enemies))
	}
}

func TestDefaultCampaign(t *testing.T) {
	c := DefaultCampaign()
	if c.Len() != 24 {
		t.Fatalf("Levels = %d, expected 24", c.Len())
	}

	for _, def := range c.Levels() {
		if len(def.Waves) == 0 {
			t.Errorf("%d-%d has no waves", def.World, def.Level)
		}
		if def.Boss != (def.Level == 3) {
			t.Errorf("%d-%d boss = %v", def.World, def.Level, def.Boss)
		}
		if def.Boss && int(def.BossKind) != def.World-1 {
			t.Errorf("%d-%d boss kind = %d, expected %d", def.World, def.Level, def.BossKind, def.World-1)
		}
	}

	tests := []struct {
		w, l   int
		nw, nl int
		ok     bool
	}{
		{1, 1, 1, 2, true},
		{1, 3, 2, 1, true},
		{8, 3, 0, 0, false},
		{9, 9, 0, 0, false},
	}
	for _, tt := range tests {
		nw, nl, ok := c.Next(tt.w, tt.l)
		if nw != tt.nw || nl != tt.nl || ok != tt.ok {
			t.Errorf("Next(%d, %d) = %d, %d, %v, expected %d, %d, %v",
				tt.w, tt.l, nw, nl, ok, tt.nw, tt.nl, tt.ok)
		}
	}
}

func TestDefaultCampaignIsStable(t *testing.T) {
	if !reflect.DeepEqual(DefaultCampaign().Levels(), DefaultCampaign().Levels()) {
		t.Error("Built-in campaign should be identical on every call")
	}
}

func TestNewCampaignOrdersLevels(t *testing.T) {
	c := NewCampaign([]LevelDef{
		{World: 2, Level: 1, Name: "b"},
		{World: 1, Level: 2, Name: "a2"},
		{World: 1, Level: 1, Name: "a1"},
		{World: 1, Level: 2, Name: "a2 replaced"},
	})

	var names []string
	for _, d := range c.Levels() {
		names = append(names, d.Name)
	}
	want := []string{"a1", "a2 replaced", "b"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Levels = %v, expected %v", names, want)
	}
}

package sim

import (
	"reflect"
	"testing"
)

// combatState returns a session on the playing screen with the first wave
// held back, so tests control every entity on the field.
func combatState(t *testing.T) *State {
	t.Helper()
	s := NewSession(DefaultEnv(), 1, 1, 42)
	s.Screen = ScreenPlaying
	s.ScreenTimer = 0
	s.Wave.Delay = 1 << 20
	return s
}

func countAudio(out Outcome, e AudioEvent) int {
	n := 0
	for _, a := range out.Audio {
		if a == e {
			n++
		}
	}
	return n
}

func TestNewSessionStartsAtFirstLevel(t *testing.T) {
	s := NewSession(DefaultEnv(), 1, 1, 1)

	if s.Player.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", s.Player.Lives)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
	if s.Wave.Current != 0 {
		t.Errorf("Wave.Current = %d, expected 0", s.Wave.Current)
	}
	if len(s.Waves) == 0 {
		t.Error("Expected a non-empty wave list for level 1-1")
	}
	if s.Screen != ScreenBriefing {
		t.Errorf("Screen = %q, expected %q", s.Screen, ScreenBriefing)
	}
}

func TestNewSessionUnknownLevelFallsBack(t *testing.T) {
	s := NewSession(DefaultEnv(), 42, 9, 1)
	if s.World != 1 || s.Level != 1 {
		t.Errorf("Level = %d-%d, expected 1-1", s.World, s.Level)
	}
}

func TestStepDoesNotModifyPrevious(t *testing.T) {
	s := combatState(t)
	spawnEnemy(s, EnemyFighter, 180, 100)
	before := s.Clone()

	Step(s, Input{MoveX: 1, Fire: true})

	if !reflect.DeepEqual(before, s) {
		t.Error("Step modified the state it was given")
	}
}

func TestDeterminism(t *testing.T) {
	env := DefaultEnv()
	s1 := NewSession(env, 1, 1, 12345)
	s2 := NewSession(env, 1, 1, 12345)

	for i := 0; i < 1500; i++ {
		in := Input{Fire: true}
		switch (i / 40) % 4 {
		case 0:
			in.MoveX = -1
		case 2:
			in.MoveX = 1
		}
		if i == 700 {
			in.Bomb = true
		}
		s1, _ = Step(s1, in)
		s2, _ = Step(s2, in)
	}

	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("States diverged: frame %d score %d vs frame %d score %d",
			s1.Frame, s1.Score, s2.Frame, s2.Score)
	}
}

func TestBriefingCountsDownToPlaying(t *testing.T) {
	s := NewSession(DefaultEnv(), 1, 1, 1)
	frames := s.ScreenTimer

	var out Outcome
	for i := 0; i < frames; i++ {
		if s.Screen != ScreenBriefing {
			t.Fatalf("Left briefing early at frame %d", i)
		}
		s, out = Step(s, Input{})
	}

	if s.Screen != ScreenPlaying {
		t.Errorf("Screen = %q, expected %q", s.Screen, ScreenPlaying)
	}
	if len(out.Narrative) != 1 || out.Narrative[0] != NarrativeBriefingDone {
		t.Errorf("Narrative = %v, expected [%s]", out.Narrative, NarrativeBriefingDone)
	}
}

func TestPauseResumesSameScreen(t *testing.T) {
	for _, screen := range []Screen{ScreenPlaying, ScreenBossFight} {
		s := combatState(t)
		s.Screen = screen
		frame := s.Frame

		s, _ = Step(s, Input{Pause: true})
		if s.Screen != ScreenPaused {
			t.Fatalf("Screen = %q, expected %q", s.Screen, ScreenPaused)
		}

		s, _ = Step(s, Input{MoveX: 1, Fire: true})
		if s.Frame != frame {
			t.Errorf("Frame advanced while paused: %d -> %d", frame, s.Frame)
		}
		if len(s.Bullets) != 0 {
			t.Errorf("Fired %d bullets while paused", len(s.Bullets))
		}

		s, _ = Step(s, Input{Pause: true})
		if s.Screen != screen {
			t.Errorf("Screen = %q after unpause, expected %q", s.Screen, screen)
		}
	}
}

func TestPauseIgnoredOutsideCombat(t *testing.T) {
	s := NewSession(DefaultEnv(), 1, 1, 1)
	s, _ = Step(s, Input{Pause: true})
	if s.Screen != ScreenBriefing {
		t.Errorf("Screen = %q, expected %q", s.Screen, ScreenBriefing)
	}
}

func TestScoutKillScoresBaseValue(t *testing.T) {
	s := combatState(t)
	s.Player.WeaponLevel = 3
	px, _ := s.Player.Center()
	spawnEnemy(s, EnemyScout, px-12, s.Player.Y-40)
	base := s.Score

	var out Outcome
	in := Input{Fire: true}
	for i := 0; i < 10 && s.Kills == 0; i++ {
		s, out = Step(s, in)
		in = Input{}
	}

	if s.Kills != 1 {
		t.Fatalf("Kills = %d, expected 1", s.Kills)
	}
	if got := s.Score - base; got != 100 {
		t.Errorf("Score gained = %d, expected 100", got)
	}
	if s.Combo != 1 {
		t.Errorf("Combo = %d, expected 1", s.Combo)
	}
	if s.ComboTimer != 150 {
		t.Errorf("ComboTimer = %d, expected 150", s.ComboTimer)
	}
	if countAudio(out, AudioEnemyDestroyed) != 1 {
		t.Errorf("Expected one enemy_destroyed event, got %v", out.Audio)
	}
}

func TestShieldAbsorbsContactHit(t *testing.T) {
	tests := []struct {
		name       string
		remaining  int
		wantBuff   bool
		wantRemain int
	}{
		{"drains", 600, true, 600 - 150 - 1},
		{"breaks", 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := combatState(t)
			s.addBuff(PowerUpShield, tt.remaining)
			hp := s.Player.HP
			cx, cy := s.Player.Center()
			spawnEnemy(s, EnemyHeavy, cx-22, cy-18)
			s.Enemies[0].FireTimer = 1000

			s, out := Step(s, Input{})

			if s.Player.HP != hp {
				t.Errorf("HP = %d, expected %d", s.Player.HP, hp)
			}
			if s.hasBuff(PowerUpShield) != tt.wantBuff {
				t.Errorf("Shield active = %v, expected %v", s.hasBuff(PowerUpShield), tt.wantBuff)
			}
			if got := s.BuffRemaining(PowerUpShield); got != tt.wantRemain {
				t.Errorf("Shield remaining = %d, expected %d", got, tt.wantRemain)
			}
			if countAudio(out, AudioShieldHit) != 1 {
				t.Errorf("Expected one shield_hit event, got %v", out.Audio)
			}
		})
	}
}

func TestHitWithoutShield(t *testing.T) {
	s := combatState(t)
	hp := s.Player.HP

	hitPlayer(s, &Outcome{})
	if s.Player.HP != hp-1 {
		t.Errorf("HP = %d, expected %d", s.Player.HP, hp-1)
	}
	if s.Player.Invincible != 90 {
		t.Errorf("Invincible = %d, expected 90", s.Player.Invincible)
	}

	// Invincibility frames absorb the next hit
	hitPlayer(s, &Outcome{})
	if s.Player.HP != hp-1 {
		t.Errorf("HP = %d during invincibility, expected %d", s.Player.HP, hp-1)
	}
}

func TestLifeLostRespawns(t *testing.T) {
	s := combatState(t)
	s.Player.HP = 1
	s.Player.WeaponLevel = 3
	s.Combo = 4
	lives := s.Player.Lives

	hitPlayer(s, &Outcome{})

	if s.Player.Lives != lives-1 {
		t.Errorf("Lives = %d, expected %d", s.Player.Lives, lives-1)
	}
	if s.Player.HP != s.Player.MaxHP {
		t.Errorf("HP = %d, expected full %d", s.Player.HP, s.Player.MaxHP)
	}
	if s.Player.WeaponLevel != 2 {
		t.Errorf("WeaponLevel = %d, expected 2", s.Player.WeaponLevel)
	}
	if s.Player.Invincible != 150 {
		t.Errorf("Invincible = %d, expected 150", s.Player.Invincible)
	}
	if s.Combo != 0 {
		t.Errorf("Combo = %d, expected 0", s.Combo)
	}
	if s.Deaths != 1 {
		t.Errorf("Deaths = %d, expected 1", s.Deaths)
	}
}

func TestGameOverWhenLivesExhausted(t *testing.T) {
	s := combatState(t)
	s.Player.Lives = 1
	s.Player.HP = 1
	cx, cy := s.Player.Center()
	spawnBullet(s, cx, cy, 0, 0, 6, 6, 1, OwnerEnemy, false)

	s, out := Step(s, Input{})

	if !out.GameOver {
		t.Error("Expected GameOver flag")
	}
	if s.Screen != ScreenGameOver {
		t.Errorf("Screen = %q, expected %q", s.Screen, ScreenGameOver)
	}
	if s.Player.HP != 0 || s.Player.Lives != 0 {
		t.Errorf("Player hp/lives = %d/%d, expected 0/0", s.Player.HP, s.Player.Lives)
	}

	// Terminal: further frames change nothing but the background
	score := s.Score
	s, out = Step(s, Input{Fire: true, Bomb: true})
	if s.Screen != ScreenGameOver || s.Score != score || out.GameOver {
		t.Error("Game over screen should be terminal")
	}
}

func TestBombClearsSkyAndHitsBoss(t *testing.T) {
	s := combatState(t)
	s.Screen = ScreenBossFight
	s.BossKind = BossHiveQueen
	spawnBoss(s)
	s.Boss.Entering = false
	s.Boss.Y = s.Boss.RestY
	s.Boss.FireTimer = 1000
	s.Boss.SpawnTimer = 1000
	bossHP := s.Boss.HP

	spawnEnemy(s, EnemyScout, 60, 200)
	spawnEnemy(s, EnemyScout, 300, 200)
	spawnBullet(s, 100, 300, 0, 1, 6, 6, 1, OwnerEnemy, false)
	bombs := s.Player.Bombs
	base := s.Score

	s, out := Step(s, Input{Bomb: true})

	if len(s.Enemies) != 0 {
		t.Errorf("Enemies = %d, expected 0", len(s.Enemies))
	}
	for _, b := range s.Bullets {
		if b.Owner == OwnerEnemy {
			t.Error("Enemy bullets should be cleared")
			break
		}
	}
	// 100 x1 then 100 x1.5
	if got := s.Score - base; got != 250 {
		t.Errorf("Score gained = %d, expected 250", got)
	}
	if s.Combo != 2 {
		t.Errorf("Combo = %d, expected 2", s.Combo)
	}
	if s.Boss.HP != bossHP-50 {
		t.Errorf("Boss HP = %d, expected %d", s.Boss.HP, bossHP-50)
	}
	if s.Player.Bombs != bombs-1 {
		t.Errorf("Bombs = %d, expected %d", s.Player.Bombs, bombs-1)
	}
	if countAudio(out, AudioBomb) != 1 {
		t.Errorf("Expected one bomb event, got %v", out.Audio)
	}

	// Cooldown blocks an immediate second bomb
	s, _ = Step(s, Input{Bomb: true})
	if s.Player.Bombs != bombs-1 {
		t.Errorf("Bombs = %d after cooldown press, expected %d", s.Player.Bombs, bombs-1)
	}
}

func TestLevelCompleteBannerAdvances(t *testing.T) {
	s := combatState(t)
	s.Wave.Current = len(s.Waves)
	s.Score = 1234
	s.Player.WeaponLevel = 4
	s.addBuff(PowerUpMagnet, 5000)

	s, out := Step(s, Input{})

	if !out.LevelComplete || out.BossDefeated {
		t.Fatalf("Flags = complete %v boss %v, expected true/false", out.LevelComplete, out.BossDefeated)
	}
	if out.Summary == nil || out.Summary.Stars != 3 {
		t.Errorf("Summary = %+v, expected 3 stars", out.Summary)
	}
	if s.Screen != ScreenLevelComplete {
		t.Fatalf("Screen = %q, expected %q", s.Screen, ScreenLevelComplete)
	}

	for i := 0; i < 500 && s.Screen == ScreenLevelComplete; i++ {
		s, out = Step(s, Input{})
		if out.LevelComplete {
			t.Fatal("LevelComplete should only be set on the completing frame")
		}
	}

	if s.World != 1 || s.Level != 2 || s.Screen != ScreenBriefing {
		t.Errorf("Now at %d-%d %q, expected 1-2 briefing", s.World, s.Level, s.Screen)
	}
	if s.Score != 1234 || s.Player.WeaponLevel != 4 || !s.hasBuff(PowerUpMagnet) {
		t.Error("Score, weapon level and buffs should carry over")
	}
}

func TestBossDefeatWaitsForConfirm(t *testing.T) {
	s := NewSession(DefaultEnv(), 1, 3, 7)
	s.Screen = ScreenBossFight
	spawnBoss(s)
	s.Boss.Entering = false
	s.Boss.Y = s.Boss.RestY
	s.Boss.HP = 1
	s.Boss.MouthOpen = true
	s.Boss.MouthTimer = 60
	spawnEnemy(s, EnemySwarmer, 50, 200)
	cx, cy := s.Boss.Center()
	spawnBullet(s, cx, cy, 0, 0, 4, 10, 1, OwnerPlayer, false)

	s, out := Step(s, Input{})

	if !out.BossDefeated || !out.LevelComplete {
		t.Fatalf("Flags = boss %v complete %v, expected both", out.BossDefeated, out.LevelComplete)
	}
	if s.Boss != nil || len(s.Enemies) != 0 {
		t.Error("Boss and enemies should be cleared")
	}
	if !s.AwaitConfirm {
		t.Error("Expected to wait for confirm")
	}

	for i := 0; i < 300; i++ {
		s, _ = Step(s, Input{})
	}
	if s.Screen != ScreenLevelComplete {
		t.Fatalf("Screen = %q, expected to keep waiting", s.Screen)
	}

	s, _ = Step(s, Input{Confirm: true})
	if s.World != 2 || s.Level != 1 {
		t.Errorf("Now at %d-%d, expected 2-1", s.World, s.Level)
	}
}

func TestLastLevelEndsCampaign(t *testing.T) {
	env := NewEnv(DefaultEnv().Config, DefaultEnv().Progression, NewCampaign([]LevelDef{
		{World: 1, Level: 1, Name: "Only"},
	}))
	s := NewSession(env, 1, 1, 1)
	s.Screen = ScreenPlaying

	s, _ = Step(s, Input{})
	if s.Screen != ScreenLevelComplete {
		t.Fatalf("Screen = %q, expected %q", s.Screen, ScreenLevelComplete)
	}

	var out Outcome
	for i := 0; i < 500 && s.Screen == ScreenLevelComplete; i++ {
		s, out = Step(s, Input{})
	}
	if s.Screen != ScreenEnding {
		t.Errorf("Screen = %q, expected %q", s.Screen, ScreenEnding)
	}
	if len(out.Narrative) != 1 || out.Narrative[0] != NarrativeEnding {
		t.Errorf("Narrative = %v, expected [%s]", out.Narrative, NarrativeEnding)
	}
}

func TestInvariantsHoldOverLongRuns(t *testing.T) {
	for kind := BossKind(0); kind < BossKindCount; kind++ {
		world := int(kind) + 1
		s := NewSession(DefaultEnv(), world, 3, int64(world)*31)
		phases := map[ID]int{}

		for i := 0; i < 4000 && !s.Screen.Terminal(); i++ {
			in := Input{Fire: true, Confirm: true, MoveX: float64((i/50)%3 - 1)}
			if i%400 == 399 {
				in.Bomb = true
			}
			s, _ = Step(s, in)

			if s.Player.HP < 0 || s.Player.HP > s.Player.MaxHP {
				t.Fatalf("%s: player hp %d out of range", kind, s.Player.HP)
			}
			for _, e := range s.Enemies {
				if e.HP <= 0 {
					t.Fatalf("%s: enemy %d survived with hp %d", kind, e.ID, e.HP)
				}
			}
			seen := map[PowerUpType]bool{}
			for _, b := range s.Buffs {
				if seen[b.Type] {
					t.Fatalf("%s: duplicate buff %s", kind, b.Type)
				}
				seen[b.Type] = true
			}
			if b := s.Boss; b != nil {
				if b.HP < 0 {
					t.Fatalf("%s: boss hp %d", kind, b.HP)
				}
				if b.Phase < phases[b.ID] {
					t.Fatalf("%s: boss phase went from %d to %d", kind, phases[b.ID], b.Phase)
				}
				phases[b.ID] = b.Phase
			}
		}
	}
}

// idTracker checks that every identifier handed out in a session is new.
type idTracker struct {
	live map[ID]bool
	gone map[ID]bool
	max  ID
}

func newIDTracker() *idTracker {
	return &idTracker{live: map[ID]bool{}, gone: map[ID]bool{}}
}

func (tr *idTracker) check(t *testing.T, s *State) {
	t.Helper()
	var ids []ID
	for _, e := range s.Enemies {
		ids = append(ids, e.ID)
	}
	for _, b := range s.Bullets {
		ids = append(ids, b.ID)
	}
	for _, p := range s.Pickups {
		ids = append(ids, p.ID)
	}
	if s.Boss != nil {
		ids = append(ids, s.Boss.ID)
	}

	now := make(map[ID]bool, len(ids))
	prevMax := tr.max
	for _, id := range ids {
		if now[id] {
			t.Fatalf("Frame %d: id %d used by two entities", s.Frame, id)
		}
		now[id] = true
		if tr.gone[id] {
			t.Fatalf("Frame %d: id %d reused after its entity was removed", s.Frame, id)
		}
		if id > s.NextID {
			t.Fatalf("Frame %d: id %d above NextID %d", s.Frame, id, s.NextID)
		}
		if !tr.live[id] {
			if id <= prevMax {
				t.Fatalf("Frame %d: new id %d not above earlier ids (max %d)", s.Frame, id, prevMax)
			}
			tr.max = max(tr.max, id)
		}
	}
	for id := range tr.live {
		if !now[id] {
			tr.gone[id] = true
		}
	}
	tr.live = now
}

func TestIDsNeverReused(t *testing.T) {
	s := NewSession(DefaultEnv(), 1, 2, 9)
	s.Player.Lives = 99
	tr := newIDTracker()
	fire := Input{Fire: true, Confirm: true}

	// Waves, enemy fire and a pickup on the first level
	for i := 0; i < 600 && !s.Screen.Terminal(); i++ {
		if i == 300 {
			spawnPickup(s, PowerUpBomb, 100, 50)
		}
		s, _ = Step(s, fire)
		tr.check(t, s)
	}
	if s.Screen.Terminal() {
		t.Fatalf("Session ended early on %q", s.Screen)
	}

	// Finish the level and let the banner load the next one
	if s.Level == 2 && s.Screen != ScreenLevelComplete {
		s.Screen = ScreenPlaying
		s.Wave.Current = len(s.Waves)
		s.Enemies = nil
	}
	before := s.NextID
	for i := 0; i < 1000 && s.Level == 2; i++ {
		s, _ = Step(s, Input{})
		tr.check(t, s)
	}
	if s.World != 1 || s.Level != 3 {
		t.Fatalf("Now at %d-%d, expected 1-3", s.World, s.Level)
	}
	if s.NextID < before {
		t.Errorf("NextID = %d after level load, expected at least %d", s.NextID, before)
	}

	// Boss level: skip the waves and fight the boss
	if s.Boss == nil {
		s.Screen = ScreenPlaying
		s.ScreenTimer = 0
		s.Wave.Current = len(s.Waves)
		s.Enemies = nil
	}
	sawBoss := false
	for i := 0; i < 1500 && !s.Screen.Terminal() && s.Screen != ScreenLevelComplete; i++ {
		s, _ = Step(s, fire)
		tr.check(t, s)
		if s.Boss != nil {
			sawBoss = true
		}
	}
	if !sawBoss {
		t.Error("Boss never spawned")
	}
	if tr.max == 0 {
		t.Error("No identifiers were allocated")
	}
}

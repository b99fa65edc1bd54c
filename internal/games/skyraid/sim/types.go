// Package sim is the pure frame-by-frame simulation of Sky Raid.
//
// All gameplay state lives in one State snapshot. Step clones the previous
// snapshot, applies one frame of input and returns the successor together
// with the frame's Outcome. The package performs no I/O and never logs.
package sim

import (
	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// ID identifies an entity within a session. IDs are never reused.
type ID uint64

// Screen is the top-level state of a play session.
type Screen string

const (
	ScreenBriefing      Screen = "briefing"       // Countdown before the first wave
	ScreenPlaying       Screen = "playing"        // Waves in progress
	ScreenBossIntro     Screen = "boss_intro"     // Countdown while the boss enters
	ScreenBossFight     Screen = "boss_fight"     // Boss encounter
	ScreenLevelComplete Screen = "level_complete" // Banner or waiting for confirm
	ScreenGameOver      Screen = "game_over"      // No lives left, terminal
	ScreenPaused        Screen = "paused"         // Frozen, resumes to ResumeScreen
	ScreenEnding        Screen = "ending"         // Campaign finished, terminal
)

// Combat reports whether entities interact on this screen.
func (s Screen) Combat() bool {
	return s == ScreenPlaying || s == ScreenBossFight
}

// Terminal reports whether the session can no longer progress.
func (s Screen) Terminal() bool {
	return s == ScreenGameOver || s == ScreenEnding
}

// Owner tells whose projectile a bullet is.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// AudioEvent is a sound cue emitted for the audio collaborator.
type AudioEvent string

const (
	AudioPlayerShot     AudioEvent = "player_shot"
	AudioEnemyShot      AudioEvent = "enemy_shot"
	AudioEnemyHit       AudioEvent = "enemy_hit"
	AudioEnemyDestroyed AudioEvent = "enemy_destroyed"
	AudioPlayerHit      AudioEvent = "player_hit"
	AudioShieldHit      AudioEvent = "shield_hit"
	AudioLifeLost       AudioEvent = "life_lost"
	AudioPowerUp        AudioEvent = "powerup"
	AudioBomb           AudioEvent = "bomb"
	AudioBossHit        AudioEvent = "boss_hit"
	AudioBossPhase      AudioEvent = "boss_phase"
	AudioBossCharge     AudioEvent = "boss_charge"
	AudioBossTeleport   AudioEvent = "boss_teleport"
	AudioBossDefeated   AudioEvent = "boss_defeated"
	AudioWaveStart      AudioEvent = "wave_start"
	AudioLevelComplete  AudioEvent = "level_complete"
	AudioGameOver       AudioEvent = "game_over"
)

// Narrative triggers handed to the dialog collaborator.
const (
	NarrativeBriefingDone  = "briefing_done"
	NarrativeBossIntroDone = "boss_intro_done"
	NarrativeBossPhase     = "boss_phase"
	NarrativeBossDefeated  = "boss_defeated"
	NarrativeLevelComplete = "level_complete"
	NarrativeGameOver      = "game_over"
	NarrativeEnding        = "ending"
)

// Input is one frame of player intent.
type Input struct {
	MoveX   float64 // -1 (left) .. 1 (right)
	MoveY   float64 // -1 (up) .. 1 (down)
	Fire    bool
	Bomb    bool
	Pause   bool // Toggles pause
	Confirm bool // Advances past a finished level
}

// sanitized clamps axes and drops non-finite values.
func (in Input) sanitized() Input {
	in.MoveX = core.ClampF(core.Finite(in.MoveX, 0), -1, 1)
	in.MoveY = core.ClampF(core.Finite(in.MoveY, 0), -1, 1)
	return in
}

// Player is the player craft.
type Player struct {
	X, Y         float64 // Top-left corner
	W, H         float64 // Current hitbox, changed by shrink/expand
	BaseW, BaseH float64
	HP, MaxHP    int
	Speed        float64
	WeaponLevel  int
	FireTimer    int // Frames until the next shot is allowed
	Invincible   int // Frames of invulnerability left
	Lives        int
	Bombs        int
	BombCooldown int
}

// Box returns the player's hitbox.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Center returns the center of the player's hitbox.
func (p Player) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// Pickup is a falling power-up.
type Pickup struct {
	ID     ID
	Type   PowerUpType
	X, Y   float64
	W, H   float64
	VY     float64
	Homing bool // Pulled toward the player by a magnet
}

// Box returns the pickup's hitbox.
func (p Pickup) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// ActiveBuff is a timed modifier on the player. At most one per type exists.
type ActiveBuff struct {
	Type      PowerUpType
	Remaining int
}

// LevelSummary is the stars/credits-eligible result of a finished level.
type LevelSummary struct {
	World        int
	Level        int
	Score        int // Score earned during this level
	Deaths       int
	Kills        int
	Spawned      int
	KillRatio    float64
	Stars        int
	Credits      int
	BossDefeated bool
}

// Outcome is emitted after every frame for progression and persistence.
// Counters are cumulative for the session; flags are set only on the
// frame the event happened.
type Outcome struct {
	Score    int
	XP       int
	Kills    int
	Deaths   int
	MaxCombo int

	Audio     []AudioEvent
	Narrative []string

	LevelComplete bool
	BossDefeated  bool
	BossPhase     int // New boss phase, 0 if no transition this frame
	GameOver      bool
	Summary       *LevelSummary
}

func (o *Outcome) audio(e AudioEvent) {
	o.Audio = append(o.Audio, e)
}

func (o *Outcome) narrate(trigger string) {
	o.Narrative = append(o.Narrative, trigger)
}

// Env is the read-only environment a session runs in. It is shared by every
// snapshot of a session and never modified by the simulation.
type Env struct {
	Config      config.SkyRaidConfig
	Progression config.Progression
	Content     Content
}

// NewEnv creates an environment. A nil content uses the built-in campaign.
func NewEnv(cfg config.SkyRaidConfig, prog config.Progression, content Content) *Env {
	if content == nil {
		content = DefaultCampaign()
	}
	return &Env{Config: cfg, Progression: prog, Content: content}
}

// DefaultEnv returns an environment with default tuning, no upgrades and
// the built-in campaign.
func DefaultEnv() *Env {
	return NewEnv(config.DefaultSkyRaidConfig(), config.DefaultProgression(), nil)
}

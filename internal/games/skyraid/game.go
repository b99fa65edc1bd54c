// Package skyraid adapts the Sky Raid simulation to the terminal platform.
//
// The Game type owns one session snapshot and advances it through sim.Step
// once per tick. It translates platform input into simulation input, renders
// the playfield into the character screen and reports finished levels.
package skyraid

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
	"github.com/vovakirdan/skyraid/internal/registry"
)

// GameID is the registry identifier.
const GameID = "skyraid"

// holdTicks is how long a key press keeps its direction active. Terminals
// deliver presses and repeats, never releases.
const holdTicks = 8

// Minimum screen size for a playable layout
const (
	minScreenW = 40
	minScreenH = 16
)

// Session settings set via CLI before the game is created
var (
	configPath       string
	upgradesPath     string
	difficultyPreset config.DifficultyPreset
	startWorld       = 1
	startLevel       = 1
	content          sim.Content
	autoFire         = true
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom tuning config path.
func SetConfigPath(path string) {
	configPath = path
}

// SetUpgradesPath sets the custom progression file path.
func SetUpgradesPath(path string) {
	upgradesPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStart sets the level new sessions begin at.
func SetStart(world, level int) {
	startWorld = world
	startLevel = level
}

// SetContent sets the level source. Nil restores the built-in campaign.
func SetContent(c sim.Content) {
	content = c
}

// SetAutoFire toggles continuous fire. With auto-fire off the fire key
// fires for a short hold window after each press.
func SetAutoFire(on bool) {
	autoFire = on
}

// SetLogger sets the logger used for session events. Nil silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadEnv builds a simulation environment from the configured tuning,
// progression, difficulty preset and content. Files that fail to load
// are replaced by the defaults with a warning.
func LoadEnv() *sim.Env {
	cfg, err := config.LoadSkyRaid(configPath)
	if err != nil {
		logger.Warn("using default tuning", "path", configPath, "err", err)
		cfg = config.DefaultSkyRaidConfig()
	}
	prog, err := config.LoadProgression(upgradesPath)
	if err != nil {
		logger.Warn("using default progression", "path", upgradesPath, "err", err)
		prog = config.DefaultProgression()
	}
	if difficultyPreset != "" {
		config.ApplySkyRaidPreset(&cfg, difficultyPreset)
		config.ApplyProgressionPreset(&prog, difficultyPreset)
	}
	return sim.NewEnv(cfg, prog, content)
}

// heldAxis keeps a direction active between key repeats.
type heldAxis struct {
	dir   float64
	ticks int
}

func (a *heldAxis) press(dir float64) {
	a.dir = dir
	a.ticks = holdTicks
}

func (a *heldAxis) release() {
	a.dir = 0
	a.ticks = 0
}

// next returns the direction for this tick and ages the hold.
func (a *heldAxis) next() float64 {
	if a.ticks <= 0 {
		return 0
	}
	a.ticks--
	return a.dir
}

// Game implements registry.Game for Sky Raid.
type Game struct {
	runtime core.RuntimeConfig
	env     *sim.Env
	state   *sim.State
	last    sim.Outcome

	axisX     heldAxis
	axisY     heldAxis
	fireHeld  int
	autoFire  bool
	log       *log.Logger
	lastPhase int

	// Start level chosen for this instance, zero uses SetStart
	world int
	level int

	screenTooSmall bool
}

// New creates a new Sky Raid game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sky Raid"
}

// Reset starts a new session at the configured start level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger
	g.autoFire = autoFire

	g.env = LoadEnv()
	world, level := startWorld, startLevel
	if g.world > 0 {
		world, level = g.world, g.level
	}
	g.state = sim.NewSession(g.env, world, level, runtime.Seed)
	g.last = sim.Outcome{}
	g.axisX.release()
	g.axisY.release()
	g.fireHeld = 0
	g.lastPhase = 0

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.log.Debug("session started", "world", g.state.World, "level", g.state.Level, "seed", runtime.Seed)
}

// StartAt selects the level this instance starts at on its next Reset.
func (g *Game) StartAt(world, level int) {
	g.world = world
	g.level = level
}

// Resize adapts the layout to a new screen size. The session continues.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < minScreenW || height < minScreenH
}

// Step advances the session by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.state.Screen.Terminal() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	prevScreen := g.state.Screen
	next, out := sim.Step(g.state, g.input(in))
	g.state = next
	g.last = out
	g.logOutcome(prevScreen, out)

	return g.result(out)
}

// input converts one platform frame into simulation input.
func (g *Game) input(in core.InputFrame) sim.Input {
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case left && right:
		g.axisX.release()
	case left:
		g.axisX.press(-1)
	case right:
		g.axisX.press(1)
	}

	up, down := in.Has(core.ActionUp), in.Has(core.ActionDown)
	switch {
	case up && down:
		g.axisY.release()
	case up:
		g.axisY.press(-1)
	case down:
		g.axisY.press(1)
	}

	if in.Has(core.ActionFire) {
		g.fireHeld = holdTicks
	}
	fire := g.autoFire || g.fireHeld > 0
	if g.fireHeld > 0 {
		g.fireHeld--
	}

	return sim.Input{
		MoveX:   g.axisX.next(),
		MoveY:   g.axisY.next(),
		Fire:    fire,
		Bomb:    in.Has(core.ActionBomb),
		Pause:   in.Has(core.ActionPause),
		Confirm: in.Has(core.ActionConfirm),
	}
}

// result builds the platform step result from a frame outcome.
func (g *Game) result(out sim.Outcome) core.StepResult {
	res := core.StepResult{State: g.State()}
	for _, e := range out.Audio {
		res.Events = append(res.Events, string(e))
	}
	if sum := out.Summary; sum != nil {
		res.Level = &core.LevelResult{
			World:        sum.World,
			Level:        sum.Level,
			Score:        sum.Score,
			Stars:        sum.Stars,
			Credits:      sum.Credits,
			Deaths:       sum.Deaths,
			Kills:        sum.Kills,
			KillRatio:    sum.KillRatio,
			BossDefeated: sum.BossDefeated,
		}
	}
	return res
}

func (g *Game) logOutcome(prev sim.Screen, out sim.Outcome) {
	s := g.state
	if out.BossPhase > 0 && out.BossPhase != g.lastPhase {
		g.lastPhase = out.BossPhase
		g.log.Debug("boss phase", "boss", s.BossKind.String(), "phase", out.BossPhase)
	}
	if out.BossDefeated {
		g.log.Info("boss defeated", "boss", s.BossKind.String(), "world", s.World)
		g.lastPhase = 0
	}
	if sum := out.Summary; sum != nil {
		g.log.Info("level complete",
			"world", sum.World, "level", sum.Level,
			"score", sum.Score, "stars", sum.Stars, "credits", sum.Credits)
	}
	if out.GameOver {
		g.log.Info("game over", "score", out.Score, "kills", out.Kills, "world", s.World, "level", s.Level)
	}
	if s.Screen == sim.ScreenEnding && prev != sim.ScreenEnding {
		g.log.Info("campaign complete", "score", out.Score, "max_combo", out.MaxCombo)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.Screen.Terminal(),
		Paused:   g.state.Screen == sim.ScreenPaused,
	}
}

// Session returns the current simulation snapshot. It must not be modified.
func (g *Game) Session() *sim.State {
	return g.state
}

// LastOutcome returns the outcome of the most recent frame.
func (g *Game) LastOutcome() sim.Outcome {
	return g.last
}

var (
	_ registry.Resizable     = (*Game)(nil)
	_ registry.LevelSelector = (*Game)(nil)
)

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

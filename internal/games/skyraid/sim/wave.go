package sim

// SpawnGroup is one {enemy type, count, formation} triple of a wave.
type SpawnGroup struct {
	Enemy     EnemyType
	Count     int
	Formation Formation
}

// WaveDef is one spawn batch of a level. All groups spawn together.
type WaveDef struct {
	Groups []SpawnGroup
}

// Size returns the number of enemies the wave spawns.
func (w WaveDef) Size() int {
	n := 0
	for _, g := range w.Groups {
		n += max(0, g.Count)
	}
	return n
}

// WaveState tracks progress through a level's waves.
type WaveState struct {
	Current int  // Index of the wave being spawned or fought
	Delay   int  // Frames before Current may spawn
	Spawned bool // Current has been spawned
}

// Exhausted reports whether every wave has been spawned and advanced past.
func (w WaveState) Exhausted(total int) bool {
	return w.Current >= total
}

// spawnWave places every group of a wave in its formation.
func spawnWave(s *State, w WaveDef) {
	for _, g := range w.Groups {
		st := statsFor(g.Enemy)
		for _, p := range formationSlots(s, g.Formation, g.Count, st.W, st.H) {
			spawnEnemy(s, g.Enemy, p.X, p.Y)
		}
	}
}

// updateWaves runs the wave orchestrator for one frame. The next wave is
// only released once the live enemy count drops to the advance threshold.
func updateWaves(s *State, out *Outcome) {
	if s.Wave.Exhausted(len(s.Waves)) {
		return
	}
	if !s.Wave.Spawned {
		if s.Wave.Delay > 0 {
			s.Wave.Delay--
			return
		}
		spawnWave(s, s.Waves[s.Wave.Current])
		s.Wave.Spawned = true
		out.audio(AudioWaveStart)
		return
	}
	if len(s.Enemies) <= s.env.Config.Timers.WaveAdvanceAt {
		s.Wave.Current++
		s.Wave.Spawned = false
		s.Wave.Delay = s.env.Config.Timers.WaveDelay
	}
}

// wavesCleared reports whether the level's waves are done and the sky is empty.
func wavesCleared(s *State) bool {
	return s.Wave.Exhausted(len(s.Waves)) && len(s.Enemies) == 0
}

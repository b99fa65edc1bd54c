package sim

// togglePause enters or leaves the paused screen. Only combat screens can
// be paused.
func togglePause(s *State) bool {
	switch {
	case s.Screen == ScreenPaused:
		s.Screen = s.ResumeScreen
		s.ResumeScreen = ""
		return true
	case s.Screen.Combat():
		s.ResumeScreen = s.Screen
		s.Screen = ScreenPaused
		return true
	}
	return false
}

// updateBriefing counts the briefing down while the background moves.
func updateBriefing(s *State, out *Outcome) {
	updateParticles(s)
	s.ScreenTimer--
	if s.ScreenTimer > 0 {
		return
	}
	s.ScreenTimer = 0
	s.Screen = ScreenPlaying
	out.narrate(NarrativeBriefingDone)
}

// enterBossIntro creates the boss and starts the intro countdown.
func enterBossIntro(s *State) {
	clearEnemyBullets(s)
	spawnBoss(s)
	s.Screen = ScreenBossIntro
	s.ScreenTimer = s.env.Config.Timers.BossIntro
}

// updateBossIntro counts the intro down. Only the boss entrance and the
// background run.
func updateBossIntro(s *State, out *Outcome) {
	updateBoss(s, out)
	updateParticles(s)
	s.ScreenTimer--
	if s.ScreenTimer > 0 {
		return
	}
	s.ScreenTimer = 0
	s.Screen = ScreenBossFight
	out.narrate(NarrativeBossIntroDone)
}

// updateLevelComplete waits for the banner or a confirm, then moves on.
func updateLevelComplete(s *State, in Input, out *Outcome) {
	updateParticles(s)
	if s.AwaitConfirm {
		if in.Confirm {
			advanceLevel(s, out)
		}
		return
	}
	s.ScreenTimer--
	if s.ScreenTimer <= 0 {
		advanceLevel(s, out)
	}
}

// completeLevel resolves a finished level. A boss level waits for a
// confirm; any other level shows a timed banner.
func completeLevel(s *State, bossDefeated bool, out *Outcome) {
	s.Summary = summarize(s, bossDefeated)
	s.Screen = ScreenLevelComplete
	s.AwaitConfirm = bossDefeated
	s.ScreenTimer = 0
	if !bossDefeated {
		s.ScreenTimer = s.env.Config.Timers.Banner
	}

	sum := *s.Summary
	out.LevelComplete = true
	out.BossDefeated = bossDefeated
	out.Summary = &sum
	out.audio(AudioLevelComplete)
	if bossDefeated {
		out.narrate(NarrativeBossDefeated)
	}
	out.narrate(NarrativeLevelComplete)
}

// finishBoss force-clears the sky after the boss falls.
func finishBoss(s *State, out *Outcome) {
	s.Enemies = nil
	clearEnemyBullets(s)
	s.Boss = nil
	completeLevel(s, true, out)
}

// advanceLevel loads the next level with carry-over, or ends the campaign.
func advanceLevel(s *State, out *Outcome) {
	world, level, ok := s.env.Content.Next(s.World, s.Level)
	if !ok {
		s.Screen = ScreenEnding
		s.AwaitConfirm = false
		out.narrate(NarrativeEnding)
		return
	}
	s.loadLevel(world, level)
}

// gameOver ends the session.
func gameOver(s *State, out *Outcome) {
	s.Screen = ScreenGameOver
	s.GameOver = true
	out.GameOver = true
	out.audio(AudioGameOver)
	out.narrate(NarrativeGameOver)
}

// checkTransitions runs at the end of a combat frame.
func checkTransitions(s *State, out *Outcome) {
	if s.Player.Lives == 0 && s.Player.HP == 0 {
		gameOver(s, out)
		return
	}
	switch s.Screen {
	case ScreenPlaying:
		if !wavesCleared(s) {
			return
		}
		if s.BossLevel {
			enterBossIntro(s)
			return
		}
		completeLevel(s, false, out)
	case ScreenBossFight:
		if s.Boss == nil || s.Boss.Defeated {
			finishBoss(s, out)
		}
	}
}

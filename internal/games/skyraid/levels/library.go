package levels

import (
	"sync"

	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

// Library is level content that can be replaced while sessions are running.
// It implements sim.Content; a session sees new content from its next level
// load onward.
type Library struct {
	mu       sync.RWMutex
	campaign *sim.Campaign
}

// NewLibrary creates a library. A nil campaign uses the built-in one.
func NewLibrary(c *sim.Campaign) *Library {
	if c == nil {
		c = sim.DefaultCampaign()
	}
	return &Library{campaign: c}
}

// Level implements sim.Content.
func (lib *Library) Level(world, level int) (sim.LevelDef, bool) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	return lib.campaign.Level(world, level)
}

// Next implements sim.Content.
func (lib *Library) Next(world, level int) (int, int, bool) {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	return lib.campaign.Next(world, level)
}

// Levels returns every level in play order.
func (lib *Library) Levels() []sim.LevelDef {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	return lib.campaign.Levels()
}

// Replace swaps in new content. A nil campaign is ignored.
func (lib *Library) Replace(c *sim.Campaign) {
	if c == nil {
		return
	}
	lib.mu.Lock()
	lib.campaign = c
	lib.mu.Unlock()
}

// Reload reloads the campaign from a loader. On error the current content
// is kept.
func (lib *Library) Reload(l *Loader) error {
	c, err := l.Campaign()
	if err != nil {
		return err
	}
	lib.Replace(c)
	return nil
}

package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by world and level for deterministic ordering.
func (l *Loader) LoadAll() ([]sim.LevelDef, error) {
	var defs []sim.LevelDef

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !IsLevelFile(path) {
			return nil
		}

		def, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		defs = append(defs, def)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].World != defs[j].World {
			return defs[i].World < defs[j].World
		}
		return defs[i].Level < defs[j].Level
	})

	return defs, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (sim.LevelDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.LevelDef{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	def, err := ParseYAML(data)
	if err != nil {
		return sim.LevelDef{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return def, nil
}

// Campaign loads every level in the directory as a campaign.
func (l *Loader) Campaign() (*sim.Campaign, error) {
	defs, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no levels found in %s", l.Root)
	}
	return sim.NewCampaign(defs), nil
}

// Export writes each level to its own file under dir, named by world and level.
func Export(dir string, defs []sim.LevelDef) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	for _, def := range defs {
		data, err := EncodeYAML(def)
		if err != nil {
			return fmt.Errorf("encoding level %d-%d: %w", def.World, def.Level, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("w%d-l%d.yaml", def.World, def.Level))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("writing file %s: %w", path, err)
		}
	}
	return nil
}

// IsLevelFile checks if a path has a supported extension.
func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Package levels loads Sky Raid level content from YAML files.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	World int        `yaml:"world"`
	Level int        `yaml:"level"`
	Name  string     `yaml:"name"`
	Boss  string     `yaml:"boss,omitempty"` // Boss key, empty for a wave-only level
	Waves []YAMLWave `yaml:"waves"`
}

// YAMLWave is one spawn batch.
type YAMLWave struct {
	Groups []YAMLGroup `yaml:"groups"`
}

// YAMLGroup is one {enemy, count, formation} triple.
type YAMLGroup struct {
	Enemy     string `yaml:"enemy"`
	Count     int    `yaml:"count"`
	Formation string `yaml:"formation,omitempty"`
}

// ParseYAML parses a YAML level file.
// Groups naming an unknown enemy are skipped; an unknown formation falls
// back to a line and an unknown boss to the first boss.
func ParseYAML(data []byte) (sim.LevelDef, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return sim.LevelDef{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.World < 1 || yl.Level < 1 {
		return sim.LevelDef{}, fmt.Errorf("invalid level key %d-%d", yl.World, yl.Level)
	}

	def := sim.LevelDef{
		World: yl.World,
		Level: yl.Level,
		Name:  yl.Name,
	}
	if def.Name == "" {
		def.Name = fmt.Sprintf("Sector %d-%d", yl.World, yl.Level)
	}
	if strings.TrimSpace(yl.Boss) != "" {
		kind, _ := sim.ParseBossKind(yl.Boss)
		def.Boss = true
		def.BossKind = kind
	}

	for _, w := range yl.Waves {
		var wave sim.WaveDef
		for _, g := range w.Groups {
			enemy, ok := sim.ParseEnemyType(g.Enemy)
			if !ok || g.Count <= 0 {
				continue // Skip invalid groups
			}
			formation, _ := sim.ParseFormation(g.Formation)
			wave.Groups = append(wave.Groups, sim.SpawnGroup{
				Enemy:     enemy,
				Count:     g.Count,
				Formation: formation,
			})
		}
		if len(wave.Groups) > 0 {
			def.Waves = append(def.Waves, wave)
		}
	}

	return def, nil
}

// EncodeYAML renders a level definition in the level file format.
func EncodeYAML(def sim.LevelDef) ([]byte, error) {
	yl := YAMLLevel{
		World: def.World,
		Level: def.Level,
		Name:  def.Name,
	}
	if def.Boss {
		yl.Boss = def.BossKind.Key()
	}
	for _, w := range def.Waves {
		var yw YAMLWave
		for _, g := range w.Groups {
			yw.Groups = append(yw.Groups, YAMLGroup{
				Enemy:     g.Enemy.String(),
				Count:     g.Count,
				Formation: g.Formation.String(),
			})
		}
		yl.Waves = append(yl.Waves, yw)
	}

	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

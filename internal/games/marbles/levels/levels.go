// Package levels loads marble layouts. The core does not depend on it.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/tui-marbles/internal/games/marbles/core"
	"gopkg.in/yaml.v3"
)

//go:embed default_levels.yaml
var defaultLevels []byte

// ErrNoLevels is returned for a document without any level.
var ErrNoLevels = errors.New("levels: no levels defined")

// Level is a named layout.
type Level struct {
	Name  string
	Cells core.LevelDef
}

// Set is an ordered list of levels.
type Set []Level

// Defs returns the layouts in order, ready for core.NewSession.
func (s Set) Defs() []core.LevelDef {
	defs := make([]core.LevelDef, len(s))
	for i, l := range s {
		defs[i] = l.Cells
	}
	return defs
}

// Names returns the level names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, l := range s {
		names[i] = l.Name
	}
	return names
}

// yamlDocument is the on-disk format.
type yamlDocument struct {
	Levels []yamlLevel `yaml:"levels"`
}

type yamlLevel struct {
	Name  string `yaml:"name"`
	Cells []int  `yaml:"cells"`
}

// Parse decodes and validates a level document.
func Parse(data []byte) (Set, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(doc.Levels) == 0 {
		return nil, ErrNoLevels
	}

	set := make(Set, 0, len(doc.Levels))
	for i, yl := range doc.Levels {
		def, err := core.LevelDefFromSlice(yl.Cells)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i+1, err)
		}
		name := yl.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		set = append(set, Level{Name: name, Cells: def})
	}
	return set, nil
}

// LoadFile reads a level document from disk.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return set, nil
}

// Default returns the embedded levels.
func Default() Set {
	set, err := Parse(defaultLevels)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded table is invalid: %v", err))
	}
	return set
}

// Load reads path when set, otherwise returns the embedded levels.
func Load(path string) (Set, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

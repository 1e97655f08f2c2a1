package trt

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// presetFile is the on-disk layout of a marker preset catalog:
//
//	[[preset]]
//	name    = "Picture start"
//	color   = "red"
//	author  = "assistant"
//	comment = "FFOA"
type presetFile struct {
	Presets []presetEntry `toml:"preset"`
}

type presetEntry struct {
	Name    string  `toml:"name"`
	Color   *string `toml:"color"`
	Author  *string `toml:"author"`
	Comment *string `toml:"comment"`
}

// ParsePresetCatalog decodes a TOML marker preset catalog.
func ParsePresetCatalog(data []byte) ([]MarkerPreset, error) {
	var f presetFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode preset catalog: %w", err)
	}

	presets := make([]MarkerPreset, 0, len(f.Presets))
	for i, e := range f.Presets {
		if e.Name == "" {
			return nil, fmt.Errorf("preset %d: missing name", i)
		}
		p := MarkerPreset{Name: e.Name, Author: e.Author, Comment: e.Comment}
		if e.Color != nil {
			c, err := ParseMarkerColor(*e.Color)
			if err != nil {
				return nil, fmt.Errorf("preset %q: %w", e.Name, err)
			}
			p.Color = &c
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// LoadPresetCatalog reads the TOML catalog at path and adds every preset to m.
// If any name is already in m or repeated in the file, m is left unchanged.
func LoadPresetCatalog(m *DataModel, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	presets, err := ParsePresetCatalog(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		if _, err := m.MarkerPreset(p.Name); err == nil || seen[p.Name] {
			return 0, fmt.Errorf("%s: %w: %q", path, ErrDuplicatePreset, p.Name)
		}
		seen[p.Name] = true
	}
	for _, p := range presets {
		if err := m.AddMarkerPreset(p); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
	}
	return len(presets), nil
}

package trt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCatalog = `
[[preset]]
name    = "Picture start"
color   = "Red"
author  = "editor"
comment = "skip"

[[preset]]
name  = "Green only"
color = "green"
`

func TestParsePresetCatalog(t *testing.T) {
	presets, err := ParsePresetCatalog([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("ParsePresetCatalog: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(presets))
	}
	p := presets[0]
	if p.Name != "Picture start" || p.Color == nil || *p.Color != MarkerRed {
		t.Errorf("unexpected first preset: %+v", p)
	}
	if p.Author == nil || *p.Author != "editor" || p.Comment == nil || *p.Comment != "skip" {
		t.Errorf("author/comment not decoded: %+v", p)
	}
	if presets[1].Author != nil || presets[1].Comment != nil {
		t.Errorf("unset criteria should stay nil: %+v", presets[1])
	}
}

func TestParsePresetCatalog_errors(t *testing.T) {
	tests := map[string]string{
		"bad toml":     "[[preset]\nname=",
		"missing name": "[[preset]]\ncolor = \"red\"\n",
		"bad color":    "[[preset]]\nname = \"x\"\ncolor = \"mauve\"\n",
	}
	for name, in := range tests {
		if _, err := ParsePresetCatalog([]byte(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadPresetCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewDataModel()
	n, err := LoadPresetCatalog(m, path)
	if err != nil {
		t.Fatalf("LoadPresetCatalog: %v", err)
	}
	if n != 2 || len(m.MarkerPresets()) != 2 {
		t.Errorf("loaded %d, catalog has %d", n, len(m.MarkerPresets()))
	}

	if _, err := LoadPresetCatalog(m, path); !errors.Is(err, ErrDuplicatePreset) {
		t.Errorf("reloading should report duplicates, got %v", err)
	}
	if _, err := LoadPresetCatalog(m, filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadPresetCatalog_duplicateLeavesModelUnchanged(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	m := NewDataModel()
	if err := m.AddMarkerPreset(MarkerPreset{Name: "existing"}); err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"repeated in file": "[[preset]]\nname = \"a\"\n[[preset]]\nname = \"b\"\n[[preset]]\nname = \"a\"\n",
		"already in model": "[[preset]]\nname = \"c\"\n[[preset]]\nname = \"existing\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			n, err := LoadPresetCatalog(m, write(name+".toml", body))
			if !errors.Is(err, ErrDuplicatePreset) {
				t.Fatalf("expected ErrDuplicatePreset, got %v", err)
			}
			if n != 0 {
				t.Errorf("expected 0 loaded, got %d", n)
			}
			if got := m.MarkerPresets(); len(got) != 1 || got[0].Name != "existing" {
				t.Errorf("catalog changed on failed load: %+v", got)
			}
		})
	}
}

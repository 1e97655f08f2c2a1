// Package trt computes trimmed (FFOA to LFOA) ranges for timelines pulled from
// a bin and the total running time across them.
package trt

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"trt-calculator/internal/timecode"
)

var (
	// ErrPresetNotFound is returned when a marker preset name is not in the catalog.
	ErrPresetNotFound = errors.New("marker preset not found")

	// ErrDuplicatePreset is returned when adding a preset whose name is taken.
	ErrDuplicatePreset = errors.New("marker preset already exists")
)

// DataModel owns a set of trimmed timelines and applies the same trim
// settings to all of them.
//
// Settings are held by the model and applied to timelines added later, so
// every timeline is always trimmed the same way.
type DataModel struct {
	presets   []*MarkerPreset
	timelines []*TrimmedTimeline

	relativeFFOA *timecode.Timecode
	relativeLFOA *timecode.Timecode
	markerFFOA   *MarkerPreset
	markerLFOA   *MarkerPreset
}

// NewDataModel returns an empty DataModel.
func NewDataModel() *DataModel {
	return &DataModel{}
}

// AddTimeline wraps record in a TrimmedTimeline, applies the current trim
// settings and appends it. It fails if a relative offset is set at a rate
// other than the record's.
func (m *DataModel) AddTimeline(record TimelineRecord) (*TrimmedTimeline, error) {
	t := NewTrimmedTimeline(record)
	if m.relativeFFOA != nil {
		if err := t.SetGlobalFFOA(*m.relativeFFOA); err != nil {
			return nil, err
		}
	}
	if m.relativeLFOA != nil {
		if err := t.SetGlobalLFOA(*m.relativeLFOA); err != nil {
			return nil, err
		}
	}
	t.SetMarkerFFOAFromPreset(m.markerFFOA)
	t.SetMarkerLFOAFromPreset(m.markerLFOA)

	m.timelines = append(m.timelines, t)
	return t, nil
}

// Timelines returns the timelines in insertion order.
func (m *DataModel) Timelines() []*TrimmedTimeline {
	return slices.Clone(m.timelines)
}

// Len returns the number of timelines.
func (m *DataModel) Len() int {
	return len(m.timelines)
}

// SortedTimelines returns the timelines ordered by name the way Avid sorts a
// bin: case-insensitive, with digit runs compared numerically ("Reel 9"
// before "Reel 10").
func (m *DataModel) SortedTimelines() []*TrimmedTimeline {
	out := slices.Clone(m.timelines)
	c := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b *TrimmedTimeline) int {
		return c.CompareString(a.Name(), b.Name())
	})
	return out
}

// SetRelativeFFOA sets the global FFOA offset on every timeline. If any
// timeline rejects the offset's rate, no timeline is changed.
func (m *DataModel) SetRelativeFFOA(offset timecode.Timecode) error {
	if err := m.checkRates("FFOA", offset); err != nil {
		return err
	}
	for _, t := range m.timelines {
		if err := t.SetGlobalFFOA(offset); err != nil {
			return err
		}
	}
	m.relativeFFOA = &offset
	return nil
}

// SetRelativeLFOA sets the global LFOA offset on every timeline. If any
// timeline rejects the offset's rate, no timeline is changed.
func (m *DataModel) SetRelativeLFOA(offset timecode.Timecode) error {
	if err := m.checkRates("LFOA", offset); err != nil {
		return err
	}
	for _, t := range m.timelines {
		if err := t.SetGlobalLFOA(offset); err != nil {
			return err
		}
	}
	m.relativeLFOA = &offset
	return nil
}

// RelativeFFOA returns the current global FFOA offset, if one was set.
func (m *DataModel) RelativeFFOA() (timecode.Timecode, bool) {
	if m.relativeFFOA == nil {
		return timecode.Timecode{}, false
	}
	return *m.relativeFFOA, true
}

// RelativeLFOA returns the current global LFOA offset, if one was set.
func (m *DataModel) RelativeLFOA() (timecode.Timecode, bool) {
	if m.relativeLFOA == nil {
		return timecode.Timecode{}, false
	}
	return *m.relativeLFOA, true
}

// SetMarkerFFOA makes preset the FFOA marker criterion for every timeline.
// A nil preset clears it.
func (m *DataModel) SetMarkerFFOA(preset *MarkerPreset) {
	m.markerFFOA = preset
	for _, t := range m.timelines {
		t.SetMarkerFFOAFromPreset(preset)
	}
}

// SetMarkerLFOA makes preset the LFOA marker criterion for every timeline.
// A nil preset clears it.
func (m *DataModel) SetMarkerLFOA(preset *MarkerPreset) {
	m.markerLFOA = preset
	for _, t := range m.timelines {
		t.SetMarkerLFOAFromPreset(preset)
	}
}

// MarkerFFOA returns the current FFOA marker criterion, or nil.
func (m *DataModel) MarkerFFOA() *MarkerPreset { return m.markerFFOA }

// MarkerLFOA returns the current LFOA marker criterion, or nil.
func (m *DataModel) MarkerLFOA() *MarkerPreset { return m.markerLFOA }

// TotalRunningTime sums the trimmed durations of all timelines at rate.
// Every timeline must run at rate.
func (m *DataModel) TotalRunningTime(rate int) (timecode.Timecode, error) {
	total := timecode.New(0, rate)
	for _, t := range m.timelines {
		var err error
		total, err = total.Add(t.TrimmedRange().Duration())
		if err != nil {
			return timecode.Timecode{}, fmt.Errorf("total running time of %q: %w", t.Name(), err)
		}
	}
	return total, nil
}

// AddMarkerPreset adds preset to the catalog.
func (m *DataModel) AddMarkerPreset(preset MarkerPreset) error {
	if _, err := m.MarkerPreset(preset.Name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicatePreset, preset.Name)
	}
	m.presets = append(m.presets, &preset)
	return nil
}

// MarkerPreset looks up a catalog preset by name.
func (m *DataModel) MarkerPreset(name string) (*MarkerPreset, error) {
	for _, p := range m.presets {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// MarkerPresets returns the catalog in the order presets were added.
func (m *DataModel) MarkerPresets() []MarkerPreset {
	out := make([]MarkerPreset, 0, len(m.presets))
	for _, p := range m.presets {
		out = append(out, *p)
	}
	return out
}

func (m *DataModel) checkRates(side string, offset timecode.Timecode) error {
	for _, t := range m.timelines {
		if err := t.checkRate(side, offset); err != nil {
			return err
		}
	}
	return nil
}

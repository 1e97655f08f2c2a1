package trt

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"trt-calculator/internal/timecode"
)

// TrimmedTimeline wraps a TimelineRecord with the trim settings applied to it
// and keeps the resulting FFOA->LFOA range current.
type TrimmedTimeline struct {
	record TimelineRecord

	// Fixed offsets used unless a marker match overrides them.
	defaultFFOA timecode.Timecode
	defaultLFOA timecode.Timecode

	markerFFOA *MarkerInfo
	markerLFOA *MarkerInfo

	trimmed timecode.Range
}

// NewTrimmedTimeline returns an untrimmed TrimmedTimeline for record.
func NewTrimmedTimeline(record TimelineRecord) *TrimmedTimeline {
	record.Markers = slices.Clone(record.Markers)
	record.Color = clonePtr(record.Color)
	record.BinLock = clonePtr(record.BinLock)
	rate := record.Range.Rate()
	t := &TrimmedTimeline{
		record:      record,
		defaultFFOA: timecode.New(0, rate),
		defaultLFOA: timecode.New(0, rate),
	}
	t.updateTrimmed()
	return t
}

func (t *TrimmedTimeline) Name() string { return t.record.Name }
func (t *TrimmedTimeline) BinPath() string { return t.record.BinPath }
func (t *TrimmedTimeline) BinLock() *LockInfo { return clonePtr(t.record.BinLock) }
func (t *TrimmedTimeline) Color() *ClipColor { return clonePtr(t.record.Color) }
func (t *TrimmedTimeline) DateCreated() time.Time { return t.record.DateCreated }
func (t *TrimmedTimeline) DateModified() time.Time { return t.record.DateModified }
func (t *TrimmedTimeline) Markers() []MarkerInfo { return slices.Clone(t.record.Markers) }
func (t *TrimmedTimeline) Rate() int { return t.record.Range.Rate() }
func (t *TrimmedTimeline) FullRange() timecode.Range { return t.record.Range }
func (t *TrimmedTimeline) TrimmedRange() timecode.Range { return t.trimmed }
func (t *TrimmedTimeline) DefaultFFOA() timecode.Timecode { return t.defaultFFOA }
func (t *TrimmedTimeline) DefaultLFOA() timecode.Timecode { return t.defaultLFOA }

// MarkerFFOA returns a copy of the matched marker in use for FFOA, or nil.
func (t *TrimmedTimeline) MarkerFFOA() *MarkerInfo { return clonePtr(t.markerFFOA) }

// MarkerLFOA returns a copy of the matched marker in use for LFOA, or nil.
func (t *TrimmedTimeline) MarkerLFOA() *MarkerInfo { return clonePtr(t.markerLFOA) }

// FFOAOffset is the duration from the head of the timeline to FFOA.
func (t *TrimmedTimeline) FFOAOffset() timecode.Timecode {
	return timecode.New(t.trimmed.Start.Frames-t.record.Range.Start.Frames, t.Rate())
}

// LFOAOffset is the duration from LFOA to the tail of the timeline.
func (t *TrimmedTimeline) LFOAOffset() timecode.Timecode {
	return timecode.New(t.record.Range.End.Frames-t.trimmed.End.Frames, t.Rate())
}

// SetGlobalFFOA sets the head offset used unless a marker match overrides it.
func (t *TrimmedTimeline) SetGlobalFFOA(offset timecode.Timecode) error {
	if err := t.checkRate("FFOA", offset); err != nil {
		return err
	}
	t.defaultFFOA = offset
	t.updateTrimmed()
	return nil
}

// SetGlobalLFOA sets the tail offset used unless a marker match overrides it.
func (t *TrimmedTimeline) SetGlobalLFOA(offset timecode.Timecode) error {
	if err := t.checkRate("LFOA", offset); err != nil {
		return err
	}
	t.defaultLFOA = offset
	t.updateTrimmed()
	return nil
}

// SetMarkerFFOAFromPreset uses the earliest marker matching preset as FFOA.
// A nil preset, or no match, falls back to the global FFOA offset.
func (t *TrimmedTimeline) SetMarkerFFOAFromPreset(preset *MarkerPreset) {
	t.markerFFOA = nil
	if preset != nil {
		t.markerFFOA = t.findMarker(preset, false)
	}
	t.updateTrimmed()
}

// SetMarkerLFOAFromPreset uses the latest marker matching preset as LFOA.
// A nil preset, or no match, falls back to the global LFOA offset.
func (t *TrimmedTimeline) SetMarkerLFOAFromPreset(preset *MarkerPreset) {
	t.markerLFOA = nil
	if preset != nil {
		t.markerLFOA = t.findMarker(preset, true)
	}
	t.updateTrimmed()
}

func (t *TrimmedTimeline) checkRate(side string, offset timecode.Timecode) error {
	if offset.Rate != t.Rate() {
		return fmt.Errorf("%s offset at %d fps on %q at %d fps: %w",
			side, offset.Rate, t.record.Name, t.Rate(), timecode.ErrRateMismatch)
	}
	return nil
}

// updateTrimmed recalculates the trimmed range. FFOA is clamped to the full
// duration first, then LFOA to whatever FFOA left over, so the range never
// inverts.
func (t *TrimmedTimeline) updateTrimmed() {
	full := t.record.Range
	duration := full.Duration().Frames

	head := t.defaultFFOA.Frames
	if t.markerFFOA != nil {
		head = t.markerFFOA.FrameOffset
	}
	head = clamp(head, duration)

	// The LFOA marker's own frame is the last frame of action.
	tail := t.defaultLFOA.Frames
	if t.markerLFOA != nil {
		tail = duration - t.markerLFOA.FrameOffset - 1
	}
	tail = clamp(tail, duration-head)

	t.trimmed = timecode.Range{
		Start: full.Start.AddFrames(head),
		End:   full.End.SubFrames(tail),
	}
}

func (t *TrimmedTimeline) findMarker(preset *MarkerPreset, fromEnd bool) *MarkerInfo {
	markers := slices.Clone(t.record.Markers)
	slices.SortStableFunc(markers, func(a, b MarkerInfo) int {
		if fromEnd {
			return cmp.Compare(b.FrameOffset, a.FrameOffset)
		}
		return cmp.Compare(a.FrameOffset, b.FrameOffset)
	})
	for i := range markers {
		if preset.Match(markers[i]) {
			m := markers[i]
			return &m
		}
	}
	return nil
}

func clamp(n, limit int64) int64 {
	return max(0, min(n, limit))
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package reels

import (
	"time"

	"trt-calculator/internal/binload"
	"trt-calculator/internal/timecode"
	"trt-calculator/internal/trt"
)

// TimelineID uniquely identifies a timeline held by the service.
type TimelineID string

// TimelineView is the JSON representation of a trimmed timeline.
// Timecodes are HH:MM:SS:FF at Rate.
type TimelineView struct {
	ID              TimelineID      `json:"id"`
	Name            string          `json:"name"`
	Rate            int             `json:"rate"`
	Start           string          `json:"start"`
	End             string          `json:"end"`
	Duration        string          `json:"duration"`
	TrimmedStart    string          `json:"trimmed_start"`
	TrimmedEnd      string          `json:"trimmed_end"`
	TrimmedDuration string          `json:"trimmed_duration"`
	TrimmedFrames   int64           `json:"trimmed_frames"`
	TrimmedFootage  string          `json:"trimmed_footage"`
	FFOAOffset      string          `json:"ffoa_offset"`
	LFOAOffset      string          `json:"lfoa_offset"`
	MarkerFFOA      *binload.Marker `json:"marker_ffoa,omitempty"`
	MarkerLFOA      *binload.Marker `json:"marker_lfoa,omitempty"`
	Markers         int             `json:"markers"`
	BinPath         string          `json:"bin_path"`
	LockedBy        string          `json:"locked_by,omitempty"`
	Color           string          `json:"color,omitempty"`
	DateCreated     time.Time       `json:"date_created"`
	DateModified    time.Time       `json:"date_modified"`
}

// TRTView is the JSON representation of the total running time.
type TRTView struct {
	TRT       string `json:"trt"`
	Frames    int64  `json:"frames"`
	Footage   string `json:"footage"`
	Rate      int    `json:"rate"`
	Timelines int    `json:"timelines"`
}

// OffsetRequest is the body of PUT /trims/ffoa and PUT /trims/lfoa.
// Frames takes precedence over Offset when both are given.
type OffsetRequest struct {
	Offset string `json:"offset"`
	Frames *int64 `json:"frames"`
}

// MarkerRequest is the body of PUT /trims/marker-ffoa and /trims/marker-lfoa.
// An empty Preset clears the marker criterion.
type MarkerRequest struct {
	Preset string `json:"preset"`
}

// PresetView is the JSON representation of a marker preset, used both for
// listing and for POST /presets.
type PresetView struct {
	Name    string  `json:"name"`
	Color   *string `json:"color,omitempty"`
	Author  *string `json:"author,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// TrimSettings reports the service-wide trim configuration.
type TrimSettings struct {
	FFOAOffset string `json:"ffoa_offset,omitempty"`
	LFOAOffset string `json:"lfoa_offset,omitempty"`
	MarkerFFOA string `json:"marker_ffoa,omitempty"`
	MarkerLFOA string `json:"marker_lfoa,omitempty"`
}

func newTimelineView(id TimelineID, t *trt.TrimmedTimeline) TimelineView {
	full, trimmed := t.FullRange(), t.TrimmedRange()
	v := TimelineView{
		ID:              id,
		Name:            t.Name(),
		Rate:            t.Rate(),
		Start:           full.Start.String(),
		End:             full.End.String(),
		Duration:        full.Duration().String(),
		TrimmedStart:    trimmed.Start.String(),
		TrimmedEnd:      trimmed.End.String(),
		TrimmedDuration: trimmed.Duration().String(),
		TrimmedFrames:   trimmed.Duration().Frames,
		TrimmedFootage:  trimmed.Duration().FeetFrames(),
		FFOAOffset:      t.FFOAOffset().String(),
		LFOAOffset:      t.LFOAOffset().String(),
		MarkerFFOA:      markerView(t.MarkerFFOA()),
		MarkerLFOA:      markerView(t.MarkerLFOA()),
		Markers:         len(t.Markers()),
		BinPath:         t.BinPath(),
		DateCreated:     t.DateCreated(),
		DateModified:    t.DateModified(),
	}
	if lock := t.BinLock(); lock != nil {
		v.LockedBy = lock.User
	}
	if c := t.Color(); c != nil {
		v.Color = c.Hex()
	}
	return v
}

func markerView(m *trt.MarkerInfo) *binload.Marker {
	if m == nil {
		return nil
	}
	return &binload.Marker{
		FrameOffset: m.FrameOffset,
		Color:       string(m.Color),
		Author:      m.Author,
		Comment:     m.Comment,
	}
}

func newTRTView(total timecode.Timecode, timelines int) TRTView {
	return TRTView{
		TRT:       total.String(),
		Frames:    total.Frames,
		Footage:   total.FeetFrames(),
		Rate:      total.Rate,
		Timelines: timelines,
	}
}

func newPresetView(p trt.MarkerPreset) PresetView {
	v := PresetView{Name: p.Name, Author: p.Author, Comment: p.Comment}
	if p.Color != nil {
		c := string(*p.Color)
		v.Color = &c
	}
	return v
}

func (v PresetView) preset() (trt.MarkerPreset, error) {
	p := trt.MarkerPreset{Name: v.Name, Author: v.Author, Comment: v.Comment}
	if v.Color != nil {
		c, err := trt.ParseMarkerColor(*v.Color)
		if err != nil {
			return trt.MarkerPreset{}, err
		}
		p.Color = &c
	}
	return p, nil
}

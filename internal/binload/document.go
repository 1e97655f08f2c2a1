// Package binload reads timeline records from JSON bin exports produced by
// the bin parsing tools.
package binload

import (
	"errors"
	"fmt"
	"time"

	"trt-calculator/internal/timecode"
	"trt-calculator/internal/trt"
)

// ErrInvalidDocument is returned when a timeline document is missing required
// fields or carries values that cannot be interpreted.
var ErrInvalidDocument = errors.New("invalid timeline document")

// Color is the JSON form of a 16-bit RGB clip color.
type Color struct {
	R uint16 `json:"r"`
	G uint16 `json:"g"`
	B uint16 `json:"b"`
}

// Marker is the JSON form of trt.MarkerInfo.
type Marker struct {
	FrameOffset int64  `json:"frame_offset"`
	Color       string `json:"color"`
	Author      string `json:"author"`
	Comment     string `json:"comment"`
}

// Lock is the JSON form of trt.LockInfo.
type Lock struct {
	User string `json:"user"`
}

// Timeline is the JSON form of a trt.TimelineRecord. Timecodes are
// HH:MM:SS:FF strings at Rate; either End or Duration must be given.
type Timeline struct {
	Name         string    `json:"name"`
	Rate         int       `json:"rate"`
	Start        string    `json:"start"`
	End          string    `json:"end,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	Color        *Color    `json:"color,omitempty"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
	Markers      []Marker  `json:"markers"`
	BinPath      string    `json:"bin_path"`
	BinLock      *Lock     `json:"bin_lock,omitempty"`
}

// Bin is one exported bin: its path, lock and the sequences found in it.
type Bin struct {
	BinPath   string     `json:"bin_path"`
	BinLock   *Lock      `json:"bin_lock,omitempty"`
	Timelines []Timeline `json:"timelines"`
}

// Record converts the document into a trt.TimelineRecord. defaultRate is used
// when the document does not state a rate.
func (d Timeline) Record(defaultRate int) (trt.TimelineRecord, error) {
	if d.Name == "" {
		return trt.TimelineRecord{}, fmt.Errorf("%w: missing name", ErrInvalidDocument)
	}
	rate := d.Rate
	if rate == 0 {
		rate = defaultRate
	}

	start, err := timecode.Parse(d.Start, rate)
	if err != nil {
		return trt.TimelineRecord{}, fmt.Errorf("%q start: %w", d.Name, err)
	}

	var rng timecode.Range
	switch {
	case d.End != "":
		end, err := timecode.Parse(d.End, rate)
		if err != nil {
			return trt.TimelineRecord{}, fmt.Errorf("%q end: %w", d.Name, err)
		}
		rng, err = timecode.NewRange(start, end)
		if err != nil {
			return trt.TimelineRecord{}, fmt.Errorf("%q: %w", d.Name, err)
		}
	case d.Duration != "":
		dur, err := timecode.Parse(d.Duration, rate)
		if err != nil {
			return trt.TimelineRecord{}, fmt.Errorf("%q duration: %w", d.Name, err)
		}
		rng, err = timecode.NewRangeFromDuration(start, dur)
		if err != nil {
			return trt.TimelineRecord{}, fmt.Errorf("%q: %w", d.Name, err)
		}
	default:
		return trt.TimelineRecord{}, fmt.Errorf("%w: %q has neither end nor duration", ErrInvalidDocument, d.Name)
	}

	rec := trt.TimelineRecord{
		Name:         d.Name,
		Range:        rng,
		DateCreated:  d.DateCreated,
		DateModified: d.DateModified,
		BinPath:      d.BinPath,
	}
	if d.Color != nil {
		rec.Color = &trt.ClipColor{R: d.Color.R, G: d.Color.G, B: d.Color.B}
	}
	if d.BinLock != nil {
		rec.BinLock = &trt.LockInfo{User: d.BinLock.User}
	}
	for _, m := range d.Markers {
		c, err := trt.ParseMarkerColor(m.Color)
		if err != nil {
			return trt.TimelineRecord{}, fmt.Errorf("%w: %q marker at %d: %v", ErrInvalidDocument, d.Name, m.FrameOffset, err)
		}
		rec.Markers = append(rec.Markers, trt.MarkerInfo{
			FrameOffset: m.FrameOffset,
			Color:       c,
			Author:      m.Author,
			Comment:     m.Comment,
		})
	}
	return rec, nil
}

// Records converts every timeline in the bin. Timelines without their own
// bin path or lock inherit the bin's.
func (b Bin) Records(defaultRate int) ([]trt.TimelineRecord, error) {
	out := make([]trt.TimelineRecord, 0, len(b.Timelines))
	for _, tl := range b.Timelines {
		if tl.BinPath == "" {
			tl.BinPath = b.BinPath
		}
		if tl.BinLock == nil {
			tl.BinLock = b.BinLock
		}
		rec, err := tl.Record(defaultRate)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

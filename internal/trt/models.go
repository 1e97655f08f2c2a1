package trt

import (
	"fmt"
	"strings"
	"time"

	"trt-calculator/internal/timecode"
)

// MarkerColor is one of the fixed Avid marker colors.
type MarkerColor string

const (
	MarkerRed     MarkerColor = "red"
	MarkerGreen   MarkerColor = "green"
	MarkerBlue    MarkerColor = "blue"
	MarkerCyan    MarkerColor = "cyan"
	MarkerMagenta MarkerColor = "magenta"
	MarkerYellow  MarkerColor = "yellow"
	MarkerBlack   MarkerColor = "black"
	MarkerWhite   MarkerColor = "white"
)

var markerColors = []MarkerColor{
	MarkerRed, MarkerGreen, MarkerBlue, MarkerCyan,
	MarkerMagenta, MarkerYellow, MarkerBlack, MarkerWhite,
}

// ParseMarkerColor returns the MarkerColor named by s, case-insensitively.
func ParseMarkerColor(s string) (MarkerColor, error) {
	c := MarkerColor(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range markerColors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown marker color %q", s)
}

// ClipColor is the 16-bit RGB triad of a bin item's color label.
type ClipColor struct {
	R, G, B uint16
}

// Hex renders the color as an 8-bit #rrggbb string.
func (c ClipColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R>>8, c.G>>8, c.B>>8)
}

// LockInfo describes who holds the lock on a bin.
type LockInfo struct {
	User string
}

// MarkerInfo is a single marker on a timeline.
type MarkerInfo struct {
	// FrameOffset is relative to the timeline's start.
	FrameOffset int64
	Color       MarkerColor
	Author      string
	Comment     string
}

// TimelineRecord is the raw, untrimmed description of one sequence in a bin.
// Records are supplied by the bin parsing layer and are never mutated.
type TimelineRecord struct {
	Name         string
	Range        timecode.Range
	Color        *ClipColor
	DateCreated  time.Time
	DateModified time.Time
	Markers      []MarkerInfo
	BinPath      string
	BinLock      *LockInfo
}

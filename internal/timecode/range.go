package timecode

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a range would end before it starts.
var ErrInvalidRange = errors.New("invalid timecode range")

// Range is a span of timecode. Start is inclusive, End is exclusive.
type Range struct {
	Start Timecode
	End   Timecode
}

// NewRange returns the range [start, end).
func NewRange(start, end Timecode) (Range, error) {
	if start.Rate != end.Rate {
		return Range{}, fmt.Errorf("%w: start %d fps, end %d fps", ErrRateMismatch, start.Rate, end.Rate)
	}
	if end.Frames < start.Frames {
		return Range{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidRange, end, start)
	}
	return Range{Start: start, End: end}, nil
}

// NewRangeFromDuration returns the range beginning at start and lasting duration.
func NewRangeFromDuration(start, duration Timecode) (Range, error) {
	end, err := start.Add(duration)
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end)
}

// Rate returns the frame rate shared by both ends of the range.
func (r Range) Rate() int {
	return r.Start.Rate
}

// Duration returns End - Start.
func (r Range) Duration() Timecode {
	return Timecode{Frames: r.End.Frames - r.Start.Frames, Rate: r.Start.Rate}
}

// Contains reports whether tc falls inside the range.
func (r Range) Contains(tc Timecode) bool {
	return tc.Rate == r.Start.Rate && tc.Frames >= r.Start.Frames && tc.Frames < r.End.Frames
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Package timecode implements frame-based, non-drop-frame timecode arithmetic
// at integral frame rates.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FramesPerFoot is the number of frames in one foot of 35mm 4-perf film.
const FramesPerFoot = 16

var (
	// ErrRateMismatch is returned when timecodes of different rates are combined.
	ErrRateMismatch = errors.New("timecode rate mismatch")

	// ErrInvalidTimecode is returned when a timecode string cannot be parsed
	// or a rate is not positive.
	ErrInvalidTimecode = errors.New("invalid timecode")
)

// Timecode is a frame count at a frame rate.
type Timecode struct {
	Frames int64
	Rate   int
}

// New returns a Timecode of frames at rate.
func New(frames int64, rate int) Timecode {
	return Timecode{Frames: frames, Rate: rate}
}

// Parse reads "HH:MM:SS:FF" or "HH:MM:SS" at the given rate. A ';' before the
// frames field is accepted as well.
func Parse(s string, rate int) (Timecode, error) {
	if rate <= 0 {
		return Timecode{}, fmt.Errorf("%w: rate %d", ErrInvalidTimecode, rate)
	}

	raw := strings.TrimSpace(s)
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	var parts []string
	if head, ff, ok := strings.Cut(raw, ";"); ok {
		parts = append(strings.Split(head, ":"), ff)
		if len(parts) != 4 {
			return Timecode{}, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
		}
	} else {
		parts = strings.Split(raw, ":")
	}
	if len(parts) != 3 && len(parts) != 4 {
		return Timecode{}, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
	}

	fields := make([]int64, 4)
	for i, p := range parts {
		if !isDigits(p) {
			return Timecode{}, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return Timecode{}, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
		}
		fields[i] = n
	}
	hh, mm, ss, ff := fields[0], fields[1], fields[2], fields[3]
	if mm > 59 || ss > 59 || ff >= int64(rate) {
		return Timecode{}, fmt.Errorf("%w: %q out of range at %d fps", ErrInvalidTimecode, s, rate)
	}

	r := int64(rate)
	frames := ((hh*60+mm)*60+ss)*r + ff
	if neg {
		frames = -frames
	}
	return Timecode{Frames: frames, Rate: rate}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is like Parse but panics on error. Intended for tests and fixed
// literals.
func MustParse(s string, rate int) Timecode {
	tc, err := Parse(s, rate)
	if err != nil {
		panic(err)
	}
	return tc
}

// Add returns t + o. Both must share a rate.
func (t Timecode) Add(o Timecode) (Timecode, error) {
	if t.Rate != o.Rate {
		return Timecode{}, fmt.Errorf("%w: %d fps + %d fps", ErrRateMismatch, t.Rate, o.Rate)
	}
	return Timecode{Frames: t.Frames + o.Frames, Rate: t.Rate}, nil
}

// Sub returns t - o. Both must share a rate.
func (t Timecode) Sub(o Timecode) (Timecode, error) {
	if t.Rate != o.Rate {
		return Timecode{}, fmt.Errorf("%w: %d fps - %d fps", ErrRateMismatch, t.Rate, o.Rate)
	}
	return Timecode{Frames: t.Frames - o.Frames, Rate: t.Rate}, nil
}

// AddFrames offsets t by n frames at its own rate.
func (t Timecode) AddFrames(n int64) Timecode {
	return Timecode{Frames: t.Frames + n, Rate: t.Rate}
}

// SubFrames offsets t by -n frames at its own rate.
func (t Timecode) SubFrames(n int64) Timecode {
	return Timecode{Frames: t.Frames - n, Rate: t.Rate}
}

// String renders t as HH:MM:SS:FF. Timecodes with a non-positive rate render
// as a bare frame count.
func (t Timecode) String() string {
	if t.Rate <= 0 {
		return strconv.FormatInt(t.Frames, 10)
	}
	frames := t.Frames
	sign := ""
	if frames < 0 {
		sign = "-"
		frames = -frames
	}
	r := int64(t.Rate)
	ff := frames % r
	totalSecs := frames / r
	ss := totalSecs % 60
	mm := (totalSecs / 60) % 60
	hh := totalSecs / 3600
	return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, hh, mm, ss, ff)
}

// FeetFrames renders the frame count as 35mm feet+frames, e.g. "15+00".
func (t Timecode) FeetFrames() string {
	frames := t.Frames
	sign := ""
	if frames < 0 {
		sign = "-"
		frames = -frames
	}
	return fmt.Sprintf("%s%d+%02d", sign, frames/FramesPerFoot, frames%FramesPerFoot)
}

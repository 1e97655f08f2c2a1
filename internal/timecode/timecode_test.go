package timecode

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		rate int
		want int64
	}{
		{"00:00:00:00", 24, 0},
		{"00:00:01:00", 24, 24},
		{"01:00:00:00", 24, 86400},
		{"01:00:10:05", 24, 86645},
		{"00:00:10", 24, 240},
		{"00:00:01;12", 30, 42},
		{"-00:00:00:20", 24, -20},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in, tt.rate)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got.Frames != tt.want || got.Rate != tt.rate {
			t.Errorf("Parse(%q) = %+v, want %d frames at %d", tt.in, got, tt.want, tt.rate)
		}
	}
}

func TestParse_invalid(t *testing.T) {
	for _, in := range []string{
		"", "garbage", "00:00", "00:61:00:00", "00:00:00:24", "00:aa:00:00",
		"01::00:00", "01:00::10", "00::01:00", ":00:00:00", "00:00:00:",
		"01:+5:00:00", "01:00:00:-1", "01: 5:00:00",
		"00;00:00:00", "00:00;00;00", "00:00;00", "00:00:00:00;00",
	} {
		if _, err := Parse(in, 24); !errors.Is(err, ErrInvalidTimecode) {
			t.Errorf("Parse(%q): expected ErrInvalidTimecode, got %v", in, err)
		}
	}
	if _, err := Parse("00:00:00:00", 0); !errors.Is(err, ErrInvalidTimecode) {
		t.Errorf("rate 0: expected ErrInvalidTimecode, got %v", err)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		tc   Timecode
		want string
	}{
		{New(0, 24), "00:00:00:00"},
		{New(1920, 24), "00:01:20:00"},
		{New(1760, 24), "00:01:13:08"},
		{New(86424, 24), "01:00:01:00"},
		{New(-20, 24), "-00:00:00:20"},
	}
	for _, tt := range tests {
		if got := tt.tc.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.tc, got, tt.want)
		}
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	tc := MustParse("10:59:59:23", 24)
	if got := tc.String(); got != "10:59:59:23" {
		t.Errorf("got %q", got)
	}
}

func TestAddSub(t *testing.T) {
	a := New(100, 24)
	b := New(20, 24)

	sum, err := a.Add(b)
	if err != nil || sum.Frames != 120 {
		t.Errorf("Add = %+v, %v", sum, err)
	}
	diff, err := a.Sub(b)
	if err != nil || diff.Frames != 80 {
		t.Errorf("Sub = %+v, %v", diff, err)
	}

	if _, err := a.Add(New(1, 25)); !errors.Is(err, ErrRateMismatch) {
		t.Errorf("Add across rates: expected ErrRateMismatch, got %v", err)
	}
	if _, err := a.Sub(New(1, 30)); !errors.Is(err, ErrRateMismatch) {
		t.Errorf("Sub across rates: expected ErrRateMismatch, got %v", err)
	}

	if got := a.AddFrames(5); got.Frames != 105 || got.Rate != 24 {
		t.Errorf("AddFrames = %+v", got)
	}
	if got := a.SubFrames(5); got.Frames != 95 || got.Rate != 24 {
		t.Errorf("SubFrames = %+v", got)
	}
}

func TestFeetFrames(t *testing.T) {
	tests := []struct {
		frames int64
		want   string
	}{
		{0, "0+00"},
		{15, "0+15"},
		{16, "1+00"},
		{240, "15+00"},
		{-17, "-1+01"},
	}
	for _, tt := range tests {
		if got := New(tt.frames, 24).FeetFrames(); got != tt.want {
			t.Errorf("FeetFrames(%d) = %q, want %q", tt.frames, got, tt.want)
		}
	}
}

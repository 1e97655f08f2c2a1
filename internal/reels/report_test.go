package reels

import (
	"strings"
	"testing"
)

func TestBuildReport_empty(t *testing.T) {
	got := BuildReport(nil, TRTView{TRT: "00:00:00:00", Footage: "0+00", Rate: 24})
	want := "#TRT-REPORT\n#RATE:24\n#TIMELINES:0\n\n#TOTAL:00:00:00:00\t0+00\n"
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestBuildReport_rows(t *testing.T) {
	timelines := []TimelineView{
		{Name: "Reel 1", TrimmedStart: "01:00:01:00", TrimmedEnd: "01:00:10:00", FFOAOffset: "00:00:01:00",
			LFOAOffset: "00:00:00:00", TrimmedDuration: "00:00:09:00", TrimmedFootage: "13+08"},
		{Name: "Reel 2", TrimmedStart: "02:00:01:00", TrimmedEnd: "02:00:10:00", FFOAOffset: "00:00:01:00",
			LFOAOffset: "00:00:00:00", TrimmedDuration: "00:00:09:00", TrimmedFootage: "13+08"},
	}
	got := BuildReport(timelines, TRTView{TRT: "00:00:18:00", Footage: "27+00", Rate: 24})

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if lines[3] != "" || !strings.HasPrefix(lines[4], "NAME\tSTART") {
		t.Errorf("missing header:\n%s", got)
	}
	if lines[5] != "Reel 1\t01:00:01:00\t01:00:10:00\t00:00:01:00\t00:00:00:00\t00:00:09:00\t13+08" {
		t.Errorf("unexpected row: %q", lines[5])
	}
	if !strings.HasPrefix(lines[6], "Reel 2\t") {
		t.Errorf("rows out of order: %q", lines[6])
	}
	if lines[len(lines)-1] != "#TOTAL:00:00:18:00\t27+00" {
		t.Errorf("unexpected total line: %q", lines[len(lines)-1])
	}
	if !strings.Contains(got, "#TIMELINES:2") {
		t.Errorf("missing timeline count:\n%s", got)
	}
}

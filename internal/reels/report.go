package reels

import (
	"fmt"
	"strings"
)

// BuildReport renders timelines (in the order given) and their total as a
// tab-separated plain-text report:
//
//	#TRT-REPORT
//	#RATE:24
//
//	NAME	START	END	FFOA	LFOA	DURATION	FOOTAGE
//	Reel 1	01:00:00:00	01:00:10:00	...
//
//	#TOTAL:00:01:13:08	110+00
func BuildReport(timelines []TimelineView, total TRTView) string {
	var b strings.Builder

	b.WriteString("#TRT-REPORT\n")
	b.WriteString(fmt.Sprintf("#RATE:%d\n", total.Rate))
	b.WriteString(fmt.Sprintf("#TIMELINES:%d\n\n", len(timelines)))

	if len(timelines) > 0 {
		b.WriteString("NAME\tSTART\tEND\tFFOA\tLFOA\tDURATION\tFOOTAGE\n")
	}
	for _, t := range timelines {
		b.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Name, t.TrimmedStart, t.TrimmedEnd, t.FFOAOffset, t.LFOAOffset, t.TrimmedDuration, t.TrimmedFootage))
	}
	if len(timelines) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("#TOTAL:%s\t%s\n", total.TRT, total.Footage))
	return b.String()
}

// Command trtdemo builds eight short reels and prints the total running time
// before and after a 20 frame LFOA trim.
package main

import (
	"fmt"
	"os"
	"time"

	"trt-calculator/internal/platform/logger"
	"trt-calculator/internal/timecode"
	"trt-calculator/internal/trt"
)

const rate = 24

func main() {
	log := logger.New("info", "text")
	model := trt.NewDataModel()

	for n := 0; n < 8; n++ {
		start := timecode.MustParse(fmt.Sprintf("%02d:00:00:00", n), rate).AddFrames(int64(n))
		duration := timecode.MustParse("00:00:10", rate).SubFrames(int64(n))
		rng, err := timecode.NewRangeFromDuration(start, duration)
		if err != nil {
			log.Error("build range", "reel", n, "error", err)
			os.Exit(1)
		}
		now := time.Now()
		if _, err := model.AddTimeline(trt.TimelineRecord{
			Name:         fmt.Sprintf("Reel %d", n),
			Range:        rng,
			DateCreated:  now,
			DateModified: now,
			BinPath:      fmt.Sprintf("/Volumes/Media/Reel %d.avb", n),
		}); err != nil {
			log.Error("add timeline", "reel", n, "error", err)
			os.Exit(1)
		}
	}

	before, err := model.TotalRunningTime(rate)
	if err != nil {
		log.Error("total running time", "error", err)
		os.Exit(1)
	}
	fmt.Printf("TRT before trims is %s\n", before)

	if err := model.SetRelativeLFOA(timecode.New(20, rate)); err != nil {
		log.Error("set LFOA", "error", err)
		os.Exit(1)
	}

	after, err := model.TotalRunningTime(rate)
	if err != nil {
		log.Error("total running time", "error", err)
		os.Exit(1)
	}
	fmt.Printf("TRT after trims is %s\n", after)

	for _, t := range model.Timelines() {
		fmt.Printf("%s: %s (%s)\n", t.Name(), t.TrimmedRange(), t.TrimmedRange().Duration())
	}
}

package reels

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"trt-calculator/internal/timecode"
	"trt-calculator/internal/trt"
)

// DefaultRate is the frame rate used when NewService is given a non-positive rate.
const DefaultRate = 24

// ErrTimelineNotFound is returned when a timeline ID is unknown.
var ErrTimelineNotFound = errors.New("timeline not found")

// ErrEmptyPresetName is returned when adding a preset without a name.
var ErrEmptyPresetName = errors.New("marker preset name is empty")

// Service is a concurrency-safe wrapper around a trt.DataModel. Every
// timeline it accepts runs at the service rate, so the TRT is always defined.
type Service struct {
	mu    sync.RWMutex
	model *trt.DataModel
	rate  int
	ids   map[*trt.TrimmedTimeline]TimelineID
	byID  map[TimelineID]*trt.TrimmedTimeline
}

// NewService returns an empty Service working at rate frames per second.
func NewService(rate int) *Service {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Service{
		model: trt.NewDataModel(),
		rate:  rate,
		ids:   make(map[*trt.TrimmedTimeline]TimelineID),
		byID:  make(map[TimelineID]*trt.TrimmedTimeline),
	}
}

// Rate returns the service frame rate.
func (s *Service) Rate() int {
	return s.rate
}

// AddTimeline adds rec to the model with the current trim settings applied.
func (s *Service) AddTimeline(rec trt.TimelineRecord) (TimelineView, error) {
	if rec.Range.Rate() != s.rate {
		return TimelineView{}, fmt.Errorf("timeline %q at %d fps, service at %d fps: %w",
			rec.Name, rec.Range.Rate(), s.rate, timecode.ErrRateMismatch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.model.AddTimeline(rec)
	if err != nil {
		return TimelineView{}, err
	}
	id := TimelineID(uuid.NewString())
	s.ids[t] = id
	s.byID[id] = t
	return newTimelineView(id, t), nil
}

// Timeline returns the view of one timeline.
func (s *Service) Timeline(id TimelineID) (TimelineView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return TimelineView{}, fmt.Errorf("%w: %s", ErrTimelineNotFound, id)
	}
	return newTimelineView(id, t), nil
}

// Timelines returns every timeline, in insertion order or, if byName is set,
// in natural name order.
func (s *Service) Timelines(byName bool) []TimelineView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tls := s.model.Timelines()
	if byName {
		tls = s.model.SortedTimelines()
	}
	out := make([]TimelineView, 0, len(tls))
	for _, t := range tls {
		out = append(out, newTimelineView(s.ids[t], t))
	}
	return out
}

// TimelineCount returns the number of timelines. Used for metrics.
func (s *Service) TimelineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Len()
}

// SetRelativeFFOA sets the global FFOA offset for every timeline.
func (s *Service) SetRelativeFFOA(offset timecode.Timecode) error {
	if err := s.checkRate("FFOA", offset); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.SetRelativeFFOA(offset)
}

// SetRelativeLFOA sets the global LFOA offset for every timeline.
func (s *Service) SetRelativeLFOA(offset timecode.Timecode) error {
	if err := s.checkRate("LFOA", offset); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.SetRelativeLFOA(offset)
}

// SetMarkerFFOA applies the named catalog preset as the FFOA marker
// criterion. An empty name clears it.
func (s *Service) SetMarkerFFOA(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookupPresetLocked(name)
	if err != nil {
		return err
	}
	s.model.SetMarkerFFOA(p)
	return nil
}

// SetMarkerLFOA applies the named catalog preset as the LFOA marker
// criterion. An empty name clears it.
func (s *Service) SetMarkerLFOA(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.lookupPresetLocked(name)
	if err != nil {
		return err
	}
	s.model.SetMarkerLFOA(p)
	return nil
}

// TrimSettings reports the offsets and presets currently applied.
func (s *Service) TrimSettings() TrimSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ts TrimSettings
	if tc, ok := s.model.RelativeFFOA(); ok {
		ts.FFOAOffset = tc.String()
	}
	if tc, ok := s.model.RelativeLFOA(); ok {
		ts.LFOAOffset = tc.String()
	}
	if p := s.model.MarkerFFOA(); p != nil {
		ts.MarkerFFOA = p.Name
	}
	if p := s.model.MarkerLFOA(); p != nil {
		ts.MarkerLFOA = p.Name
	}
	return ts
}

// AddPreset adds a marker preset to the catalog.
func (s *Service) AddPreset(p trt.MarkerPreset) error {
	if p.Name == "" {
		return ErrEmptyPresetName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.AddMarkerPreset(p)
}

// LoadPresetCatalog adds every preset from the TOML catalog at path.
func (s *Service) LoadPresetCatalog(path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return trt.LoadPresetCatalog(s.model, path)
}

// Presets returns the marker preset catalog.
func (s *Service) Presets() []PresetView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	presets := s.model.MarkerPresets()
	out := make([]PresetView, 0, len(presets))
	for _, p := range presets {
		out = append(out, newPresetView(p))
	}
	return out
}

// TotalRunningTime returns the summed trimmed duration of every timeline.
func (s *Service) TotalRunningTime() (TRTView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := s.model.TotalRunningTime(s.rate)
	if err != nil {
		return TRTView{}, err
	}
	return newTRTView(total, s.model.Len()), nil
}

// Report renders the plain-text TRT report.
func (s *Service) Report() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := s.model.TotalRunningTime(s.rate)
	if err != nil {
		return "", err
	}
	tls := s.model.Timelines()
	views := make([]TimelineView, 0, len(tls))
	for _, t := range tls {
		views = append(views, newTimelineView(s.ids[t], t))
	}
	return BuildReport(views, newTRTView(total, len(views))), nil
}

func (s *Service) checkRate(side string, offset timecode.Timecode) error {
	if offset.Rate != s.rate {
		return fmt.Errorf("%s offset at %d fps, service at %d fps: %w", side, offset.Rate, s.rate, timecode.ErrRateMismatch)
	}
	return nil
}

func (s *Service) lookupPresetLocked(name string) (*trt.MarkerPreset, error) {
	if name == "" {
		return nil, nil
	}
	return s.model.MarkerPreset(name)
}

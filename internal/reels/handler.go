package reels

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"trt-calculator/internal/binload"
	"trt-calculator/internal/platform/metrics"
	"trt-calculator/internal/timecode"
	"trt-calculator/internal/trt"

	"github.com/go-chi/chi/v5"
)

const reportContentType = "text/plain; charset=utf-8"

// Handler exposes the TRT service over HTTP using go-chi.
type Handler struct {
	svc     *Service
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler that uses the given Service, Logger, and optional Metrics.
// Metrics may be nil to disable metric recording (e.g. in tests).
func NewHandler(svc *Service, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, log: log, metrics: m}
}

// Routes registers the handler's endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/timelines", func(r chi.Router) {
		r.Get("/", h.ListTimelines)
		r.Post("/", h.AddTimeline)
		r.Get("/{timeline_id}", h.GetTimeline)
	})
	r.Route("/trims", func(r chi.Router) {
		r.Get("/", h.GetTrims)
		r.Put("/ffoa", h.SetFFOA)
		r.Put("/lfoa", h.SetLFOA)
		r.Put("/marker-ffoa", h.SetMarkerFFOA)
		r.Put("/marker-lfoa", h.SetMarkerLFOA)
	})
	r.Route("/presets", func(r chi.Router) {
		r.Get("/", h.ListPresets)
		r.Post("/", h.AddPreset)
	})
	r.Get("/trt", h.GetTRT)
	r.Get("/trt.txt", h.GetReport)
}

// AddTimeline handles POST /timelines.
// Body: a binload.Timeline document, e.g.
// { "name": "Reel 1", "start": "01:00:00:00", "end": "01:00:10:00", "markers": [] }.
func (h *Handler) AddTimeline(w http.ResponseWriter, r *http.Request) {
	var doc binload.Timeline
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.log.Debug("invalid timeline body", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := doc.Record(h.svc.Rate())
	if err != nil {
		h.log.Info("timeline rejected", slog.String("name", doc.Name), slog.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	view, err := h.svc.AddTimeline(rec)
	if err != nil {
		h.log.Info("timeline rejected", slog.String("name", doc.Name), slog.String("error", err.Error()))
		writeError(w, statusFor(err), err)
		return
	}

	h.log.Debug("timeline added",
		slog.String("timeline_id", string(view.ID)),
		slog.String("name", view.Name),
		slog.String("range", view.Start+"-"+view.End))
	if h.metrics != nil {
		h.metrics.IncTimelinesAdded()
	}
	writeJSON(w, http.StatusCreated, view)
}

// LoadTimelines adds recs in order, as the server does for TIMELINE_DIR at
// startup. It stops at the first rejected record and returns how many were added.
func (h *Handler) LoadTimelines(recs []trt.TimelineRecord) (int, error) {
	for i, rec := range recs {
		if _, err := h.svc.AddTimeline(rec); err != nil {
			return i, fmt.Errorf("timeline %q: %w", rec.Name, err)
		}
		if h.metrics != nil {
			h.metrics.IncTimelinesAdded()
		}
	}
	return len(recs), nil
}

// ListTimelines handles GET /timelines. ?sort=name orders by name the way a
// bin does; the default is insertion order.
func (h *Handler) ListTimelines(w http.ResponseWriter, r *http.Request) {
	byName := r.URL.Query().Get("sort") == "name"
	writeJSON(w, http.StatusOK, h.svc.Timelines(byName))
}

// GetTimeline handles GET /timelines/{timeline_id}.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	id := TimelineID(chi.URLParam(r, "timeline_id"))
	view, err := h.svc.Timeline(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetTrims handles GET /trims.
func (h *Handler) GetTrims(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.TrimSettings())
}

// SetFFOA handles PUT /trims/ffoa.
func (h *Handler) SetFFOA(w http.ResponseWriter, r *http.Request) {
	h.setOffset(w, r, "ffoa", h.svc.SetRelativeFFOA)
}

// SetLFOA handles PUT /trims/lfoa.
func (h *Handler) SetLFOA(w http.ResponseWriter, r *http.Request) {
	h.setOffset(w, r, "lfoa", h.svc.SetRelativeLFOA)
}

func (h *Handler) setOffset(w http.ResponseWriter, r *http.Request, side string, apply func(timecode.Timecode) error) {
	var req OffsetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid offset body", slog.String("side", side), slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err)
		return
	}

	offset, err := h.parseOffset(req)
	if err == nil {
		err = apply(offset)
	}
	if err != nil {
		h.log.Info("trim rejected", slog.String("side", side), slog.String("error", err.Error()))
		if h.metrics != nil {
			h.metrics.IncTrimsRejected(side)
		}
		writeError(w, statusFor(err), err)
		return
	}

	h.log.Info("trim applied", slog.String("side", side), slog.String("offset", offset.String()))
	h.writeTRT(w)
}

func (h *Handler) parseOffset(req OffsetRequest) (timecode.Timecode, error) {
	var offset timecode.Timecode
	switch {
	case req.Frames != nil:
		offset = timecode.New(*req.Frames, h.svc.Rate())
	case req.Offset != "":
		var err error
		if offset, err = timecode.Parse(req.Offset, h.svc.Rate()); err != nil {
			return timecode.Timecode{}, err
		}
	default:
		return timecode.Timecode{}, fmt.Errorf("%w: offset or frames required", timecode.ErrInvalidTimecode)
	}
	if offset.Frames < 0 {
		return timecode.Timecode{}, fmt.Errorf("%w: negative offset %s", timecode.ErrInvalidTimecode, offset)
	}
	return offset, nil
}

// SetMarkerFFOA handles PUT /trims/marker-ffoa.
func (h *Handler) SetMarkerFFOA(w http.ResponseWriter, r *http.Request) {
	h.setMarker(w, r, "ffoa", h.svc.SetMarkerFFOA)
}

// SetMarkerLFOA handles PUT /trims/marker-lfoa.
func (h *Handler) SetMarkerLFOA(w http.ResponseWriter, r *http.Request) {
	h.setMarker(w, r, "lfoa", h.svc.SetMarkerLFOA)
}

func (h *Handler) setMarker(w http.ResponseWriter, r *http.Request, side string, apply func(string) error) {
	var req MarkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := apply(req.Preset); err != nil {
		h.log.Info("marker preset rejected", slog.String("side", side), slog.String("preset", req.Preset))
		writeError(w, statusFor(err), err)
		return
	}
	h.log.Info("marker preset applied", slog.String("side", side), slog.String("preset", req.Preset))
	h.writeTRT(w)
}

// ListPresets handles GET /presets.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Presets())
}

// AddPreset handles POST /presets.
// Body: { "name": "Picture start", "color": "red", "author": "x", "comment": "x" }.
func (h *Handler) AddPreset(w http.ResponseWriter, r *http.Request) {
	var v PresetView
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := v.preset()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := h.svc.AddPreset(p); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	h.log.Info("marker preset added", slog.String("preset", p.Name))
	writeJSON(w, http.StatusCreated, newPresetView(p))
}

// GetTRT handles GET /trt.
func (h *Handler) GetTRT(w http.ResponseWriter, r *http.Request) {
	h.writeTRT(w)
}

// GetReport handles GET /trt.txt.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report()
	if err != nil {
		h.log.Error("build report failed", slog.String("error", err.Error()))
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", reportContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}

func (h *Handler) writeTRT(w http.ResponseWriter) {
	total, err := h.svc.TotalRunningTime()
	if err != nil {
		h.log.Error("total running time failed", slog.String("error", err.Error()))
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, total)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTimelineNotFound), errors.Is(err, trt.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, trt.ErrDuplicatePreset):
		return http.StatusConflict
	case errors.Is(err, timecode.ErrRateMismatch),
		errors.Is(err, timecode.ErrInvalidTimecode),
		errors.Is(err, timecode.ErrInvalidRange),
		errors.Is(err, binload.ErrInvalidDocument),
		errors.Is(err, ErrEmptyPresetName):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

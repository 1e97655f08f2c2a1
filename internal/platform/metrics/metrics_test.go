package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestMiddleware(t *testing.T) {
	m := New()
	h := RequestMiddleware(m, "/metrics")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/trt", "/missing", "/metrics"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal); got != 2 {
		t.Errorf("requests = %v, want 2 (scrape skipped)", got)
	}
	if got := testutil.ToFloat64(m.errorsTotal); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}
}

func TestDomainMetrics(t *testing.T) {
	m := New()
	m.IncTimelinesAdded()
	m.IncTimelinesAdded()
	m.IncTrimsRejected("ffoa")
	m.SetTimelines(8)
	m.SetTotalRunningFrames(1760)

	if got := testutil.ToFloat64(m.timelinesAddedTotal); got != 2 {
		t.Errorf("timelines added = %v", got)
	}
	if got := testutil.ToFloat64(m.trimsRejectedTotal.WithLabelValues("ffoa")); got != 1 {
		t.Errorf("ffoa rejections = %v", got)
	}
	if got := testutil.ToFloat64(m.totalRunningFrames); got != 1760 {
		t.Errorf("trt frames = %v", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	called := false
	h := m.Handler(func() {
		called = true
		m.SetTimelines(3)
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !called {
		t.Error("updateGauges not called")
	}
	if !strings.Contains(rec.Body.String(), "trt_timelines 3") {
		t.Errorf("scrape missing gauge:\n%s", rec.Body.String())
	}
}

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value returns the counter/gauge value of the named family with the given label pairs.
func value(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if !labelsMatch(metric, labels) {
				continue
			}
			switch {
			case metric.Counter != nil:
				return metric.GetCounter().GetValue()
			case metric.Gauge != nil:
				return metric.GetGauge().GetValue()
			case metric.Histogram != nil:
				return float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	t.Fatalf("metric %s %v not found", name, labels)
	return 0
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.ObserveTick(3 * time.Millisecond)
	m.ObserveTick(20 * time.Millisecond)
	m.Click(ClickAccepted)
	m.Click(ClickOutOfRange)
	m.Click(ClickOutOfRange)
	m.Pan("forward")
	m.SetPanning(true)
	m.SetEntities(2)

	assert.Equal(t, 2.0, value(t, m, "scene_ticks_total", nil))
	assert.Equal(t, 2.0, value(t, m, "scene_tick_duration_seconds", nil))
	assert.Equal(t, 1.0, value(t, m, "scene_clicks_total", map[string]string{"result": ClickAccepted}))
	assert.Equal(t, 2.0, value(t, m, "scene_clicks_total", map[string]string{"result": ClickOutOfRange}))
	assert.Equal(t, 1.0, value(t, m, "scene_pans_total", map[string]string{"direction": "forward"}))
	assert.Equal(t, 1.0, value(t, m, "scene_camera_panning", nil))
	assert.Equal(t, 2.0, value(t, m, "scene_entities", nil))

	m.SetPanning(false)
	assert.Equal(t, 0.0, value(t, m, "scene_camera_panning", nil))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveTick(time.Millisecond)
	assert.Equal(t, 1.0, value(t, a, "scene_ticks_total", nil))
	assert.Equal(t, 0.0, value(t, b, "scene_ticks_total", nil))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Click(ClickNoHit)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `scene_clicks_total{result="no_hit"} 1`)
}

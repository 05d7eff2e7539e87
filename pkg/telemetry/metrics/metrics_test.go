package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/psl/pkg/config"
	"mercator-hq/psl/pkg/psl"
	pslErrors "mercator-hq/psl/pkg/psl/errors"
	pslMetrics "mercator-hq/psl/pkg/psl/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
		Subsystem: "assess",
	}
}

func goodAssessment() psl.Assessment {
	return psl.Assessment{
		Metrics: pslMetrics.Scores{
			CSR:         1.0,
			HRR:         0.7,
			PSLCoverage: 1.0,
			ThreeCScore: 1.0,
		},
		QualityScore: 0.88,
		IssuesCount:  3,
		Issues: []pslErrors.Issue{
			{Rule: "L-03", Level: pslErrors.LevelWarning, Message: "a"},
			{Rule: "L-03", Level: pslErrors.LevelWarning, Message: "b"},
			{Rule: "L-04", Level: pslErrors.LevelWarning, Message: "c"},
		},
		QualityLevel: pslMetrics.LevelGood,
	}
}

func TestNewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if collector.Registry() == nil {
		t.Fatal("expected registry to be created")
	}
	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, config.DefaultMetricsNamespace)
	}
	if cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("Subsystem = %q, want %q", cfg.Subsystem, config.DefaultMetricsSubsystem)
	}
}

func TestCollector_RecordAssessment(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	am := collector.assessmentMetrics

	collector.RecordAssessment(goodAssessment(), 2*time.Millisecond)

	if got := testutil.ToFloat64(am.assessmentsTotal.WithLabelValues("GOOD")); got != 1 {
		t.Errorf("assessments_total{GOOD} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(am.issuesTotal.WithLabelValues("L-03", "warning")); got != 2 {
		t.Errorf("issues_total{L-03,warning} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(am.issuesTotal.WithLabelValues("L-04", "warning")); got != 1 {
		t.Errorf("issues_total{L-04,warning} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(am.metricValue.WithLabelValues("hrr")); got != 0.7 {
		t.Errorf("metric_value{hrr} = %v, want 0.7", got)
	}
	if got := testutil.CollectAndCount(am.qualityScore); got != 1 {
		t.Errorf("quality_score series = %d, want 1", got)
	}
}

func TestCollector_RecordFailedAssessment(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	am := collector.assessmentMetrics

	collector.RecordAssessment(psl.Assessment{
		QualityLevel: pslMetrics.LevelError,
		Error:        "file too large",
	}, time.Millisecond)

	if got := testutil.ToFloat64(am.assessmentsTotal.WithLabelValues("ERROR")); got != 1 {
		t.Errorf("assessments_total{ERROR} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(am.issuesTotal); got != 0 {
		t.Errorf("issues_total series = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(am.metricValue); got != 0 {
		t.Errorf("metric_value series = %d, want 0", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordAssessment(goodAssessment(), time.Millisecond)
	collector.RecordHistoryWrite(nil)
	collector.RecordPruned(5)
	collector.RecordWatchEvent("write")
	collector.SetWatchedDocuments(3)

	if got := testutil.CollectAndCount(collector.assessmentMetrics.assessmentsTotal); got != 0 {
		t.Errorf("assessments_total series = %d, want 0", got)
	}
	if got := testutil.ToFloat64(collector.historyMetrics.prunedTotal); got != 0 {
		t.Errorf("pruned_total = %v, want 0", got)
	}
	if got := testutil.ToFloat64(collector.watchMetrics.watched); got != 0 {
		t.Errorf("watch_documents = %v, want 0", got)
	}
}

func TestCollector_HistoryMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	hm := collector.historyMetrics

	collector.RecordHistoryWrite(nil)
	collector.RecordHistoryWrite(nil)
	collector.RecordHistoryWrite(errors.New("disk full"))
	collector.RecordPruned(4)
	collector.RecordPruned(0)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"writes success", testutil.ToFloat64(hm.writesTotal.WithLabelValues("success")), 2},
		{"writes error", testutil.ToFloat64(hm.writesTotal.WithLabelValues("error")), 1},
		{"pruned", testutil.ToFloat64(hm.prunedTotal), 4},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollector_WatchMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	wm := collector.watchMetrics

	collector.RecordWatchEvent("write")
	collector.RecordWatchEvent("write")
	collector.RecordWatchEvent("create")
	collector.SetWatchedDocuments(7)

	if got := testutil.ToFloat64(wm.eventsTotal.WithLabelValues("write")); got != 2 {
		t.Errorf("events_total{write} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(wm.eventsTotal.WithLabelValues("create")); got != 1 {
		t.Errorf("events_total{create} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(wm.watched); got != 7 {
		t.Errorf("watch_documents = %v, want 7", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordAssessment(goodAssessment(), time.Millisecond)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	for _, want := range []string{
		"test_assess_assessments_total",
		"test_assess_issues_total",
		"test_assess_quality_score",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// Two collectors must not conflict on registration.
	NewCollector(testConfig(), nil)
	NewCollector(testConfig(), nil)
}

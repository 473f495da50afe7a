package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"FarmPulse/internal/domain/models"
	drepo "FarmPulse/internal/domain/repository"
	applogger "FarmPulse/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

type fakeSource struct {
	name   string
	obs    []models.PriceObservation
	panics bool
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(ctx context.Context) []models.PriceObservation {
	if s.panics {
		panic("upstream exploded")
	}
	return s.obs
}

type fakeStore struct {
	saved    []models.PriceObservation
	batchErr error
	dropAll  bool

	history     []models.PricePoint
	historyErr  error
	historyHits int

	countOnDay int
	purged     int
	purgeErr   error
}

func (s *fakeStore) Upsert(ctx context.Context, o models.PriceObservation) error { return nil }

func (s *fakeStore) UpsertBatch(ctx context.Context, obs []models.PriceObservation) (int, error) {
	if s.dropAll {
		return 0, s.batchErr
	}
	if s.batchErr != nil {
		// keep all but one record to simulate a partial batch
		s.saved = append(s.saved, obs[:len(obs)-1]...)
		return len(obs) - 1, s.batchErr
	}
	s.saved = append(s.saved, obs...)
	return len(obs), nil
}

func (s *fakeStore) History(ctx context.Context, commodity, market string, limit, sinceDays int) ([]models.PricePoint, error) {
	s.historyHits++
	return s.history, s.historyErr
}

func (s *fakeStore) LatestPrice(ctx context.Context, commodity, market string) (float64, bool, error) {
	return 0, false, nil
}

func (s *fakeStore) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	return s.purged, s.purgeErr
}

func (s *fakeStore) CountOnDay(ctx context.Context, day string) (int, error) {
	return s.countOnDay, nil
}
func (s *fakeStore) Health(ctx context.Context) error                         { return nil }
func (s *fakeStore) Close() error                                             { return nil }

type fakeRunLog struct {
	runs      []models.CollectionRun
	appendErr error
	purged    int
}

func (l *fakeRunLog) Append(ctx context.Context, run models.CollectionRun) error {
	l.runs = append(l.runs, run)
	return l.appendErr
}

func (l *fakeRunLog) Recent(ctx context.Context, limit int) ([]models.CollectionRun, error) {
	return l.runs, nil
}

func (l *fakeRunLog) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	return l.purged, nil
}

type fakeNotifier struct {
	kinds    []string
	messages []string
}

func (n *fakeNotifier) Notify(ctx context.Context, kind, message string) error {
	n.kinds = append(n.kinds, kind)
	n.messages = append(n.messages, message)
	return nil
}

func (n *fakeNotifier) Close() error { return nil }

type fakeMetrics struct {
	savedBySource map[string]int
	errorKinds    []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{savedBySource: make(map[string]int)}
}

func (m *fakeMetrics) RecordSaved(source string, count int) { m.savedBySource[source] += count }
func (m *fakeMetrics) RecordError(kind string)              { m.errorKinds = append(m.errorKinds, kind) }
func (m *fakeMetrics) RecordLastPrice(commodity, market string, price float64) {}
func (m *fakeMetrics) RecordDuration(op string, seconds float64)               {}

func obsBatch(n int) []models.PriceObservation {
	out := make([]models.PriceObservation, n)
	for i := range out {
		out[i] = models.PriceObservation{
			Market:     "Soweto Market",
			Commodity:  "Maize",
			Price:      120.50,
			Source:     "ZNFU",
			RecordedAt: time.Date(2024, 10, 14, 8, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func TestRunCollectionSuccess(t *testing.T) {
	store := &fakeStore{}
	runLog := &fakeRunLog{}
	notifier := &fakeNotifier{}
	metrics := newFakeMetrics()
	c := NewCollector(
		[]drepo.Source{&fakeSource{name: "ZNFU", obs: obsBatch(4)}},
		store, runLog, notifier, metrics, testLogger(t), time.Second,
	)

	run := c.RunCollection(context.Background(), models.OpManual)

	if run.Status != models.RunSuccess {
		t.Fatalf("status = %s, want success", run.Status)
	}
	if run.RecordsCollected != 4 {
		t.Fatalf("records collected = %d", run.RecordsCollected)
	}
	if run.Operation != models.OpManual {
		t.Fatalf("operation = %s", run.Operation)
	}
	if len(store.saved) != 4 {
		t.Fatalf("store saved %d records", len(store.saved))
	}
	if len(runLog.runs) != 1 {
		t.Fatalf("run log has %d entries", len(runLog.runs))
	}
	if metrics.savedBySource["ZNFU"] != 4 {
		t.Fatalf("metrics recorded %d saved", metrics.savedBySource["ZNFU"])
	}
	if len(notifier.kinds) != 1 || notifier.kinds[0] != "collection_run" {
		t.Fatalf("notifier kinds = %v", notifier.kinds)
	}
	if !strings.Contains(notifier.messages[0], "4/4 records saved") {
		t.Fatalf("summary = %q", notifier.messages[0])
	}
}

func TestRunCollectionPartialOnBatchError(t *testing.T) {
	store := &fakeStore{batchErr: errors.New("1 of 4 records failed: write timeout")}
	c := NewCollector(
		[]drepo.Source{&fakeSource{name: "MACO", obs: obsBatch(4)}},
		store, &fakeRunLog{}, &fakeNotifier{}, newFakeMetrics(), testLogger(t), time.Second,
	)

	run := c.RunCollection(context.Background(), models.OpScheduled)

	if run.Status != models.RunPartial {
		t.Fatalf("status = %s, want partial", run.Status)
	}
	if run.RecordsCollected != 3 {
		t.Fatalf("records collected = %d, want 3", run.RecordsCollected)
	}
	if run.ErrorMessage == "" {
		t.Fatal("partial run should carry the storage error")
	}
}

func TestRunCollectionFailedWhenNothingSaved(t *testing.T) {
	store := &fakeStore{dropAll: true, batchErr: errors.New("connection refused")}
	c := NewCollector(
		[]drepo.Source{&fakeSource{name: "CSO", obs: obsBatch(2)}},
		store, &fakeRunLog{}, &fakeNotifier{}, newFakeMetrics(), testLogger(t), time.Second,
	)

	run := c.RunCollection(context.Background(), models.OpScheduled)

	if run.Status != models.RunFailed {
		t.Fatalf("status = %s, want failed", run.Status)
	}
	if run.RecordsCollected != 0 {
		t.Fatalf("records collected = %d", run.RecordsCollected)
	}
}

func TestRunCollectionEmptySourcesIsPartial(t *testing.T) {
	c := NewCollector(
		[]drepo.Source{&fakeSource{name: "IAPRI"}},
		&fakeStore{}, &fakeRunLog{}, &fakeNotifier{}, newFakeMetrics(), testLogger(t), time.Second,
	)

	run := c.RunCollection(context.Background(), models.OpScheduled)

	if run.Status != models.RunPartial {
		t.Fatalf("status = %s, want partial", run.Status)
	}
	if !strings.Contains(run.ErrorMessage, "no records collected") {
		t.Fatalf("error message = %q", run.ErrorMessage)
	}
}

func TestRunCollectionIsolatesPanickingSource(t *testing.T) {
	store := &fakeStore{}
	metrics := newFakeMetrics()
	c := NewCollector(
		[]drepo.Source{
			&fakeSource{name: "ZAMACE", panics: true},
			&fakeSource{name: "ZNFU", obs: obsBatch(3)},
		},
		store, &fakeRunLog{}, &fakeNotifier{}, metrics, testLogger(t), time.Second,
	)

	run := c.RunCollection(context.Background(), models.OpScheduled)

	if run.Status != models.RunSuccess {
		t.Fatalf("status = %s, want success despite one panicking source", run.Status)
	}
	if len(store.saved) != 3 {
		t.Fatalf("store saved %d records", len(store.saved))
	}
	found := false
	for _, k := range metrics.errorKinds {
		if k == "source_panic" {
			found = true
		}
	}
	if !found {
		t.Fatal("panic should be counted as source_panic")
	}
}

func TestRunStatusRules(t *testing.T) {
	cases := []struct {
		collected, saved int
		err              error
		want             models.RunStatus
	}{
		{10, 10, nil, models.RunSuccess},
		{10, 7, errors.New("x"), models.RunPartial},
		{10, 0, errors.New("x"), models.RunFailed},
		{0, 0, nil, models.RunPartial},
	}
	for _, tc := range cases {
		if got := runStatus(tc.collected, tc.saved, tc.err); got != tc.want {
			t.Errorf("runStatus(%d, %d, %v) = %s, want %s", tc.collected, tc.saved, tc.err, got, tc.want)
		}
	}
}

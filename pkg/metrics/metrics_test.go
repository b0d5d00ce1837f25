package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegistryCountersAndGauges(t *testing.T) {
	r, err := NewRegistry("")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer r.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Inc("catalog_products_created")
		}()
	}
	wg.Wait()
	r.SetGauge("catalog_products", 3)
	r.SetGauge("catalog_products", 5)

	s := r.Snapshot()
	if s.Counters["catalog_products_created"] != 50 {
		t.Fatalf("counter = %d", s.Counters["catalog_products_created"])
	}
	if s.Gauges["catalog_products"] != 5 {
		t.Fatalf("gauge = %d", s.Gauges["catalog_products"])
	}

	s.Gauges["catalog_products"] = 99
	if r.Snapshot().Gauges["catalog_products"] != 5 {
		t.Fatalf("snapshot must be a copy")
	}
}

func TestRegistryHistory(t *testing.T) {
	r, err := NewRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	defer r.Close()

	base := time.Now()
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i-3) * time.Minute)
		r.now = func() time.Time { return at }
		r.SetGauge("catalog_uploads", int64(i+1))
	}
	r.now = func() time.Time { return base }

	points, err := r.History("catalog_uploads", time.Hour)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(points) != 3 || points[0].Value != 1 || points[2].Value != 3 {
		t.Fatalf("points = %+v", points)
	}

	empty, err := r.History("unknown_metric", time.Hour)
	if err != nil || len(empty) != 0 {
		t.Fatalf("History(unknown) = %v, %v", empty, err)
	}
}

type failingStore struct {
	tstorage.Storage
}

func (failingStore) InsertRows([]tstorage.Row) error {
	return errors.New("partition closed")
}

func TestRegistryLogsRejectedSamples(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core)))

	r := &Registry{
		counters: make(map[string]int64),
		gauges:   make(map[string]int64),
		store:    failingStore{},
		now:      time.Now,
	}
	r.Inc("catalog_products_created")

	if r.Snapshot().Counters["catalog_products_created"] != 1 {
		t.Fatalf("counter should still advance")
	}
	entries := logs.FilterMessage("record metric sample failed").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["metric"]; got != "catalog_products_created" {
		t.Fatalf("metric field = %v", got)
	}
}

// Package metrics keeps process counters and gauges in memory and mirrors
// every change into a tstorage time series, so recent history can be
// queried alongside the current snapshot.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Point is one recorded sample.
type Point struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Snapshot is the current value of every metric.
type Snapshot struct {
	Counters map[string]int64 `json:"counters"`
	Gauges   map[string]int64 `json:"gauges"`
}

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]int64
	store    tstorage.Storage
	now      func() time.Time
}

// NewRegistry opens a registry persisting samples under dataPath. An empty
// dataPath keeps samples in memory only.
func NewRegistry(dataPath string) (*Registry, error) {
	opts := []tstorage.Option{
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7 * 24 * time.Hour),
	}
	if dataPath != "" {
		opts = append(opts, tstorage.WithDataPath(dataPath))
	}
	store, err := tstorage.NewStorage(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "open metrics storage")
	}
	return &Registry{
		counters: make(map[string]int64),
		gauges:   make(map[string]int64),
		store:    store,
		now:      time.Now,
	}, nil
}

// Inc adds one to a counter.
func (r *Registry) Inc(name string) {
	r.Add(name, 1)
}

// Add adds delta to a counter.
func (r *Registry) Add(name string, delta int64) {
	r.mu.Lock()
	r.counters[name] += delta
	v := r.counters[name]
	r.mu.Unlock()
	r.record(name, v)
}

// SetGauge replaces the value of a gauge.
func (r *Registry) SetGauge(name string, value int64) {
	r.mu.Lock()
	r.gauges[name] = value
	r.mu.Unlock()
	r.record(name, value)
}

func (r *Registry) record(name string, value int64) {
	err := r.store.InsertRows([]tstorage.Row{{
		Metric:    name,
		DataPoint: tstorage.DataPoint{Timestamp: r.now().Unix(), Value: float64(value)},
	}})
	if err != nil {
		zap.L().Debug("record metric sample failed", zap.String("metric", name), zap.Error(err))
	}
}

// Snapshot copies the current values.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Snapshot{
		Counters: make(map[string]int64, len(r.counters)),
		Gauges:   make(map[string]int64, len(r.gauges)),
	}
	for k, v := range r.counters {
		s.Counters[k] = v
	}
	for k, v := range r.gauges {
		s.Gauges[k] = v
	}
	return s
}

// History returns the samples of name recorded within the last window,
// oldest first. A metric without samples yields an empty slice.
func (r *Registry) History(name string, window time.Duration) ([]Point, error) {
	end := r.now().Unix() + 1
	start := end - int64(window/time.Second) - 1
	points, err := r.store.Select(name, nil, start, end)
	if errors.Is(err, tstorage.ErrNoDataPoints) {
		return []Point{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select %s", name)
	}
	out := make([]Point, 0, len(points))
	for _, p := range points {
		out = append(out, Point{Timestamp: p.Timestamp, Value: p.Value})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

// Close flushes buffered samples to disk.
func (r *Registry) Close() error {
	return r.store.Close()
}

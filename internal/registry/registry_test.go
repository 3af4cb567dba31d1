package registry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"job-pulse/internal/domain/forecast"
)

type stubStore struct {
	models  map[string][]byte
	scalers map[string][]byte

	modelCalls  atomic.Int64
	scalerCalls atomic.Int64
	delay       time.Duration
	err         error
}

func (s *stubStore) FetchModel(ctx context.Context, slug string) ([]byte, error) {
	s.modelCalls.Add(1)
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	b, ok := s.models[slug]
	if !ok {
		return nil, ErrArtifactNotFound
	}
	return b, nil
}

func (s *stubStore) FetchScaler(ctx context.Context, slug string) ([]byte, error) {
	s.scalerCalls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	b, ok := s.scalers[slug]
	if !ok {
		return nil, ErrArtifactNotFound
	}
	return b, nil
}

func artifacts(t *testing.T, slug string, weights []float64, bias, min, max float64) *stubStore {
	t.Helper()
	model, err := json.Marshal(map[string]any{"weights": weights, "bias": bias})
	if err != nil {
		t.Fatal(err)
	}
	scaler, err := json.Marshal(map[string]float64{"min": min, "max": max})
	if err != nil {
		t.Fatal(err)
	}
	return &stubStore{
		models:  map[string][]byte{slug: model},
		scalers: map[string][]byte{slug: scaler},
	}
}

func uniformWeights() []float64 {
	w := make([]float64, forecast.WindowSize)
	for i := range w {
		w[i] = 1.0 / float64(forecast.WindowSize)
	}
	return w
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"  Data Scientist ": "data_scientist",
		"DevOps/SRE":        "devops-sre",
		"ML  Engineer":      "ml_engineer",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_AvailableHandlePredicts(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 200)
	r := New(store, time.Second, nil)

	res := r.Resolve(context.Background(), "Data Scientist")
	if !res.Available || res.Handle == nil {
		t.Fatalf("expected available resolution, got %+v", res)
	}

	window := make([]float64, forecast.WindowSize)
	for i := range window {
		window[i] = 0.5
	}
	out, err := res.Handle.Predict(window)
	if err != nil {
		t.Fatalf("unexpected predict err: %v", err)
	}
	if out != 0.5 {
		t.Fatalf("expected mean of uniform window, got %v", out)
	}
}

func TestResolve_MissingArtifactIsUnavailable(t *testing.T) {
	r := New(&stubStore{}, time.Second, nil)
	res := r.Resolve(context.Background(), "Ghost Role")
	if res.Available {
		t.Fatalf("expected unavailable")
	}
	if res.Reason != ReasonArtifactMissing {
		t.Fatalf("expected %s, got %s", ReasonArtifactMissing, res.Reason)
	}
}

func TestResolve_PartialArtifactIsUnavailable(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 100)
	store.scalers = map[string][]byte{}
	r := New(store, time.Second, nil)

	res := r.Resolve(context.Background(), "Data Scientist")
	if res.Available {
		t.Fatalf("model without scaler must be unavailable")
	}
}

func TestResolve_CorruptArtifactIsUnavailable(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 100)
	store.models["data_scientist"] = []byte("{not json")
	r := New(store, time.Second, nil)

	res := r.Resolve(context.Background(), "Data Scientist")
	if res.Available || res.Reason != ReasonArtifactCorrupt {
		t.Fatalf("expected artifact_corrupt, got %+v", res)
	}
}

func TestResolve_WrongShapeIsUnavailable(t *testing.T) {
	store := artifacts(t, "data_scientist", []float64{1, 2, 3}, 0, 0, 100)
	r := New(store, time.Second, nil)

	res := r.Resolve(context.Background(), "Data Scientist")
	if res.Available || res.Reason != ReasonArtifactCorrupt {
		t.Fatalf("expected artifact_corrupt for bad shape, got %+v", res)
	}
}

func TestResolve_IdempotentSingleRead(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 100)
	r := New(store, time.Second, nil)

	first := r.Resolve(context.Background(), "Data Scientist")
	second := r.Resolve(context.Background(), "data scientist")

	if !first.Available || !second.Available {
		t.Fatalf("expected both resolutions available")
	}
	if first.Handle != second.Handle {
		t.Fatalf("expected the same cached handle")
	}
	if got := store.modelCalls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 model read, got %d", got)
	}
}

func TestResolve_ConcurrentSingleRead(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 100)
	store.delay = 20 * time.Millisecond
	r := New(store, time.Second, nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := r.Resolve(context.Background(), "Data Scientist")
			if !res.Available {
				t.Errorf("expected available resolution")
			}
		}()
	}
	wg.Wait()

	if got := store.modelCalls.Load(); got != 1 {
		t.Fatalf("concurrent resolve must trigger exactly 1 store read, got %d", got)
	}
}

func TestResolve_TimeoutDegradesToUnavailable(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 100)
	store.delay = 200 * time.Millisecond
	r := New(store, 10*time.Millisecond, nil)

	res := r.Resolve(context.Background(), "Data Scientist")
	if res.Available {
		t.Fatalf("expected unavailable on store timeout")
	}
	if res.Reason != ReasonStoreTimeout {
		t.Fatalf("expected store_timeout diagnostic, got %s", res.Reason)
	}
}

func TestResolve_StoreErrorDegrades(t *testing.T) {
	r := New(&stubStore{err: errors.New("connection refused")}, time.Second, nil)
	res := r.Resolve(context.Background(), "Data Scientist")
	if res.Available || res.Reason != ReasonStoreError {
		t.Fatalf("expected store_error, got %+v", res)
	}
}

func TestInvalidate_ForcesReload(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 100)
	r := New(store, time.Second, nil)

	r.Resolve(context.Background(), "Data Scientist")
	r.Invalidate("Data Scientist")
	r.Resolve(context.Background(), "Data Scientist")

	if got := store.modelCalls.Load(); got != 2 {
		t.Fatalf("expected reload after invalidation, got %d reads", got)
	}
}

func TestInvalidateAll(t *testing.T) {
	store := artifacts(t, "data_scientist", uniformWeights(), 0, 0, 100)
	r := New(store, time.Second, nil)

	r.Resolve(context.Background(), "Data Scientist")
	r.Resolve(context.Background(), "Other Role")
	if r.CachedCount() != 2 {
		t.Fatalf("expected 2 cached entries, got %d", r.CachedCount())
	}

	r.InvalidateAll()
	if r.CachedCount() != 0 {
		t.Fatalf("expected empty cache, got %d", r.CachedCount())
	}
}

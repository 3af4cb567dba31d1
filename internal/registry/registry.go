package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"job-pulse/internal/domain/forecast"
)

// ErrArtifactNotFound is the store's "no such object" answer; it is a
// normal outcome, never surfaced to callers as a failure.
var ErrArtifactNotFound = errors.New("artifact not found")

// Unavailability diagnostic codes, kept distinguishable for operators.
const (
	ReasonArtifactMissing = "artifact_missing"
	ReasonArtifactCorrupt = "artifact_corrupt"
	ReasonStoreTimeout    = "store_timeout"
	ReasonStoreError      = "store_error"
)

// Store fetches raw model and scaler artifacts keyed by role slug.
type Store interface {
	FetchModel(ctx context.Context, slug string) ([]byte, error)
	FetchScaler(ctx context.Context, slug string) ([]byte, error)
}

type modelArtifact struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

type scalerArtifact struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Registry resolves roles to (model, scaler) handles. Resolutions are
// cached process-wide; concurrent resolution of an unresolved role
// performs exactly one store read.
type Registry struct {
	store   Store
	timeout time.Duration
	logger  *log.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	once sync.Once
	res  forecast.Resolution
}

func New(store Store, fetchTimeout time.Duration, logger *log.Logger) *Registry {
	if fetchTimeout <= 0 {
		fetchTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		store:   store,
		timeout: fetchTimeout,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Slug normalizes a role name to its artifact key: trimmed, lowered,
// spaces to underscores, slashes to dashes.
func Slug(role string) string {
	s := strings.ToLower(strings.TrimSpace(role))
	s = strings.Join(strings.Fields(s), "_")
	return strings.ReplaceAll(s, "/", "-")
}

// Resolve answers Available/Unavailable for a role. It never returns
// an error: every failure mode degrades to Unavailable with a
// diagnostic reason.
func (r *Registry) Resolve(ctx context.Context, role string) forecast.Resolution {
	slug := Slug(role)
	if slug == "" {
		return forecast.Unavailable(ReasonArtifactMissing)
	}
	if ctx.Err() != nil {
		return forecast.Unavailable(ReasonStoreTimeout)
	}

	e := r.claim(slug)
	e.once.Do(func() {
		e.res = r.load(slug)
	})
	return e.res
}

func (r *Registry) claim(slug string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[slug]
	if !ok {
		e = &entry{}
		r.entries[slug] = e
	}
	return e
}

// load runs detached from the caller's context so one abandoned
// request cannot poison the shared cache entry for waiting resolvers.
func (r *Registry) load(slug string) forecast.Resolution {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	modelRaw, err := r.store.FetchModel(ctx, slug)
	if err != nil {
		return r.unavailable(slug, "model", err)
	}
	scalerRaw, err := r.store.FetchScaler(ctx, slug)
	if err != nil {
		return r.unavailable(slug, "scaler", err)
	}

	var model modelArtifact
	if err := json.Unmarshal(modelRaw, &model); err != nil {
		r.logger.Printf("[Registry] corrupt model artifact | slug=%s error=%v", slug, err)
		return forecast.Unavailable(ReasonArtifactCorrupt)
	}
	if len(model.Weights) != forecast.WindowSize {
		r.logger.Printf("[Registry] model weight shape mismatch | slug=%s weights=%d", slug, len(model.Weights))
		return forecast.Unavailable(ReasonArtifactCorrupt)
	}

	var scaler scalerArtifact
	if err := json.Unmarshal(scalerRaw, &scaler); err != nil {
		r.logger.Printf("[Registry] corrupt scaler artifact | slug=%s error=%v", slug, err)
		return forecast.Unavailable(ReasonArtifactCorrupt)
	}

	handle := &forecast.Handle{
		Role:       slug,
		WindowSize: forecast.WindowSize,
		Scaler:     forecast.Scaler{Min: scaler.Min, Max: scaler.Max},
		Predict:    densePredict(model),
	}
	r.logger.Printf("[Registry] model loaded | slug=%s", slug)
	return forecast.Available(handle)
}

func (r *Registry) unavailable(slug, artifact string, err error) forecast.Resolution {
	switch {
	case errors.Is(err, ErrArtifactNotFound):
		return forecast.Unavailable(ReasonArtifactMissing)
	case errors.Is(err, context.DeadlineExceeded):
		r.logger.Printf("[Registry] store timeout | slug=%s artifact=%s", slug, artifact)
		return forecast.Unavailable(ReasonStoreTimeout)
	default:
		r.logger.Printf("[Registry] store error | slug=%s artifact=%s error=%v", slug, artifact, err)
		return forecast.Unavailable(ReasonStoreError)
	}
}

// densePredict evaluates the exported inference weights over one
// normalized window.
func densePredict(model modelArtifact) forecast.PredictFunc {
	weights := model.Weights
	bias := model.Bias
	return func(window []float64) (float64, error) {
		if len(window) != len(weights) {
			return 0, fmt.Errorf("window length %d does not match model shape %d", len(window), len(weights))
		}
		out := bias
		for i, v := range window {
			out += v * weights[i]
		}
		return out, nil
	}
}

// Invalidate drops the cached resolution for one role, forcing a
// fresh store read on the next resolve. Used after retraining.
func (r *Registry) Invalidate(role string) {
	slug := Slug(role)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, slug)
}

// InvalidateAll drops every cached resolution.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entry)
}

// CachedCount reports how many resolutions are currently cached.
func (r *Registry) CachedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

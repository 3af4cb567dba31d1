package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"job-pulse/internal/domain/forecast"
)

type memDatasetStore struct {
	objects map[string][]byte
	putErr  error
}

func (m *memDatasetStore) PutDataset(_ context.Context, id string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[id] = data
	return nil
}

func (m *memDatasetStore) GetDataset(_ context.Context, id string) (io.ReadCloser, error) {
	b, ok := m.objects[id]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memDatasetStore) ListDatasets(context.Context) ([]StoredDataset, error) {
	out := make([]StoredDataset, 0, len(m.objects))
	for id, b := range m.objects {
		out = append(out, StoredDataset{ID: id, Size: int64(len(b))})
	}
	return out, nil
}

type memCache struct {
	entries map[string][]byte
	gets    int
	sets    int
}

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.gets++
	b, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.sets++
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = b
	return nil
}

func (m *memCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

type recordingNotifier struct {
	completed int
	roles     int
}

func (n *recordingNotifier) PredictionCompleted(_ string, roles int) {
	n.completed++
	n.roles = roles
}

func newDatasetUsecase(store *memDatasetStore, cache *memCache, notifier *recordingNotifier) *Dataset {
	forecaster := forecast.NewForecaster(unavailableResolver{}, nil)
	engine := NewPredictionEngine(forecaster, mockProfileRepo{}, nil)
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	var c PredictionCache
	if cache != nil {
		c = cache
	}
	return NewDatasetUsecase(store, c, engine, n, nil)
}

const validCSV = "job_title,date,postings_count\nData Scientist,2024-01-01,5\nDevOps Engineer,2024-01-01,3\n"

func TestDatasetUpload_RejectsNonCSV(t *testing.T) {
	u := newDatasetUsecase(&memDatasetStore{}, nil, nil)
	_, err := u.Upload(context.Background(), "data.xlsx", []byte("x"))
	if !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset, got %v", err)
	}
}

func TestDatasetUpload_RejectsBadSchema(t *testing.T) {
	u := newDatasetUsecase(&memDatasetStore{}, nil, nil)
	_, err := u.Upload(context.Background(), "data.csv", []byte("foo,bar\n1,2\n"))
	if !errors.Is(err, ErrInvalidDataset) {
		t.Fatalf("expected ErrInvalidDataset for bad schema, got %v", err)
	}
}

func TestDatasetUpload_StoresAndReturnsID(t *testing.T) {
	store := &memDatasetStore{}
	u := newDatasetUsecase(store, nil, nil)

	res, err := u.Upload(context.Background(), "postings.csv", []byte(validCSV))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uuid.Parse(res.DatasetID); err != nil {
		t.Fatalf("expected uuid dataset id, got %q", res.DatasetID)
	}
	if _, ok := store.objects[res.DatasetID]; !ok {
		t.Fatalf("dataset not stored")
	}
}

func TestDatasetList_ReturnsUploaded(t *testing.T) {
	store := &memDatasetStore{}
	u := newDatasetUsecase(store, nil, nil)

	up, err := u.Upload(context.Background(), "postings.csv", []byte(validCSV))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	items, err := u.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != up.DatasetID {
		t.Fatalf("expected uploaded dataset in listing, got %+v", items)
	}
}

func TestDatasetPredict_InvalidID(t *testing.T) {
	u := newDatasetUsecase(&memDatasetStore{}, nil, nil)
	_, err := u.Predict(context.Background(), "not-a-uuid", CandidateProfile{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDatasetPredict_UnknownDataset(t *testing.T) {
	u := newDatasetUsecase(&memDatasetStore{}, nil, nil)
	_, err := u.Predict(context.Background(), uuid.NewString(), CandidateProfile{})
	if !errors.Is(err, ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestDatasetPredict_RunsEngineAndNotifies(t *testing.T) {
	store := &memDatasetStore{}
	notifier := &recordingNotifier{}
	u := newDatasetUsecase(store, nil, notifier)

	up, err := u.Upload(context.Background(), "postings.csv", []byte(validCSV))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	resp, err := u.Predict(context.Background(), up.DatasetID, CandidateProfile{})
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if len(resp.Reports) != 2 {
		t.Fatalf("expected 2 role reports, got %d", len(resp.Reports))
	}
	if notifier.completed != 1 || notifier.roles != 2 {
		t.Fatalf("expected completion notification, got %+v", notifier)
	}
}

func TestDatasetPredict_SecondCallHitsCache(t *testing.T) {
	store := &memDatasetStore{}
	cache := &memCache{}
	u := newDatasetUsecase(store, cache, nil)

	up, err := u.Upload(context.Background(), "postings.csv", []byte(validCSV))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	first, err := u.Predict(context.Background(), up.DatasetID, CandidateProfile{})
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	second, err := u.Predict(context.Background(), up.DatasetID, CandidateProfile{})
	if err != nil {
		t.Fatalf("cached predict failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cached call must not recompute, got %d writes", cache.sets)
	}
	if len(second.Reports) != len(first.Reports) {
		t.Fatalf("cache returned different shape")
	}
}

func TestPredictionCacheKey_NormalizesProfile(t *testing.T) {
	id := uuid.NewString()
	a := PredictionCacheKey(id, CandidateProfile{Skills: []string{" Python", "sql"}, ExperienceLevel: "MID"})
	b := PredictionCacheKey(id, CandidateProfile{Skills: []string{"SQL", "python "}, ExperienceLevel: "mid"})
	if a != b {
		t.Fatalf("equivalent profiles must share a cache key")
	}

	c := PredictionCacheKey(id, CandidateProfile{Skills: []string{"go"}})
	if a == c {
		t.Fatalf("different profiles must not collide")
	}
}

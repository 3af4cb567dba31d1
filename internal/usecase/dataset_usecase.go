package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"job-pulse/internal/ingest"
)

// StoredDataset is one uploaded dataset's listing entry.
type StoredDataset struct {
	ID         string
	Size       int64
	UploadedAt time.Time
}

// DatasetStore is the upload collaborator: raw CSVs live in the
// artifact store next to the model artifacts.
type DatasetStore interface {
	PutDataset(ctx context.Context, id string, data []byte) error
	GetDataset(ctx context.Context, id string) (io.ReadCloser, error)
	ListDatasets(ctx context.Context) ([]StoredDataset, error)
}

// PredictionCache holds computed responses keyed by dataset and
// candidate profile.
type PredictionCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Notifier pushes engine lifecycle events to connected dashboards.
type Notifier interface {
	PredictionCompleted(datasetID string, roles int)
}

const maxDatasetBytes = 32 << 20

type UploadResult struct {
	DatasetID string
	Filename  string
}

type DatasetUsecase interface {
	Upload(ctx context.Context, filename string, data []byte) (UploadResult, error)
	List(ctx context.Context) ([]StoredDataset, error)
	Predict(ctx context.Context, datasetID string, candidate CandidateProfile) (PredictionResponse, error)
}

type Dataset struct {
	store    DatasetStore
	cache    PredictionCache
	engine   *PredictionEngine
	notifier Notifier
	logger   *log.Logger
}

func NewDatasetUsecase(store DatasetStore, cache PredictionCache, engine *PredictionEngine, notifier Notifier, logger *log.Logger) *Dataset {
	if logger == nil {
		logger = log.Default()
	}
	return &Dataset{store: store, cache: cache, engine: engine, notifier: notifier, logger: logger}
}

func (u *Dataset) Upload(ctx context.Context, filename string, data []byte) (UploadResult, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" || len(data) == 0 {
		return UploadResult{}, ErrInvalidInput
	}
	if len(data) > maxDatasetBytes {
		return UploadResult{}, fmt.Errorf("%w: dataset exceeds %d bytes", ErrInvalidDataset, maxDatasetBytes)
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".csv" {
		return UploadResult{}, fmt.Errorf("%w: unsupported file type %s", ErrInvalidDataset, ext)
	}

	// Schema problems surface at upload time so the caller gets a
	// structured validation failure before anything is stored.
	if _, _, err := ingest.Parse(bytes.NewReader(data)); err != nil {
		return UploadResult{}, fmt.Errorf("%w: %s", ErrInvalidDataset, err.Error())
	}

	id := uuid.NewString()
	if err := u.store.PutDataset(ctx, id, data); err != nil {
		u.logger.Printf("[Dataset] upload store failed | error=%v", err)
		return UploadResult{}, ErrInternal
	}

	return UploadResult{DatasetID: id, Filename: filepath.Base(filename)}, nil
}

// List returns uploaded datasets, newest first.
func (u *Dataset) List(ctx context.Context) ([]StoredDataset, error) {
	items, err := u.store.ListDatasets(ctx)
	if err != nil {
		u.logger.Printf("[Dataset] list failed | error=%v", err)
		return nil, ErrInternal
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})
	return items, nil
}

func (u *Dataset) Predict(ctx context.Context, datasetID string, candidate CandidateProfile) (PredictionResponse, error) {
	datasetID = strings.TrimSpace(datasetID)
	if _, err := uuid.Parse(datasetID); err != nil {
		return PredictionResponse{}, ErrInvalidInput
	}

	cacheKey := PredictionCacheKey(datasetID, candidate)
	if u.cache != nil {
		var cached PredictionResponse
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	if u.cache != nil {
		// Best-effort lock: duplicate concurrent recomputes waste CPU
		// but stay correct, so a missing lock is not fatal.
		if ok, err := u.cache.SetIfNotExists(ctx, PredictionLockKey(cacheKey), datasetID, 30*time.Second); err == nil && !ok {
			u.logger.Printf("[Dataset] concurrent recompute detected | dataset=%s", datasetID)
		}
	}

	rc, err := u.store.GetDataset(ctx, datasetID)
	if err != nil {
		return PredictionResponse{}, ErrDatasetNotFound
	}
	defer rc.Close()

	records, summary, err := ingest.Parse(rc)
	if err != nil {
		var schemaErr *ingest.SchemaError
		if errors.As(err, &schemaErr) || errors.Is(err, ingest.ErrInvalidSchema) {
			return PredictionResponse{}, fmt.Errorf("%w: %s", ErrInvalidDataset, err.Error())
		}
		return PredictionResponse{}, ErrDatasetNotFound
	}

	response := u.engine.Run(ctx, records, summary, candidate)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, response, 0); err != nil {
			u.logger.Printf("[Dataset] cache write failed | dataset=%s error=%v", datasetID, err)
		}
		_ = u.cache.Delete(ctx, PredictionLockKey(cacheKey))
	}

	if u.notifier != nil {
		u.notifier.PredictionCompleted(datasetID, len(response.Reports))
	}

	return response, nil
}

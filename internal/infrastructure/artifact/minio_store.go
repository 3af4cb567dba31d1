package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"job-pulse/internal/config"
	"job-pulse/internal/registry"
	"job-pulse/internal/usecase"
)

const (
	modelPrefix   = "models/lstm_"
	scalerPrefix  = "models/scaler_"
	datasetPrefix = "datasets/"
)

// MinioStore backs the model registry and dataset uploads with one
// object-store bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg config.ArtifactConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store client: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) FetchModel(ctx context.Context, slug string) ([]byte, error) {
	return s.fetch(ctx, modelPrefix+slug+".json")
}

func (s *MinioStore) FetchScaler(ctx context.Context, slug string) ([]byte, error) {
	return s.fetch(ctx, scalerPrefix+slug+".json")
}

func (s *MinioStore) fetch(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("artifact store not initialized")
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("artifact get object: %w", err)
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, registry.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("artifact read object %s: %w", key, err)
	}
	return b, nil
}

// PutDataset stores an uploaded dataset under datasets/<id>.csv.
func (s *MinioStore) PutDataset(ctx context.Context, id string, data []byte) error {
	if s == nil || s.client == nil {
		return errors.New("artifact store not initialized")
	}

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		datasetPrefix+id+".csv",
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"},
	)
	if err != nil {
		return fmt.Errorf("dataset put object: %w", err)
	}
	return nil
}

// ListDatasets enumerates uploaded dataset objects.
func (s *MinioStore) ListDatasets(ctx context.Context) ([]usecase.StoredDataset, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("artifact store not initialized")
	}

	out := make([]usecase.StoredDataset, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: datasetPrefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("dataset list objects: %w", obj.Err)
		}
		id := strings.TrimSuffix(strings.TrimPrefix(obj.Key, datasetPrefix), ".csv")
		if id == "" {
			continue
		}
		out = append(out, usecase.StoredDataset{
			ID:         id,
			Size:       obj.Size,
			UploadedAt: obj.LastModified,
		})
	}
	return out, nil
}

// GetDataset streams a previously uploaded dataset.
func (s *MinioStore) GetDataset(ctx context.Context, id string) (io.ReadCloser, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("artifact store not initialized")
	}

	obj, err := s.client.GetObject(ctx, s.bucket, datasetPrefix+id+".csv", minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("dataset get object: %w", err)
	}
	return obj, nil
}

package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"job-pulse/internal/domain/recommend"
	"job-pulse/internal/domain/skillgap"
)

type predictionCacheKeyInput struct {
	DatasetID string   `json:"dataset_id"`
	Skills    []string `json:"skills"`
	Level     string   `json:"level"`
}

// PredictionCacheKey builds a stable key for one (dataset, candidate)
// pair. Candidate skills are normalized and sorted so equivalent
// profiles share an entry.
func PredictionCacheKey(datasetID string, candidate CandidateProfile) string {
	skills := make([]string, 0, len(candidate.Skills))
	for _, s := range candidate.Skills {
		n := skillgap.Normalize(s)
		if n == "" {
			continue
		}
		skills = append(skills, n)
	}
	sort.Strings(skills)

	in := predictionCacheKeyInput{
		DatasetID: strings.TrimSpace(datasetID),
		Skills:    skills,
		Level:     recommend.ParseLevel(candidate.ExperienceLevel).String(),
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "prediction:" + hex.EncodeToString(sum[:])
}

func PredictionLockKey(cacheKey string) string {
	return "prediction:lock:" + strings.TrimPrefix(cacheKey, "prediction:")
}

package dto

import "time"

type UploadResponse struct {
	DatasetID string `json:"dataset_id"`
	Filename  string `json:"filename"`
}

type DatasetItemResponse struct {
	DatasetID  string    `json:"dataset_id"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type SkillGapResponse struct {
	JobRole       string   `json:"job_role"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Score         int      `json:"skill_demand_score"`
}

type RecommendationItemResponse struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

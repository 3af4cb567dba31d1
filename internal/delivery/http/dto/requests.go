package dto

type PredictRequest struct {
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`
}

type SkillGapRequest struct {
	JobRole string   `json:"job_role"`
	Skills  []string `json:"skills"`
}

type RecommendationRequest struct {
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type InvalidateModelsRequest struct {
	Role string `json:"role"`
}

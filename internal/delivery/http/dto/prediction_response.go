package dto

import "job-pulse/internal/usecase"

const (
	SectionOK          = "ok"
	SectionUnavailable = "unavailable"
)

type ForecastData struct {
	CurrentDemand   int     `json:"current_demand"`
	PredictedDemand float64 `json:"predicted_demand"`
	GrowthRate      float64 `json:"growth_rate"`
	Confidence      float64 `json:"confidence"`
	Method          string  `json:"method"`
}

type ForecastSection struct {
	Status string        `json:"status"`
	Data   *ForecastData `json:"data,omitempty"`
}

type SkillGapData struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Score         int      `json:"skill_demand_score"`
}

type SkillGapSection struct {
	Status string        `json:"status"`
	Data   *SkillGapData `json:"data,omitempty"`
}

type RecommendationData struct {
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

type RecommendationSection struct {
	Status string              `json:"status"`
	Data   *RecommendationData `json:"data,omitempty"`
}

type SaturationData struct {
	JobCount int    `json:"job_count"`
	Score    int    `json:"saturation_score"`
	Status   string `json:"status"`
}

type SaturationSection struct {
	Status string          `json:"status"`
	Data   *SaturationData `json:"data,omitempty"`
}

type RoleReportResponse struct {
	Role           string                `json:"role"`
	Forecast       ForecastSection       `json:"forecast"`
	SkillGap       SkillGapSection       `json:"skill_gap"`
	Recommendation RecommendationSection `json:"recommendation"`
	Saturation     SaturationSection     `json:"saturation"`
}

type SkillCountResponse struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type DatasetSummaryResponse struct {
	RowsParsed  int                  `json:"rows_parsed"`
	RowsSkipped int                  `json:"rows_skipped"`
	Roles       []string             `json:"roles"`
	TopSkills   []SkillCountResponse `json:"top_skills"`
}

type PredictionResponse struct {
	Reports []RoleReportResponse   `json:"reports"`
	Summary DatasetSummaryResponse `json:"summary"`
}

// FromPrediction maps the engine output onto the wire shape, turning
// nil sections into explicit unavailable markers.
func FromPrediction(resp usecase.PredictionResponse) PredictionResponse {
	out := PredictionResponse{
		Reports: make([]RoleReportResponse, 0, len(resp.Reports)),
		Summary: DatasetSummaryResponse{
			RowsParsed:  resp.Summary.RowsParsed,
			RowsSkipped: resp.Summary.RowsSkipped,
			Roles:       resp.Summary.Roles,
			TopSkills:   make([]SkillCountResponse, 0, len(resp.Summary.TopSkills)),
		},
	}
	for _, s := range resp.Summary.TopSkills {
		out.Summary.TopSkills = append(out.Summary.TopSkills, SkillCountResponse{Skill: s.Skill, Count: s.Count})
	}

	for _, r := range resp.Reports {
		item := RoleReportResponse{
			Role:           r.Role,
			Forecast:       ForecastSection{Status: SectionUnavailable},
			SkillGap:       SkillGapSection{Status: SectionUnavailable},
			Recommendation: RecommendationSection{Status: SectionUnavailable},
			Saturation:     SaturationSection{Status: SectionUnavailable},
		}

		if f := r.Forecast; f != nil {
			item.Forecast = ForecastSection{Status: SectionOK, Data: &ForecastData{
				CurrentDemand:   f.CurrentDemand,
				PredictedDemand: f.PredictedDemand,
				GrowthRate:      f.GrowthRate,
				Confidence:      f.Confidence,
				Method:          f.Method,
			}}
		}
		if g := r.SkillGap; g != nil {
			item.SkillGap = SkillGapSection{Status: SectionOK, Data: &SkillGapData{
				MatchedSkills: g.MatchedSkills,
				MissingSkills: g.MissingSkills,
				Score:         g.Score,
			}}
		}
		if rec := r.Recommendation; rec != nil {
			item.Recommendation = RecommendationSection{Status: SectionOK, Data: &RecommendationData{
				Score: rec.Score,
				Rank:  rec.Rank,
			}}
		}
		if s := r.Saturation; s != nil {
			item.Saturation = SaturationSection{Status: SectionOK, Data: &SaturationData{
				JobCount: s.JobCount,
				Score:    s.Score,
				Status:   s.Status,
			}}
		}

		out.Reports = append(out.Reports, item)
	}
	return out
}

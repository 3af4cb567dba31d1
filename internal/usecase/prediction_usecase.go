package usecase

import (
	"context"
	"log"
	"runtime"
	"sort"
	"sync"

	"job-pulse/internal/domain/forecast"
	"job-pulse/internal/domain/recommend"
	"job-pulse/internal/domain/saturation"
	"job-pulse/internal/domain/skillgap"
	"job-pulse/internal/domain/timeseries"
	"job-pulse/internal/ingest"
	"job-pulse/internal/repository"
)

// CandidateProfile is the optional candidate context a prediction
// request carries for the skill-gap and recommendation sections.
type CandidateProfile struct {
	Skills          []string
	ExperienceLevel string
}

// RoleReport holds one role's four analysis sections. A nil section
// means that computation failed for the role and is reported as an
// explicit unavailable marker, never by omitting the role.
type RoleReport struct {
	Role           string
	Forecast       *forecast.Result
	SkillGap       *skillgap.Result
	Recommendation *recommend.Result
	Saturation     *saturation.Result
}

type DatasetSummary struct {
	RowsParsed  int
	RowsSkipped int
	Roles       []string
	TopSkills   []SkillCount
}

type SkillCount struct {
	Skill string
	Count int
}

// PredictionResponse is the engine's aggregate output. The set of
// roles in Reports is exactly the set of roles observed in the input
// dataset.
type PredictionResponse struct {
	Reports []RoleReport
	Summary DatasetSummary
}

// PredictionEngine composes forecasting, skill-gap analysis,
// recommendation ranking and saturation scoring into one response.
type PredictionEngine struct {
	forecaster *forecast.Forecaster
	profiles   repository.RoleProfileRepository
	logger     *log.Logger
	workers    int
}

func NewPredictionEngine(forecaster *forecast.Forecaster, profiles repository.RoleProfileRepository, logger *log.Logger) *PredictionEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &PredictionEngine{
		forecaster: forecaster,
		profiles:   profiles,
		logger:     logger,
		workers:    runtime.NumCPU(),
	}
}

// Run aggregates parsed records and computes every section per role.
// Partial data conditions resolve through documented fallbacks; only
// a per-role computation fault leaves that role's section nil.
func (e *PredictionEngine) Run(ctx context.Context, records []timeseries.PostingRecord, parse ingest.Summary, candidate CandidateProfile) PredictionResponse {
	series := timeseries.Aggregate(records)

	// Roles observed in the dataset drive every section, including
	// roles whose rows were all aggregated away: they still get a
	// zero-history series.
	roles := make([]string, 0, len(series))
	for _, role := range parse.Roles {
		if _, ok := series[role]; !ok {
			series[role] = timeseries.Series{Role: role}
		}
	}
	for role := range series {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	forecasts := e.runForecasts(ctx, roles, series)
	gaps := e.runSkillGaps(ctx, roles, candidate)
	recs := e.runRecommendations(ctx, roles, candidate)
	sats := runSaturation(series)

	reports := make([]RoleReport, 0, len(roles))
	for _, role := range roles {
		reports = append(reports, RoleReport{
			Role:           role,
			Forecast:       forecasts[role],
			SkillGap:       gaps[role],
			Recommendation: recs[role],
			Saturation:     sats[role],
		})
	}

	return PredictionResponse{
		Reports: reports,
		Summary: buildSummary(parse),
	}
}

func (e *PredictionEngine) runForecasts(ctx context.Context, roles []string, series map[string]timeseries.Series) map[string]*forecast.Result {
	out := make(map[string]*forecast.Result, len(roles))
	var mu sync.Mutex

	pool := newWorkerPool(e.workers, len(roles))
	results := pool.Run(ctx)
	for _, role := range roles {
		role := role
		pool.Submit(func(ctx context.Context) error {
			res := e.forecaster.Forecast(ctx, series[role])
			mu.Lock()
			out[role] = &res
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	for r := range results {
		if r.Err != nil {
			e.logger.Printf("[Engine] forecast task failed | error=%v", r.Err)
		}
	}
	return out
}

func (e *PredictionEngine) runSkillGaps(ctx context.Context, roles []string, candidate CandidateProfile) map[string]*skillgap.Result {
	out := make(map[string]*skillgap.Result, len(roles))
	for _, role := range roles {
		required, err := e.profiles.RequiredSkills(ctx, role)
		if err != nil {
			e.logger.Printf("[Engine] skill reference lookup failed | role=%s error=%v", role, err)
			out[role] = nil
			continue
		}
		res := skillgap.Analyze(role, candidate.Skills, required)
		out[role] = &res
	}
	return out
}

func (e *PredictionEngine) runRecommendations(ctx context.Context, roles []string, candidate CandidateProfile) map[string]*recommend.Result {
	out := make(map[string]*recommend.Result, len(roles))

	profiles := make([]recommend.RoleProfile, 0, len(roles))
	for _, role := range roles {
		required, err := e.profiles.RequiredSkills(ctx, role)
		if err != nil {
			e.logger.Printf("[Engine] recommendation reference lookup failed | role=%s error=%v", role, err)
			out[role] = nil
			continue
		}
		level, err := e.profiles.ExpectedLevel(ctx, role)
		if err != nil {
			e.logger.Printf("[Engine] expected level lookup failed | role=%s error=%v", role, err)
			out[role] = nil
			continue
		}
		profiles = append(profiles, recommend.RoleProfile{
			Role:           role,
			RequiredSkills: required,
			ExpectedLevel:  recommend.ParseLevel(level),
		})
	}

	ranked := recommend.Rank(candidate.Skills, recommend.ParseLevel(candidate.ExperienceLevel), profiles)
	for i := range ranked {
		r := ranked[i]
		out[r.Role] = &r
	}
	return out
}

func runSaturation(series map[string]timeseries.Series) map[string]*saturation.Result {
	scored := saturation.ScoreAll(series)
	out := make(map[string]*saturation.Result, len(scored))
	for i := range scored {
		s := scored[i]
		out[s.Role] = &s
	}
	return out
}

func buildSummary(parse ingest.Summary) DatasetSummary {
	top := make([]SkillCount, 0, len(parse.SkillCounts))
	for skill, count := range parse.SkillCounts {
		top = append(top, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Skill < top[j].Skill
	})
	if len(top) > 10 {
		top = top[:10]
	}

	return DatasetSummary{
		RowsParsed:  parse.RowsParsed,
		RowsSkipped: parse.RowsSkipped,
		Roles:       parse.Roles,
		TopSkills:   top,
	}
}

package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"job-pulse/internal/domain/timeseries"
)

const (
	// WindowSize is the trailing number of months a model consumes.
	WindowSize = 12

	MethodModel         = "model"
	MethodMovingAverage = "moving_average"

	ModelConfidence    = 0.85
	FallbackConfidence = 0.5

	// fallbackGrowthFactor is the heuristic growth assumption applied
	// on top of the moving average when no model is usable.
	fallbackGrowthFactor = 1.15
)

var ErrBadPrediction = errors.New("model produced an unusable prediction")

// Scaler maps raw counts to [0,1] via historical min/max and back.
type Scaler struct {
	Min float64
	Max float64
}

// Normalize guards against a degenerate series (max == min) by
// mapping every value to the midpoint 0.5.
func (s Scaler) Normalize(v float64) float64 {
	if s.Max == s.Min {
		return 0.5
	}
	return (v - s.Min) / (s.Max - s.Min)
}

func (s Scaler) Denormalize(v float64) float64 {
	if s.Max == s.Min {
		return s.Min
	}
	return v*(s.Max-s.Min) + s.Min
}

// PredictFunc runs inference over a normalized window of WindowSize
// values and returns one normalized next-value prediction.
type PredictFunc func(window []float64) (float64, error)

// Handle is a resolved (model, scaler) pair for one role.
type Handle struct {
	Role       string
	WindowSize int
	Scaler     Scaler
	Predict    PredictFunc
}

// Resolution is the registry's two-variant answer: a missing model is
// a normal outcome, not an error.
type Resolution struct {
	Available bool
	Handle    *Handle
	// Reason carries a diagnostic code when unavailable
	// (artifact_missing, store_timeout, artifact_corrupt, ...).
	Reason string
}

func Available(h *Handle) Resolution {
	return Resolution{Available: true, Handle: h}
}

func Unavailable(reason string) Resolution {
	return Resolution{Reason: reason}
}

// Resolver answers whether a trained model exists for a role.
type Resolver interface {
	Resolve(ctx context.Context, role string) Resolution
}

type Result struct {
	Role            string
	CurrentDemand   int
	PredictedDemand float64
	GrowthRate      float64
	Confidence      float64
	Method          string
}

type Forecaster struct {
	resolver Resolver
	logger   *log.Logger
}

func NewForecaster(resolver Resolver, logger *log.Logger) *Forecaster {
	if logger == nil {
		logger = log.Default()
	}
	return &Forecaster{resolver: resolver, logger: logger}
}

// Forecast produces one demand prediction for a role's series. The
// model path requires a full window and an available handle; every
// other condition, including inference failure, lands on the
// moving-average fallback for that role only.
func (f *Forecaster) Forecast(ctx context.Context, series timeseries.Series) Result {
	current := series.Last()

	if series.Len() >= WindowSize && f.resolver != nil {
		res := f.resolver.Resolve(ctx, series.Role)
		if res.Available && res.Handle != nil {
			predicted, err := f.predictWithModel(res.Handle, series)
			if err == nil {
				return buildResult(series.Role, current, predicted, MethodModel, ModelConfidence)
			}
			f.logger.Printf("[Forecast] model inference failed, falling back | role=%s error=%v", series.Role, err)
		}
	}

	predicted := movingAverage(series) * fallbackGrowthFactor
	return buildResult(series.Role, current, predicted, MethodMovingAverage, FallbackConfidence)
}

func (f *Forecaster) predictWithModel(h *Handle, series timeseries.Series) (float64, error) {
	window := h.WindowSize
	if window <= 0 {
		window = WindowSize
	}
	raw := series.Window(window)
	if len(raw) < window {
		return 0, fmt.Errorf("%w: short window %d", ErrBadPrediction, len(raw))
	}

	scaled := make([]float64, len(raw))
	for i, v := range raw {
		scaled[i] = h.Scaler.Normalize(v)
	}

	normalized, err := h.Predict(scaled)
	if err != nil {
		return 0, err
	}

	predicted := h.Scaler.Denormalize(normalized)
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		return 0, ErrBadPrediction
	}
	if predicted < 0 {
		predicted = 0
	}
	return predicted, nil
}

func movingAverage(series timeseries.Series) float64 {
	window := series.Window(WindowSize)
	if len(window) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

func buildResult(role string, current int, predicted float64, method string, confidence float64) Result {
	if predicted < 0 || math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		predicted = 0
	}

	growth := 0.0
	if current > 0 {
		growth = (predicted - float64(current)) / float64(current) * 100
		growth = math.Round(growth*100) / 100
	}

	return Result{
		Role:            role,
		CurrentDemand:   current,
		PredictedDemand: predicted,
		GrowthRate:      growth,
		Confidence:      confidence,
		Method:          method,
	}
}

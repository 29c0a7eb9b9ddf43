package pulse

import (
	"math"
	"time"

	"MarketPulse/internal/domain/models"
)

// TrendVelocityAnalyzer computes multi-window growth rates, momentum, and a
// trajectory prediction from a keyword's interest time series. It is a pure
// function of its input: no clock reads, no randomness.
type TrendVelocityAnalyzer struct{}

func NewTrendVelocityAnalyzer() *TrendVelocityAnalyzer { return &TrendVelocityAnalyzer{} }

// windowDefs are the lookback windows, in points, with their result keys.
// A window of w points back requires w+1 points of history.
var windowDefs = []struct {
	Key  string
	Size int
}{
	{"24h", 1},
	{"7d", 7},
	{"30d", 30},
}

// Analyze scores an ascending time series. Fewer than 2 points yields a
// neutral result flagged InsufficientData; it never fails.
func (a *TrendVelocityAnalyzer) Analyze(keyword string, series []models.TimeSeriesPoint) models.VelocityResult {
	res := models.VelocityResult{
		Keyword:    keyword,
		Velocities: map[string]float64{},
		Trajectory: models.TrajectoryPrediction{Prediction: TrajectoryUncertain, Timeframe: "unknown"},
	}
	if len(series) < 2 {
		res.InsufficientData = true
		res.TrendStatus = TrendFalling
		return res
	}

	latest := series[len(series)-1].Value
	ordered := make([]float64, 0, len(windowDefs))
	for _, w := range windowDefs {
		if len(series) < w.Size+1 {
			continue
		}
		base := series[len(series)-1-w.Size].Value
		v := (latest - base) / math.Max(base, 1)
		res.Velocities[w.Key] = v
		ordered = append(ordered, v)
	}

	sum := 0.0
	for _, v := range ordered {
		sum += v
	}
	res.AverageVelocity = sum / float64(len(ordered))
	if len(ordered) >= 2 {
		res.Acceleration = (ordered[len(ordered)-1] - ordered[0]) / float64(len(ordered))
	}

	res.TrendStatus = classifyVelocity(res.AverageVelocity)
	res.MomentumScore = momentumScore(ordered, res.AverageVelocity, res.Acceleration)
	res.Trajectory = predictTrajectory(res.AverageVelocity, res.Acceleration)
	res.Peak = estimatePeak(latest, series[len(series)-1].Timestamp, res.AverageVelocity)
	return res
}

func classifyVelocity(avg float64) string {
	for _, tier := range velocityLadder {
		if avg >= tier.Threshold {
			return tier.Status
		}
	}
	return TrendFalling
}

func momentumScore(velocities []float64, avg, acc float64) float64 {
	if len(velocities) == 0 {
		return 0
	}
	base := math.Min(avg*2, 8)
	accBonus := math.Min(acc*5, 2)
	consistency := 1.0
	for _, v := range velocities {
		if v <= 0 {
			consistency = 0
			break
		}
	}
	return clamp10(base + accBonus + consistency)
}

func predictTrajectory(avg, acc float64) models.TrajectoryPrediction {
	switch {
	case avg > 3 && acc > 0.5:
		return models.TrajectoryPrediction{Prediction: TrajectoryExplosiveGrowth, Confidence: 0.85, Timeframe: "1-2_weeks"}
	case avg > 1.5 && acc > 0:
		return models.TrajectoryPrediction{Prediction: TrajectoryContinuedGrowth, Confidence: 0.75, Timeframe: "2-4_weeks"}
	case avg > 0.8 && math.Abs(acc) < 0.2:
		return models.TrajectoryPrediction{Prediction: TrajectoryStableTrend, Confidence: 0.9, Timeframe: "4-8_weeks"}
	case avg < 0.5 && acc < -0.3:
		return models.TrajectoryPrediction{Prediction: TrajectoryDeclineAhead, Confidence: 0.7, Timeframe: "1-3_weeks"}
	default:
		return models.TrajectoryPrediction{Prediction: TrajectoryUncertain, Confidence: 0.4, Timeframe: "unknown"}
	}
}

// estimatePeak extrapolates forward from the last observation's timestamp so
// identical inputs always produce identical estimates.
func estimatePeak(current float64, asOf time.Time, avg float64) models.PeakEstimate {
	if avg <= 0 {
		return models.PeakEstimate{Status: "already_peaked", Confidence: 0.8}
	}
	days := int(30 / (avg + 0.1))
	if days < 7 {
		days = 7
	}
	return models.PeakEstimate{
		Date:        asOf.AddDate(0, 0, days),
		Value:       current * math.Pow(1+avg, float64(days)/30),
		DaysFromNow: days,
		Confidence:  math.Min(0.9, avg),
	}
}

package pulse

import (
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
)

func dailySeries(values []float64) []models.TimeSeriesPoint {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.TimeSeriesPoint, len(values))
	for i, v := range values {
		out[i] = models.TimeSeriesPoint{Timestamp: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestTrendInsufficientData(t *testing.T) {
	a := NewTrendVelocityAnalyzer()
	res := a.Analyze("desk lamp", dailySeries([]float64{5}))
	if !res.InsufficientData {
		t.Fatalf("expected insufficient data flag")
	}
	if res.TrendStatus != TrendFalling {
		t.Fatalf("unexpected status %s", res.TrendStatus)
	}
	if res.MomentumScore != 0 {
		t.Fatalf("unexpected momentum %v", res.MomentumScore)
	}
}

func TestTrendRisingSeries(t *testing.T) {
	values := make([]float64, 31)
	for i := range values {
		values[i] = float64(i + 1)
	}
	a := NewTrendVelocityAnalyzer()
	res := a.Analyze("wireless earbuds", dailySeries(values))

	if res.InsufficientData {
		t.Fatalf("unexpected insufficient data")
	}
	if len(res.Velocities) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(res.Velocities))
	}
	// 30d window dominates: (31-1)/1 = 30, so the average is explosive.
	if res.TrendStatus != TrendExplosive {
		t.Fatalf("unexpected status %s", res.TrendStatus)
	}
	if res.MomentumScore != 10 {
		t.Fatalf("expected clamped momentum 10, got %v", res.MomentumScore)
	}
	if res.Trajectory.Prediction != TrajectoryExplosiveGrowth {
		t.Fatalf("unexpected trajectory %s", res.Trajectory.Prediction)
	}
	if res.Peak.DaysFromNow != 7 {
		t.Fatalf("expected peak floor of 7 days, got %d", res.Peak.DaysFromNow)
	}
}

func TestTrendFlatSeries(t *testing.T) {
	values := make([]float64, 31)
	for i := range values {
		values[i] = 10
	}
	a := NewTrendVelocityAnalyzer()
	res := a.Analyze("plain keyword", dailySeries(values))

	if res.AverageVelocity != 0 {
		t.Fatalf("expected zero velocity, got %v", res.AverageVelocity)
	}
	if res.TrendStatus != TrendFalling {
		t.Fatalf("unexpected status %s", res.TrendStatus)
	}
	if res.MomentumScore != 0 {
		t.Fatalf("expected zero momentum, got %v", res.MomentumScore)
	}
	if res.Peak.Status != "already_peaked" {
		t.Fatalf("expected already_peaked, got %q", res.Peak.Status)
	}
	if res.Peak.Confidence != 0.8 {
		t.Fatalf("unexpected peak confidence %v", res.Peak.Confidence)
	}
}

func TestTrendMomentumNeverNegative(t *testing.T) {
	values := make([]float64, 31)
	for i := range values {
		values[i] = float64(100 - 3*i)
	}
	a := NewTrendVelocityAnalyzer()
	res := a.Analyze("fading fad", dailySeries(values))

	if res.MomentumScore < 0 || res.MomentumScore > 10 {
		t.Fatalf("momentum out of range: %v", res.MomentumScore)
	}
	if res.AverageVelocity >= 0 {
		t.Fatalf("expected negative velocity, got %v", res.AverageVelocity)
	}
}

func TestTrendShortSeriesSingleWindow(t *testing.T) {
	a := NewTrendVelocityAnalyzer()
	res := a.Analyze("new arrival", dailySeries([]float64{10, 12, 15}))

	if len(res.Velocities) != 1 {
		t.Fatalf("expected only the 24h window, got %d", len(res.Velocities))
	}
	if _, ok := res.Velocities["24h"]; !ok {
		t.Fatalf("missing 24h velocity")
	}
	// one window means no acceleration
	if res.Acceleration != 0 {
		t.Fatalf("unexpected acceleration %v", res.Acceleration)
	}
}

func TestTrendPeakDeterministic(t *testing.T) {
	values := make([]float64, 31)
	for i := range values {
		values[i] = float64(i + 1)
	}
	a := NewTrendVelocityAnalyzer()
	r1 := a.Analyze("kw", dailySeries(values))
	r2 := a.Analyze("kw", dailySeries(values))

	if !r1.Peak.Date.Equal(r2.Peak.Date) || r1.Peak.Value != r2.Peak.Value {
		t.Fatalf("peak estimate not deterministic: %+v vs %+v", r1.Peak, r2.Peak)
	}
	want := dailySeries(values)[30].Timestamp.AddDate(0, 0, r1.Peak.DaysFromNow)
	if !r1.Peak.Date.Equal(want) {
		t.Fatalf("peak date should extrapolate from last observation, got %v want %v", r1.Peak.Date, want)
	}
}

package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/services/pulse"
)

type noopMetrics struct{}

func (noopMetrics) RecordEvaluation(string, string)  {}
func (noopMetrics) RecordError(string)               {}
func (noopMetrics) RecordPulseScore(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)    {}

type stubProvider struct {
	series    []models.TimeSeriesPoint
	comp      models.CompetitionSnapshot
	demand    models.DemandSnapshot
	demandErr error
}

func (s *stubProvider) TimeSeries(_ context.Context, _ string, _ int) ([]models.TimeSeriesPoint, error) {
	return s.series, nil
}

func (s *stubProvider) Competition(_ context.Context, _ string) (models.CompetitionSnapshot, error) {
	return s.comp, nil
}

func (s *stubProvider) Demand(_ context.Context, _ string) (models.DemandSnapshot, error) {
	if s.demandErr != nil {
		return models.DemandSnapshot{}, s.demandErr
	}
	return s.demand, nil
}

func hotProvider() *stubProvider {
	series := make([]models.TimeSeriesPoint, 0, 31)
	for i := 0; i < 31; i++ {
		series = append(series, models.TimeSeriesPoint{Value: float64(i + 1)})
	}
	return &stubProvider{
		series: series,
		comp:   models.CompetitionSnapshot{TotalListings: 50, ActiveSellers: 5, NewListings24h: 2, TopSellerShare: 0.1, NewSellerGrowth: 0.01},
		demand: models.DemandSnapshot{CurrentSearches24h: 9000, BaselineSearches: 1000, SearchGrowth7d: 0.4, SocialMentions: 2000},
	}
}

func TestEvaluateEmptyKeyword(t *testing.T) {
	agg := NewPulseAggregator(hotProvider(), noopMetrics{})
	if _, err := agg.Evaluate(context.Background(), "", 30); err == nil {
		t.Fatalf("expected error for empty keyword")
	}
}

func TestEvaluateHotOpportunity(t *testing.T) {
	agg := NewPulseAggregator(hotProvider(), noopMetrics{})
	res, err := agg.Evaluate(context.Background(), "viral gadget", 30)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// momentum 10, opportunity ~10, surge capped at 10: composite near the top
	if res.PulseScore < 8.5 {
		t.Fatalf("expected hot score, got %v", res.PulseScore)
	}
	if res.PulseStatus != pulse.PulseHotOpportunity {
		t.Fatalf("unexpected status %s", res.PulseStatus)
	}
	if len(res.Degraded) != 0 {
		t.Fatalf("unexpected degradation: %v", res.Degraded)
	}
	if len(res.ActionPlan) == 0 {
		t.Fatalf("expected action plan")
	}
}

func TestEvaluateInputsDeterministic(t *testing.T) {
	agg := NewPulseAggregator(hotProvider(), noopMetrics{})
	p := hotProvider()

	r1 := agg.EvaluateInputs("kw", p.series, p.comp, p.demand, nil)
	r2 := agg.EvaluateInputs("kw", p.series, p.comp, p.demand, nil)

	if r1.PulseScore != r2.PulseScore || r1.PulseStatus != r2.PulseStatus {
		t.Fatalf("same inputs must score identically: %v/%s vs %v/%s",
			r1.PulseScore, r1.PulseStatus, r2.PulseScore, r2.PulseStatus)
	}
	if r1.Trend.MomentumScore != r2.Trend.MomentumScore {
		t.Fatalf("momentum not deterministic")
	}
}

func TestEvaluateDegradedDemand(t *testing.T) {
	p := hotProvider()
	p.demandErr = fmt.Errorf("upstream timeout")
	agg := NewPulseAggregator(p, noopMetrics{})

	res, err := agg.Evaluate(context.Background(), "kw", 30)
	if err != nil {
		t.Fatalf("degraded component must not fail the evaluation: %v", err)
	}
	if _, ok := res.Degraded["demand"]; !ok {
		t.Fatalf("expected demand in degraded map, got %v", res.Degraded)
	}
	// neutral default: magnitude 1, no surge
	if res.Demand.SurgeMagnitude != 1 {
		t.Fatalf("expected neutral magnitude, got %v", res.Demand.SurgeMagnitude)
	}
	if res.Demand.SurgeDetected {
		t.Fatalf("neutral default must not report a surge")
	}
}

func TestEvaluateInputsDegradedMapDrivesNeutral(t *testing.T) {
	agg := NewPulseAggregator(hotProvider(), noopMetrics{})
	p := hotProvider()

	degraded := map[string]string{"competition": "snapshot unavailable"}
	res := agg.EvaluateInputs("kw", p.series, p.comp, p.demand, degraded)

	if res.Competition.OpportunityScore != 5 {
		t.Fatalf("expected neutral opportunity 5, got %v", res.Competition.OpportunityScore)
	}
	if res.Degraded["competition"] == "" {
		t.Fatalf("degraded reason must survive into the result")
	}
}

func TestPulseScoreWeights(t *testing.T) {
	if got := pulseScore(10, 10, 10); got != 10 {
		t.Fatalf("expected 10, got %v", got)
	}
	if got := pulseScore(0, 0, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	// momentum 5, opportunity 5, magnitude 1 -> 0.3*5 + 0.4*5 + 0.3*3 = 4.4
	if got := pulseScore(5, 5, 1); math.Abs(got-4.4) > 1e-9 {
		t.Fatalf("expected neutral composite 4.4, got %v", got)
	}
}

func TestClassifyPulseLadder(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{9.0, pulse.PulseHotOpportunity},
		{8.5, pulse.PulseHotOpportunity},
		{7.0, pulse.PulseStrongPotential},
		{5.5, pulse.PulseModerateInterest},
		{3.0, pulse.PulseWeakSignals},
		{2.9, pulse.PulseColdMarket},
		{0, pulse.PulseColdMarket},
	}
	for _, c := range cases {
		if got := classifyPulse(c.score); got != c.want {
			t.Fatalf("score=%v: got %s want %s", c.score, got, c.want)
		}
	}
}

func TestAssessRiskWeakestLeaves(t *testing.T) {
	trend := models.VelocityResult{Trajectory: models.TrajectoryPrediction{Prediction: pulse.TrajectoryDeclineAhead}}
	comp := models.CompetitionResult{CompetitionLevel: pulse.CompetitionOversaturated}
	demand := models.DemandResult{Window: models.OpportunityWindow{Urgency: pulse.LevelCritical}}

	risk := assessRisk(trend, comp, demand)
	if risk.CompetitionRisk != pulse.LevelHigh || risk.TrendRisk != pulse.LevelHigh || risk.TimingRisk != pulse.LevelHigh {
		t.Fatalf("unexpected component risks: %+v", risk)
	}
	if risk.OverallRisk != pulse.LevelHigh {
		t.Fatalf("expected high overall risk, got %s", risk.OverallRisk)
	}
}

func TestAssessRiskAllCalm(t *testing.T) {
	trend := models.VelocityResult{Trajectory: models.TrajectoryPrediction{Prediction: pulse.TrajectoryStableTrend}}
	comp := models.CompetitionResult{CompetitionLevel: pulse.CompetitionLow}
	demand := models.DemandResult{Window: models.OpportunityWindow{Urgency: pulse.LevelMedium}}

	risk := assessRisk(trend, comp, demand)
	if risk.OverallRisk != pulse.LevelLow {
		t.Fatalf("expected low overall risk, got %s", risk.OverallRisk)
	}
}

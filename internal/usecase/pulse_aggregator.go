package usecase

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	domsvc "MarketPulse/internal/domain/service"
	"MarketPulse/internal/services/pulse"
	applogger "MarketPulse/pkg/logger"
)

// PulseAggregator orchestrates the three leaf analyzers for a keyword and
// blends their outputs into one composite verdict. A failed component is
// replaced with a neutral default and recorded in the result's Degraded map;
// only a malformed request is a hard error.
type PulseAggregator struct {
	provider    domsvc.SnapshotProvider
	trend       *pulse.TrendVelocityAnalyzer
	competition *pulse.CompetitionDensityAnalyzer
	demand      *pulse.DemandSurgeAnalyzer
	store       domrepo.PulseStore
	metrics     domrepo.Metrics
	l           *applogger.Logger
}

func NewPulseAggregator(provider domsvc.SnapshotProvider, metrics domrepo.Metrics) *PulseAggregator {
	return &PulseAggregator{
		provider:    provider,
		trend:       pulse.NewTrendVelocityAnalyzer(),
		competition: pulse.NewCompetitionDensityAnalyzer(),
		demand:      pulse.NewDemandSurgeAnalyzer(),
		metrics:     metrics,
	}
}

// SetStore enables best-effort persistence of evaluated results.
func (a *PulseAggregator) SetStore(s domrepo.PulseStore) { a.store = s }

// SetLogger injects a structured logger.
func (a *PulseAggregator) SetLogger(l *applogger.Logger) { a.l = l }

// Evaluate gathers inputs for one keyword and scores it.
func (a *PulseAggregator) Evaluate(ctx context.Context, keyword string, days int) (*models.PulseResult, error) {
	if keyword == "" {
		return nil, fmt.Errorf("keyword required")
	}
	if days <= 0 {
		days = 30
	}

	start := time.Now()
	degraded := map[string]string{}

	series, err := a.provider.TimeSeries(ctx, keyword, days)
	if err != nil {
		degraded["trend"] = err.Error()
	}
	comp, err := a.provider.Competition(ctx, keyword)
	if err != nil {
		degraded["competition"] = err.Error()
	}
	demand, err := a.provider.Demand(ctx, keyword)
	if err != nil {
		degraded["demand"] = err.Error()
	}

	res := a.EvaluateInputs(keyword, series, comp, demand, degraded)

	a.metrics.RecordEvaluation(keyword, res.PulseStatus)
	a.metrics.RecordPulseScore(keyword, res.PulseScore)
	a.metrics.RecordLatency("evaluate", time.Since(start).Seconds())

	if a.store != nil {
		if err := a.store.Save(ctx, res); err != nil {
			a.metrics.RecordError("pulse_store")
			if a.l != nil {
				a.l.Warn("pulse history save failed", applogger.String("keyword", keyword), applogger.Error(err))
			}
		}
	}
	return res, nil
}

// EvaluateInputs scores already-gathered inputs. It is deterministic apart
// from the EvaluatedAt stamp and never fails: components named in degraded
// (or that panic) are scored with neutral defaults instead.
func (a *PulseAggregator) EvaluateInputs(
	keyword string,
	series []models.TimeSeriesPoint,
	comp models.CompetitionSnapshot,
	demand models.DemandSnapshot,
	degraded map[string]string,
) *models.PulseResult {
	if degraded == nil {
		degraded = map[string]string{}
	}

	trend := a.runTrend(keyword, series, degraded)
	competition := a.runCompetition(keyword, comp, degraded)
	surge := a.runDemand(keyword, demand, degraded)

	res := &models.PulseResult{
		Keyword:     keyword,
		Trend:       trend,
		Competition: competition,
		Demand:      surge,
		EvaluatedAt: time.Now(),
	}
	res.PulseScore = pulseScore(trend.MomentumScore, competition.OpportunityScore, surge.SurgeMagnitude)
	res.PulseStatus = classifyPulse(res.PulseScore)
	res.Insights = marketInsights(trend, competition, surge)
	res.Timing = optimalTiming(trend, surge)
	res.ActionPlan = actionPlan(res.PulseScore, competition, surge, res.Timing)
	res.Risk = assessRisk(trend, competition, surge)
	if len(degraded) > 0 {
		res.Degraded = degraded
	}
	return res
}

func (a *PulseAggregator) runTrend(keyword string, series []models.TimeSeriesPoint, degraded map[string]string) (out models.VelocityResult) {
	defer func() {
		if r := recover(); r != nil {
			degraded["trend"] = fmt.Sprintf("panic: %v", r)
			a.metrics.RecordError("trend_panic")
			out = neutralTrend(keyword)
		}
	}()
	if _, bad := degraded["trend"]; bad {
		return neutralTrend(keyword)
	}
	return a.trend.Analyze(keyword, series)
}

func (a *PulseAggregator) runCompetition(keyword string, snap models.CompetitionSnapshot, degraded map[string]string) (out models.CompetitionResult) {
	defer func() {
		if r := recover(); r != nil {
			degraded["competition"] = fmt.Sprintf("panic: %v", r)
			a.metrics.RecordError("competition_panic")
			out = neutralCompetition(keyword)
		}
	}()
	if _, bad := degraded["competition"]; bad {
		return neutralCompetition(keyword)
	}
	return a.competition.Analyze(keyword, snap)
}

func (a *PulseAggregator) runDemand(keyword string, snap models.DemandSnapshot, degraded map[string]string) (out models.DemandResult) {
	defer func() {
		if r := recover(); r != nil {
			degraded["demand"] = fmt.Sprintf("panic: %v", r)
			a.metrics.RecordError("demand_panic")
			out = neutralDemand(keyword)
		}
	}()
	if _, bad := degraded["demand"]; bad {
		return neutralDemand(keyword)
	}
	return a.demand.Analyze(keyword, snap)
}

// Neutral defaults used when a component fails: momentum 5, opportunity 5,
// surge magnitude 1.
func neutralTrend(keyword string) models.VelocityResult {
	return models.VelocityResult{
		Keyword:       keyword,
		Velocities:    map[string]float64{},
		TrendStatus:   pulse.TrendStable,
		MomentumScore: 5,
		Trajectory:    models.TrajectoryPrediction{Prediction: pulse.TrajectoryUncertain, Confidence: 0.4, Timeframe: "unknown"},
	}
}

func neutralCompetition(keyword string) models.CompetitionResult {
	return models.CompetitionResult{
		Keyword:          keyword,
		CompetitionLevel: pulse.CompetitionModerate,
		OpportunityScore: 5,
		Entry: models.EntryRecommendation{
			Recommendation: pulse.EntryStrategic,
			Urgency:        pulse.LevelLow,
			Reason:         "Insufficient competition data",
		},
	}
}

func neutralDemand(keyword string) models.DemandResult {
	return models.DemandResult{
		Keyword:        keyword,
		SurgeMagnitude: 1,
		SurgePattern:   pulse.PatternNone,
		Window:         models.OpportunityWindow{OptimalEntryDays: 7, OptimalExitDays: 14, WindowDuration: 7, Urgency: pulse.LevelMedium},
	}
}

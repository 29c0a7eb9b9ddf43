package models

import "time"

// TimeSeriesPoint is one historical observation of a keyword's market
// interest. Produced by the collector layer; consumed read-only here.
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// CompetitionSnapshot is a point-in-time competitive-density reading.
type CompetitionSnapshot struct {
	TotalListings   int     `json:"total_listings"`
	ActiveSellers   int     `json:"active_sellers"`
	NewListings24h  int     `json:"new_listings_24h"`
	TopSellerShare  float64 `json:"top_10_market_share"` // fraction [0,1]
	NewSellerGrowth float64 `json:"new_sellers_trend"`   // weekly fraction
}

// DemandSnapshot is a point-in-time demand reading.
type DemandSnapshot struct {
	CurrentSearches24h int      `json:"current_searches_24h"`
	BaselineSearches   int      `json:"baseline_searches"`
	SearchGrowth7d     float64  `json:"search_growth_7d"`
	SocialMentions     int      `json:"social_mentions"`
	RelatedTrends      []string `json:"related_trends"`
}

// TrajectoryPrediction is a rule-matched forecast of where a trend is headed.
type TrajectoryPrediction struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Timeframe  string  `json:"timeframe"`
}

// PeakEstimate extrapolates when and how high a trend peaks.
// Status is "already_peaked" when velocity is non-positive; the date and value
// are only set for forward-looking estimates.
type PeakEstimate struct {
	Status      string    `json:"status,omitempty"`
	Date        time.Time `json:"date,omitempty"`
	Value       float64   `json:"value,omitempty"`
	DaysFromNow int       `json:"days_from_now,omitempty"`
	Confidence  float64   `json:"confidence"`
}

// VelocityResult is the output of trend velocity analysis.
type VelocityResult struct {
	Keyword          string               `json:"keyword"`
	InsufficientData bool                 `json:"insufficient_data,omitempty"`
	Velocities       map[string]float64   `json:"velocities"` // "24h", "7d", "30d"
	AverageVelocity  float64              `json:"average_velocity"`
	Acceleration     float64              `json:"acceleration"`
	TrendStatus      string               `json:"trend_status"`
	MomentumScore    float64              `json:"momentum_score"` // [0,10]
	Trajectory       TrajectoryPrediction `json:"trajectory_prediction"`
	Peak             PeakEstimate         `json:"peak_estimation"`
}

// SaturationAnalysis describes how full and how concentrated a market is.
type SaturationAnalysis struct {
	SaturationPct        float64 `json:"saturation_percentage"` // [0,1]
	ConcentrationIndex   float64 `json:"concentration_index"`
	MarketConcentration  string  `json:"market_concentration"`
	GrowthSustainability string  `json:"growth_sustainability"`
	MarketMaturity       string  `json:"market_maturity"`
}

// CompetitionGrowth projects seller growth three months out.
type CompetitionGrowth struct {
	PredictedSellers3M int     `json:"predicted_sellers_3_months"`
	GrowthRate3M       float64 `json:"growth_rate_3_months"`
	Trajectory         string  `json:"competition_trajectory"`
	EntryWindow        string  `json:"entry_window"`
}

// EntryRecommendation is the market-entry verdict for a keyword.
type EntryRecommendation struct {
	Recommendation string `json:"recommendation"`
	Urgency        string `json:"urgency"`
	Reason         string `json:"reason"`
}

// CompetitionResult is the output of competition density analysis.
type CompetitionResult struct {
	Keyword            string              `json:"keyword"`
	DensityScore       float64             `json:"density_score"` // [0,10]
	CompetitionLevel   string              `json:"competition_level"`
	Saturation         SaturationAnalysis  `json:"saturation_analysis"`
	Growth             CompetitionGrowth   `json:"growth_prediction"`
	OpportunityScore   float64             `json:"opportunity_score"` // [0,10]
	Entry              EntryRecommendation `json:"market_entry_recommendation"`
	RequiredAdvantages []string            `json:"competitive_advantages_needed"`
}

// DemandTrajectory describes how a surge is expected to evolve.
type DemandTrajectory struct {
	Pattern        string  `json:"pattern_type"`
	DaysToPeak     int     `json:"days_to_peak"`
	PeakMultiplier float64 `json:"peak_multiplier"`
	DeclinePerDay  float64 `json:"decline_rate_per_day"`
	Sustainability string  `json:"sustainability"`
}

// OpportunityWindow is the entry/exit day range during which acting on a
// surge is expected to be favorable.
type OpportunityWindow struct {
	OptimalEntryDays int    `json:"optimal_entry_days"`
	OptimalExitDays  int    `json:"optimal_exit_days"`
	WindowDuration   int    `json:"window_duration"`
	Urgency          string `json:"urgency_level"`
}

// DemandResult is the output of demand surge analysis.
type DemandResult struct {
	Keyword         string            `json:"keyword"`
	SurgeDetected   bool              `json:"surge_detected"`
	SurgeMagnitude  float64           `json:"surge_magnitude"`
	SurgePattern    string            `json:"surge_pattern"`
	Trajectory      DemandTrajectory  `json:"demand_trajectory"`
	Window          OpportunityWindow `json:"opportunity_window"`
	Recommendations []string          `json:"action_recommendations"`
}

// MarketInsights are cross-cutting qualitative labels derived from the three
// sub-results.
type MarketInsights struct {
	MarketTemperature   string   `json:"market_temperature"`
	CompetitionPressure string   `json:"competition_pressure"`
	DemandStatus        string   `json:"demand_status"`
	MarketMaturity      string   `json:"market_maturity"`
	TrendSustainability string   `json:"trend_sustainability"`
	KeyDrivers          []string `json:"key_drivers"`
}

// OptimalTiming is the merged entry-timing verdict.
type OptimalTiming struct {
	Recommendation string `json:"recommendation"`
	Urgency        string `json:"urgency"`
	Message        string `json:"message"`
}

// RiskAssessment classifies entry risks.
type RiskAssessment struct {
	CompetitionRisk string `json:"competition_risk"`
	TrendRisk       string `json:"trend_risk"`
	TimingRisk      string `json:"timing_risk"`
	OverallRisk     string `json:"overall_risk"`
}

// PulseResult is the composite verdict for one keyword; the only entity
// returned to callers. Degraded maps component name to the failure that made
// the aggregator substitute a neutral default for it.
type PulseResult struct {
	Keyword     string            `json:"keyword"`
	PulseScore  float64           `json:"market_pulse_score"` // [0,10]
	PulseStatus string            `json:"pulse_status"`
	Trend       VelocityResult    `json:"trend_analysis"`
	Competition CompetitionResult `json:"competition_analysis"`
	Demand      DemandResult      `json:"demand_analysis"`
	Insights    MarketInsights    `json:"market_insights"`
	ActionPlan  []string          `json:"action_recommendations"`
	Timing      OptimalTiming     `json:"optimal_timing"`
	Risk        RiskAssessment    `json:"risk_assessment"`
	EvaluatedAt time.Time         `json:"timestamp"`
	Degraded    map[string]string `json:"degraded,omitempty"`
}

// Observation is one raw interest reading flowing through the ingest path
// before it lands in the series store.
type Observation struct {
	Keyword   string  `json:"keyword"`
	Timestamp int64   `json:"t"` // unix seconds
	Value     float64 `json:"v"`
	Source    string  `json:"source,omitempty"`
}

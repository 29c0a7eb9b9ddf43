package pulse

// Classification taxonomies are closed sets of typed labels with associated
// parameter tables. Labels are never free text; every score-to-label mapping
// is a deterministic threshold ladder.

// Trend status labels, ordered from strongest to weakest velocity.
const (
	TrendExplosive  = "explosive"
	TrendFastRising = "fast_rising"
	TrendRising     = "rising"
	TrendStable     = "stable"
	TrendDeclining  = "declining"
	TrendFalling    = "falling"
)

// velocityLadder maps average velocity to a trend status; first matching
// threshold wins, scanned in descending order.
var velocityLadder = []struct {
	Threshold float64
	Status    string
}{
	{5.0, TrendExplosive},
	{2.0, TrendFastRising},
	{1.5, TrendRising},
	{0.8, TrendStable},
	{0.5, TrendDeclining},
	{0.2, TrendFalling},
}

// Trajectory prediction labels.
const (
	TrajectoryExplosiveGrowth = "explosive_growth"
	TrajectoryContinuedGrowth = "continued_growth"
	TrajectoryStableTrend     = "stable_trend"
	TrajectoryDeclineAhead    = "decline_ahead"
	TrajectoryUncertain       = "uncertain"
)

// Competition level labels, ordered from most to least crowded.
const (
	CompetitionOversaturated = "oversaturated"
	CompetitionHigh          = "high_competition"
	CompetitionModerate      = "moderate_competition"
	CompetitionLow           = "low_competition"
	CompetitionUntapped      = "untapped"
)

// competitionLadder maps total listings to a competition level.
var competitionLadder = []struct {
	Threshold int
	Level     string
}{
	{10000, CompetitionOversaturated},
	{5000, CompetitionHigh},
	{1000, CompetitionModerate},
	{300, CompetitionLow},
}

// opportunityBase is the base opportunity score per competition level before
// saturation, trajectory, and maturity modifiers.
var opportunityBase = map[string]float64{
	CompetitionOversaturated: 2,
	CompetitionHigh:          4,
	CompetitionModerate:      6,
	CompetitionLow:           8,
	CompetitionUntapped:      9,
}

// requiredAdvantages lists the competitive advantages needed to succeed at
// each competition level.
var requiredAdvantages = map[string][]string{
	CompetitionOversaturated: {
		"Unique value proposition",
		"Premium branding",
		"Exceptional customer service",
		"Innovative product features",
		"Strong social media presence",
	},
	CompetitionHigh: {
		"Quality differentiation",
		"Competitive pricing",
		"Fast shipping",
		"Customer reviews strategy",
		"SEO optimization",
	},
	CompetitionModerate: {
		"Good product quality",
		"Competitive pricing",
		"Basic SEO",
		"Customer service",
	},
	CompetitionLow: {
		"Basic quality",
		"Market presence",
		"Customer acquisition",
	},
	CompetitionUntapped: {
		"Market education",
		"First-mover advantage",
		"Category definition",
	},
}

// Surge pattern labels.
const (
	PatternViralTrend      = "viral_trend"
	PatternSeasonalPeak    = "seasonal_peak"
	PatternEventDriven     = "event_driven"
	PatternInfluencerBoost = "influencer_boost"
	PatternOrganicGrowth   = "organic_growth"
	PatternNone            = "no_significant_pattern"
)

// surgeParams are the fixed parameters associated with each surge pattern.
type surgeParams struct {
	Multiplier float64
	Duration   int // days
	Decay      float64
}

var surgePatterns = map[string]surgeParams{
	PatternViralTrend:      {Multiplier: 10, Duration: 7, Decay: 0.8},
	PatternSeasonalPeak:    {Multiplier: 5, Duration: 30, Decay: 0.9},
	PatternEventDriven:     {Multiplier: 8, Duration: 14, Decay: 0.7},
	PatternInfluencerBoost: {Multiplier: 6, Duration: 10, Decay: 0.75},
	PatternOrganicGrowth:   {Multiplier: 2, Duration: 90, Decay: 0.95},
	PatternNone:            {Multiplier: 1, Duration: 30, Decay: 0.9},
}

// Pulse status labels.
const (
	PulseHotOpportunity   = "HOT_OPPORTUNITY"
	PulseStrongPotential  = "STRONG_POTENTIAL"
	PulseModerateInterest = "MODERATE_INTEREST"
	PulseWeakSignals      = "WEAK_SIGNALS"
	PulseColdMarket       = "COLD_MARKET"
)

// Shared qualitative levels.
const (
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelCritical = "critical"
	LevelNone     = "none"
)

// Entry recommendation labels.
const (
	EntryImmediately = "enter_immediately"
	EntrySoon        = "enter_soon"
	EntryStrategic   = "strategic_entry"
	EntryAvoid       = "avoid_or_wait"
)

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

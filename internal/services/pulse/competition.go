package pulse

import (
	"math"

	"MarketPulse/internal/domain/models"
)

// maxSustainableListings is the estimated market capacity used for the
// saturation percentage.
const maxSustainableListings = 5000

// CompetitionDensityAnalyzer scores how crowded a competitive space is and
// how favorable market entry looks. All divisors are floored at 1 so empty
// snapshots score zero instead of failing.
type CompetitionDensityAnalyzer struct{}

func NewCompetitionDensityAnalyzer() *CompetitionDensityAnalyzer {
	return &CompetitionDensityAnalyzer{}
}

func (a *CompetitionDensityAnalyzer) Analyze(keyword string, snap models.CompetitionSnapshot) models.CompetitionResult {
	res := models.CompetitionResult{
		Keyword:          keyword,
		DensityScore:     densityScore(snap),
		CompetitionLevel: classifyCompetition(snap.TotalListings),
	}
	res.Saturation = analyzeSaturation(snap)
	res.Growth = predictCompetitionGrowth(snap)
	res.OpportunityScore = opportunityScore(res.CompetitionLevel, res.Saturation, res.Growth)
	res.Entry = entryRecommendation(res.OpportunityScore)
	res.RequiredAdvantages = requiredAdvantages[res.CompetitionLevel]
	return res
}

func densityScore(snap models.CompetitionSnapshot) float64 {
	listingsPerSeller := float64(snap.TotalListings) / math.Max(float64(snap.ActiveSellers), 1)
	base := math.Min(float64(snap.TotalListings)/1000, 8)
	velocity := math.Min(float64(snap.NewListings24h)/50, 1.5)
	concentration := math.Min(listingsPerSeller/10, 0.5)
	return clamp10(base + velocity + concentration)
}

func classifyCompetition(totalListings int) string {
	for _, tier := range competitionLadder {
		if totalListings >= tier.Threshold {
			return tier.Level
		}
	}
	return CompetitionUntapped
}

func analyzeSaturation(snap models.CompetitionSnapshot) models.SaturationAnalysis {
	pct := math.Min(float64(snap.TotalListings)/maxSustainableListings, 1.0)
	concentration := snap.TopSellerShare * 100

	// Annualized listing growth as a sustainability proxy.
	growth := float64(snap.NewListings24h) / math.Max(float64(snap.TotalListings), 1) * 365

	out := models.SaturationAnalysis{
		SaturationPct:      pct,
		ConcentrationIndex: concentration,
	}
	switch {
	case concentration > 40:
		out.MarketConcentration = LevelHigh
	case concentration > 20:
		out.MarketConcentration = LevelMedium
	default:
		out.MarketConcentration = LevelLow
	}
	switch {
	case growth < 0.3:
		out.GrowthSustainability = LevelHigh
	case growth < 0.7:
		out.GrowthSustainability = LevelMedium
	default:
		out.GrowthSustainability = LevelLow
	}
	switch {
	case pct > 0.7:
		out.MarketMaturity = "mature"
	case pct > 0.3:
		out.MarketMaturity = "growing"
	default:
		out.MarketMaturity = "emerging"
	}
	return out
}

func predictCompetitionGrowth(snap models.CompetitionSnapshot) models.CompetitionGrowth {
	const weeksAhead = 12
	current := math.Max(float64(snap.ActiveSellers), 1)
	predicted := current * math.Pow(1+snap.NewSellerGrowth, weeksAhead)
	rate := (predicted - current) / current

	out := models.CompetitionGrowth{
		PredictedSellers3M: int(predicted),
		GrowthRate3M:       rate,
	}
	switch {
	case rate > 1:
		out.Trajectory = "exploding"
	case rate > 0.3:
		out.Trajectory = "growing"
	default:
		out.Trajectory = "stable"
	}
	switch {
	case rate > 0.8:
		out.EntryWindow = "closing_fast"
	case rate > 0.4:
		out.EntryWindow = "narrowing"
	default:
		out.EntryWindow = "stable"
	}
	return out
}

var trajectoryModifiers = map[string]float64{
	"exploding": -1.5,
	"growing":   -0.5,
	"stable":    0,
}

var maturityModifiers = map[string]float64{
	"mature":   -0.5,
	"growing":  0.5,
	"emerging": 1,
}

func opportunityScore(level string, sat models.SaturationAnalysis, growth models.CompetitionGrowth) float64 {
	base, ok := opportunityBase[level]
	if !ok {
		base = 5
	}
	score := base - sat.SaturationPct*2 + trajectoryModifiers[growth.Trajectory] + maturityModifiers[sat.MarketMaturity]
	return clamp10(score)
}

func entryRecommendation(score float64) models.EntryRecommendation {
	switch {
	case score >= 8:
		return models.EntryRecommendation{
			Recommendation: EntryImmediately,
			Urgency:        LevelHigh,
			Reason:         "Exceptional opportunity with low competition",
		}
	case score >= 6:
		return models.EntryRecommendation{
			Recommendation: EntrySoon,
			Urgency:        LevelMedium,
			Reason:         "Good opportunity but window may be narrowing",
		}
	case score >= 4:
		return models.EntryRecommendation{
			Recommendation: EntryStrategic,
			Urgency:        LevelLow,
			Reason:         "Requires strong differentiation strategy",
		}
	default:
		return models.EntryRecommendation{
			Recommendation: EntryAvoid,
			Urgency:        LevelNone,
			Reason:         "Market oversaturated, wait for better timing",
		}
	}
}

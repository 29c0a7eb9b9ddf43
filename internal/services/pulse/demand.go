package pulse

import (
	"fmt"
	"math"

	"MarketPulse/internal/domain/models"
)

// surgeDetectionThreshold is the magnitude above which demand counts as a surge.
const surgeDetectionThreshold = 1.5

// DemandSurgeAnalyzer detects demand surges, matches them to a pattern, and
// derives the opportunity window for acting on them. Absent snapshot fields
// default to zero and flow through the same arithmetic.
type DemandSurgeAnalyzer struct{}

func NewDemandSurgeAnalyzer() *DemandSurgeAnalyzer { return &DemandSurgeAnalyzer{} }

func (a *DemandSurgeAnalyzer) Analyze(keyword string, snap models.DemandSnapshot) models.DemandResult {
	mag := surgeMagnitude(snap.CurrentSearches24h, snap.BaselineSearches)
	pattern := identifyPattern(mag, snap.SearchGrowth7d, snap.SocialMentions)
	trajectory := predictDemandTrajectory(pattern, mag)
	window := opportunityWindow(trajectory)

	return models.DemandResult{
		Keyword:         keyword,
		SurgeDetected:   mag > surgeDetectionThreshold,
		SurgeMagnitude:  mag,
		SurgePattern:    pattern,
		Trajectory:      trajectory,
		Window:          window,
		Recommendations: actionRecommendations(mag, window),
	}
}

func surgeMagnitude(current, baseline int) float64 {
	if baseline <= 0 {
		return 1.0
	}
	return float64(current) / float64(baseline)
}

// identifyPattern is an ordered rule match; the first rule that fires wins.
func identifyPattern(mag, growth float64, social int) string {
	switch {
	case mag > 8 && social > 1000:
		return PatternViralTrend
	case mag > 4 && growth > 0.5:
		return PatternSeasonalPeak
	case mag > 6 && social > 500:
		return PatternEventDriven
	case mag > 4 && social > 200:
		return PatternInfluencerBoost
	case mag > surgeDetectionThreshold && growth > 0.2:
		return PatternOrganicGrowth
	default:
		return PatternNone
	}
}

func predictDemandTrajectory(pattern string, mag float64) models.DemandTrajectory {
	params, ok := surgePatterns[pattern]
	if !ok {
		params = surgePatterns[PatternNone]
	}

	daysToPeak := int(float64(params.Duration) * 0.3)
	if daysToPeak < 1 {
		daysToPeak = 1
	}
	decline := 1 - params.Decay

	out := models.DemandTrajectory{
		Pattern:        pattern,
		DaysToPeak:     daysToPeak,
		PeakMultiplier: math.Min(mag*1.2, params.Multiplier),
		DeclinePerDay:  decline,
	}
	switch {
	case decline < 0.1:
		out.Sustainability = LevelHigh
	case decline < 0.25:
		out.Sustainability = LevelMedium
	default:
		out.Sustainability = LevelLow
	}
	return out
}

// exitOffsets is how many days past the peak to hold, by sustainability.
var exitOffsets = map[string]int{
	LevelHigh:   30,
	LevelMedium: 14,
	LevelLow:    7,
}

func opportunityWindow(t models.DemandTrajectory) models.OpportunityWindow {
	entry := t.DaysToPeak - 2
	if entry < 1 {
		entry = 1
	}
	exit := t.DaysToPeak + exitOffsets[t.Sustainability]

	out := models.OpportunityWindow{
		OptimalEntryDays: entry,
		OptimalExitDays:  exit,
		WindowDuration:   exit - entry,
	}
	switch {
	case entry <= 1:
		out.Urgency = LevelCritical
	case entry <= 3:
		out.Urgency = LevelHigh
	default:
		out.Urgency = LevelMedium
	}
	return out
}

func actionRecommendations(mag float64, window models.OpportunityWindow) []string {
	recs := make([]string, 0, 5)
	if mag > 5 {
		recs = append(recs, "URGENT: Massive demand surge detected - prioritize this niche")
	}
	if window.Urgency == LevelCritical {
		recs = append(recs, "CRITICAL TIMING: Enter market within 24-48 hours")
	}
	if window.WindowDuration > 20 {
		recs = append(recs, "SUSTAINED OPPORTUNITY: Long-term potential detected")
	}
	if mag > 3 {
		recs = append(recs, "PREMIUM PRICING: High demand supports premium positioning")
	}
	recs = append(recs, fmt.Sprintf("OPTIMAL WINDOW: Enter in %d days", window.OptimalEntryDays))
	return recs
}

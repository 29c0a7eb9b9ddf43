package usecase

import (
	"fmt"
	"math"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/services/pulse"
)

// Composite scoring and synthesis over the three sub-results. These are pure
// helpers; the weights and ladders are the decision policy of the engine.

const (
	momentumWeight    = 0.3
	opportunityWeight = 0.4
	demandWeight      = 0.3
)

func pulseScore(momentum, opportunity, magnitude float64) float64 {
	demandScore := math.Min(magnitude*3, 10)
	total := momentum*momentumWeight + opportunity*opportunityWeight + demandScore*demandWeight
	if total < 0 {
		return 0
	}
	if total > 10 {
		return 10
	}
	return total
}

func classifyPulse(score float64) string {
	switch {
	case score >= 8.5:
		return pulse.PulseHotOpportunity
	case score >= 7.0:
		return pulse.PulseStrongPotential
	case score >= 5.5:
		return pulse.PulseModerateInterest
	case score >= 3.0:
		return pulse.PulseWeakSignals
	default:
		return pulse.PulseColdMarket
	}
}

func marketInsights(trend models.VelocityResult, comp models.CompetitionResult, demand models.DemandResult) models.MarketInsights {
	out := models.MarketInsights{
		CompetitionPressure: comp.CompetitionLevel,
		MarketMaturity:      comp.Saturation.MarketMaturity,
		TrendSustainability: trend.Trajectory.Prediction,
		KeyDrivers:          []string{},
	}
	switch {
	case trend.MomentumScore > 7:
		out.MarketTemperature = "hot"
	case trend.MomentumScore > 4:
		out.MarketTemperature = "warm"
	default:
		out.MarketTemperature = "cool"
	}
	if demand.SurgeMagnitude > 2 {
		out.DemandStatus = "surging"
	} else {
		out.DemandStatus = "stable"
	}

	if demand.SurgeMagnitude > 3 {
		out.KeyDrivers = append(out.KeyDrivers, "Strong demand surge detected")
	}
	if comp.OpportunityScore > 7 {
		out.KeyDrivers = append(out.KeyDrivers, "Low competition window open")
	}
	if trend.TrendStatus == pulse.TrendFastRising || trend.TrendStatus == pulse.TrendExplosive {
		out.KeyDrivers = append(out.KeyDrivers, "Explosive trend velocity")
	}
	return out
}

func actionPlan(score float64, comp models.CompetitionResult, demand models.DemandResult, timing models.OptimalTiming) []string {
	plan := make([]string, 0, 4+len(demand.Recommendations))

	switch {
	case score >= 8:
		plan = append(plan, "IMMEDIATE ACTION: Drop everything and focus on this opportunity")
	case score >= 6:
		plan = append(plan, "HIGH PRIORITY: Strong opportunity - move quickly")
	case score >= 4:
		plan = append(plan, "MONITOR CLOSELY: Developing opportunity")
	default:
		plan = append(plan, "WAIT AND WATCH: Better opportunities likely available")
	}

	plan = append(plan, demand.Recommendations...)

	if comp.Entry.Recommendation == pulse.EntryImmediately {
		plan = append(plan, "MARKET ENTRY: Enter immediately before competition increases")
	}
	if timing.Urgency == pulse.LevelCritical {
		plan = append(plan, fmt.Sprintf("CRITICAL TIMING: %s", timing.Message))
	}
	return plan
}

func optimalTiming(trend models.VelocityResult, demand models.DemandResult) models.OptimalTiming {
	switch {
	case demand.Window.Urgency == pulse.LevelCritical:
		return models.OptimalTiming{
			Recommendation: "enter_now",
			Urgency:        pulse.LevelCritical,
			Message:        "Enter within 24-48 hours to catch demand surge",
		}
	case trend.Trajectory.Prediction == pulse.TrajectoryExplosiveGrowth:
		return models.OptimalTiming{
			Recommendation: "enter_very_soon",
			Urgency:        pulse.LevelHigh,
			Message:        "Enter within 1 week to ride explosive growth",
		}
	default:
		return models.OptimalTiming{
			Recommendation: "enter_strategically",
			Urgency:        pulse.LevelMedium,
			Message:        "Plan strategic entry within 2-4 weeks",
		}
	}
}

var riskScores = map[string]float64{
	pulse.LevelLow:    1,
	pulse.LevelMedium: 2,
	pulse.LevelHigh:   3,
}

func assessRisk(trend models.VelocityResult, comp models.CompetitionResult, demand models.DemandResult) models.RiskAssessment {
	out := models.RiskAssessment{
		CompetitionRisk: pulse.LevelLow,
		TrendRisk:       pulse.LevelLow,
		TimingRisk:      pulse.LevelLow,
	}
	if comp.CompetitionLevel == pulse.CompetitionOversaturated || comp.CompetitionLevel == pulse.CompetitionHigh {
		out.CompetitionRisk = pulse.LevelHigh
	}
	if trend.Trajectory.Prediction == pulse.TrajectoryDeclineAhead {
		out.TrendRisk = pulse.LevelHigh
	}
	// A critical window means there is almost no room to mistime the entry.
	switch demand.Window.Urgency {
	case pulse.LevelCritical:
		out.TimingRisk = pulse.LevelHigh
	case pulse.LevelHigh:
		out.TimingRisk = pulse.LevelMedium
	}

	avg := (riskScores[out.CompetitionRisk] + riskScores[out.TrendRisk] + riskScores[out.TimingRisk]) / 3
	switch {
	case avg > 2.5:
		out.OverallRisk = pulse.LevelHigh
	case avg > 1.5:
		out.OverallRisk = pulse.LevelMedium
	default:
		out.OverallRisk = pulse.LevelLow
	}
	return out
}

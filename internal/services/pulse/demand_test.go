package pulse

import (
	"strings"
	"testing"

	"MarketPulse/internal/domain/models"
)

func TestDemandNoBaseline(t *testing.T) {
	a := NewDemandSurgeAnalyzer()
	res := a.Analyze("fresh keyword", models.DemandSnapshot{
		CurrentSearches24h: 500,
		BaselineSearches:   0,
	})

	if res.SurgeMagnitude != 1.0 {
		t.Fatalf("expected neutral magnitude, got %v", res.SurgeMagnitude)
	}
	if res.SurgeDetected {
		t.Fatalf("no surge should be detected without a baseline")
	}
	if res.SurgePattern != PatternNone {
		t.Fatalf("unexpected pattern %s", res.SurgePattern)
	}
}

func TestDemandViralSurge(t *testing.T) {
	a := NewDemandSurgeAnalyzer()
	res := a.Analyze("viral toy", models.DemandSnapshot{
		CurrentSearches24h: 9000,
		BaselineSearches:   1000,
		SearchGrowth7d:     0.4,
		SocialMentions:     2000,
	})

	if !res.SurgeDetected {
		t.Fatalf("expected surge detected")
	}
	if res.SurgePattern != PatternViralTrend {
		t.Fatalf("unexpected pattern %s", res.SurgePattern)
	}
	// viral: 7-day duration, peak in max(1, 2) days
	if res.Trajectory.DaysToPeak != 2 {
		t.Fatalf("unexpected days to peak %d", res.Trajectory.DaysToPeak)
	}
	// peak multiplier caps at the pattern multiplier
	if res.Trajectory.PeakMultiplier != 10 {
		t.Fatalf("unexpected peak multiplier %v", res.Trajectory.PeakMultiplier)
	}
	if res.Window.Urgency == LevelMedium {
		t.Fatalf("viral windows should be urgent, got %s", res.Window.Urgency)
	}
}

func TestDemandOrganicGrowth(t *testing.T) {
	a := NewDemandSurgeAnalyzer()
	res := a.Analyze("slow burner", models.DemandSnapshot{
		CurrentSearches24h: 200,
		BaselineSearches:   100,
		SearchGrowth7d:     0.3,
		SocialMentions:     50,
	})

	if res.SurgePattern != PatternOrganicGrowth {
		t.Fatalf("unexpected pattern %s", res.SurgePattern)
	}
	if res.Trajectory.Sustainability != LevelHigh {
		t.Fatalf("organic growth should be sustainable, got %s", res.Trajectory.Sustainability)
	}
	if res.Window.OptimalExitDays <= res.Window.OptimalEntryDays {
		t.Fatalf("exit %d must be after entry %d", res.Window.OptimalExitDays, res.Window.OptimalEntryDays)
	}
	found := false
	for _, r := range res.Recommendations {
		if strings.Contains(r, "SUSTAINED OPPORTUNITY") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected sustained opportunity recommendation, got %v", res.Recommendations)
	}
}

func TestDemandThresholdNotExceeded(t *testing.T) {
	a := NewDemandSurgeAnalyzer()
	res := a.Analyze("borderline", models.DemandSnapshot{
		CurrentSearches24h: 150,
		BaselineSearches:   100,
	})
	if res.SurgeMagnitude != 1.5 {
		t.Fatalf("unexpected magnitude %v", res.SurgeMagnitude)
	}
	if res.SurgeDetected {
		t.Fatalf("magnitude exactly at threshold must not count as a surge")
	}
}

func TestDemandAlwaysHasWindowRecommendation(t *testing.T) {
	a := NewDemandSurgeAnalyzer()
	res := a.Analyze("any keyword", models.DemandSnapshot{})
	if len(res.Recommendations) == 0 {
		t.Fatalf("expected at least the window recommendation")
	}
	last := res.Recommendations[len(res.Recommendations)-1]
	if !strings.Contains(last, "OPTIMAL WINDOW") {
		t.Fatalf("last recommendation should name the entry window, got %q", last)
	}
}

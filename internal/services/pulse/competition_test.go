package pulse

import (
	"testing"

	"MarketPulse/internal/domain/models"
)

func TestCompetitionUntappedMarket(t *testing.T) {
	a := NewCompetitionDensityAnalyzer()
	res := a.Analyze("niche gadget", models.CompetitionSnapshot{
		TotalListings:   50,
		ActiveSellers:   5,
		NewListings24h:  2,
		TopSellerShare:  0.1,
		NewSellerGrowth: 0.01,
	})

	if res.CompetitionLevel != CompetitionUntapped {
		t.Fatalf("unexpected level %s", res.CompetitionLevel)
	}
	if res.OpportunityScore < 8 {
		t.Fatalf("expected high opportunity, got %v", res.OpportunityScore)
	}
	if res.Entry.Recommendation != EntryImmediately {
		t.Fatalf("unexpected entry %s", res.Entry.Recommendation)
	}
	if res.Saturation.MarketMaturity != "emerging" {
		t.Fatalf("unexpected maturity %s", res.Saturation.MarketMaturity)
	}
}

func TestCompetitionOversaturatedMarket(t *testing.T) {
	a := NewCompetitionDensityAnalyzer()
	res := a.Analyze("phone case", models.CompetitionSnapshot{
		TotalListings:   20000,
		ActiveSellers:   1000,
		NewListings24h:  500,
		TopSellerShare:  0.5,
		NewSellerGrowth: 0.1,
	})

	if res.CompetitionLevel != CompetitionOversaturated {
		t.Fatalf("unexpected level %s", res.CompetitionLevel)
	}
	if res.Entry.Recommendation != EntryAvoid {
		t.Fatalf("unexpected entry %s", res.Entry.Recommendation)
	}
	if res.Entry.Urgency != LevelNone {
		t.Fatalf("unexpected urgency %s", res.Entry.Urgency)
	}
	if res.Saturation.SaturationPct != 1 {
		t.Fatalf("saturation should cap at 1, got %v", res.Saturation.SaturationPct)
	}
	if res.Growth.Trajectory != "exploding" {
		t.Fatalf("unexpected trajectory %s", res.Growth.Trajectory)
	}
}

func TestCompetitionLadderBoundaries(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{10000, CompetitionOversaturated},
		{9999, CompetitionHigh},
		{5000, CompetitionHigh},
		{4999, CompetitionModerate},
		{1000, CompetitionModerate},
		{999, CompetitionLow},
		{300, CompetitionLow},
		{299, CompetitionUntapped},
		{0, CompetitionUntapped},
	}
	for _, c := range cases {
		if got := classifyCompetition(c.total); got != c.want {
			t.Fatalf("total=%d: got %s want %s", c.total, got, c.want)
		}
	}
}

func TestCompetitionZeroSnapshot(t *testing.T) {
	a := NewCompetitionDensityAnalyzer()
	res := a.Analyze("empty", models.CompetitionSnapshot{})

	if res.DensityScore != 0 {
		t.Fatalf("expected zero density, got %v", res.DensityScore)
	}
	if res.CompetitionLevel != CompetitionUntapped {
		t.Fatalf("unexpected level %s", res.CompetitionLevel)
	}
	// divisors floor at 1: predicted sellers never drop below current
	if res.Growth.PredictedSellers3M < 1 {
		t.Fatalf("unexpected predicted sellers %d", res.Growth.PredictedSellers3M)
	}
}

func TestCompetitionScoresClamped(t *testing.T) {
	a := NewCompetitionDensityAnalyzer()
	res := a.Analyze("mega market", models.CompetitionSnapshot{
		TotalListings:   1_000_000,
		ActiveSellers:   1,
		NewListings24h:  100_000,
		TopSellerShare:  0.99,
		NewSellerGrowth: 2,
	})

	if res.DensityScore < 0 || res.DensityScore > 10 {
		t.Fatalf("density out of range: %v", res.DensityScore)
	}
	if res.OpportunityScore < 0 || res.OpportunityScore > 10 {
		t.Fatalf("opportunity out of range: %v", res.OpportunityScore)
	}
}

func TestCompetitionAdvantagesMatchLevel(t *testing.T) {
	a := NewCompetitionDensityAnalyzer()
	res := a.Analyze("kw", models.CompetitionSnapshot{TotalListings: 6000, ActiveSellers: 100})
	if res.CompetitionLevel != CompetitionHigh {
		t.Fatalf("unexpected level %s", res.CompetitionLevel)
	}
	if len(res.RequiredAdvantages) != len(requiredAdvantages[CompetitionHigh]) {
		t.Fatalf("advantages not taken from level table")
	}
}

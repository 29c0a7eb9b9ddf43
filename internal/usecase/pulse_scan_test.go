package usecase

import (
	"context"
	"testing"

	"MarketPulse/internal/domain/models"
)

// keyedProvider returns stronger demand signals for keywords with a higher
// configured baseline multiple, so scan ordering is predictable.
type keyedProvider struct {
	searches map[string]int
}

func (p *keyedProvider) TimeSeries(_ context.Context, _ string, _ int) ([]models.TimeSeriesPoint, error) {
	series := make([]models.TimeSeriesPoint, 31)
	for i := range series {
		series[i] = models.TimeSeriesPoint{Value: 10}
	}
	return series, nil
}

func (p *keyedProvider) Competition(_ context.Context, _ string) (models.CompetitionSnapshot, error) {
	return models.CompetitionSnapshot{TotalListings: 2000, ActiveSellers: 100}, nil
}

func (p *keyedProvider) Demand(_ context.Context, keyword string) (models.DemandSnapshot, error) {
	return models.DemandSnapshot{
		CurrentSearches24h: p.searches[keyword],
		BaselineSearches:   100,
	}, nil
}

func TestScanRanksByPulseScore(t *testing.T) {
	p := &keyedProvider{searches: map[string]int{
		"cold":    100,
		"warm":    300,
		"surging": 900,
	}}
	uc := NewPulseScanUseCase(NewPulseAggregator(p, noopMetrics{}))

	out, err := uc.Scan(context.Background(), ScanParams{Keywords: []string{"cold", "surging", "warm"}})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	if out[0].Keyword != "surging" || out[2].Keyword != "cold" {
		t.Fatalf("unexpected order: %s %s %s", out[0].Keyword, out[1].Keyword, out[2].Keyword)
	}
	for i := 1; i < len(out); i++ {
		if out[i].PulseScore > out[i-1].PulseScore {
			t.Fatalf("results not sorted descending at %d", i)
		}
	}
}

func TestScanEmptyKeywordDegradesNotFails(t *testing.T) {
	p := &keyedProvider{searches: map[string]int{"ok": 200}}
	uc := NewPulseScanUseCase(NewPulseAggregator(p, noopMetrics{}))

	out, err := uc.Scan(context.Background(), ScanParams{Keywords: []string{"ok", ""}})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	var empty *models.PulseResult
	for i := range out {
		if out[i].Keyword == "" {
			empty = &out[i]
		}
	}
	if empty == nil {
		t.Fatalf("empty keyword missing from results")
	}
	if empty.Degraded["evaluate"] == "" {
		t.Fatalf("expected evaluate degradation, got %v", empty.Degraded)
	}
}

func TestScanNoKeywords(t *testing.T) {
	uc := NewPulseScanUseCase(NewPulseAggregator(&keyedProvider{}, noopMetrics{}))
	if _, err := uc.Scan(context.Background(), ScanParams{}); err == nil {
		t.Fatalf("expected error for empty keyword list")
	}
}

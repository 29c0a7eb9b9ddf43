package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MarketPulse/internal/domain/models"
	domservice "MarketPulse/internal/domain/service"
	"MarketPulse/pkg/config"
)

// HTTPProvider implements SnapshotProvider against the marketplace data
// service. Every call is a GET; retries cover transient upstream failures.
type HTTPProvider struct {
	*HTTPServiceBase
	retries int
}

func NewHTTPProvider(cfg *config.Config) *HTTPProvider {
	retries := cfg.Provider.Retries
	if retries <= 0 {
		retries = 2
	}
	return &HTTPProvider{
		HTTPServiceBase: NewHTTPServiceBase(cfg),
		retries:         retries,
	}
}

type seriesResponse struct {
	Keyword string `json:"keyword"`
	Points  []struct {
		T int64   `json:"t"` // unix seconds
		V float64 `json:"v"`
	} `json:"points"`
}

func (p *HTTPProvider) TimeSeries(ctx context.Context, keyword string, days int) ([]models.TimeSeriesPoint, error) {
	var resp seriesResponse
	q := map[string][]string{
		"keyword": {keyword},
		"days":    {strconv.Itoa(days)},
	}
	if err := p.GetJSONWithRetry(ctx, "/api/v1/interest/series", q, &resp, p.retries); err != nil {
		return nil, fmt.Errorf("fetch series for %q: %w", keyword, err)
	}
	out := make([]models.TimeSeriesPoint, 0, len(resp.Points))
	for _, pt := range resp.Points {
		out = append(out, models.TimeSeriesPoint{Timestamp: time.Unix(pt.T, 0).UTC(), Value: pt.V})
	}
	return out, nil
}

func (p *HTTPProvider) Competition(ctx context.Context, keyword string) (models.CompetitionSnapshot, error) {
	var snap models.CompetitionSnapshot
	q := map[string][]string{"keyword": {keyword}}
	if err := p.GetJSONWithRetry(ctx, "/api/v1/competition", q, &snap, p.retries); err != nil {
		return models.CompetitionSnapshot{}, fmt.Errorf("fetch competition for %q: %w", keyword, err)
	}
	return snap, nil
}

func (p *HTTPProvider) Demand(ctx context.Context, keyword string) (models.DemandSnapshot, error) {
	var snap models.DemandSnapshot
	q := map[string][]string{"keyword": {keyword}}
	if err := p.GetJSONWithRetry(ctx, "/api/v1/demand", q, &snap, p.retries); err != nil {
		return models.DemandSnapshot{}, fmt.Errorf("fetch demand for %q: %w", keyword, err)
	}
	return snap, nil
}

var _ domservice.SnapshotProvider = (*HTTPProvider)(nil)

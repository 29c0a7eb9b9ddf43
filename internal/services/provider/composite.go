package provider

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	domservice "MarketPulse/internal/domain/service"
)

// CompositeProvider prefers locally collected interest series from the
// warehouse and falls back to the upstream service when the store has no
// coverage for a keyword. Competition and demand snapshots always come from
// upstream; the collector does not observe them.
type CompositeProvider struct {
	http  *HTTPProvider
	store domrepo.SeriesStore
}

func NewCompositeProvider(http *HTTPProvider, store domrepo.SeriesStore) *CompositeProvider {
	return &CompositeProvider{http: http, store: store}
}

func (p *CompositeProvider) TimeSeries(ctx context.Context, keyword string, days int) ([]models.TimeSeriesPoint, error) {
	if p.store != nil {
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -days)
		points, err := p.store.GetSeries(ctx, keyword, from, to)
		if err == nil && len(points) > 0 {
			return points, nil
		}
	}
	return p.http.TimeSeries(ctx, keyword, days)
}

func (p *CompositeProvider) Competition(ctx context.Context, keyword string) (models.CompetitionSnapshot, error) {
	return p.http.Competition(ctx, keyword)
}

func (p *CompositeProvider) Demand(ctx context.Context, keyword string) (models.DemandSnapshot, error) {
	return p.http.Demand(ctx, keyword)
}

var _ domservice.SnapshotProvider = (*CompositeProvider)(nil)

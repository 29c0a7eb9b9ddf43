package service

import (
	"context"

	"MarketPulse/internal/domain/models"
)

// SnapshotProvider supplies the point-in-time inputs the analyzers consume.
// The scoring core never generates its own data; determinism of a pulse
// evaluation depends on this separation.
type SnapshotProvider interface {
	TimeSeries(ctx context.Context, keyword string, days int) ([]models.TimeSeriesPoint, error)
	Competition(ctx context.Context, keyword string) (models.CompetitionSnapshot, error)
	Demand(ctx context.Context, keyword string) (models.DemandSnapshot, error)
}

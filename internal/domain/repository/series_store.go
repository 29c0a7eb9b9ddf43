package repository

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
)

// SeriesStore provides read-only access to keyword interest time series.
type SeriesStore interface {
	GetSeries(ctx context.Context, keyword string, from, to time.Time) ([]models.TimeSeriesPoint, error)
	GetLatestNPoints(ctx context.Context, keyword string, n int) ([]models.TimeSeriesPoint, error)
}

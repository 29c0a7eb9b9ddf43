package repository

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
)

// ObservationStream is a live feed of keyword interest readings.
type ObservationStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Observation, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher forwards observations to the message bus.
type Publisher interface {
	Publish(ctx context.Context, o *models.Observation) error
	PublishBatch(ctx context.Context, obs []*models.Observation) error
	Close() error
}

// ObservationStorage persists raw observations.
type ObservationStorage interface {
	Store(ctx context.Context, o *models.Observation) error
	StoreBatch(ctx context.Context, obs []*models.Observation) error
	Health(ctx context.Context) error
	Close() error
}

// PulseStore persists evaluated pulse results for history queries.
type PulseStore interface {
	Save(ctx context.Context, r *models.PulseResult) error
	History(ctx context.Context, keyword string, from, to time.Time, limit int) ([]models.PulseResult, error)
}

// Metrics records operational counters and latencies.
type Metrics interface {
	RecordEvaluation(keyword, status string)
	RecordError(kind string)
	RecordPulseScore(keyword string, score float64)
	RecordLatency(op string, seconds float64)
}

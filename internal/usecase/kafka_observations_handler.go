package usecase

import (
	"context"
	"encoding/json"
	"time"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	pkgkafka "MarketPulse/pkg/kafka"
)

// KafkaObservationsHandler consumes Kafka messages and writes to storage.
type KafkaObservationsHandler struct {
	topic   string
	storage domrepo.ObservationStorage
	metrics domrepo.Metrics
}

func NewKafkaObservationsHandler(topic string, storage domrepo.ObservationStorage, metrics domrepo.Metrics) *KafkaObservationsHandler {
	return &KafkaObservationsHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaObservationsHandler) Topic() string { return h.topic }

// incoming message schema: {keyword, t, v, src}
func (h *KafkaObservationsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Keyword string  `json:"keyword"`
		T       int64   `json:"t"`
		V       float64 `json:"v"`
		Src     string  `json:"src"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.T > 1e11 { // ms
		m.T = m.T / 1000
	}
	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(m.T, 0)).Seconds())

	start := time.Now()
	err := h.storage.Store(ctx, &models.Observation{
		Keyword:   m.Keyword,
		Timestamp: m.T,
		Value:     m.V,
		Source:    m.Src,
	})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaObservationsHandler)(nil)

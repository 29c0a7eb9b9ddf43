package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/domain/repository"
	pkgkafka "MarketPulse/pkg/kafka"
)

// ClickHouseStorage implements ObservationStorage for ClickHouse.
type ClickHouseStorage struct {
	db    *sql.DB
	table string
}

// NewClickHouseStorage creates ClickHouse observation storage.
func NewClickHouseStorage(db *sql.DB, table string) repository.ObservationStorage {
	return &ClickHouseStorage{db: db, table: table}
}

func (s *ClickHouseStorage) Store(ctx context.Context, o *models.Observation) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, keyword, value, source, event_id, seq) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	// Idempotency placeholders: event_id and seq derived from keyword+timestamp
	eventID := fmt.Sprintf("%s-%d", o.Keyword, o.Timestamp)
	seq := uint64(o.Timestamp)
	_, err := s.db.ExecContext(ctx, q,
		time.Unix(o.Timestamp, 0),
		o.Keyword,
		o.Value,
		o.Source,
		eventID,
		seq,
	)
	return err
}

func (s *ClickHouseStorage) StoreBatch(ctx context.Context, obs []*models.Observation) error {
	if len(obs) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(obs); start += chunkSize {
		end := start + chunkSize
		if end > len(obs) {
			end = len(obs)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*6)
		for _, o := range obs[start:end] {
			if o == nil || o.Keyword == "" || o.Timestamp == 0 {
				continue
			}
			eventID := fmt.Sprintf("%s-%d", o.Keyword, o.Timestamp)
			seq := uint64(o.Timestamp)
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args,
				time.Unix(o.Timestamp, 0),
				o.Keyword,
				o.Value,
				o.Source,
				eventID,
				seq,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, keyword, value, source, event_id, seq) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
	return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, o *models.Observation) error {
	return p.producer.Publish(ctx, p.topic, []byte(o.Keyword), map[string]interface{}{
		"keyword": o.Keyword,
		"t":       o.Timestamp,
		"v":       o.Value,
		"src":     o.Source,
	})
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, obs []*models.Observation) error {
	if len(obs) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(obs))
	for i, o := range obs {
		msgs[i] = pkgkafka.Message{
			Key: []byte(o.Keyword),
			Value: map[string]interface{}{
				"keyword": o.Keyword,
				"t":       o.Timestamp,
				"v":       o.Value,
				"src":     o.Source,
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// CHPulseStore implements PulseStore for ClickHouse. Summary columns support
// filtering and the full result rides along as a JSON payload.
type CHPulseStore struct {
	db    *sql.DB
	table string
}

func NewCHPulseStore(db *sql.DB, table string) repository.PulseStore {
	if table == "" {
		table = "marketpulse.pulse_results"
	}
	return &CHPulseStore{db: db, table: table}
}

func (s *CHPulseStore) Save(ctx context.Context, r *models.PulseResult) error {
	if r == nil || r.Keyword == "" {
		return fmt.Errorf("pulse result invalid")
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal pulse result: %w", err)
	}
	q := fmt.Sprintf("INSERT INTO %s (ts, keyword, pulse_score, pulse_status, overall_risk, payload) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	_, err = s.db.ExecContext(ctx, q,
		r.EvaluatedAt,
		r.Keyword,
		r.PulseScore,
		r.PulseStatus,
		r.Risk.OverallRisk,
		string(payload),
	)
	return err
}

func (s *CHPulseStore) History(ctx context.Context, keyword string, from, to time.Time, limit int) ([]models.PulseResult, error) {
	q := fmt.Sprintf("SELECT payload FROM %s WHERE keyword = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, keyword, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := make([]models.PulseResult, 0, limit)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		var r models.PulseResult
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("unmarshal pulse result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

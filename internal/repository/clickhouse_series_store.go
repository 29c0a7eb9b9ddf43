package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	pkgch "MarketPulse/pkg/clickhouse"
	applogger "MarketPulse/pkg/logger"
)

// CHSeriesStore implements SeriesStore backed by ClickHouse daily rollups.
type CHSeriesStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHSeriesStore(ch *pkgch.Client, table string) *CHSeriesStore {
	if table == "" {
		table = "marketpulse.interest_daily"
	}
	return &CHSeriesStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHSeriesStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSeriesStore) GetSeries(ctx context.Context, keyword string, from, to time.Time) ([]models.TimeSeriesPoint, error) {
	start := time.Now()
	const qtpl = `
        SELECT bucket, avg_value
        FROM %s
        WHERE keyword = ? AND bucket >= ? AND bucket <= ?
        ORDER BY bucket ASC
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, keyword, from, to)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_series query error",
				applogger.String("table", s.table),
				applogger.String("keyword", keyword),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get series: %w", err)
	}
	defer rows.Close()

	out := make([]models.TimeSeriesPoint, 0, 64)
	for rows.Next() {
		var p models.TimeSeriesPoint
		if err := rows.Scan(&p.Timestamp, &p.Value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse get_series scan error",
					applogger.String("table", s.table),
					applogger.String("keyword", keyword),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan point: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_series rows error",
				applogger.String("table", s.table),
				applogger.String("keyword", keyword),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse get_series ok",
			applogger.String("table", s.table),
			applogger.String("keyword", keyword),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHSeriesStore) GetLatestNPoints(ctx context.Context, keyword string, n int) ([]models.TimeSeriesPoint, error) {
	start := time.Now()
	const qtpl = `
        SELECT bucket, avg_value
        FROM %s
        WHERE keyword = ?
        ORDER BY bucket DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, s.table)
	rows, err := s.db.QueryContext(ctx, q, keyword, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_points query error",
				applogger.String("table", s.table),
				applogger.String("keyword", keyword),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get latest points: %w", err)
	}
	defer rows.Close()

	tmp := make([]models.TimeSeriesPoint, 0, n)
	for rows.Next() {
		var p models.TimeSeriesPoint
		if err := rows.Scan(&p.Timestamp, &p.Value); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse latest_points scan error",
					applogger.String("table", s.table),
					applogger.String("keyword", keyword),
					applogger.Int("limit", n),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan point: %w", err)
		}
		tmp = append(tmp, p)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_points rows error",
				applogger.String("table", s.table),
				applogger.String("keyword", keyword),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	if s.l != nil {
		s.l.Info("clickhouse latest_points ok",
			applogger.String("table", s.table),
			applogger.String("keyword", keyword),
			applogger.Int("limit", n),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

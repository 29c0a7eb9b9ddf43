package usecase

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
)

// HistoryUseCase provides business logic for querying persisted pulse results.
type HistoryUseCase struct {
	store domrepo.PulseStore
}

func NewHistoryUseCase(store domrepo.PulseStore) *HistoryUseCase {
	return &HistoryUseCase{store: store}
}

type GetHistoryParams struct {
	Keyword string
	From    time.Time
	To      time.Time
	Limit   int
}

type GetHistoryResult struct {
	Keyword string
	From    time.Time
	To      time.Time
	Count   int
	Results []models.PulseResult
}

func (uc *HistoryUseCase) GetHistory(ctx context.Context, p GetHistoryParams) (*GetHistoryResult, error) {
	if p.Keyword == "" {
		return nil, fmt.Errorf("keyword required")
	}
	if p.From.After(p.To) {
		return nil, fmt.Errorf("from must be <= to")
	}
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Limit > 1000 {
		p.Limit = 1000
	}

	results, err := uc.store.History(ctx, p.Keyword, p.From, p.To, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	return &GetHistoryResult{
		Keyword: p.Keyword,
		From:    p.From,
		To:      p.To,
		Count:   len(results),
		Results: results,
	}, nil
}

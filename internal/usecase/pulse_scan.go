package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
)

// PulseScanUseCase evaluates many keywords concurrently. Keywords are
// independent, so the fan-out needs no coordination beyond a bounded worker
// pool; one keyword's degradation never aborts the batch.
type PulseScanUseCase struct {
	agg     *PulseAggregator
	timeout time.Duration
}

func NewPulseScanUseCase(agg *PulseAggregator) *PulseScanUseCase {
	return &PulseScanUseCase{agg: agg, timeout: 30 * time.Second}
}

type ScanParams struct {
	Keywords    []string
	Days        int
	Concurrency int
}

func (uc *PulseScanUseCase) Scan(ctx context.Context, p ScanParams) ([]models.PulseResult, error) {
	if len(p.Keywords) == 0 {
		return nil, fmt.Errorf("keywords required")
	}
	if p.Concurrency <= 0 {
		p.Concurrency = 8
	}
	if p.Days <= 0 {
		p.Days = 30
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type item struct {
		idx int
		res *models.PulseResult
	}
	ch := make(chan item, len(p.Keywords))
	sem := make(chan struct{}, p.Concurrency)
	var wg sync.WaitGroup

	for i, kw := range p.Keywords {
		wg.Add(1)
		go func(idx int, keyword string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := uc.agg.Evaluate(ctx, keyword, p.Days)
			if err != nil {
				// Invalid keyword in a batch: report it as fully degraded
				// rather than dropping it or failing the scan.
				res = &models.PulseResult{
					Keyword:     keyword,
					EvaluatedAt: time.Now(),
					Degraded:    map[string]string{"evaluate": err.Error()},
				}
			}
			ch <- item{idx, res}
		}(i, kw)
	}

	go func() { wg.Wait(); close(ch) }()

	out := make([]models.PulseResult, 0, len(p.Keywords))
	for it := range ch {
		out = append(out, *it.res)
	}

	// Rank by composite score, best first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].PulseScore > out[j].PulseScore })
	return out, nil
}

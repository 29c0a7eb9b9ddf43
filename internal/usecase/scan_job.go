package usecase

import (
	"context"
	"fmt"

	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/queue"
)

// ScanJobType is the queue message type for background keyword scans.
const ScanJobType = "pulse.scan"

// ScanJobPayload is the enqueued request for a background scan.
type ScanJobPayload struct {
	Keywords    []string `json:"keywords"`
	Days        int      `json:"days"`
	Concurrency int      `json:"concurrency"`
}

// ScanJob runs queued keyword scans off the request path. Each evaluated
// result is persisted by the aggregator, so history queries pick them up.
type ScanJob struct {
	scan *PulseScanUseCase
	l    *applogger.Logger
}

func NewScanJob(scan *PulseScanUseCase, l *applogger.Logger) *ScanJob {
	return &ScanJob{scan: scan, l: l}
}

func (j *ScanJob) Name() string { return "pulse-scan" }
func (j *ScanJob) Type() string { return ScanJobType }

func (j *ScanJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[ScanJobPayload](payload)
	if err != nil {
		return fmt.Errorf("scan job payload: %w", err)
	}

	results, err := j.scan.Scan(ctx, ScanParams{
		Keywords:    p.Keywords,
		Days:        p.Days,
		Concurrency: p.Concurrency,
	})
	if err != nil {
		return fmt.Errorf("scan job: %w", err)
	}

	if j.l != nil {
		top := ""
		if len(results) > 0 {
			top = results[0].Keyword
		}
		j.l.Info("background scan complete",
			applogger.Int("keywords", len(p.Keywords)),
			applogger.String("top", top),
		)
	}
	return nil
}

var _ queue.Job = (*ScanJob)(nil)

package middleware

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
)

type testMetrics struct{}

func (testMetrics) RecordEvaluation(string, string)  {}
func (testMetrics) RecordError(string)               {}
func (testMetrics) RecordPulseScore(string, float64) {}
func (testMetrics) RecordLatency(string, float64)    {}

type countingProc struct {
	calls int32
	fail  bool
}

func (p *countingProc) Process(_ context.Context, _ *models.Observation) error {
	atomic.AddInt32(&p.calls, 1)
	if p.fail {
		return fmt.Errorf("downstream unavailable")
	}
	return nil
}

func obs(keyword string) *models.Observation {
	return &models.Observation{Keyword: keyword, Value: 42, Timestamp: time.Now().Unix(), Source: "test"}
}

func TestPipelineRejectsInvalid(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, testMetrics{})

	cases := []*models.Observation{
		nil,
		{Keyword: "", Value: 1, Timestamp: 100},
		{Keyword: "kw", Value: 1, Timestamp: 0},
		{Keyword: "kw", Value: -1, Timestamp: 100},
	}
	for i, o := range cases {
		if err := p.Process(context.Background(), o); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if atomic.LoadInt32(&proc.calls) != 0 {
		t.Fatalf("invalid observations must not reach the processor")
	}
}

func TestPipelineThrottlesPerKeyword(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, testMetrics{}, WithMaxRPS(1))

	if err := p.Process(context.Background(), obs("hot keyword")); err != nil {
		t.Fatalf("first send: %v", err)
	}
	// immediate second send for the same keyword is dropped, not errored
	if err := p.Process(context.Background(), obs("hot keyword")); err != nil {
		t.Fatalf("throttled send must not error: %v", err)
	}
	// a different keyword has its own budget
	if err := p.Process(context.Background(), obs("other keyword")); err != nil {
		t.Fatalf("other keyword: %v", err)
	}
	if got := atomic.LoadInt32(&proc.calls); got != 2 {
		t.Fatalf("expected 2 processed, got %d", got)
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &countingProc{fail: true}
	p := NewIngestPipeline(proc, testMetrics{}, WithBufferSize(4))

	if err := p.Process(context.Background(), obs("kw")); err == nil {
		t.Fatalf("expected downstream error")
	}
	if len(p.bufCh) != 1 {
		t.Fatalf("expected buffered observation, have %d", len(p.bufCh))
	}
}

func TestPipelineTransformApplied(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, testMetrics{}, WithTransform(func(o *models.Observation) *models.Observation {
		o.Source = "normalized"
		return o
	}))

	o := obs("kw")
	if err := p.Process(context.Background(), o); err != nil {
		t.Fatalf("process: %v", err)
	}
	if o.Source != "normalized" {
		t.Fatalf("transform not applied, source=%q", o.Source)
	}
}

func TestPipelineTransformCannotInvalidate(t *testing.T) {
	proc := &countingProc{}
	p := NewIngestPipeline(proc, testMetrics{}, WithTransform(func(o *models.Observation) *models.Observation {
		o.Keyword = ""
		return o
	}))

	if err := p.Process(context.Background(), obs("kw")); err == nil {
		t.Fatalf("transform producing an invalid observation must be rejected")
	}
	if atomic.LoadInt32(&proc.calls) != 0 {
		t.Fatalf("invalid transformed observation must not reach the processor")
	}
}

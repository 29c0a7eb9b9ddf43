package api

import (
	"encoding/json"
	"fmt"
	"time"

	models "MarketPulse/internal/domain/models"
	icache "MarketPulse/internal/service/cache"
	"MarketPulse/internal/service/metrics"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/internal/usecase"
	pkgcache "MarketPulse/pkg/cache"
	xhttp "MarketPulse/pkg/http"
	xlogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/queue"
	"MarketPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// PulseHandler implements Echo-based HTTP handlers for pulse evaluation.
type PulseHandler struct {
	logger  *xlogger.Logger
	agg     *usecase.PulseAggregator
	scan    *usecase.PulseScanUseCase
	history *usecase.HistoryUseCase
	cache   icache.BytesCache
	locker  pkgcache.Service
	queue   queue.QueueService
	rl      *ratelimit.Limiter
}

func NewPulseHandler(logger *xlogger.Logger, agg *usecase.PulseAggregator, scan *usecase.PulseScanUseCase, history *usecase.HistoryUseCase) *PulseHandler {
	metrics.Register()
	return &PulseHandler{logger: logger, agg: agg, scan: scan, history: history, rl: ratelimit.New()}
}

// SetCache enables result caching of evaluated pulses.
func (h *PulseHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLocker enables cross-instance single-flight on cache misses.
func (h *PulseHandler) SetLocker(s pkgcache.Service) { h.locker = s }

// SetQueue enables async scans via the background job queue.
func (h *PulseHandler) SetQueue(q queue.QueueService) { h.queue = q }

func (h *PulseHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/pulse", h.Pulse)
	g.POST("/pulse/scan", h.Scan)
	g.GET("/pulse/history", h.History)
}

func (h *PulseHandler) Pulse(c echo.Context) error {
	start := time.Now()
	endpoint := "pulse"
	defer func() { metrics.PulseLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.PulseRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":pulse", 5, 2) {
		h.logger.Warn("pulse rate_limited", xlogger.String("remote", c.RealIP()))
		return echo.NewHTTPError(429, "rate limited")
	}

	ctx := c.Request().Context()
	cacheKey := fmt.Sprintf("pulse:%s:%d", req.Keyword, req.Days)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.logger.Warn("pulse cache_get_error", xlogger.Error(err))
		} else if ok {
			metrics.CacheHits.WithLabelValues(endpoint).Inc()
			return c.JSONBlob(200, b)
		}

		// Single-flight across instances: only one evaluator per keyword; the
		// rest wait briefly and re-read the cache.
		if h.locker != nil {
			lockKey := "lock:" + cacheKey
			if ok, err := h.locker.TryLock(ctx, lockKey, 5*time.Second); err == nil && ok {
				defer func() { _ = h.locker.Unlock(ctx, lockKey) }()
			} else if err == nil && !ok {
				time.Sleep(150 * time.Millisecond)
				if b, ok, err := h.cache.GetBytes(cacheKey); err == nil && ok {
					metrics.CacheHits.WithLabelValues(endpoint).Inc()
					return c.JSONBlob(200, b)
				}
			}
		}
	}

	res, err := h.agg.Evaluate(ctx, req.Keyword, req.Days)
	if err != nil {
		metrics.PulseErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("pulse usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if h.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := h.cache.SetBytes(cacheKey, b, 30*time.Second); err != nil {
				h.logger.Warn("pulse cache_set_error", xlogger.Error(err))
			}
		}
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

func (h *PulseHandler) Scan(c echo.Context) error {
	start := time.Now()
	endpoint := "scan"
	defer func() { metrics.PulseLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":scan", 2, 0.5) {
		h.logger.Warn("scan rate_limited", xlogger.String("remote", c.RealIP()))
		return echo.NewHTTPError(429, "rate limited")
	}

	if req.Async && h.queue != nil {
		err := h.queue.PublishMessage(c.Request().Context(), usecase.ScanJobType, usecase.ScanJobPayload{
			Keywords:    req.Keywords,
			Days:        req.Days,
			Concurrency: req.Concurrency,
		})
		if err != nil {
			metrics.PulseErrors.WithLabelValues(endpoint).Inc()
			h.logger.Error("scan enqueue error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.DataResponse(c, 202, map[string]interface{}{"queued": len(req.Keywords)})
	}

	results, err := h.scan.Scan(c.Request().Context(), usecase.ScanParams{
		Keywords:    req.Keywords,
		Days:        req.Days,
		Concurrency: req.Concurrency,
	})
	if err != nil {
		metrics.PulseErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, results, int64(len(results)))
}

func (h *PulseHandler) History(c echo.Context) error {
	start := time.Now()
	endpoint := "history"
	defer func() { metrics.PulseLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if h.history == nil {
		return echo.NewHTTPError(503, "history store not configured")
	}
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	now := time.Now().UTC()
	from := util.ParseTimeDefault(req.From, now.AddDate(0, 0, -30))
	to := util.ParseTimeDefault(req.To, now)

	res, err := h.history.GetHistory(c.Request().Context(), usecase.GetHistoryParams{
		Keyword: req.Keyword,
		From:    from,
		To:      to,
		Limit:   req.Limit,
	})
	if err != nil {
		metrics.PulseErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

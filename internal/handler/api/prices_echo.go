package api

import (
	"time"

	"FarmPulse/internal/catalog"
	models "FarmPulse/internal/domain/models"
	domrepo "FarmPulse/internal/domain/repository"
	"FarmPulse/internal/scheduler"
	"FarmPulse/internal/service/ratelimit"
	"FarmPulse/internal/usecase"
	xhttp "FarmPulse/pkg/http"
	xlogger "FarmPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PricesEchoHandler exposes the price, forecast and operations API.
type PricesEchoHandler struct {
	logger     *xlogger.Logger
	collector  *usecase.Collector
	forecaster *usecase.Forecaster
	store      domrepo.PriceStore
	runLog     domrepo.RunLog
	cat        *catalog.Catalog
	sched      *scheduler.Scheduler
	limiter    *ratelimit.Limiter
}

func NewPricesEchoHandler(
	logger *xlogger.Logger,
	collector *usecase.Collector,
	forecaster *usecase.Forecaster,
	store domrepo.PriceStore,
	runLog domrepo.RunLog,
	cat *catalog.Catalog,
	sched *scheduler.Scheduler,
	limiter *ratelimit.Limiter,
) *PricesEchoHandler {
	return &PricesEchoHandler{
		logger:     logger,
		collector:  collector,
		forecaster: forecaster,
		store:      store,
		runLog:     runLog,
		cat:        cat,
		sched:      sched,
		limiter:    limiter,
	}
}

func (h *PricesEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.GET("/prices/history", h.History)
	g.GET("/forecast", h.Forecast)
	g.GET("/recommendation", h.Recommendation)
	g.GET("/regions", h.Regions)
	g.GET("/markets", h.Markets)
	g.GET("/commodities", h.Commodities)
	g.GET("/runs", h.Runs)
	g.POST("/collect", h.Collect, h.throttle)
	g.POST("/jobs/run", h.RunJob, h.throttle)
}

// throttle rate-limits manual triggers per client IP. Scheduled runs are
// unaffected.
func (h *PricesEchoHandler) throttle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many manual triggers, retry later"))
		}
		return next(c)
	}
}

type historyPoint struct {
	Price      float64   `json:"price"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (h *PricesEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	points, err := h.store.History(c.Request().Context(), req.Commodity, req.Market, req.Limit, req.SinceDays)
	if err != nil {
		h.logger.Error("history query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	rows := make([]historyPoint, len(points))
	for i, p := range points {
		rows[i] = historyPoint{Price: p.Price, RecordedAt: p.RecordedAt}
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

type forecastPoint struct {
	Date           string            `json:"date"`
	PredictedPrice float64           `json:"predicted_price"`
	ChangePercent  float64           `json:"change_percent"`
	Trend          models.Trend      `json:"trend"`
	Model          string            `json:"model"`
	Confidence     models.Confidence `json:"confidence"`
}

type forecastResponse struct {
	Commodity string          `json:"commodity"`
	Market    string          `json:"market"`
	Days      int             `json:"days"`
	Forecast  []forecastPoint `json:"forecast"`
}

func (h *PricesEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	points, err := h.forecaster.Forecast(c.Request().Context(), req.Commodity, req.Market, req.Days)
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	resp := forecastResponse{
		Commodity: req.Commodity,
		Market:    req.Market,
		Days:      req.Days,
		Forecast:  make([]forecastPoint, len(points)),
	}
	for i, p := range points {
		resp.Forecast[i] = forecastPoint{
			Date:           p.Date.Format("2006-01-02"),
			PredictedPrice: p.PredictedPrice,
			ChangePercent:  p.ChangePercent,
			Trend:          p.Trend,
			Model:          p.Model,
			Confidence:     p.Confidence,
		}
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, resp)
}

type recommendationResponse struct {
	Commodity  string            `json:"commodity"`
	Market     string            `json:"market"`
	Action     string            `json:"action"`
	Timing     string            `json:"timing"`
	Reason     string            `json:"reason"`
	Confidence models.Confidence `json:"confidence"`
}

func (h *PricesEchoHandler) Recommendation(c echo.Context) error {
	req := &models.RecommendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec, err := h.forecaster.Recommend(c.Request().Context(), req.Commodity, req.Market, 7)
	if err != nil {
		h.logger.Error("recommendation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, recommendationResponse{
		Commodity:  req.Commodity,
		Market:     req.Market,
		Action:     rec.Action,
		Timing:     rec.Timing,
		Reason:     rec.Reason,
		Confidence: rec.Confidence,
	})
}

func (h *PricesEchoHandler) Regions(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"regions": h.cat.Regions(),
	})
}

type marketEntry struct {
	Name       string   `json:"name"`
	Region     string   `json:"region"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	MarketDays []string `json:"market_days"`
}

func (h *PricesEchoHandler) Markets(c echo.Context) error {
	req := &models.MarketsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entries := h.cat.MarketsByRegion(req.Region)
	if len(entries) == 0 {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown region %q", req.Region))
	}

	rows := make([]marketEntry, len(entries))
	for i, e := range entries {
		days := make([]string, len(e.MarketDays))
		for j, d := range e.MarketDays {
			days[j] = d.String()
		}
		rows[i] = marketEntry{Name: e.Name, Region: e.Region, Lat: e.Lat, Lon: e.Lon, MarketDays: days}
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *PricesEchoHandler) Commodities(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"commodities": h.cat.Commodities(),
	})
}

type runEntry struct {
	SourceName       string    `json:"source_name"`
	Operation        string    `json:"operation"`
	RecordsCollected int       `json:"records_collected"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	DurationSeconds  float64   `json:"duration_seconds"`
	CollectedAt      time.Time `json:"collected_at"`
}

func (h *PricesEchoHandler) Runs(c echo.Context) error {
	req := &models.RunsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	runs, err := h.runLog.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("runs query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	rows := make([]runEntry, len(runs))
	for i, r := range runs {
		rows[i] = runEntry{
			SourceName:       r.SourceName,
			Operation:        string(r.Operation),
			RecordsCollected: r.RecordsCollected,
			Status:           string(r.Status),
			ErrorMessage:     r.ErrorMessage,
			DurationSeconds:  r.DurationSeconds,
			CollectedAt:      r.CollectedAt,
		}
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Collect triggers a manual collection run and returns its audit record.
func (h *PricesEchoHandler) Collect(c echo.Context) error {
	run := h.collector.RunCollection(c.Request().Context(), models.OpManual)
	return xhttp.SuccessResponse(c, runEntry{
		SourceName:       run.SourceName,
		Operation:        string(run.Operation),
		RecordsCollected: run.RecordsCollected,
		Status:           string(run.Status),
		ErrorMessage:     run.ErrorMessage,
		DurationSeconds:  run.DurationSeconds,
		CollectedAt:      run.CollectedAt,
	})
}

// RunJob triggers one scheduled job by name without touching its schedule.
func (h *PricesEchoHandler) RunJob(c echo.Context) error {
	req := &models.RunJobRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.sched.RunNow(c.Request().Context(), req.Name); err != nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown job %q", req.Name))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"job":  req.Name,
		"jobs": h.sched.Jobs(),
	})
}

func (h *PricesEchoHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("storage unavailable"))
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

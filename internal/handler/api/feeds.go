package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"PulseBoard/internal/domain/models"
	"PulseBoard/internal/usecase"
	pkghttp "PulseBoard/pkg/http"
	"PulseBoard/pkg/logger"
	"PulseBoard/pkg/util"
)

// HealthChecker reports durable storage reachability for the health
// endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// FeedsHandler serves the dashboard read side and the settings write paths.
type FeedsHandler struct {
	feeds  *usecase.Feeds
	health HealthChecker
	log    *logger.Logger
}

func NewFeedsHandler(feeds *usecase.Feeds, health HealthChecker, log *logger.Logger) *FeedsHandler {
	return &FeedsHandler{feeds: feeds, health: health, log: log}
}

func (h *FeedsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.healthCheck)

	g := e.Group("/api")
	g.GET("/dashboard", h.dashboard)
	g.GET("/alerts", h.alerts)
	g.GET("/setups", h.setups)
	g.GET("/stats", h.stats)
	g.GET("/alert-settings", h.settings)
	g.POST("/alert-settings", h.updateSetting)
	g.POST("/watchlist/add", h.watchlistAdd)
	g.POST("/watchlist/remove", h.watchlistRemove)
}

func (h *FeedsHandler) healthCheck(c echo.Context) error {
	status := map[string]string{"status": "ok", "storage": "ok"}
	code := http.StatusOK
	if err := h.health.Health(c.Request().Context()); err != nil {
		h.log.Warn("storage health check failed", logger.Error(err))
		status["status"] = "degraded"
		status["storage"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	return pkghttp.DataResponse(c, code, status)
}

func (h *FeedsHandler) dashboard(c echo.Context) error {
	snap, err := h.feeds.Dashboard(c.Request().Context())
	if err != nil {
		h.log.Error("dashboard snapshot failed", logger.Error(err))
		return pkghttp.InternalServerErrorResponse(c)
	}
	return pkghttp.SuccessResponse(c, snap)
}

func (h *FeedsHandler) alerts(c echo.Context) error {
	var q models.AlertsQuery
	if errs := pkghttp.ReadAndValidateRequest(c, &q); errs != nil {
		return pkghttp.BadRequestResponse(c, errs)
	}
	alerts := h.feeds.Alerts(q)
	return pkghttp.SuccessResponse(c, pkghttp.ListDataResponse{
		Rows:  alerts,
		Total: int64(len(alerts)),
	})
}

func (h *FeedsHandler) setups(c echo.Context) error {
	var q models.SetupsQuery
	if errs := pkghttp.ReadAndValidateRequest(c, &q); errs != nil {
		return pkghttp.BadRequestResponse(c, errs)
	}
	return pkghttp.SuccessResponse(c, h.feeds.Setups(q.Status))
}

func (h *FeedsHandler) stats(c echo.Context) error {
	return pkghttp.SuccessResponse(c, h.feeds.Stats())
}

func (h *FeedsHandler) settings(c echo.Context) error {
	settings := h.feeds.Settings()
	return pkghttp.SuccessResponse(c, pkghttp.ListDataResponse{
		Rows:  settings,
		Total: int64(len(settings)),
	})
}

func (h *FeedsHandler) updateSetting(c echo.Context) error {
	var req models.AlertSettingUpdate
	if errs := pkghttp.ReadAndValidateRequest(c, &req); errs != nil {
		return pkghttp.BadRequestResponse(c, errs)
	}
	setting := h.feeds.UpdateSetting(c.Request().Context(), &req)
	return pkghttp.SuccessResponse(c, setting)
}

func (h *FeedsHandler) watchlistAdd(c echo.Context) error {
	return h.watchlist(c, true)
}

func (h *FeedsHandler) watchlistRemove(c echo.Context) error {
	return h.watchlist(c, false)
}

func (h *FeedsHandler) watchlist(c echo.Context, watch bool) error {
	var req models.WatchlistRequest
	if errs := pkghttp.ReadAndValidateRequest(c, &req); errs != nil {
		return pkghttp.BadRequestResponse(c, errs)
	}
	symbol := util.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("symbol"))
	}
	rec := h.feeds.SetWatchlist(c.Request().Context(), symbol, watch)
	return pkghttp.SuccessResponse(c, rec)
}

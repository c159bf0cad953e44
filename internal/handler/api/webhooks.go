package api

import (
	"github.com/labstack/echo/v4"

	"PulseBoard/internal/domain/models"
	"PulseBoard/internal/usecase"
	pkghttp "PulseBoard/pkg/http"
	"PulseBoard/pkg/logger"
	"PulseBoard/pkg/util"
)

// WebhookHandler receives indicator updates from the chart scripts. A
// webhook always answers quickly: merge problems are logged and absorbed so
// the sender never retries into a storm.
type WebhookHandler struct {
	ingestor *usecase.Ingestor
	log      *logger.Logger
}

func NewWebhookHandler(ingestor *usecase.Ingestor, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor, log: log}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/webhook")
	g.POST("/structure", h.structure)
	g.POST("/momentum", h.momentum)
	g.POST("/zones", h.zones)
	g.POST("/multialgo", h.multiAlgo)
}

func (h *WebhookHandler) structure(c echo.Context) error {
	var p models.StructurePayload
	if err := c.Bind(&p); err != nil {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("payload"))
	}
	symbol, ok := webhookSymbol(p.Symbol, p.Ticker)
	if !ok {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("symbol"))
	}
	h.ingestor.IngestStructure(c.Request().Context(), symbol, &p)
	return pkghttp.SuccessResponse(c, ackResponse(symbol))
}

func (h *WebhookHandler) momentum(c echo.Context) error {
	var p models.MomentumPayload
	if err := c.Bind(&p); err != nil {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("payload"))
	}
	symbol, ok := webhookSymbol(p.Symbol, p.Ticker)
	if !ok {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("symbol"))
	}
	h.ingestor.IngestMomentum(c.Request().Context(), symbol, &p)
	return pkghttp.SuccessResponse(c, ackResponse(symbol))
}

func (h *WebhookHandler) zones(c echo.Context) error {
	var p models.ZonePayload
	if err := c.Bind(&p); err != nil {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("payload"))
	}
	symbol, ok := webhookSymbol(p.Symbol, p.Ticker)
	if !ok {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("symbol"))
	}
	h.ingestor.IngestZones(c.Request().Context(), symbol, &p)
	return pkghttp.SuccessResponse(c, ackResponse(symbol))
}

func (h *WebhookHandler) multiAlgo(c echo.Context) error {
	var p models.AlgoPayload
	if err := c.Bind(&p); err != nil {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("payload"))
	}
	symbol, ok := webhookSymbol(p.Symbol, p.Ticker)
	if !ok {
		return pkghttp.BadRequestResponse(c, pkghttp.BadRequestError("symbol"))
	}
	h.ingestor.IngestAlgo(c.Request().Context(), symbol, &p)
	return pkghttp.SuccessResponse(c, ackResponse(symbol))
}

// webhookSymbol picks the symbol field with the ticker as fallback and
// strips any exchange prefix.
func webhookSymbol(symbol, ticker string) (string, bool) {
	s := util.NormalizeSymbol(symbol)
	if s == "" {
		s = util.NormalizeSymbol(ticker)
	}
	return s, s != ""
}

func ackResponse(symbol string) map[string]string {
	return map[string]string{"symbol": symbol, "result": "accepted"}
}

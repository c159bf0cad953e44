package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/usecase"
	"PulseBoard/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordUpdate(string)                 {}
func (nopMetrics) RecordNoOp(string)                   {}
func (nopMetrics) SetDirtyDepth(string, int)           {}
func (nopMetrics) RecordSyncBatch(string, float64, int) {}
func (nopMetrics) RecordAlert(string)                  {}
func (nopMetrics) RecordSetup(string)                  {}

func newTestApp(t *testing.T) (*echo.Echo, *cache.Store) {
	t.Helper()
	store := cache.NewStore()
	dirty := cache.NewDirtyTracker()
	alerts := cache.NewAlertLog(500)
	detector := usecase.NewDetector(store, time.Hour)
	ingestor := usecase.NewIngestor(store, dirty, alerts, detector, nil, nopMetrics{}, logger.Nop(), time.Hour)

	e := echo.New()
	NewWebhookHandler(ingestor, logger.Nop()).RegisterRoutes(e)
	return e, store
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestWebhookZonesStripsExchangePrefix(t *testing.T) {
	e, store := newTestApp(t)

	rec := postJSON(e, "/webhook/zones", `{"ticker":"BINANCE:btcusdt","price":65000,"in_demand_zone":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	zone := store.Zones("BTCUSDT")
	if zone == nil || !zone.InDemand.Value {
		t.Fatalf("zone record not stored under normalized symbol: %+v", zone)
	}
}

func TestWebhookRejectsMissingSymbol(t *testing.T) {
	e, store := newTestApp(t)

	rec := postJSON(e, "/webhook/structure", `{"price":65000}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(store.Symbols()) != 0 {
		t.Fatalf("rejected webhook must not touch the cache")
	}
}

func TestWebhookStructureBulkPayload(t *testing.T) {
	e, store := newTestApp(t)

	body := `{"symbol":"ETHUSDT","price":3200,"timeframes":{"4h":{"direction":"BULL","signal":"MSS"},"1d":"bearish"}}`
	rec := postJSON(e, "/webhook/structure", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	structure := store.Structure("ETHUSDT")
	if structure == nil || len(structure.Timeframes) != 2 {
		t.Fatalf("structure record wrong: %+v", structure)
	}
	if structure.BullCount != 1 || structure.BearCount != 1 {
		t.Fatalf("aggregates wrong: %+v", structure)
	}
}

func TestWebhookMultiAlgoLegacyBools(t *testing.T) {
	e, store := newTestApp(t)

	rec := postJSON(e, "/webhook/multialgo", `{"symbol":"BTCUSDT","timeframe":"4H","algo1_buy":1,"dots_green":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	algo := store.Algo("BTCUSDT")
	if algo == nil || !algo.Timeframes["4h"].Algo1Buy.Value || !algo.Timeframes["4h"].DotsGreen.Value {
		t.Fatalf("algo record wrong: %+v", algo)
	}
}

func TestWebhookUnusablePayloadStillAccepted(t *testing.T) {
	e, store := newTestApp(t)

	// A payload with a symbol but nothing mergeable is acknowledged and
	// dropped, never bounced back to the sender.
	rec := postJSON(e, "/webhook/momentum", `{"symbol":"BTCUSDT"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if store.Momentum("BTCUSDT") != nil {
		t.Fatalf("unusable payload must not create a record")
	}
}

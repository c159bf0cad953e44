package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
	"PulseBoard/internal/usecase"
	"PulseBoard/pkg/logger"
)

type fakeHealth struct{ err error }

func (f fakeHealth) Health(context.Context) error { return f.err }

type feedsTestApp struct {
	e      *echo.Echo
	store  *cache.Store
	alerts *cache.AlertLog
}

func newFeedsTestApp(t *testing.T, health error) *feedsTestApp {
	t.Helper()
	app := &feedsTestApp{
		store:  cache.NewStore(),
		alerts: cache.NewAlertLog(500),
	}
	feeds := usecase.NewFeeds(app.store, cache.NewDirtyTracker(), app.alerts, nil, time.Second, logger.Nop(), time.Hour)

	app.e = echo.New()
	NewFeedsHandler(feeds, fakeHealth{err: health}, logger.Nop()).RegisterRoutes(app.e)
	return app
}

func (app *feedsTestApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	app := newFeedsTestApp(t, nil)
	if rec := app.get("/health"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	down := newFeedsTestApp(t, errors.New("storage down"))
	if rec := down.get("/health"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when storage is down, got %d", rec.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	app := newFeedsTestApp(t, nil)
	app.store.PutSymbol(&models.SymbolRecord{Symbol: "BTCUSDT", Price: 65000, HasData: true})

	rec := app.get("/api/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data usecase.DashboardSnapshot `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Rows) != 1 || resp.Data.Rows[0].Symbol != "BTCUSDT" {
		t.Fatalf("unexpected dashboard payload: %+v", resp.Data)
	}
}

func TestAlertsEndpointValidatesLimit(t *testing.T) {
	app := newFeedsTestApp(t, nil)
	if rec := app.get("/api/alerts?limit=10000"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized limit, got %d", rec.Code)
	}
	if rec := app.get("/api/alerts?category=ZONE"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSetupsEndpointValidatesStatus(t *testing.T) {
	app := newFeedsTestApp(t, nil)
	if rec := app.get("/api/setups?status=BOGUS"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
	if rec := app.get("/api/setups"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with default status, got %d", rec.Code)
	}
}

func TestWatchlistEndpoints(t *testing.T) {
	app := newFeedsTestApp(t, nil)

	rec := postJSON(app.e, "/api/watchlist/add", `{"symbol":"BINANCE:BTCUSDT"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sym := app.store.Symbol("BTCUSDT")
	if sym == nil || !sym.InWatchlist {
		t.Fatalf("watchlist add must set the flag on the normalized symbol")
	}

	rec = postJSON(app.e, "/api/watchlist/remove", `{"symbol":"BTCUSDT"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if app.store.Symbol("BTCUSDT").InWatchlist {
		t.Fatalf("watchlist remove must clear the flag")
	}

	if rec := postJSON(app.e, "/api/watchlist/add", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing symbol, got %d", rec.Code)
	}
}

func TestAlertSettingsEndpoints(t *testing.T) {
	app := newFeedsTestApp(t, nil)

	rec := postJSON(app.e, "/api/alert-settings", `{"alert_type":"DOTS_GREEN","show_in_panel":false,"importance":"high"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	st, ok := app.store.Setting("DOTS_GREEN")
	if !ok || st.ShowInPanel || st.Importance != models.ImportanceHigh {
		t.Fatalf("setting not applied: %+v", st)
	}

	if rec := postJSON(app.e, "/api/alert-settings", `{"alert_type":"DOTS_GREEN","importance":"loud"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid importance, got %d", rec.Code)
	}

	if rec := app.get("/api/alert-settings"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	app := newFeedsTestApp(t, nil)
	app.store.PutSymbol(&models.SymbolRecord{Symbol: "BTCUSDT", HasData: true})
	app.alerts.Append(&models.Alert{ID: 1, Timestamp: time.Now().UnixMilli()})

	rec := app.get("/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data usecase.Stats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Symbols != 1 || resp.Data.AlertsLast24h != 1 {
		t.Fatalf("unexpected stats: %+v", resp.Data)
	}
}

package usecase

import (
	"context"
	"sort"
	"time"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
	respcache "PulseBoard/pkg/cache"
	"PulseBoard/pkg/logger"
)

const dashboardCacheKey = "dashboard:snapshot"

// DashboardRow is the combined per-symbol view served to the dashboard.
// Sticky flags are rendered as their effective value at snapshot time.
type DashboardRow struct {
	Symbol      string  `json:"symbol"`
	Exchange    string  `json:"exchange,omitempty"`
	Price       float64 `json:"price"`
	LastUpdated int64   `json:"last_updated"`
	InWatchlist bool    `json:"in_watchlist"`

	Bias      models.Direction `json:"bias,omitempty"`
	BullCount int              `json:"bull_count"`
	BearCount int              `json:"bear_count"`
	Strength  int              `json:"strength,omitempty"`

	Trend        string `json:"trend,omitempty"`
	Status       string `json:"status,omitempty"`
	CautionCount int    `json:"caution_count"`
	Distribution bool   `json:"distribution"`
	Accumulation bool   `json:"accumulation"`

	InDemand         bool     `json:"in_demand"`
	InSupply         bool     `json:"in_supply"`
	DemandTimeframes []string `json:"demand_timeframes,omitempty"`
	SupplyTimeframes []string `json:"supply_timeframes,omitempty"`

	HasDots    bool `json:"has_dots"`
	HasSquares bool `json:"has_squares"`

	SetupDirection models.Direction `json:"setup_direction,omitempty"`
	SetupScore     int              `json:"setup_score,omitempty"`
}

// DashboardSnapshot is the full dashboard response.
type DashboardSnapshot struct {
	Rows        []DashboardRow `json:"rows"`
	GeneratedAt int64          `json:"generated_at"`
}

// SetupsView groups setups by direction, strongest first.
type SetupsView struct {
	Longs  []*models.TradeSetup `json:"longs"`
	Shorts []*models.TradeSetup `json:"shorts"`
}

// Stats is the operational summary endpoint payload.
type Stats struct {
	Symbols         int `json:"symbols"`
	SymbolsWithData int `json:"symbols_with_data"`
	Watchlist       int `json:"watchlist"`
	ActiveSetups    int `json:"active_setups"`
	AlertsLast24h   int `json:"alerts_last_24h"`
	AlertsHeld      int `json:"alerts_held"`
	AlertsUnsynced  int `json:"alerts_unsynced"`
}

// Feeds serves the read side from the in-memory cache. The dashboard
// snapshot is briefly memoized in the response cache since it joins every
// record kind per symbol.
type Feeds struct {
	store  *cache.Store
	dirty  *cache.DirtyTracker
	alerts *cache.AlertLog

	snapshots   respcache.Service
	snapshotTTL time.Duration

	log    *logger.Logger
	window time.Duration
	now    func() int64
}

func NewFeeds(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	snapshots respcache.Service,
	snapshotTTL time.Duration,
	log *logger.Logger,
	window time.Duration,
) *Feeds {
	return &Feeds{
		store:       store,
		dirty:       dirty,
		alerts:      alerts,
		snapshots:   snapshots,
		snapshotTTL: snapshotTTL,
		log:         log,
		window:      window,
		now:         func() int64 { return time.Now().UnixMilli() },
	}
}

// Dashboard returns the combined per-symbol view, watchlist entries first.
func (f *Feeds) Dashboard(ctx context.Context) (*DashboardSnapshot, error) {
	if f.snapshots != nil {
		var cached DashboardSnapshot
		if err := f.snapshots.Get(ctx, dashboardCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	snap := f.buildDashboard()

	if f.snapshots != nil {
		if err := f.snapshots.Set(ctx, dashboardCacheKey, snap, f.snapshotTTL); err != nil {
			f.log.Warn("dashboard snapshot cache write failed", logger.Error(err))
		}
	}
	return snap, nil
}

func (f *Feeds) buildDashboard() *DashboardSnapshot {
	nowMs := f.now()
	symbols := f.store.Symbols()
	rows := make([]DashboardRow, 0, len(symbols))

	for _, sym := range symbols {
		row := DashboardRow{
			Symbol:      sym.Symbol,
			Exchange:    sym.Exchange,
			Price:       sym.Price,
			LastUpdated: sym.LastUpdated,
			InWatchlist: sym.InWatchlist,
		}

		if rec := f.store.Structure(sym.Symbol); rec != nil {
			row.Bias = rec.Bias
			row.BullCount = rec.BullCount
			row.BearCount = rec.BearCount
			row.Strength = rec.Strength
		}
		if rec := f.store.Momentum(sym.Symbol); rec != nil {
			row.Trend = rec.Trend
			row.Status = rec.Status
			row.CautionCount = rec.CautionCount
			row.Distribution = rec.Distribution.Active(nowMs, f.window)
			row.Accumulation = rec.Accumulation.Active(nowMs, f.window)
		}
		if rec := f.store.Zones(sym.Symbol); rec != nil {
			row.InDemand = rec.InDemand.Active(nowMs, f.window)
			row.InSupply = rec.InSupply.Active(nowMs, f.window)
			row.DemandTimeframes = activeFlagTimeframes(rec.Demand, nowMs, f.window)
			row.SupplyTimeframes = activeFlagTimeframes(rec.Supply, nowMs, f.window)
		}
		if rec := f.store.Algo(sym.Symbol); rec != nil {
			for _, sig := range rec.Timeframes {
				if sig.DotsGreen.Active(nowMs, f.window) || sig.DotsRed.Active(nowMs, f.window) {
					row.HasDots = true
				}
				if sig.SquaresGreen.Active(nowMs, f.window) || sig.SquaresRed.Active(nowMs, f.window) {
					row.HasSquares = true
				}
			}
		}
		for _, setup := range f.store.Setups() {
			if setup.Symbol == sym.Symbol && setup.Status == models.SetupStatusActive {
				if setup.ConfluenceScore > row.SetupScore {
					row.SetupDirection = setup.Direction
					row.SetupScore = setup.ConfluenceScore
				}
			}
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(a, b int) bool {
		if rows[a].InWatchlist != rows[b].InWatchlist {
			return rows[a].InWatchlist
		}
		return rows[a].Symbol < rows[b].Symbol
	})

	return &DashboardSnapshot{Rows: rows, GeneratedAt: nowMs}
}

func activeFlagTimeframes(flags map[string]models.StickyFlag, nowMs int64, window time.Duration) []string {
	var out []string
	for _, tf := range models.Timeframes {
		if flags[tf].Active(nowMs, window) {
			out = append(out, tf)
		}
	}
	return out
}

// Alerts returns panel-visible alerts, newest first, optionally filtered by
// category.
func (f *Feeds) Alerts(q models.AlertsQuery) []*models.Alert {
	out := make([]*models.Alert, 0, q.Limit)
	for _, a := range f.alerts.All() {
		if !a.Visible {
			continue
		}
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		out = append(out, a)
		if len(out) == q.Limit {
			break
		}
	}
	return out
}

// Setups returns setups with the given status, split by direction and
// ordered by confluence score, then recency.
func (f *Feeds) Setups(status string) *SetupsView {
	view := &SetupsView{}
	for _, s := range f.store.Setups() {
		if s.Status != status {
			continue
		}
		if s.Direction == models.DirectionBear {
			view.Shorts = append(view.Shorts, s)
		} else {
			view.Longs = append(view.Longs, s)
		}
	}
	sortSetups(view.Longs)
	sortSetups(view.Shorts)
	return view
}

func sortSetups(setups []*models.TradeSetup) {
	sort.Slice(setups, func(a, b int) bool {
		if setups[a].ConfluenceScore != setups[b].ConfluenceScore {
			return setups[a].ConfluenceScore > setups[b].ConfluenceScore
		}
		return setups[a].DetectedAt > setups[b].DetectedAt
	})
}

// Settings returns every alert setting ordered by alert type.
func (f *Feeds) Settings() []models.AlertSetting {
	out := f.store.Settings()
	sort.Slice(out, func(a, b int) bool { return out[a].AlertType < out[b].AlertType })
	return out
}

// UpdateSetting stores a changed alert setting and schedules it for
// persistence.
func (f *Feeds) UpdateSetting(ctx context.Context, upd *models.AlertSettingUpdate) models.AlertSetting {
	setting := models.AlertSetting{
		AlertType:   upd.AlertType,
		ShowInPanel: upd.ShowInPanel,
		Importance:  upd.Importance,
	}
	f.store.PutSetting(setting)
	f.dirty.MarkDirty(models.KindSettings, setting.AlertType)
	f.invalidateDashboard(ctx)
	return setting
}

// SetWatchlist adds or removes a symbol from the watchlist. Adding an
// unknown symbol creates its record so it shows up once data arrives.
func (f *Feeds) SetWatchlist(ctx context.Context, symbol string, watch bool) *models.SymbolRecord {
	rec := &models.SymbolRecord{Symbol: symbol}
	if prev := f.store.Symbol(symbol); prev != nil {
		*rec = *prev
	}
	rec.InWatchlist = watch
	if rec.LastUpdated == 0 {
		rec.LastUpdated = f.now()
	}
	f.store.PutSymbol(rec)
	f.dirty.MarkDirty(models.KindSymbols, symbol)
	f.invalidateDashboard(ctx)
	return rec
}

func (f *Feeds) invalidateDashboard(ctx context.Context) {
	if f.snapshots == nil {
		return
	}
	if err := f.snapshots.Delete(ctx, dashboardCacheKey); err != nil {
		f.log.Warn("dashboard snapshot invalidation failed", logger.Error(err))
	}
}

// Stats summarizes cache contents for the stats endpoint.
func (f *Feeds) Stats() *Stats {
	nowMs := f.now()
	st := &Stats{AlertsHeld: f.alerts.Len(), AlertsUnsynced: f.alerts.UnsyncedCount()}

	for _, sym := range f.store.Symbols() {
		st.Symbols++
		if sym.HasData {
			st.SymbolsWithData++
		}
		if sym.InWatchlist {
			st.Watchlist++
		}
	}
	for _, s := range f.store.Setups() {
		if s.Status == models.SetupStatusActive {
			st.ActiveSetups++
		}
	}
	dayAgo := nowMs - 24*time.Hour.Milliseconds()
	for _, a := range f.alerts.All() {
		if a.Timestamp >= dayAgo {
			st.AlertsLast24h++
		}
	}
	return st
}

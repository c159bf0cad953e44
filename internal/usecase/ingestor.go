package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
	"PulseBoard/internal/domain/repository"
	"PulseBoard/pkg/logger"
)

// Ingestor applies webhook updates to the cache. A single mutex serializes
// every read-modify-write merge, so records never see interleaved partial
// updates; concurrent dashboard reads are unaffected because merged records
// are immutable once stored.
type Ingestor struct {
	mu sync.Mutex

	store    *cache.Store
	dirty    *cache.DirtyTracker
	alerts   *cache.AlertLog
	detector *Detector

	publisher repository.AlertPublisher
	metrics   repository.Metrics
	log       *logger.Logger

	window  time.Duration
	alertID atomic.Int64
	now     func() int64
}

func NewIngestor(
	store *cache.Store,
	dirty *cache.DirtyTracker,
	alerts *cache.AlertLog,
	detector *Detector,
	publisher repository.AlertPublisher,
	metrics repository.Metrics,
	log *logger.Logger,
	window time.Duration,
) *Ingestor {
	ing := &Ingestor{
		store:     store,
		dirty:     dirty,
		alerts:    alerts,
		detector:  detector,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		window:    window,
		now:       func() int64 { return time.Now().UnixMilli() },
	}
	ing.alertID.Store(time.Now().UnixMilli())
	return ing
}

// SeedAlertID raises the alert id counter so freshly minted ids never
// collide with hydrated history.
func (i *Ingestor) SeedAlertID(min int64) {
	for {
		cur := i.alertID.Load()
		if cur >= min {
			return
		}
		if i.alertID.CompareAndSwap(cur, min) {
			return
		}
	}
}

// IngestStructure applies a structure-bias webhook for symbol.
func (i *Ingestor) IngestStructure(ctx context.Context, symbol string, p *models.StructurePayload) {
	i.mu.Lock()
	defer i.mu.Unlock()
	nowMs := i.now()

	d, ok := ResolveStructureDelta(symbol, p, nowMs)
	if !ok {
		i.noop(models.KindStructure, symbol)
		return
	}
	merged, signals := MergeStructure(i.store.Structure(symbol), d, nowMs)
	i.store.PutStructure(merged)
	i.markDirty(models.KindStructure, symbol)
	i.metrics.RecordUpdate(string(models.KindStructure))

	i.touchSymbol(symbol, p.Exchange, p.Price, nowMs)
	i.emitSignals(ctx, symbol, models.CategoryStructure, merged.Price, signals, nowMs)
	i.runDetection(ctx, symbol, nowMs)
}

// IngestMomentum applies a momentum webhook for symbol.
func (i *Ingestor) IngestMomentum(ctx context.Context, symbol string, p *models.MomentumPayload) {
	i.mu.Lock()
	defer i.mu.Unlock()
	nowMs := i.now()

	d, ok := ResolveMomentumDelta(symbol, p)
	if !ok {
		i.noop(models.KindMomentum, symbol)
		return
	}
	merged, signals := MergeMomentum(i.store.Momentum(symbol), d, nowMs, i.window)
	i.store.PutMomentum(merged)
	i.markDirty(models.KindMomentum, symbol)
	i.metrics.RecordUpdate(string(models.KindMomentum))

	i.touchSymbol(symbol, p.Exchange, d.Price, nowMs)
	i.emitSignals(ctx, symbol, models.CategoryMomentum, merged.Price, signals, nowMs)
	i.runDetection(ctx, symbol, nowMs)
}

// IngestZones applies a supply/demand webhook for symbol.
func (i *Ingestor) IngestZones(ctx context.Context, symbol string, p *models.ZonePayload) {
	i.mu.Lock()
	defer i.mu.Unlock()
	nowMs := i.now()

	d := ResolveZoneDelta(symbol, p)
	merged, signals := MergeZones(i.store.Zones(symbol), d, nowMs, i.window)
	i.store.PutZones(merged)
	i.markDirty(models.KindZones, symbol)
	i.metrics.RecordUpdate(string(models.KindZones))

	i.touchSymbol(symbol, p.Exchange, p.Price, nowMs)
	i.emitSignals(ctx, symbol, models.CategoryZone, merged.Price, signals, nowMs)
	i.runDetection(ctx, symbol, nowMs)
}

// IngestAlgo applies a multi-algorithm webhook for symbol.
func (i *Ingestor) IngestAlgo(ctx context.Context, symbol string, p *models.AlgoPayload) {
	i.mu.Lock()
	defer i.mu.Unlock()
	nowMs := i.now()

	d, ok := ResolveAlgoDelta(symbol, p)
	if !ok {
		i.noop(models.KindMultiAlgo, symbol)
		return
	}
	merged, signals := MergeAlgo(i.store.Algo(symbol), d, nowMs, i.window)
	i.store.PutAlgo(merged)
	i.markDirty(models.KindMultiAlgo, symbol)
	i.metrics.RecordUpdate(string(models.KindMultiAlgo))

	i.touchSymbol(symbol, p.Exchange, p.Price, nowMs)
	i.emitSignals(ctx, symbol, models.CategoryAlgo, merged.Price, signals, nowMs)
	i.runDetection(ctx, symbol, nowMs)
}

func (i *Ingestor) noop(kind models.Kind, symbol string) {
	i.metrics.RecordNoOp(string(kind))
	i.log.Warn("unusable payload ignored",
		logger.String("kind", string(kind)),
		logger.String("symbol", symbol),
	)
}

func (i *Ingestor) markDirty(kind models.Kind, key string) {
	i.dirty.MarkDirty(kind, key)
	i.metrics.SetDirtyDepth(string(kind), i.dirty.Depth(kind))
}

// touchSymbol upserts the symbol metadata record, keeping previously known
// fields when the update does not carry them.
func (i *Ingestor) touchSymbol(symbol, exchange string, price float64, nowMs int64) {
	rec := &models.SymbolRecord{Symbol: symbol}
	if prev := i.store.Symbol(symbol); prev != nil {
		*rec = *prev
	}
	if exchange != "" {
		rec.Exchange = exchange
	}
	if price != 0 {
		rec.Price = price
	}
	rec.LastUpdated = nowMs
	rec.HasData = true
	i.store.PutSymbol(rec)
	i.markDirty(models.KindSymbols, symbol)
}

func (i *Ingestor) emitSignals(ctx context.Context, symbol, category string, price float64, signals []Signal, nowMs int64) {
	for _, s := range signals {
		i.createAlert(ctx, &models.Alert{
			Symbol:    symbol,
			AlertType: s.Type,
			Category:  category,
			Direction: s.Direction,
			Timeframe: s.Timeframe,
			Price:     price,
			Timestamp: nowMs,
		})
	}
}

func (i *Ingestor) createAlert(ctx context.Context, a *models.Alert) {
	setting, ok := i.store.Setting(a.AlertType)
	if !ok {
		setting = models.DefaultAlertSetting(a.AlertType)
	}
	a.ID = i.alertID.Add(1)
	a.Importance = setting.Importance
	a.Visible = setting.ShowInPanel
	if a.Message == "" {
		a.Message = alertMessage(a)
	}

	i.alerts.Append(a)
	i.metrics.RecordAlert(a.Category)
	i.log.Info("alert created",
		logger.Int64("id", a.ID),
		logger.String("symbol", a.Symbol),
		logger.String("type", a.AlertType),
		logger.String("timeframe", a.Timeframe),
	)

	if i.publisher != nil {
		if err := i.publisher.PublishAlert(ctx, a); err != nil {
			i.log.Warn("alert publish failed", logger.Int64("id", a.ID), logger.Error(err))
		}
	}
}

func (i *Ingestor) runDetection(ctx context.Context, symbol string, nowMs int64) {
	for _, setup := range i.detector.Detect(symbol, nowMs) {
		i.store.PutSetup(setup)
		i.dirty.MarkDirty(models.KindSetups, setup.ID)
		i.metrics.RecordSetup(string(setup.Direction))
		i.log.Info("trade setup detected",
			logger.String("id", setup.ID),
			logger.String("symbol", setup.Symbol),
			logger.String("direction", string(setup.Direction)),
			logger.Int("score", setup.ConfluenceScore),
		)

		alertType := models.AlertLongSetup
		if setup.Direction == models.DirectionBear {
			alertType = models.AlertShortSetup
		}
		i.createAlert(ctx, &models.Alert{
			Symbol:    setup.Symbol,
			AlertType: alertType,
			Category:  models.CategorySetup,
			Direction: setup.Direction,
			Price:     setup.EntryPrice,
			Timestamp: nowMs,
			Message:   fmt.Sprintf("%s confluence setup on %s (score %d)", setup.Direction, setup.Symbol, setup.ConfluenceScore),
		})
	}
}

func alertMessage(a *models.Alert) string {
	if a.Timeframe != "" {
		return fmt.Sprintf("%s %s on %s", a.Symbol, a.AlertType, a.Timeframe)
	}
	return fmt.Sprintf("%s %s", a.Symbol, a.AlertType)
}

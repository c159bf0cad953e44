package usecase

import (
	"time"

	"github.com/google/uuid"

	"PulseBoard/internal/cache"
	"PulseBoard/internal/domain/models"
)

// Detector scans the merged state of one symbol for confluence trade setups
// after each ingestion.
//
// A long setup needs an active demand zone on a higher timeframe plus a
// bullish structure bias; shorts are symmetric. The confluence score starts
// at the base weight and accumulates per contributing condition.
type Detector struct {
	store  *cache.Store
	window time.Duration
	newID  func() string
}

func NewDetector(store *cache.Store, window time.Duration) *Detector {
	return &Detector{store: store, window: window, newID: uuid.NewString}
}

// Detect evaluates both directions for symbol and returns any newly
// detected setups. Detection is idempotent: a direction with an ACTIVE
// setup on file yields nothing until that setup leaves the ACTIVE state.
func (d *Detector) Detect(symbol string, nowMs int64) []*models.TradeSetup {
	zones := d.store.Zones(symbol)
	if zones == nil {
		return nil
	}
	structure := d.store.Structure(symbol)
	if structure == nil {
		return nil
	}

	var out []*models.TradeSetup
	if s := d.detectDirection(symbol, models.DirectionBull, zones, structure, nowMs); s != nil {
		out = append(out, s)
	}
	if s := d.detectDirection(symbol, models.DirectionBear, zones, structure, nowMs); s != nil {
		out = append(out, s)
	}
	return out
}

func (d *Detector) detectDirection(symbol string, dir models.Direction, zones *models.ZoneRecord, structure *models.StructureRecord, nowMs int64) *models.TradeSetup {
	if structure.Bias != dir {
		return nil
	}
	zoneTFs := d.activeHigherZones(zones, dir, nowMs)
	if len(zoneTFs) == 0 {
		return nil
	}
	if d.store.HasActiveSetup(symbol, dir) {
		return nil
	}

	momentum := d.store.Momentum(symbol)
	algo := d.store.Algo(symbol)

	hasDots := algo.AnyActive(nowMs, d.window, func(s models.AlgoSignals) models.StickyFlag {
		if dir == models.DirectionBull {
			return s.DotsGreen
		}
		return s.DotsRed
	})
	hasSquares := algo.AnyActive(nowMs, d.window, func(s models.AlgoSignals) models.StickyFlag {
		if dir == models.DirectionBull {
			return s.SquaresGreen
		}
		return s.SquaresRed
	})
	hasPrimary := algo.AnyActive(nowMs, d.window, func(s models.AlgoSignals) models.StickyFlag {
		if dir == models.DirectionBull {
			return s.Algo1Buy
		}
		return s.Algo1Sell
	})

	cautionCount := 0
	if momentum != nil {
		cautionCount = momentum.CautionCount
	}

	score := models.ScoreBase + len(zoneTFs)*models.ScorePerZoneTF
	if hasDots {
		score += models.ScoreDotMarker
	}
	if hasSquares {
		score += models.ScoreSquareMarker
	}
	if cautionCount > 0 {
		score += models.ScoreCautionPresent
	}
	if hasPrimary {
		score += models.ScorePrimaryAlgo
	}

	entry := zones.Price
	if sym := d.store.Symbol(symbol); sym != nil && sym.Price != 0 {
		entry = sym.Price
	}

	return &models.TradeSetup{
		ID:              d.newID(),
		Symbol:          symbol,
		SetupType:       models.SetupTypeConfluence,
		Direction:       dir,
		EntryPrice:      entry,
		DetectedAt:      nowMs,
		ZoneTimeframes:  zoneTFs,
		StructureSignal: structure.Bias,
		CautionCount:    cautionCount,
		HasDots:         hasDots,
		HasSquares:      hasSquares,
		ConfluenceScore: score,
		Status:          models.SetupStatusActive,
		UpdatedAt:       nowMs,
	}
}

// activeHigherZones returns the higher timeframes whose zone flag for the
// direction is still effective at nowMs, in canonical order.
func (d *Detector) activeHigherZones(zones *models.ZoneRecord, dir models.Direction, nowMs int64) []string {
	m := zones.Demand
	if dir == models.DirectionBear {
		m = zones.Supply
	}
	var out []string
	for _, tf := range models.HigherTimeframes {
		if m[tf].Active(nowMs, d.window) {
			out = append(out, tf)
		}
	}
	return out
}

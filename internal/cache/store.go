package cache

import (
	"sync"

	"PulseBoard/internal/domain/models"
)

// Store is the in-memory working set: the canonical per-symbol records, the
// symbol metadata table, detected setups and alert settings. All reads serve
// from here; durable storage only trails it.
//
// Records are treated as immutable once Put: mergers build a fresh record and
// swap the pointer, so readers holding a previous pointer are never racing a
// writer.
type Store struct {
	mu sync.RWMutex

	structures map[string]*models.StructureRecord
	momentums  map[string]*models.MomentumRecord
	zones      map[string]*models.ZoneRecord
	algos      map[string]*models.AlgoRecord

	symbols  map[string]*models.SymbolRecord
	setups   map[string]*models.TradeSetup
	settings map[string]models.AlertSetting
}

func NewStore() *Store {
	return &Store{
		structures: make(map[string]*models.StructureRecord),
		momentums:  make(map[string]*models.MomentumRecord),
		zones:      make(map[string]*models.ZoneRecord),
		algos:      make(map[string]*models.AlgoRecord),
		symbols:    make(map[string]*models.SymbolRecord),
		setups:     make(map[string]*models.TradeSetup),
		settings:   make(map[string]models.AlertSetting),
	}
}

func (s *Store) Structure(symbol string) *models.StructureRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.structures[symbol]
}

func (s *Store) PutStructure(rec *models.StructureRecord) {
	s.mu.Lock()
	s.structures[rec.Symbol] = rec
	s.mu.Unlock()
}

func (s *Store) Momentum(symbol string) *models.MomentumRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.momentums[symbol]
}

func (s *Store) PutMomentum(rec *models.MomentumRecord) {
	s.mu.Lock()
	s.momentums[rec.Symbol] = rec
	s.mu.Unlock()
}

func (s *Store) Zones(symbol string) *models.ZoneRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zones[symbol]
}

func (s *Store) PutZones(rec *models.ZoneRecord) {
	s.mu.Lock()
	s.zones[rec.Symbol] = rec
	s.mu.Unlock()
}

func (s *Store) Algo(symbol string) *models.AlgoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.algos[symbol]
}

func (s *Store) PutAlgo(rec *models.AlgoRecord) {
	s.mu.Lock()
	s.algos[rec.Symbol] = rec
	s.mu.Unlock()
}

func (s *Store) Symbol(symbol string) *models.SymbolRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbols[symbol]
}

func (s *Store) PutSymbol(rec *models.SymbolRecord) {
	s.mu.Lock()
	s.symbols[rec.Symbol] = rec
	s.mu.Unlock()
}

func (s *Store) Symbols() []*models.SymbolRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.SymbolRecord, 0, len(s.symbols))
	for _, rec := range s.symbols {
		out = append(out, rec)
	}
	return out
}

func (s *Store) Structures() []*models.StructureRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.StructureRecord, 0, len(s.structures))
	for _, rec := range s.structures {
		out = append(out, rec)
	}
	return out
}

func (s *Store) Momentums() []*models.MomentumRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.MomentumRecord, 0, len(s.momentums))
	for _, rec := range s.momentums {
		out = append(out, rec)
	}
	return out
}

func (s *Store) AllZones() []*models.ZoneRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ZoneRecord, 0, len(s.zones))
	for _, rec := range s.zones {
		out = append(out, rec)
	}
	return out
}

func (s *Store) Algos() []*models.AlgoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.AlgoRecord, 0, len(s.algos))
	for _, rec := range s.algos {
		out = append(out, rec)
	}
	return out
}

func (s *Store) Setup(id string) *models.TradeSetup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setups[id]
}

func (s *Store) PutSetup(setup *models.TradeSetup) {
	s.mu.Lock()
	s.setups[setup.ID] = setup
	s.mu.Unlock()
}

func (s *Store) Setups() []*models.TradeSetup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TradeSetup, 0, len(s.setups))
	for _, setup := range s.setups {
		out = append(out, setup)
	}
	return out
}

// HasActiveSetup reports whether an ACTIVE setup already exists for the
// symbol and direction. Used to keep detection idempotent.
func (s *Store) HasActiveSetup(symbol string, dir models.Direction) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, setup := range s.setups {
		if setup.Symbol == symbol && setup.Direction == dir && setup.Status == models.SetupStatusActive {
			return true
		}
	}
	return false
}

func (s *Store) Setting(alertType string) (models.AlertSetting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.settings[alertType]
	return st, ok
}

func (s *Store) PutSetting(st models.AlertSetting) {
	s.mu.Lock()
	s.settings[st.AlertType] = st
	s.mu.Unlock()
}

func (s *Store) Settings() []models.AlertSetting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AlertSetting, 0, len(s.settings))
	for _, st := range s.settings {
		out = append(out, st)
	}
	return out
}

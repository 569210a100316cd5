package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLedger is a minimal in-memory inventory.StockRepository keyed by
// warehouse and product. Movements exposes its movement log.
type StockLedger struct {
	mu        sync.Mutex
	rows      map[[2]uuid.UUID]inventory.Stock
	movements []inventory.StockMovement
}

// NewStockLedger creates an empty ledger
func NewStockLedger() *StockLedger {
	return &StockLedger{rows: make(map[[2]uuid.UUID]inventory.Stock)}
}

func (s *StockLedger) FindByIDForTenant(context.Context, uuid.UUID, uuid.UUID) (*inventory.Stock, error) {
	return nil, shared.ErrNotFound
}

func (s *StockLedger) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]inventory.Stock, error) {
	return nil, nil
}

func (s *StockLedger) CountForTenant(context.Context, uuid.UUID, shared.Filter) (int64, error) {
	return 0, nil
}

func (s *StockLedger) FindForUpdate(_ context.Context, _, warehouseID, productID uuid.UUID) (*inventory.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[[2]uuid.UUID{warehouseID, productID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &row, nil
}

func (s *StockLedger) Save(_ context.Context, stock *inventory.Stock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[[2]uuid.UUID{stock.WarehouseID, stock.ProductID}] = *stock
	return nil
}

// Quantity returns the on-hand quantity, zero for unknown rows
func (s *StockLedger) Quantity(warehouseID, productID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[[2]uuid.UUID{warehouseID, productID}].Quantity
}

// Recorded returns a copy of every movement created so far
func (s *StockLedger) Recorded() []inventory.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]inventory.StockMovement(nil), s.movements...)
}

// Movements returns the inventory.MovementRepository view of the ledger
func (s *StockLedger) Movements() inventory.MovementRepository {
	return movementLog{s}
}

type movementLog struct{ *StockLedger }

func (m movementLog) Create(_ context.Context, movement *inventory.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements = append(m.movements, *movement)
	return nil
}

func (m movementLog) FindAllForTenant(context.Context, uuid.UUID, shared.Filter) ([]inventory.StockMovement, error) {
	return m.Recorded(), nil
}

func (m movementLog) CountForTenant(context.Context, uuid.UUID, shared.Filter) (int64, error) {
	return int64(len(m.Recorded())), nil
}

var (
	_ inventory.StockRepository    = (*StockLedger)(nil)
	_ inventory.MovementRepository = movementLog{}
)

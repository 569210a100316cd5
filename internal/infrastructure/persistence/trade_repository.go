package persistence

import (
	"context"

	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements trade.PurchaseOrderRepository
type GormPurchaseOrderRepository struct {
	*GormCrudRepository[trade.PurchaseOrder]
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{
		GormCrudRepository: NewGormCrudRepository[trade.PurchaseOrder](db, TableSpec{
			CodeColumn:    "number",
			SearchColumns: []string{"number", "note"},
			Filters: map[string]FilterFunc{
				"status":       Eq("status"),
				"vendor_id":    Eq("vendor_id"),
				"warehouse_id": Eq("warehouse_id"),
				"from":         Gte("order_date"),
				"to":           Lte("order_date"),
			},
			SortFields:  PurchaseOrderSortFields,
			DefaultSort: "order_date",
			Preloads:    []string{"Items"},
		}),
	}
}

// Save stores the order and replaces its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return saveWithChildren(r.conn(ctx), order, "order_id", order.ID, order.Items)
}

// GormSalesOrderRepository implements trade.SalesOrderRepository
type GormSalesOrderRepository struct {
	*GormCrudRepository[trade.SalesOrder]
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{
		GormCrudRepository: NewGormCrudRepository[trade.SalesOrder](db, TableSpec{
			CodeColumn:    "number",
			SearchColumns: []string{"number", "note"},
			Filters: map[string]FilterFunc{
				"status":       Eq("status"),
				"customer_id":  Eq("customer_id"),
				"warehouse_id": Eq("warehouse_id"),
				"from":         Gte("order_date"),
				"to":           Lte("order_date"),
			},
			SortFields:  SalesOrderSortFields,
			DefaultSort: "order_date",
			Preloads:    []string{"Items"},
		}),
	}
}

// Save stores the order and replaces its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return saveWithChildren(r.conn(ctx), order, "order_id", order.ID, order.Items)
}

var (
	_ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
	_ trade.SalesOrderRepository    = (*GormSalesOrderRepository)(nil)
)

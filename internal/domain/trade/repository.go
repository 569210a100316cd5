package trade

import (
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// PurchaseOrderRepository persists purchase orders with their items.
// ExistsByCode checks the order number; filters: status, vendor_id, warehouse_id.
type PurchaseOrderRepository interface {
	shared.CrudRepository[PurchaseOrder]
}

// SalesOrderRepository persists sales orders with their items.
// ExistsByCode checks the order number; filters: status, customer_id, warehouse_id.
type SalesOrderRepository interface {
	shared.CrudRepository[SalesOrder]
}

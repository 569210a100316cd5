package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/analytics"
	"gorm.io/gorm"
)

// GormBasketRepository implements analytics.BasketRepository over sales orders
type GormBasketRepository struct {
	db *gorm.DB
}

// NewGormBasketRepository creates a new GormBasketRepository
func NewGormBasketRepository(db *gorm.DB) *GormBasketRepository {
	return &GormBasketRepository{db: db}
}

// OrderLines returns the product lines of every sales order of the tenant,
// ordered by order creation so baskets keep a stable order.
func (r *GormBasketRepository) OrderLines(ctx context.Context, tenantID uuid.UUID) ([]analytics.OrderLine, error) {
	var lines []analytics.OrderLine
	if err := conn(ctx, r.db).
		Table("sales_order_items AS i").
		Select("i.order_id, i.product_id").
		Joins("JOIN sales_orders o ON o.id = i.order_id").
		Where("o.tenant_id = ?", tenantID).
		Order("o.created_at ASC, o.id ASC").
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

var _ analytics.BasketRepository = (*GormBasketRepository)(nil)

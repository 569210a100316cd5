package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/partner"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// orderLine is an item request with price and tax resolved
type orderLine struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
}

// side selects purchase or sales defaults
type side int

const (
	purchaseSide side = iota
	salesSide
)

// lineResolver fills item defaults from the catalog
type lineResolver struct {
	productRepo catalog.ProductRepository
	taxRepo     catalog.TaxRepository
}

func (r lineResolver) resolve(ctx context.Context, tenantID uuid.UUID, items []OrderItemRequest, s side) ([]orderLine, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := r.productRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	taxes := make(map[uuid.UUID]*catalog.Tax)
	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product "+item.ProductID.String()+" does not exist")
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("INACTIVE_PRODUCT", "Product "+product.Code+" is inactive")
		}

		line := orderLine{ProductID: product.ID, Quantity: item.Quantity}
		switch {
		case item.UnitPrice != nil:
			line.UnitPrice = *item.UnitPrice
		case s == purchaseSide:
			line.UnitPrice = product.PurchasePrice
		default:
			line.UnitPrice = product.SellingPrice
		}

		if item.TaxRate != nil {
			line.TaxRate = *item.TaxRate
		} else if product.TaxID != nil {
			tax, err := r.tax(ctx, tenantID, *product.TaxID, taxes)
			if err != nil {
				return nil, err
			}
			if tax.IsActive && ((s == purchaseSide && tax.AppliesToPurchases()) || (s == salesSide && tax.AppliesToSales())) {
				line.TaxRate = tax.Rate
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r lineResolver) tax(ctx context.Context, tenantID, id uuid.UUID, cache map[uuid.UUID]*catalog.Tax) (*catalog.Tax, error) {
	if tax, ok := cache[id]; ok {
		return tax, nil
	}
	tax, err := r.taxRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	cache[id] = tax
	return tax, nil
}

// resolveWarehouse returns id when set, otherwise the tenant's default warehouse
func resolveWarehouse(ctx context.Context, repo partner.WarehouseRepository, tenantID uuid.UUID, id *uuid.UUID) (uuid.UUID, error) {
	var (
		wh  *partner.Warehouse
		err error
	)
	if id != nil && *id != uuid.Nil {
		wh, err = repo.FindByIDForTenant(ctx, tenantID, *id)
	} else {
		wh, err = repo.FindDefault(ctx, tenantID)
	}
	if errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse does not exist")
	}
	if err != nil {
		return uuid.Nil, err
	}
	if !wh.CanStore() {
		return uuid.Nil, shared.NewDomainError("INACTIVE_WAREHOUSE", "Warehouse is inactive")
	}
	return wh.ID, nil
}

// dueDate adds the partner's payment terms to the order date
func dueDate(orderDate time.Time, termDays int) time.Time {
	if termDays < 0 {
		termDays = 0
	}
	return orderDate.AddDate(0, 0, termDays)
}

func dateOrToday(d *time.Time, now time.Time) time.Time {
	if d != nil && !d.IsZero() {
		return *d
	}
	y, m, day := now.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, now.Location())
}

package analytics

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// OrderLine is one product sold on one sales order
type OrderLine struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
}

// GroupTransactions turns order lines into baskets of distinct product IDs.
// Baskets follow the first appearance of each order.
func GroupTransactions(lines []OrderLine) [][]string {
	index := make(map[uuid.UUID]int)
	var baskets [][]string
	for _, l := range lines {
		i, ok := index[l.OrderID]
		if !ok {
			i = len(baskets)
			index[l.OrderID] = i
			baskets = append(baskets, nil)
		}
		baskets[i] = append(baskets[i], l.ProductID.String())
	}
	for i := range baskets {
		slices.Sort(baskets[i])
		baskets[i] = slices.Compact(baskets[i])
	}
	return baskets
}

// BasketRepository reads sales order lines for basket analysis
type BasketRepository interface {
	// OrderLines returns the (order, product) pairs of all sales orders
	OrderLines(ctx context.Context, tenantID uuid.UUID) ([]OrderLine, error)
}

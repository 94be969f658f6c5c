package order

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary — снимок корзины на момент подтверждения заказа.
type Summary struct {
	ID        string
	Items     []domain.LineItem
	Total     decimal.Decimal
	CreatedAt time.Time
}

func NewSummary(snap cart.Snapshot, createdAt time.Time) *Summary {
	items := make([]domain.LineItem, len(snap.Items))
	copy(items, snap.Items)

	return &Summary{
		ID:        uuid.NewString(),
		Items:     items,
		Total:     snap.Total(),
		CreatedAt: createdAt,
	}
}

// TotalQuantity возвращает количество единиц товара в заказе.
func (s *Summary) TotalQuantity() int {
	return cart.Snapshot{Items: s.Items}.TotalQuantity()
}

package usecase

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/order"
	"github.com/DRSN-tech/storefront/internal/session"
)

// CART

// AddToCartReq — запрос на добавление товара каталога в корзину.
type AddToCartReq struct {
	Session *session.Session
	Name    string
}

// RemoveFromCartReq — запрос на удаление позиции.
type RemoveFromCartReq struct {
	Session *session.Session
	Name    string
}

// ChangeQuantityReq — запрос на изменение количества на Delta.
type ChangeQuantityReq struct {
	Session *session.Session
	Name    string
	Delta   int
}

// CartRes — состояние корзины для JSON API.
type CartRes struct {
	SessionID     string     `json:"session_id"`
	Items         []CartLine `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	Total         string     `json:"total"`
}

// CartLine — позиция корзины или заказа во внешнем представлении.
// Суммы передаются строками с двумя знаками после точки.
type CartLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// EVENTS

// OrderConfirmedEvent публикуется после подтверждения заказа.
type OrderConfirmedEvent struct {
	OrderID       string     `json:"order_id"`
	SessionID     string     `json:"session_id"`
	Items         []CartLine `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	Total         string     `json:"total"`
	ConfirmedAt   time.Time  `json:"confirmed_at"`
}

// MAPPERS

func NewAddToCartReq(s *session.Session, name string) *AddToCartReq {
	return &AddToCartReq{Session: s, Name: name}
}

func NewRemoveFromCartReq(s *session.Session, name string) *RemoveFromCartReq {
	return &RemoveFromCartReq{Session: s, Name: name}
}

func NewChangeQuantityReq(s *session.Session, name string, delta int) *ChangeQuantityReq {
	return &ChangeQuantityReq{Session: s, Name: name, Delta: delta}
}

func NewCartRes(sessionID string, snap cart.Snapshot) *CartRes {
	return &CartRes{
		SessionID:     sessionID,
		Items:         toCartLines(snap.Items),
		TotalQuantity: snap.TotalQuantity(),
		Total:         snap.Total().StringFixed(2),
	}
}

func NewOrderConfirmedEvent(sessionID string, summary *order.Summary) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		OrderID:       summary.ID,
		SessionID:     sessionID,
		Items:         toCartLines(summary.Items),
		TotalQuantity: summary.TotalQuantity(),
		Total:         summary.Total.StringFixed(2),
		ConfirmedAt:   summary.CreatedAt,
	}
}

func toCartLines(items []domain.LineItem) []CartLine {
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price.StringFixed(2),
			Subtotal:  item.Subtotal().StringFixed(2),
			Thumbnail: item.Thumbnail,
		})
	}

	return lines
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/catalog"
)

// CatalogProvider отдаёт загруженный каталог (пустой до окончания загрузки).
type CatalogProvider interface {
	Catalog() *catalog.Catalog
}

// OrderPublisher публикует событие подтверждения заказа.
type OrderPublisher interface {
	PublishOrderConfirmed(ctx context.Context, event *OrderConfirmedEvent) error
}

// Metrics — метрики, которые пишет витрина.
type Metrics interface {
	CartMutation(op string)
	OrderConfirmed(total float64)
}

type nopPublisher struct{}

func (nopPublisher) PublishOrderConfirmed(context.Context, *OrderConfirmedEvent) error {
	return nil
}

type nopMetrics struct{}

func (nopMetrics) CartMutation(string)    {}
func (nopMetrics) OrderConfirmed(float64) {}

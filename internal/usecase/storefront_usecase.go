package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/metrics"
	"github.com/DRSN-tech/storefront/internal/order"
	"github.com/DRSN-tech/storefront/internal/session"
	"github.com/DRSN-tech/storefront/internal/view"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// StorefrontUseCase связывает каталог, корзины сессий и подтверждение заказа.
type StorefrontUseCase struct {
	catalog        CatalogProvider
	sessions       *session.Registry
	publisher      OrderPublisher
	metrics        Metrics
	logger         logger.Logger
	publishTimeout time.Duration
	wg             sync.WaitGroup
}

func NewStorefrontUC(
	catalog CatalogProvider,
	sessions *session.Registry,
	publisher OrderPublisher,
	metrics Metrics,
	logger logger.Logger,
	publishTimeout time.Duration,
) *StorefrontUseCase {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &StorefrontUseCase{
		catalog:        catalog,
		sessions:       sessions,
		publisher:      publisher,
		metrics:        metrics,
		logger:         logger,
		publishTimeout: publishTimeout,
	}
}

// Session возвращает сессию покупателя, создавая её при необходимости.
func (u *StorefrontUseCase) Session(id string) (*session.Session, bool) {
	return u.sessions.Acquire(id)
}

// Page собирает страницу целиком: сетку, корзину и окно подтверждения.
func (u *StorefrontUseCase) Page(_ context.Context, s *session.Session) view.Page {
	products := u.catalog.Catalog().Products()

	var page view.Page
	s.Do(func(s *session.Session) {
		page = view.Page{
			Cards: s.View.Cards(products),
			Cart:  s.View.Panel(),
			Order: view.BuildOrderPanel(s.Overlay.State(), s.Overlay.Summary()),
		}
	})

	return page
}

func (u *StorefrontUseCase) Grid(_ context.Context, s *session.Session) []view.Card {
	products := u.catalog.Catalog().Products()

	var cards []view.Card
	s.Do(func(s *session.Session) {
		cards = s.View.Cards(products)
	})

	return cards
}

func (u *StorefrontUseCase) CartPanel(_ context.Context, s *session.Session) view.CartPanel {
	var panel view.CartPanel
	s.Do(func(s *session.Session) {
		panel = s.View.Panel()
	})

	return panel
}

func (u *StorefrontUseCase) Cart(_ context.Context, s *session.Session) *CartRes {
	var res *CartRes
	s.Do(func(s *session.Session) {
		res = NewCartRes(s.ID, s.Store.Snapshot())
	})

	return res
}

// AddToCart добавляет товар, найденный в каталоге по имени. Цена и миниатюра
// берутся из каталога. Неизвестный товар игнорируется.
func (u *StorefrontUseCase) AddToCart(_ context.Context, req *AddToCartReq) error {
	const op = "StorefrontUseCase.AddToCart"

	product, ok := u.catalog.Catalog().Lookup(req.Name)
	if !ok {
		err := e.Wrap(op, e.Wrap(fmt.Sprintf("name %q", req.Name), e.ErrProductNotFound))
		u.logger.Warnf("Ignoring add to cart: %v", err)
		return err
	}

	req.Session.Do(func(s *session.Session) {
		s.Store.Add(domain.NewLineItem(product))
	})
	u.metrics.CartMutation(metrics.OpAdd)
	u.logger.Debugf("Added %q to cart, session: %s", req.Name, req.Session.ID)

	return nil
}

// RemoveFromCart удаляет позицию. Отсутствующее имя не ошибка и не
// учитывается в метриках.
func (u *StorefrontUseCase) RemoveFromCart(_ context.Context, req *RemoveFromCartReq) {
	var removed bool
	req.Session.Do(func(s *session.Session) {
		removed = s.Store.Remove(req.Name)
	})
	if !removed {
		u.logger.Debugf("Nothing to remove for %q, session: %s", req.Name, req.Session.ID)
		return
	}

	u.metrics.CartMutation(metrics.OpRemove)
	u.logger.Debugf("Removed %q from cart, session: %s", req.Name, req.Session.ID)
}

// ChangeQuantity меняет количество позиции на Delta.
func (u *StorefrontUseCase) ChangeQuantity(_ context.Context, req *ChangeQuantityReq) {
	var changed bool
	req.Session.Do(func(s *session.Session) {
		changed = s.Store.ChangeQuantity(req.Name, req.Delta)
	})
	if !changed {
		u.logger.Debugf("Ignoring quantity change for absent %q, session: %s", req.Name, req.Session.ID)
		return
	}

	u.metrics.CartMutation(metrics.OpChangeQuantity)
	u.logger.Debugf("Changed quantity of %q by %d, session: %s", req.Name, req.Delta, req.Session.ID)
}

// ConfirmOrder показывает окно подтверждения и в фоне публикует событие.
func (u *StorefrontUseCase) ConfirmOrder(_ context.Context, s *session.Session) (*order.Summary, bool) {
	var (
		summary *order.Summary
		ok      bool
	)
	s.Do(func(s *session.Session) {
		summary, ok = s.Overlay.Confirm(s.Store)
	})
	if !ok {
		u.logger.Debugf("Ignoring confirmation of empty cart, session: %s", s.ID)
		return nil, false
	}

	u.metrics.OrderConfirmed(summary.Total.InexactFloat64())
	u.logger.Infof("Order %s confirmed: %d items, total %s", summary.ID, summary.TotalQuantity(), domain.FormatMoney(summary.Total))
	u.publish(NewOrderConfirmedEvent(s.ID, summary))

	return summary, true
}

// StartNewOrder очищает корзину и закрывает окно подтверждения.
func (u *StorefrontUseCase) StartNewOrder(_ context.Context, s *session.Session) bool {
	var ok bool
	s.Do(func(s *session.Session) {
		ok = s.Overlay.Acknowledge(s.Store)
	})
	if ok {
		u.metrics.CartMutation(metrics.OpClear)
		u.logger.Debugf("New order started, session: %s", s.ID)
	}

	return ok
}

// DismissOrder закрывает окно кликом по фону.
func (u *StorefrontUseCase) DismissOrder(_ context.Context, s *session.Session, target order.Target) bool {
	var ok bool
	s.Do(func(s *session.Session) {
		ok = s.Overlay.Dismiss(target)
	})

	return ok
}

// WaitForPublications ждёт завершения фоновых публикаций событий.
func (u *StorefrontUseCase) WaitForPublications(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("order events publication timeout during shutdown: %w", ctx.Err())
	}
}

// publish отправляет событие один раз, без повторов. Ошибка только логируется.
func (u *StorefrontUseCase) publish(event *OrderConfirmedEvent) {
	const op = "StorefrontUseCase.publish"

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), u.publishTimeout)
		defer cancel()

		if err := u.publisher.PublishOrderConfirmed(ctx, event); err != nil {
			u.logger.Warnf("Failed to publish order %s: %v", event.OrderID, e.Wrap(op, err))
		}
	}()
}

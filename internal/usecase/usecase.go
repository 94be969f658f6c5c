package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/order"
	"github.com/DRSN-tech/storefront/internal/session"
	"github.com/DRSN-tech/storefront/internal/view"
)

type StorefrontUC interface {
	Session(id string) (*session.Session, bool)
	Page(ctx context.Context, s *session.Session) view.Page
	Grid(ctx context.Context, s *session.Session) []view.Card
	CartPanel(ctx context.Context, s *session.Session) view.CartPanel
	Cart(ctx context.Context, s *session.Session) *CartRes
	AddToCart(ctx context.Context, req *AddToCartReq) error
	RemoveFromCart(ctx context.Context, req *RemoveFromCartReq)
	ChangeQuantity(ctx context.Context, req *ChangeQuantityReq)
	ConfirmOrder(ctx context.Context, s *session.Session) (*order.Summary, bool)
	StartNewOrder(ctx context.Context, s *session.Session) bool
	DismissOrder(ctx context.Context, s *session.Session, target order.Target) bool
}

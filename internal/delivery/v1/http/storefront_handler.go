package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/session"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/internal/view"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

const maxFormSize = 64 << 10

type StorefrontHandler struct {
	storefrontUsecase usecase.StorefrontUC
	renderer          *view.Renderer
	logger            logger.Logger
}

func NewStorefrontHandler(storefrontUsecase usecase.StorefrontUC, renderer *view.Renderer, logger logger.Logger) *StorefrontHandler {
	return &StorefrontHandler{storefrontUsecase: storefrontUsecase, renderer: renderer, logger: logger}
}

func (h *StorefrontHandler) page(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	page := h.storefrontUsecase.Page(r.Context(), s)

	h.writeHTML(w, func(buf *bytes.Buffer) error { return h.renderer.Page(buf, page) })
}

func (h *StorefrontHandler) cartFragment(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r, sessionFrom(r.Context()))
}

func (h *StorefrontHandler) gridFragment(w http.ResponseWriter, r *http.Request) {
	cards := h.storefrontUsecase.Grid(r.Context(), sessionFrom(r.Context()))

	h.writeHTML(w, func(buf *bytes.Buffer) error { return h.renderer.Grid(buf, cards) })
}

func (h *StorefrontHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	s := sessionFrom(r.Context())

	name, err := parseName(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	// Неизвестный товар не ошибка для покупателя: корзина остаётся прежней.
	if err := h.storefrontUsecase.AddToCart(r.Context(), usecase.NewAddToCartReq(s, name)); err != nil && !errors.Is(err, e.ErrProductNotFound) {
		h.logger.Errorf(err, "add to cart failed")
		WriteError(w, err)
		return
	}

	h.respond(w, r, s)
}

func (h *StorefrontHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	s := sessionFrom(r.Context())

	name, err := parseName(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	h.storefrontUsecase.RemoveFromCart(r.Context(), usecase.NewRemoveFromCartReq(s, name))
	h.respond(w, r, s)
}

func (h *StorefrontHandler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	s := sessionFrom(r.Context())

	name, err := parseName(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	delta, err := parseDelta(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	h.storefrontUsecase.ChangeQuantity(r.Context(), usecase.NewChangeQuantityReq(s, name, delta))
	h.respond(w, r, s)
}

func (h *StorefrontHandler) confirmOrder(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	h.storefrontUsecase.ConfirmOrder(r.Context(), s)
	h.respondOrder(w, r, s)
}

func (h *StorefrontHandler) startNewOrder(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	h.storefrontUsecase.StartNewOrder(r.Context(), s)
	h.respondOrder(w, r, s)
}

func (h *StorefrontHandler) dismissOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	s := sessionFrom(r.Context())

	target, err := parseTarget(r)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	h.storefrontUsecase.DismissOrder(r.Context(), s, target)
	h.respondOrder(w, r, s)
}

func (h *StorefrontHandler) cartJSON(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.storefrontUsecase.Cart(r.Context(), sessionFrom(r.Context())))
}

// respond завершает изменение корзины: редирект на витрину или фрагменты
// корзины и сетки, чтобы элементы управления карточек совпадали с корзиной.
func (h *StorefrontHandler) respond(w http.ResponseWriter, r *http.Request, s *session.Session) {
	h.respondFragments(w, r, s, false)
}

// respondOrder дополнительно отдаёт окно подтверждения.
func (h *StorefrontHandler) respondOrder(w http.ResponseWriter, r *http.Request, s *session.Session) {
	h.respondFragments(w, r, s, true)
}

func (h *StorefrontHandler) respondFragments(w http.ResponseWriter, r *http.Request, s *session.Session, withOrder bool) {
	if !wantsFragment(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	page := h.storefrontUsecase.Page(r.Context(), s)
	h.writeHTML(w, func(buf *bytes.Buffer) error {
		if err := h.renderer.Cart(buf, page.Cart); err != nil {
			return err
		}
		if err := h.renderer.Grid(buf, page.Cards); err != nil {
			return err
		}
		if !withOrder {
			return nil
		}
		return h.renderer.Order(buf, page.Order)
	})
}

func (h *StorefrontHandler) writeCart(w http.ResponseWriter, r *http.Request, s *session.Session) {
	panel := h.storefrontUsecase.CartPanel(r.Context(), s)

	h.writeHTML(w, func(buf *bytes.Buffer) error { return h.renderer.Cart(buf, panel) })
}

func (h *StorefrontHandler) writeHTML(w http.ResponseWriter, render func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.logger.Errorf(err, "render failed")
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *StorefrontHandler) badRequest(w http.ResponseWriter, err error) {
	h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
	WriteError(w, err)
}

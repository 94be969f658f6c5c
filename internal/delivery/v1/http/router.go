package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/internal/view"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Router struct {
	router    *chi.Mux
	logger    logger.Logger
	renderer  *view.Renderer
	staticDir string
}

func NewRouter(router *chi.Mux, renderer *view.Renderer, staticDir string, logger logger.Logger) *Router {
	return &Router{router: router, renderer: renderer, staticDir: staticDir, logger: logger}
}

// Init регистрирует маршруты витрины. metrics может быть nil.
func (r *Router) Init(sfUC usecase.StorefrontUC, metrics http.Handler) {
	r.router.Use(chimiddleware.RequestID)
	r.router.Use(requestLogger(r.logger))
	r.router.Use(chimiddleware.Recoverer)

	r.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if metrics != nil {
		r.router.Method(http.MethodGet, "/metrics", metrics)
	}
	if r.staticDir != "" {
		r.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(r.staticDir))))
	}

	sfHandler := NewStorefrontHandler(sfUC, r.renderer, r.logger)
	r.router.Group(func(shop chi.Router) {
		shop.Use(withSession(sfUC))
		registerStorefrontRoutes(shop, sfHandler)
	})
}

func registerStorefrontRoutes(router chi.Router, sfHandler *StorefrontHandler) {
	router.Get("/", sfHandler.page)

	router.Route("/fragments", func(fr chi.Router) {
		fr.Get("/cart", sfHandler.cartFragment)
		fr.Get("/grid", sfHandler.gridFragment)
	})

	router.Route("/cart", func(cr chi.Router) {
		cr.Post("/items", sfHandler.addToCart)
		cr.Post("/remove", sfHandler.removeFromCart)
		cr.Post("/quantity", sfHandler.changeQuantity)
	})

	router.Route("/order", func(or chi.Router) {
		or.Post("/confirm", sfHandler.confirmOrder)
		or.Post("/new", sfHandler.startNewOrder)
		or.Post("/dismiss", sfHandler.dismissOrder)
	})

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/cart", sfHandler.cartJSON)
	})
}

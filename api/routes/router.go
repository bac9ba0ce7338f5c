package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxemarket/storefront-backend/api/controllers"
	"github.com/luxemarket/storefront-backend/api/middleware"
	authsvc "github.com/luxemarket/storefront-backend/internal/auth"
	"github.com/luxemarket/storefront-backend/internal/cart"
	"github.com/luxemarket/storefront-backend/internal/catalog"
	checkoutsvc "github.com/luxemarket/storefront-backend/internal/checkout"
	"github.com/luxemarket/storefront-backend/internal/coupons"
	"github.com/luxemarket/storefront-backend/internal/orders"
	"github.com/luxemarket/storefront-backend/internal/pricing"
	"github.com/luxemarket/storefront-backend/internal/theme"
	"github.com/luxemarket/storefront-backend/pkg/config"
	"github.com/luxemarket/storefront-backend/pkg/enums"
	"github.com/luxemarket/storefront-backend/pkg/logger"
	"github.com/luxemarket/storefront-backend/pkg/metrics"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.HTTPMetrics

	Catalog  *catalog.Store
	Cart     *cart.Ledger
	Orders   *orders.Store
	Policy   pricing.Policy
	Auth     authsvc.Service
	Checkout *checkoutsvc.Sequencer
	Coupons  coupons.Service
	Theme    *theme.Preference
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(d.Auth, logg))
		r.Get("/me", controllers.AuthMe(d.Auth, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(d.Catalog, logg))
		r.Get("/{productID}", controllers.GetProduct(d.Catalog, logg))
	})
	r.Get("/api/v1/categories", controllers.ListCategories(d.Catalog, logg))

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.GetCart(d.Cart, d.Policy, logg))
		r.Delete("/", controllers.ClearCart(d.Cart, d.Policy, logg))
		r.Post("/items", controllers.AddCartItem(d.Cart, d.Policy, logg))
		r.Patch("/items/{productID}", controllers.UpdateCartItem(d.Cart, d.Policy, logg))
		r.Delete("/items/{productID}", controllers.RemoveCartItem(d.Cart, d.Policy, logg))
		r.Post("/coupon", controllers.ApplyCoupon(d.Coupons, logg))
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Get("/", controllers.GetCheckout(d.Checkout, logg))
		r.Post("/shipping", controllers.SubmitShipping(d.Checkout, logg))
		r.Post("/back", controllers.CheckoutBack(d.Checkout, logg))
		r.Post("/reset", controllers.CheckoutReset(d.Checkout, logg))

		r.With(middleware.Auth(cfg.JWT, logg)).
			Post("/payment", controllers.SubmitPayment(d.Checkout, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Get("/", controllers.ListMyOrders(d.Orders, logg))
		r.Get("/{orderID}", controllers.GetMyOrder(d.Orders, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.RequireRole(string(enums.UserRoleAdmin), logg),
		)
		r.Get("/dashboard", controllers.AdminDashboard(d.Orders, d.Catalog, logg))
		r.Get("/orders", controllers.AdminListOrders(d.Orders, logg))
	})

	r.Route("/api/v1/theme", func(r chi.Router) {
		r.Get("/", controllers.GetTheme(d.Theme, logg))
		r.Put("/", controllers.SetTheme(d.Theme, logg))
		r.Post("/toggle", controllers.ToggleTheme(d.Theme, logg))
	})

	return r
}

package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/api/responses"
	"github.com/luxemarket/storefront-backend/internal/catalog"
	"github.com/luxemarket/storefront-backend/internal/orders"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

type dashboardView struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalOrders   int             `json:"total_orders"`
	TotalProducts int             `json:"total_products"`
	PendingOrders int             `json:"pending_orders"`
	RecentOrders  []orders.Order  `json:"recent_orders"`
}

// AdminDashboard aggregates the store-wide figures for the admin view.
func AdminDashboard(orderStore *orders.Store, catalogStore *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary := orderStore.Summarize()

		all := orderStore.List()
		recent := all
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}

		responses.WriteSuccess(w, dashboardView{
			TotalSales:    summary.TotalSales,
			TotalOrders:   summary.TotalOrders,
			TotalProducts: catalogStore.Len(),
			PendingOrders: summary.PendingOrders,
			RecentOrders:  recent,
		})
	}
}

// AdminListOrders returns every order in the store, oldest first.
func AdminListOrders(store *orders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all := store.List()
		responses.WriteSuccess(w, map[string]any{"orders": all, "total": len(all)})
	}
}

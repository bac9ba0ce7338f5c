package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxemarket/storefront-backend/api/middleware"
	"github.com/luxemarket/storefront-backend/api/responses"
	"github.com/luxemarket/storefront-backend/internal/orders"
	"github.com/luxemarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/luxemarket/storefront-backend/pkg/errors"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

// ListMyOrders returns the signed-in user's order history.
func ListMyOrders(store *orders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		mine := store.ListByUser(userID)
		responses.WriteSuccess(w, map[string]any{"orders": mine, "total": len(mine)})
	}
}

// GetMyOrder returns one of the signed-in user's orders. Admins may
// fetch any order.
func GetMyOrder(store *orders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		order, ok := store.Get(chi.URLParam(r, "orderID"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		role := middleware.RoleFromContext(r.Context())
		if order.UserID != userID && role != string(enums.UserRoleAdmin) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/luxemarket/storefront-backend/api/responses"
	"github.com/luxemarket/storefront-backend/api/validators"
	"github.com/luxemarket/storefront-backend/internal/cart"
	"github.com/luxemarket/storefront-backend/internal/coupons"
	"github.com/luxemarket/storefront-backend/internal/pricing"
	pkgerrors "github.com/luxemarket/storefront-backend/pkg/errors"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

type cartView struct {
	Items []cart.Line   `json:"items"`
	Quote pricing.Quote `json:"quote"`
}

func viewOf(ledger *cart.Ledger, policy pricing.Policy) cartView {
	return cartView{
		Items: ledger.Lines(),
		Quote: policy.Quote(ledger.Subtotal()).Rounded(),
	}
}

// GetCart returns the cart lines with the priced quote over them.
func GetCart(ledger *cart.Ledger, policy pricing.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, viewOf(ledger, policy))
	}
}

func AddCartItem(ledger *cart.Ledger, policy pricing.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := ledger.Add(r.Context(), body.ProductID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(ledger, policy))
	}
}

func UpdateCartItem(ledger *cart.Ledger, policy pricing.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := ledger.UpdateQuantity(r.Context(), productID, body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(ledger, policy))
	}
}

func RemoveCartItem(ledger *cart.Ledger, policy pricing.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		if err := ledger.Remove(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(ledger, policy))
	}
}

func ClearCart(ledger *cart.Ledger, policy pricing.Policy, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ledger.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(ledger, policy))
	}
}

// ApplyCoupon runs the coupon form against the coupon service. Every
// code is rejected in the demo store, so success never reaches the
// envelope.
func ApplyCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var body applyCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Apply(r.Context(), body.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "applied"})
	}
}

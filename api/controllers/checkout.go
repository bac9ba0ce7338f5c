package controllers

import (
	"net/http"

	"github.com/luxemarket/storefront-backend/api/middleware"
	"github.com/luxemarket/storefront-backend/api/responses"
	"github.com/luxemarket/storefront-backend/api/validators"
	"github.com/luxemarket/storefront-backend/internal/checkout"
	pkgerrors "github.com/luxemarket/storefront-backend/pkg/errors"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

// GetCheckout reports the current checkout step.
func GetCheckout(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, seq.State())
	}
}

func SubmitShipping(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form checkout.ShippingForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := seq.SubmitShipping(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// SubmitPayment places the order for the signed-in user.
func SubmitPayment(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var form checkout.PaymentForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := seq.SubmitPayment(r.Context(), form, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func CheckoutBack(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := seq.Back()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

func CheckoutReset(seq *checkout.Sequencer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, seq.Reset())
	}
}

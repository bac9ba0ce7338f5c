package controllers

import (
	"net/http"

	"github.com/luxemarket/storefront-backend/api/responses"
	"github.com/luxemarket/storefront-backend/api/validators"
	"github.com/luxemarket/storefront-backend/internal/theme"
	"github.com/luxemarket/storefront-backend/pkg/enums"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

type setThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

func GetTheme(pref *theme.Preference, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]enums.Theme{"theme": pref.Current()})
	}
}

func SetTheme(pref *theme.Preference, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body setThemeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := pref.Set(r.Context(), enums.Theme(body.Theme)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]enums.Theme{"theme": pref.Current()})
	}
}

func ToggleTheme(pref *theme.Preference, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next, err := pref.Toggle(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]enums.Theme{"theme": next})
	}
}

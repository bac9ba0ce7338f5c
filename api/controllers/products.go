package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/luxemarket/storefront-backend/api/responses"
	"github.com/luxemarket/storefront-backend/api/validators"
	"github.com/luxemarket/storefront-backend/internal/catalog"
	pkgerrors "github.com/luxemarket/storefront-backend/pkg/errors"
	"github.com/luxemarket/storefront-backend/pkg/logger"
)

// ListProducts applies the catalog query parameters and returns the
// filtered, sorted listing.
func ListProducts(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sortKey, err := validators.ParseQuerySortKey(r, "sort")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		spec := catalog.QuerySpec{
			SearchText: strings.TrimSpace(r.URL.Query().Get("search")),
			Category:   strings.TrimSpace(r.URL.Query().Get("category")),
			MaxPrice:   maxPrice,
			SortKey:    sortKey,
		}

		products := catalog.Apply(store.List(), spec)
		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"total":    len(products),
		})
	}
}

func GetProduct(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "productID")
		product, ok := store.FindByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ListCategories(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": store.Categories()})
	}
}

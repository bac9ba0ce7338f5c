package validators

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luxemarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/luxemarket/storefront-backend/pkg/errors"
)

// ParseQueryDecimal reads an optional decimal query parameter. An
// absent or blank value yields zero.
func ParseQueryDecimal(r *http.Request, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQuerySortKey reads the sort query parameter, defaulting to the
// featured ordering when absent.
func ParseQuerySortKey(r *http.Request, key string) (enums.SortKey, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	sortKey, err := enums.ParseSortKey(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return sortKey, nil
}

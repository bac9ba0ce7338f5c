package types

import "strings"

// Address is the shipping destination shape shared by users and orders.
type Address struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// Complete reports whether every routable field carries a value.
func (a Address) Complete() bool {
	for _, field := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

package orders

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed_orders.json
var seedOrders []byte

// Seeded builds a Store from the demo order history.
func Seeded() (*Store, error) {
	var history []Order
	if err := json.Unmarshal(seedOrders, &history); err != nil {
		return nil, fmt.Errorf("failed to decode seed orders: %w", err)
	}
	return NewStore(history)
}

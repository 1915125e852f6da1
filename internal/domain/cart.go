package domain

import "time"

// CartItem links one product to one user's cart. A product appears at most
// once per cart.
type CartItem struct {
	ID       int64
	Username string
	Product  Product
	AddedAt  time.Time
}

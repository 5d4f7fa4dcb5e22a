package domain

import "time"

// CartItem is a book in the cart with a quantity counter.
// The cart holds at most one CartItem per book id; adding an already-present
// book increments Quantity instead of appending a duplicate.
type CartItem struct {
	Book
	AddedAt  time.Time `json:"added_at"`
	Quantity int       `json:"quantity"`
}

// Subtotal returns price times quantity for this line.
func (ci CartItem) Subtotal() float64 {
	return ci.Price * float64(ci.Quantity)
}

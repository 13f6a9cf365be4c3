// internal/models/cart.go
package models

// CartItem is one line of the cart. Items are unique per (ID, Size).
type CartItem struct {
	ID       string  `json:"id" dynamodbav:"id" validate:"required"`
	Name     string  `json:"name" dynamodbav:"name" validate:"required"`
	Price    float64 `json:"price" dynamodbav:"price" validate:"gt=0"`
	Size     string  `json:"size" dynamodbav:"size"`
	Quantity int     `json:"quantity" dynamodbav:"quantity" validate:"min=1"`
	Image    string  `json:"image,omitempty" dynamodbav:"image,omitempty"`
}

// LineTotal returns price × quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Matches reports whether the item carries the given product and size.
func (i CartItem) Matches(productID, size string) bool {
	return i.ID == productID && i.Size == size
}

// Cart is the ordered list of line items persisted as one blob.
type Cart []CartItem

// Count is the number of units across all lines.
func (c Cart) Count() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Equal reports whether both carts hold the same lines in the same order.
func (c Cart) Equal(other Cart) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

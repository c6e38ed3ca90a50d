package domain

import "time"

// CartLine is one product-quantity pairing. At most one line exists per
// distinct product id within a cart; prices are integer cents.
type CartLine struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	ListPrice int64  `json:"list_price" bson:"list_price"`
	SalePrice int64  `json:"sale_price,omitempty" bson:"sale_price,omitempty"`
	Quantity  int    `json:"quantity" bson:"quantity"`
	// Stock is the available stock at the time the line was added, when the
	// catalog reported one. Zero means unknown; checkout revalidates against
	// the boundary either way.
	Stock    int    `json:"stock,omitempty" bson:"stock,omitempty"`
	ImageURL string `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

// UnitPrice returns the effective price for the line: sale price when one is
// set, list price otherwise.
func (l CartLine) UnitPrice() int64 {
	if l.SalePrice > 0 {
		return l.SalePrice
	}
	return l.ListPrice
}

// Cart is the ordered line collection for one identity. Totals are always
// derived from the lines, never stored.
type Cart struct {
	IdentityID  string     `json:"identity_id" bson:"identity_id"`
	Lines       []CartLine `json:"lines" bson:"lines"`
	DeliveryFee int64      `json:"delivery_fee" bson:"delivery_fee"`
	Discount    int64      `json:"discount" bson:"discount"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// NewCart returns an empty cart scoped to the given identity.
func NewCart(identityID string) *Cart {
	return &Cart{IdentityID: identityID, Lines: []CartLine{}}
}

// AddLine merges quantity into an existing line for the same product, or
// appends a new line at the end so display order stays stable. Quantity is
// clamped to at least 1 and, when the line carries a known stock figure, to
// at most that stock.
func (c *Cart) AddLine(line CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity = clampQuantity(c.Lines[i].Quantity+line.Quantity, c.Lines[i].Stock)
			return
		}
	}
	line.Quantity = clampQuantity(line.Quantity, line.Stock)
	c.Lines = append(c.Lines, line)
}

// SetQuantity sets the quantity for a product's line. A target of zero or
// below removes the line entirely. Returns false when no line exists for the
// product.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
		c.Lines[i].Quantity = clampQuantity(quantity, c.Lines[i].Stock)
		return true
	}
	return false
}

// RemoveLine drops a product's line; a no-op when the product is absent.
func (c *Cart) RemoveLine(productID string) {
	c.SetQuantity(productID, 0)
}

// ClearLines empties the cart, used after a successful checkout.
func (c *Cart) ClearLines() {
	c.Lines = c.Lines[:0]
}

// Line returns the line for a product id, or nil.
func (c *Cart) Line(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// CartTotals is the derived money view of a cart.
type CartTotals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Discount    int64 `json:"discount"`
	Total       int64 `json:"total"`
	ItemCount   int   `json:"item_count"`
}

// Totals recomputes subtotal and total from the lines. Total is floored at
// zero so a discount can never drive it negative. Delivery fee applies only
// to non-empty carts.
func (c *Cart) Totals() CartTotals {
	t := CartTotals{Discount: c.Discount}
	for _, l := range c.Lines {
		t.Subtotal += l.UnitPrice() * int64(l.Quantity)
		t.ItemCount += l.Quantity
	}
	if len(c.Lines) > 0 {
		t.DeliveryFee = c.DeliveryFee
	}
	t.Total = t.Subtotal + t.DeliveryFee - t.Discount
	if t.Total < 0 {
		t.Total = 0
	}
	return t
}

// clampQuantity bounds a quantity to [1, stock]; stock <= 0 means unknown
// and leaves the upper bound open for checkout to validate.
func clampQuantity(q, stock int) int {
	if q < 1 {
		q = 1
	}
	if stock > 0 && q > stock {
		q = stock
	}
	return q
}

package domain

import "time"

// Catalog resources mirror the upstream marketplace API. The gateway does
// not own them; it re-serves what the boundary returns.

// Shop is a marketplace storefront.
type Shop struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	LogoURL     string  `json:"logo_url,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	City        string  `json:"city,omitempty"`
}

// Product is a sellable catalog item. Prices are integer cents; SalePrice
// of zero means no sale is running.
type Product struct {
	ID          string `json:"id"`
	ShopID      string `json:"shop_id"`
	CategoryID  string `json:"category_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ListPrice   int64  `json:"list_price"`
	SalePrice   int64  `json:"sale_price,omitempty"`
	Stock       int    `json:"stock,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Category groups products for browsing.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// Offer is a time-bound promotion on a shop or product.
type Offer struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ShopID    string    `json:"shop_id,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	Percent   int       `json:"percent"`
	EndsAt    time.Time `json:"ends_at"`
}

// OrderLine is one purchased product within an order.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Order is a placed order as reported by the boundary.
type Order struct {
	ID          string      `json:"id"`
	Status      string      `json:"status"`
	Lines       []OrderLine `json:"lines"`
	Subtotal    int64       `json:"subtotal"`
	DeliveryFee int64       `json:"delivery_fee"`
	Discount    int64       `json:"discount"`
	Total       int64       `json:"total"`
	PlacedAt    time.Time   `json:"placed_at"`
}

// Favorite is a customer's saved product.
type Favorite struct {
	ProductID string    `json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
}

// Page carries pagination metadata in the boundary's shape.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

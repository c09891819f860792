// Package model defines the storefront domain types.
package model

// Category groups catalog products.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is a catalog entry as served by the backend. Price stays the raw
// server string; its decimal separator is locale-dependent and is only
// interpreted by the price package.
type Product struct {
	ID          int64     `json:"id"`
	Category    *Category `json:"category"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"is_active"`
	Image       string    `json:"image"`
	CreatedAt   string    `json:"created_at"`
}

// CartProduct is the subset of Product carried inside the cart snapshot.
type CartProduct struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// CartItem pairs a product with its quantity. At most one CartItem exists per
// product ID within a cart; repeated adds merge into the quantity.
type CartItem struct {
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// AuthUser is the minimal display profile stored next to the session token.
type AuthUser struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Order status values as persisted by the backend.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
}

// Order is a placed order as returned by the orders endpoints. Items is only
// populated on the detail endpoint.
type Order struct {
	ID          int64       `json:"id"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	CreatedAt   string      `json:"created_at"`
	TotalAmount string      `json:"total_amount"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items_detail,omitempty"`
}

// ToCartProduct trims a catalog product down to what the cart persists.
func (p Product) ToCartProduct() CartProduct {
	return CartProduct{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Slug:        p.Slug,
	}
}

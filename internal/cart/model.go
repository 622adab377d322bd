package cart

import (
	"time"

	"github.com/voduybaokhanh/shop-service/internal/catalog"
)

type Cart struct {
	CartID    string    `gorm:"primaryKey;type:varchar(64)" json:"CartID"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"Email"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
}

type CartItem struct {
	CartID    string    `gorm:"primaryKey;type:varchar(64)" json:"CartID"`
	ProductID string    `gorm:"primaryKey;type:varchar(64)" json:"ProductID"`
	Quantity  int       `gorm:"not null" json:"Quantity"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
}

// CartLine is a cart item joined with the current catalog entry. Product is nil when
// the product was removed from the catalog after it was added.
type CartLine struct {
	CartItem
	Product *catalog.Product `json:"Product,omitempty"`
}

type CartInput struct {
	Email string `json:"Email"`
}

type AddItemInput struct {
	CartID    string `json:"CartID"`
	ProductID string `json:"ProductID" binding:"required"`
	Quantity  *int   `json:"Quantity"`
}

type QuantityInput struct {
	Quantity *int `json:"Quantity" binding:"required"`
}

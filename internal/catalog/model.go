package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	CateID   string `gorm:"primaryKey;type:varchar(64)" json:"CateID"`
	CateName string `gorm:"type:varchar(255);not null" json:"CateName"`
}

type Product struct {
	ProductID   string          `gorm:"primaryKey;type:varchar(64)" json:"ProductID"`
	CateID      string          `gorm:"type:varchar(64);not null;index" json:"CateID"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"ProductName"`
	Description string          `json:"Description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Price"`
	Image       string          `json:"Image,omitempty"`
	CreatedAt   time.Time       `json:"CreatedAt"`
	UpdatedAt   time.Time       `json:"UpdatedAt"`
}

type CategoryInput struct {
	CateID   string `json:"CateID"`
	CateName string `json:"CateName" binding:"required"`
}

type ProductInput struct {
	ProductID   string           `json:"ProductID"`
	CateID      string           `json:"CateID" binding:"required"`
	ProductName string           `json:"ProductName" binding:"required"`
	Description string           `json:"Description"`
	Price       *decimal.Decimal `json:"Price" binding:"required"`
	Image       string           `json:"Image"`
}

type ProductUpdate struct {
	CateID      *string          `json:"CateID"`
	ProductName *string          `json:"ProductName"`
	Description *string          `json:"Description"`
	Price       *decimal.Decimal `json:"Price"`
	Image       *string          `json:"Image"`
}

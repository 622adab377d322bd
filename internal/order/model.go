package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// transitions lists the only forward moves. Delivered and Cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	OrderID         string          `gorm:"primaryKey;type:varchar(64)" json:"OrderID"`
	Email           string          `gorm:"type:varchar(255);not null;index" json:"Email"`
	AddressID       string          `gorm:"type:varchar(64);not null" json:"AddressID"`
	PaymentMethodID string          `gorm:"type:varchar(64);not null" json:"PaymentMethodID"`
	OrderDate       time.Time       `gorm:"not null" json:"OrderDate"`
	Status          Status          `gorm:"type:varchar(32);not null;index" json:"Status"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Total"`
	CreatedAt       time.Time       `json:"CreatedAt"`
	UpdatedAt       time.Time       `json:"UpdatedAt"`

	Items []OrderItem `gorm:"-" json:"Items,omitempty"`
}

// OrderItem keeps the unit price at checkout time; later catalog edits never reach it.
type OrderItem struct {
	OrderID   string          `gorm:"primaryKey;type:varchar(64)" json:"OrderID"`
	ProductID string          `gorm:"primaryKey;type:varchar(64)" json:"ProductID"`
	Quantity  int             `gorm:"not null" json:"Quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"Price"`
}

type LineInput struct {
	ProductID string           `json:"ProductID" binding:"required"`
	Quantity  *int             `json:"Quantity"`
	Price     *decimal.Decimal `json:"Price"`
}

// CheckoutInput builds an order from Items when present, otherwise from the owner's cart
// (or CartID when given).
type CheckoutInput struct {
	OrderID         string      `json:"OrderID"`
	Email           string      `json:"Email"`
	AddressID       string      `json:"AddressID" binding:"required"`
	PaymentMethodID string      `json:"PaymentMethodID" binding:"required"`
	CartID          string      `json:"CartID"`
	Items           []LineInput `json:"Items"`
}

type StatusInput struct {
	Status Status `json:"Status" binding:"required"`
}

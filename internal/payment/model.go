package payment

type PaymentMethod struct {
	PaymentMethodID string `gorm:"primaryKey;type:varchar(64)" json:"PaymentMethodID"`
	MethodName      string `gorm:"type:varchar(128);not null;uniqueIndex" json:"MethodName"`
}

type PaymentMethodInput struct {
	PaymentMethodID string `json:"PaymentMethodID"`
	MethodName      string `json:"MethodName" binding:"required"`
}

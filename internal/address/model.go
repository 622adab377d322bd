package address

type Address struct {
	AddressID string `gorm:"primaryKey;type:varchar(64)" json:"AddressID" validate:"required,max=64"`
	Email     string `gorm:"type:varchar(255);not null;index" json:"Email" validate:"required,max=255"`
	Street    string `gorm:"type:varchar(255);not null" json:"Street" validate:"required,max=255"`
	City      string `gorm:"type:varchar(128);not null" json:"City" validate:"required,max=128"`
	Country   string `gorm:"type:varchar(128);not null" json:"Country" validate:"required,max=128"`
}

type AddressInput struct {
	AddressID string `json:"AddressID"`
	Email     string `json:"Email"`
	Street    string `json:"Street" binding:"required"`
	City      string `json:"City" binding:"required"`
	Country   string `json:"Country" binding:"required"`
}

type AddressUpdate struct {
	Street  *string `json:"Street"`
	City    *string `json:"City"`
	Country *string `json:"Country"`
}

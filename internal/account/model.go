package account

import "time"

type Account struct {
	Email        string    `gorm:"primaryKey;type:varchar(255)" json:"Email"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"FullName"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'customer'" json:"Role"`
	CreatedAt    time.Time `json:"CreatedAt"`
	UpdatedAt    time.Time `json:"UpdatedAt"`
}

type RegisterInput struct {
	Email    string `json:"Email" binding:"required,email"`
	FullName string `json:"FullName" binding:"required"`
	Password string `json:"Password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"Email" binding:"required"`
	Password string `json:"Password" binding:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"CurrentPassword" binding:"required"`
	NewPassword     string `json:"NewPassword" binding:"required,min=6"`
}

// UpdateInput changes mutable fields only. Email is the key and never changes.
type UpdateInput struct {
	FullName *string `json:"FullName"`
	Password *string `json:"Password"`
	Role     *string `json:"Role"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Account   *Account  `json:"account"`
}

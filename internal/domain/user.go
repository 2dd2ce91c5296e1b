package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Email       string  `json:"email" validate:"required,email,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Password    string  `json:"password" validate:"required,min=6"`
}

// UpdateProfileRequest ignora campos ausentes ou vazios
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Claims carrega a identidade do dono dos dados; UserID é o owner de todas as consultas
type Claims struct {
	UserID    int64
	UserName  string
	UserEmail string
	jwt.RegisteredClaims
}

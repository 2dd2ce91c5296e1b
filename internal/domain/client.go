package domain

import "time"

type Client struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"-"`
	Name        string    `json:"name"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateClientRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
}

// UpdateClientRequest altera apenas os campos presentes no corpo
type UpdateClientRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
}

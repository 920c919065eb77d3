package dto

import "github.com/shopspring/decimal"

// CreateUserRequest entrada para crear un usuario (PIN en texto, se hashea en el use case).
type CreateUserRequest struct {
	FullName   string          `json:"full_name" validate:"required,min=1,max=200"`
	Role       string          `json:"role" validate:"required,oneof=admin technician"`
	PIN        string          `json:"pin" validate:"required,numeric,min=4,max=8"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// UpdateRateRequest body para PUT /api/users/:id/rate.
type UpdateRateRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// UserResponse salida de un usuario (sin PIN).
type UserResponse struct {
	ID         int64           `json:"user_id"`
	FullName   string          `json:"full_name"`
	Role       string          `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// TechLoginRequest entrada para el login por PIN desde tablet.
type TechLoginRequest struct {
	PIN string `json:"pin" validate:"required,numeric,min=4,max=8"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

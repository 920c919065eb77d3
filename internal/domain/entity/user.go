package entity

import "github.com/shopspring/decimal"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

// User representa un usuario del taller (administrador o técnico).
// PinHash es el hash bcrypt del PIN de acceso desde tablet.
type User struct {
	ID         int64
	FullName   string
	Role       string
	PinHash    string
	HourlyRate decimal.Decimal
}

// IsTechnician indica si el usuario puede ser asignado a trabajos.
func (u *User) IsTechnician() bool {
	return u != nil && u.Role == RoleTechnician
}

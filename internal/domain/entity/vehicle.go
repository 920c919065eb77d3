package entity

// Vehicle representa un vehículo registrado en el taller (identificado por placa).
type Vehicle struct {
	ID            int64
	LicensePlate  string
	VIN           string
	MakeModel     string
	CurrentOwner  string
	ContactNumber string
	PhotoPath     string
	IsArchived    bool
}

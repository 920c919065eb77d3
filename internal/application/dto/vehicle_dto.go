package dto

import "time"

// RegisterVehicleRequest body para POST /api/vehicles (alta o actualización por placa).
type RegisterVehicleRequest struct {
	LicensePlate  string `json:"license_plate" validate:"required,max=20"`
	VIN           string `json:"vin,omitempty" validate:"omitempty,max=32"`
	MakeModel     string `json:"make_model,omitempty" validate:"omitempty,max=100"`
	CurrentOwner  string `json:"current_owner,omitempty" validate:"omitempty,max=200"`
	ContactNumber string `json:"contact_number,omitempty" validate:"omitempty,max=32"`
	PhotoPath     string `json:"photo_path,omitempty"`
}

// UpdateVehicleRequest body para PUT /api/vehicles/:id.
type UpdateVehicleRequest struct {
	VIN           string `json:"vin,omitempty" validate:"omitempty,max=32"`
	MakeModel     string `json:"make_model,omitempty" validate:"omitempty,max=100"`
	ContactNumber string `json:"contact_number,omitempty" validate:"omitempty,max=32"`
	PhotoPath     string `json:"photo_path,omitempty"`
	IsArchived    bool   `json:"is_archived"`
}

// TransferOwnershipRequest body para POST /api/vehicles/:id/transfer.
type TransferOwnershipRequest struct {
	NewOwner          string `json:"new_owner" validate:"required,max=200"`
	NewContactNumber  string `json:"new_contact_number,omitempty" validate:"omitempty,max=32"`
	MileageAtTransfer int64  `json:"mileage_at_transfer" validate:"min=0"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID            int64  `json:"vehicle_id"`
	LicensePlate  string `json:"license_plate"`
	VIN           string `json:"vin,omitempty"`
	MakeModel     string `json:"make_model,omitempty"`
	CurrentOwner  string `json:"current_owner,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	PhotoPath     string `json:"photo_path,omitempty"`
	IsArchived    bool   `json:"is_archived"`
}

// OwnershipHistoryResponse salida de un traspaso.
type OwnershipHistoryResponse struct {
	ID                int64     `json:"history_id"`
	VehicleID         int64     `json:"vehicle_id"`
	OldOwner          string    `json:"old_owner"`
	NewOwner          string    `json:"new_owner"`
	MileageAtTransfer int64     `json:"mileage_at_transfer"`
	TransferDate      time.Time `json:"transfer_date"`
}

package entity

import "time"

// OwnershipHistory es un traspaso de propietario. Se inserta una vez y no se modifica.
type OwnershipHistory struct {
	ID                int64
	VehicleID         int64
	OldOwner          string
	NewOwner          string
	MileageAtTransfer int64
	TransferDate      time.Time
}

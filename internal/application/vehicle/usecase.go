// Package vehicle registra vehículos y sus traspasos de propietario.
package vehicle

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
	"github.com/jhoicas/Taller-api/pkg/normalize"
	"github.com/jhoicas/Taller-api/pkg/phone"
)

// Tipos de sugerencia para autocompletado.
const (
	SuggestOwners = "owners"
	SuggestModels = "models"
	SuggestParts  = "parts"
)

// UseCase orquesta el registro de vehículos, traspasos y sugerencias.
type UseCase struct {
	txRunner TxRunner
	vehicles repository.VehicleRepository
	history  repository.OwnershipHistoryRepository
	parts    repository.PartRepository
	region   string
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. region es la región ISO usada para validar teléfonos.
func NewUseCase(
	txRunner TxRunner,
	vehicles repository.VehicleRepository,
	history repository.OwnershipHistoryRepository,
	parts repository.PartRepository,
	region string,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner: txRunner,
		vehicles: vehicles,
		history:  history,
		parts:    parts,
		region:   region,
		log:      log,
	}
}

// Register da de alta un vehículo por placa o actualiza sus datos si la placa ya existe.
// El propietario solo se fija en el alta (o si estaba vacío); un cambio de propietario
// requiere TransferOwnership para que quede en el historial.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterVehicleRequest) (*dto.VehicleResponse, bool, error) {
	plate := normalize.Plate(in.LicensePlate)
	if plate == "" {
		return nil, false, domain.InvalidInputf("la placa es obligatoria")
	}
	contact, err := phone.Normalize(in.ContactNumber, uc.region)
	if err != nil {
		return nil, false, domain.InvalidInputf("%v", err)
	}

	var (
		v       *entity.Vehicle
		created bool
	)
	err = uc.txRunner.RunVehicle(ctx, func(vehicles repository.VehicleRepository, _ repository.OwnershipHistoryRepository) error {
		existing, err := vehicles.GetByPlate(ctx, plate)
		if err != nil {
			return domain.Storage("leer vehículo", err)
		}
		if existing == nil {
			v = &entity.Vehicle{
				LicensePlate:  plate,
				VIN:           normalize.Plate(in.VIN),
				MakeModel:     normalize.Text(in.MakeModel),
				CurrentOwner:  normalize.PersonName(in.CurrentOwner),
				ContactNumber: contact,
				PhotoPath:     in.PhotoPath,
			}
			if err := vehicles.Create(ctx, v); err != nil {
				return domain.Storage("crear vehículo", err)
			}
			created = true
			return nil
		}

		v = existing
		if vin := normalize.Plate(in.VIN); vin != "" {
			v.VIN = vin
		}
		if model := normalize.Text(in.MakeModel); model != "" {
			v.MakeModel = model
		}
		if v.CurrentOwner == "" {
			v.CurrentOwner = normalize.PersonName(in.CurrentOwner)
		}
		if contact != "" {
			v.ContactNumber = contact
		}
		if in.PhotoPath != "" {
			v.PhotoPath = in.PhotoPath
		}
		v.IsArchived = false
		if err := vehicles.Update(ctx, v); err != nil {
			return domain.Storage("actualizar vehículo", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	uc.log.Info().Int64("vehicle_id", v.ID).Str("plate", plate).Bool("created", created).Msg("vehículo registrado")
	out := toResponse(v)
	return &out, created, nil
}

// Update edita los datos de un vehículo (no la placa ni el propietario).
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	contact, err := phone.Normalize(in.ContactNumber, uc.region)
	if err != nil {
		return nil, domain.InvalidInputf("%v", err)
	}
	v, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v.VIN = normalize.Plate(in.VIN)
	v.MakeModel = normalize.Text(in.MakeModel)
	v.ContactNumber = contact
	v.PhotoPath = in.PhotoPath
	v.IsArchived = in.IsArchived
	if err := uc.vehicles.Update(ctx, v); err != nil {
		return nil, domain.Storage("actualizar vehículo", err)
	}
	out := toResponse(v)
	return &out, nil
}

// Get devuelve un vehículo.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.VehicleResponse, error) {
	v, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(v)
	return &out, nil
}

// GetByPlate busca un vehículo por placa (normalizada antes de consultar).
func (uc *UseCase) GetByPlate(ctx context.Context, plate string) (*dto.VehicleResponse, error) {
	normalized := normalize.Plate(plate)
	v, err := uc.vehicles.GetByPlate(ctx, normalized)
	if err != nil {
		return nil, domain.Storage("leer vehículo", err)
	}
	if v == nil {
		return nil, domain.NotFoundf("vehículo %s", normalized)
	}
	out := toResponse(v)
	return &out, nil
}

// List lista vehículos, por defecto sin los archivados.
func (uc *UseCase) List(ctx context.Context, includeArchived bool, page dto.PageRequest) ([]dto.VehicleResponse, error) {
	page.DefaultPage()
	list, err := uc.vehicles.List(ctx, includeArchived, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Storage("listar vehículos", err)
	}
	out := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toResponse(v))
	}
	return out, nil
}

// TransferOwnership registra el traspaso en el historial y actualiza el propietario vigente,
// ambos en la misma transacción.
func (uc *UseCase) TransferOwnership(ctx context.Context, id int64, in dto.TransferOwnershipRequest) (*dto.OwnershipHistoryResponse, error) {
	newOwner := normalize.PersonName(in.NewOwner)
	if newOwner == "" {
		return nil, domain.InvalidInputf("el nuevo propietario es obligatorio")
	}
	if in.MileageAtTransfer < 0 {
		return nil, domain.InvalidInputf("kilometraje negativo")
	}
	contact, err := phone.Normalize(in.NewContactNumber, uc.region)
	if err != nil {
		return nil, domain.InvalidInputf("%v", err)
	}

	var h *entity.OwnershipHistory
	err = uc.txRunner.RunVehicle(ctx, func(vehicles repository.VehicleRepository, history repository.OwnershipHistoryRepository) error {
		v, err := vehicles.GetByID(ctx, id)
		if err != nil {
			return domain.Storage("leer vehículo", err)
		}
		if v == nil {
			return domain.NotFoundf("vehículo %d", id)
		}
		if v.CurrentOwner == newOwner {
			return domain.InvalidInputf("%s ya es el propietario", newOwner)
		}

		h = &entity.OwnershipHistory{
			VehicleID:         v.ID,
			OldOwner:          v.CurrentOwner,
			NewOwner:          newOwner,
			MileageAtTransfer: in.MileageAtTransfer,
			TransferDate:      time.Now().UTC(),
		}
		if err := history.Append(ctx, h); err != nil {
			return domain.Storage("registrar traspaso", err)
		}
		v.CurrentOwner = newOwner
		v.ContactNumber = contact
		if err := vehicles.Update(ctx, v); err != nil {
			return domain.Storage("actualizar propietario", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("vehicle_id", id).Str("old_owner", h.OldOwner).Str("new_owner", h.NewOwner).Msg("traspaso registrado")
	out := toHistoryResponse(h)
	return &out, nil
}

// History devuelve los traspasos del vehículo, el más reciente primero.
func (uc *UseCase) History(ctx context.Context, id int64) ([]dto.OwnershipHistoryResponse, error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.history.ListByVehicle(ctx, id)
	if err != nil {
		return nil, domain.Storage("listar historial", err)
	}
	out := make([]dto.OwnershipHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, toHistoryResponse(h))
	}
	return out, nil
}

// Suggestions devuelve valores distintos para autocompletar (owners, models o parts).
func (uc *UseCase) Suggestions(ctx context.Context, kind string) (*dto.SuggestionsResponse, error) {
	var (
		values []string
		err    error
	)
	switch kind {
	case SuggestOwners:
		values, err = uc.vehicles.DistinctOwners(ctx)
	case SuggestModels:
		values, err = uc.vehicles.DistinctModels(ctx)
	case SuggestParts:
		values, err = uc.parts.DistinctNames(ctx)
	default:
		return nil, domain.InvalidInputf("tipo de sugerencia %q desconocido", kind)
	}
	if err != nil {
		return nil, domain.Storage("listar sugerencias", err)
	}
	if values == nil {
		values = []string{}
	}
	return &dto.SuggestionsResponse{Type: kind, Values: values}, nil
}

func (uc *UseCase) load(ctx context.Context, id int64) (*entity.Vehicle, error) {
	v, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("leer vehículo", err)
	}
	if v == nil {
		return nil, domain.NotFoundf("vehículo %d", id)
	}
	return v, nil
}

func toResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:            v.ID,
		LicensePlate:  v.LicensePlate,
		VIN:           v.VIN,
		MakeModel:     v.MakeModel,
		CurrentOwner:  v.CurrentOwner,
		ContactNumber: v.ContactNumber,
		PhotoPath:     v.PhotoPath,
		IsArchived:    v.IsArchived,
	}
}

func toHistoryResponse(h *entity.OwnershipHistory) dto.OwnershipHistoryResponse {
	return dto.OwnershipHistoryResponse{
		ID:                h.ID,
		VehicleID:         h.VehicleID,
		OldOwner:          h.OldOwner,
		NewOwner:          h.NewOwner,
		MileageAtTransfer: h.MileageAtTransfer,
		TransferDate:      h.TransferDate,
	}
}

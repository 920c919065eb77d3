package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/vehicle"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// VehicleHandler maneja vehículos, traspasos y sugerencias.
type VehicleHandler struct {
	uc   *vehicle.UseCase
	jobs *workshop.JobUseCase
	log  *logger.Logger
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *vehicle.UseCase, jobs *workshop.JobUseCase, log *logger.Logger) *VehicleHandler {
	return &VehicleHandler{uc: uc, jobs: jobs, log: log}
}

// Register godoc
// @Summary      Registrar vehículo (alta o actualización por placa)
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterVehicleRequest  true  "license_plate, vin, make_model, current_owner, contact_number"
// @Success      201   {object}  dto.VehicleResponse
// @Success      200   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vehicles [post]
func (h *VehicleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterVehicleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, created, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// List godoc
// @Summary      Listar vehículos
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        archived  query  bool  false  "incluir archivados"
// @Param        limit     query  int   false  "límite (1-100)"
// @Param        offset    query  int   false  "desplazamiento"
// @Success      200  {array}   dto.VehicleResponse
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.List(c.Context(), c.QueryBool("archived", false), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener vehículo
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "vehicle_id"
// @Success      200  {object}  dto.VehicleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [get]
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByPlate godoc
// @Summary      Buscar vehículo por placa
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        plate  path  string  true  "placa"
// @Success      200  {object}  dto.VehicleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/plate/{plate} [get]
func (h *VehicleHandler) GetByPlate(c *fiber.Ctx) error {
	out, err := h.uc.GetByPlate(c.Context(), c.Params("plate"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar vehículo
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "vehicle_id"
// @Param        body  body  dto.UpdateVehicleRequest  true  "vin, make_model, contact_number, photo_path, is_archived"
// @Success      200   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateVehicleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Traspasar propietario
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "vehicle_id"
// @Param        body  body  dto.TransferOwnershipRequest  true  "new_owner, new_contact_number, mileage_at_transfer"
// @Success      201   {object}  dto.OwnershipHistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id}/transfer [post]
func (h *VehicleHandler) Transfer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.TransferOwnershipRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.TransferOwnership(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de propietarios
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "vehicle_id"
// @Success      200  {array}   dto.OwnershipHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id}/history [get]
func (h *VehicleHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.History(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Jobs godoc
// @Summary      Historial de trabajos de un vehículo
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "vehicle_id"
// @Success      200  {array}   dto.JobResponse
// @Router       /api/vehicles/{id}/jobs [get]
func (h *VehicleHandler) Jobs(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.jobs.ListVehicleJobs(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Suggestions godoc
// @Summary      Sugerencias de autocompletado
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "owners | models | parts"
// @Success      200  {object}  dto.SuggestionsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/suggestions/{type} [get]
func (h *VehicleHandler) Suggestions(c *fiber.Ctx) error {
	out, err := h.uc.Suggestions(c.Context(), c.Params("type"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

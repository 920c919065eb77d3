package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// JobHandler maneja trabajos: ciclo de vida, repuestos, mano de obra, tareas y factura.
type JobHandler struct {
	uc  *workshop.JobUseCase
	log *logger.Logger
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *workshop.JobUseCase, log *logger.Logger) *JobHandler {
	return &JobHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Abrir trabajo
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "vehicle_id, technician_id, mileage_in"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateJob(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListActive godoc
// @Summary      Tablero de trabajos activos
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite (1-100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.JobSummaryResponse
// @Router       /api/jobs [get]
func (h *JobHandler) ListActive(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.ListActive(c.Context(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// MyJobs godoc
// @Summary      Trabajos activos del técnico autenticado
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.JobSummaryResponse
// @Router       /api/jobs/mine [get]
func (h *JobHandler) MyJobs(c *fiber.Ctx) error {
	list, err := h.uc.ListTechnicianJobs(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// TechnicianJobs godoc
// @Summary      Trabajos activos de un técnico
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "user_id del técnico"
// @Success      200  {array}   dto.JobSummaryResponse
// @Router       /api/technicians/{id}/jobs [get]
func (h *JobHandler) TechnicianJobs(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.uc.ListTechnicianJobs(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Detalle del trabajo
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "job_id"
// @Success      200  {object}  dto.JobDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetDetail(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// TransitionStatus godoc
// @Summary      Cambiar estado del trabajo
// @Description  pending → in_progress|completed, in_progress → waiting|completed, waiting → in_progress|completed.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "job_id"
// @Param        body  body  dto.TransitionStatusRequest  true  "status, mileage_out"
// @Success      200   {object}  dto.TransitionStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/status [put]
func (h *JobHandler) TransitionStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.TransitionStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.TransitionStatus(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AssignTechnician godoc
// @Summary      Asignar técnico
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                          true  "job_id"
// @Param        body  body  dto.AssignTechnicianRequest  true  "technician_id (null desasigna)"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/technician [put]
func (h *JobHandler) AssignTechnician(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.AssignTechnicianRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.AssignTechnician(c.Context(), id, in.TechnicianID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetTaxiCost godoc
// @Summary      Fijar costo de taxi/transporte
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Param        id    path  int                  true  "job_id"
// @Param        body  body  dto.TaxiCostRequest  true  "taxi_cost"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/taxi-cost [put]
func (h *JobHandler) SetTaxiCost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.TaxiCostRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.SetTaxiCost(c.Context(), id, in.TaxiCost); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPart godoc
// @Summary      Agregar repuesto al trabajo (descuenta stock)
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "job_id"
// @Param        body  body  dto.AddJobPartRequest  true  "part_id, quantity"
// @Success      201   {object}  dto.AddJobPartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/parts [post]
func (h *JobHandler) AddPart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.AddJobPartRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddJobPart(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordLabor godoc
// @Summary      Registrar mano de obra
// @Description  0 < hours_worked <= 24, 0 <= hourly_rate <= 10000. Un técnico solo registra su propio tiempo.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "job_id"
// @Param        body  body  dto.RecordLaborRequest  true  "technician_id, hours_worked, hourly_rate"
// @Success      201   {object}  dto.RecordLaborResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/labor [post]
func (h *JobHandler) RecordLabor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.RecordLaborRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if GetRole(c) == entity.RoleTechnician && in.TechnicianID != GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "solo puede registrar su propio tiempo"})
	}
	out, err := h.uc.RecordLabor(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recompute godoc
// @Summary      Recalcular mano de obra y total
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "job_id"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/recompute [post]
func (h *JobHandler) Recompute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Recompute(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddTask godoc
// @Summary      Agregar tarea a la lista de chequeo
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "job_id"
// @Param        body  body  dto.AddTaskRequest  true  "description"
// @Success      201   {object}  dto.JobTaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/tasks [post]
func (h *JobHandler) AddTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.AddTaskRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddTask(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ToggleTask godoc
// @Summary      Marcar o desmarcar tarea
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Param        id      path  int                    true  "job_id"
// @Param        taskId  path  int                    true  "task_id"
// @Param        body    body  dto.ToggleTaskRequest  true  "is_completed"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/tasks/{taskId} [put]
func (h *JobHandler) ToggleTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	taskID, err := paramID(c, "taskId")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.ToggleTaskRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.uc.ToggleTask(c.Context(), id, taskID, in.IsCompleted); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteTask godoc
// @Summary      Eliminar tarea
// @Tags         jobs
// @Security     Bearer
// @Param        id      path  int  true  "job_id"
// @Param        taskId  path  int  true  "task_id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/tasks/{taskId} [delete]
func (h *JobHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	taskID, err := paramID(c, "taskId")
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.DeleteTask(c.Context(), id, taskID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddImage godoc
// @Summary      Registrar foto del trabajo
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "job_id"
// @Param        body  body  dto.AddImageRequest  true  "image_path, caption"
// @Success      201   {object}  dto.JobImageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/images [post]
func (h *JobHandler) AddImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.AddImageRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddImage(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// InvoicePDF godoc
// @Summary      Factura del trabajo en PDF
// @Tags         jobs
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "job_id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/invoice.pdf [get]
func (h *JobHandler) InvoicePDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	pdf, number, err := h.uc.InvoicePDF(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+number+`.pdf"`)
	return c.Send(pdf)
}

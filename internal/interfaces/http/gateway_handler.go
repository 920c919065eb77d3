package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/gateway"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// GatewayHandler expone consultas y comandos SQL parametrizados (solo admin).
type GatewayHandler struct {
	uc  *gateway.UseCase
	log *logger.Logger
}

// NewGatewayHandler construye el handler.
func NewGatewayHandler(uc *gateway.UseCase, log *logger.Logger) *GatewayHandler {
	return &GatewayHandler{uc: uc, log: log}
}

// Query godoc
// @Summary      Consulta SQL parametrizada
// @Tags         gateway
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GatewayRequest  true  "sql, params"
// @Success      200   {array}   map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/db/query [post]
func (h *GatewayHandler) Query(c *fiber.Ctx) error {
	var in dto.GatewayRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	rows, err := h.uc.Query(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(rows)
}

// Command godoc
// @Summary      Comando SQL parametrizado
// @Tags         gateway
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GatewayRequest  true  "sql, params"
// @Success      200   {object}  dto.CommandResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/db/command [post]
func (h *GatewayHandler) Command(c *fiber.Ctx) error {
	var in dto.GatewayRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Command(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

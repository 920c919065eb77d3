package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// InventoryHandler maneja recepción y consumo de stock, partes y reportes de inventario.
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	parts         *inventory.PartUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.LedgerUseCase,
	parts *inventory.PartUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, parts: parts, replenishment: replenishment, log: log}
}

// ReceiveStock godoc
// @Summary      Recibir stock (recalcula costo promedio ponderado)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "part_number, quantity, unit_cost, retail_price, category, part_name"
// @Success      201   {object}  dto.ReceiveStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	res, err := h.ledger.Receive(c.Context(), inventory.ReceiveInput{
		PartNumber:  in.PartNumber,
		PartName:    in.PartName,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		RetailPrice: in.RetailPrice,
		Category:    in.Category,
		Reference:   fmt.Sprintf("user:%d", GetUserID(c)),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiveStockResponse{
		PartID:   res.PartID,
		Quantity: res.Quantity,
		AvgCost:  res.AvgCost,
		Created:  res.Created,
	})
}

// ConsumeStock godoc
// @Summary      Descontar stock (todo o nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeStockRequest  true  "part_id, quantity"
// @Success      200   {object}  dto.ConsumeStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consume [post]
func (h *InventoryHandler) ConsumeStock(c *fiber.Ctx) error {
	var in dto.ConsumeStockRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	ref := in.Reference
	if ref == "" {
		ref = fmt.Sprintf("user:%d", GetUserID(c))
	}
	qty, err := h.ledger.Consume(c.Context(), in.PartID, in.Quantity, ref)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ConsumeStockResponse{PartID: in.PartID, Quantity: qty})
}

// ListParts godoc
// @Summary      Listar partes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "límite (1-100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.PartResponse
// @Router       /api/parts [get]
func (h *InventoryHandler) ListParts(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.parts.List(c.Context(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetPart godoc
// @Summary      Obtener parte
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "part_id"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *InventoryHandler) GetPart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.parts.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdatePart godoc
// @Summary      Editar datos descriptivos de una parte
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "part_id"
// @Param        body  body  dto.UpdatePartRequest  true  "part_name, retail_price, min_threshold, category, condition, photo_path"
// @Success      200   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [put]
func (h *InventoryHandler) UpdatePart(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdatePartRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.parts.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Kardex de una parte
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "part_id"
// @Param        limit   query  int  false  "límite (1-100)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.StockMovementResponse
// @Router       /api/parts/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	list, err := h.parts.Movements(c.Context(), id, page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Partes en o por debajo de su punto de reorden con la cantidad sugerida de pedido.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// GetValuation godoc
// @Summary      Valorización del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationReport
// @Router       /api/inventory/valuation [get]
func (h *InventoryHandler) GetValuation(c *fiber.Ctx) error {
	out, err := h.parts.Valuation(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportValuation godoc
// @Summary      Exportar valorización a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/inventory/valuation.xlsx [get]
func (h *InventoryHandler) ExportValuation(c *fiber.Ctx) error {
	data, err := h.parts.ExportValuation(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	filename := fmt.Sprintf("inventario-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

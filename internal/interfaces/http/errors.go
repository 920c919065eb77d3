package http

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// Códigos de error de la API.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidMileage    = "INVALID_MILEAGE"
	CodeDuplicate         = "DUPLICATE"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeStorageFailure    = "STORAGE_FAILURE"
	CodeInternal          = "INTERNAL"
)

var validate = validator.New()

// errorMapping traduce un sentinel de dominio a status HTTP y código.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, CodeValidation},
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrInsufficientStock, fiber.StatusConflict, CodeInsufficientStock},
	{domain.ErrInvalidTransition, fiber.StatusConflict, CodeInvalidTransition},
	{domain.ErrInvalidMileage, fiber.StatusUnprocessableEntity, CodeInvalidMileage},
	{domain.ErrDuplicate, fiber.StatusConflict, CodeDuplicate},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
	{domain.ErrStorage, fiber.StatusInternalServerError, CodeStorageFailure},
}

// writeError responde con el ErrorResponse correspondiente a err.
// Los errores 5xx se registran en el log.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, CodeInternal
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			status, code = m.status, m.code
			break
		}
	}
	if status >= fiber.StatusInternalServerError && log != nil {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// bindJSON parsea el cuerpo y lo valida con las etiquetas validate del DTO.
// Si falla ya escribió la respuesta 400 y devuelve ok=false.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: validationMessage(err)})
	}
	return true, nil
}

// validationMessage resume los errores del validador como "campo: regla".
func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	sort.Strings(msgs)
	return "datos inválidos (" + strings.Join(msgs, ", ") + ")"
}

// paramID lee un parámetro de ruta numérico positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domain.InvalidInputf("%s inválido", name)
	}
	return int64(id), nil
}

// pageFromQuery lee limit/offset y aplica valores por defecto.
func pageFromQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, domain.InvalidInputf("paginación inválida")
	}
	page.DefaultPage()
	if err := validate.Struct(page); err != nil {
		return page, domain.InvalidInputf("%s", validationMessage(err))
	}
	return page, nil
}

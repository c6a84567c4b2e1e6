package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// writeError traduce los errores de dominio a status + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidFormat):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: err.Error()})
	case errors.Is(err, domain.ErrImportInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IMPORT_IN_PROGRESS", Message: err.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrStorageFull):
		return c.Status(fiber.StatusInsufficientStorage).JSON(dto.ErrorResponse{Code: "STORAGE_FULL", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// applied decide si una mutación quedó aplicada. Un fallo de persistencia no
// revierte la mutación: se responde normal con un header Warning.
func applied(c *fiber.Ctx, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrStorageFull) {
		c.Set(fiber.HeaderWarning, fmt.Sprintf(`199 - "%s"`, strings.ReplaceAll(err.Error(), `"`, `'`)))
		return true
	}
	return false
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

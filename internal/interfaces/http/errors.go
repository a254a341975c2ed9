package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/domain"
)

// writeDomainError traduce los errores de dominio a respuestas HTTP.
// Distingue 401 (sin credencial) de 403 (rol o alcance insuficiente).
func writeDomainError(c *fiber.Ctx, err error) error {
	if assignErr, ok := domain.IsAssignmentError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ASSIGNEE", Message: assignErr.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrNoCredential):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_CREDENTIAL", Message: "credenciales inválidas o ausentes"})
	case errors.Is(err, domain.ErrRoleNotPermitted):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	case errors.Is(err, domain.ErrOutOfScope):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OUT_OF_SCOPE", Message: "la operación queda fuera del alcance del usuario"})
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "la orden de trabajo no existe"})
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "EMPLOYEE_NOT_FOUND", Message: "el empleado no existe"})
	case errors.Is(err, domain.ErrDepartmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "DEPARTMENT_NOT_FOUND", Message: "el departamento no existe"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "estado inválido o transición no permitida"})
	case errors.Is(err, domain.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROLE", Message: "rol inválido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

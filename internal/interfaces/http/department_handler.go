package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/application/usecase"
)

// DepartmentHandler maneja los departamentos de la fábrica.
type DepartmentHandler struct {
	uc *usecase.DepartmentUseCase
}

// NewDepartmentHandler construye el handler de departamentos.
func NewDepartmentHandler(uc *usecase.DepartmentUseCase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear departamento (solo admin)
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepartmentRequest  true  "name, description?"
// @Success      201   {object}  dto.DepartmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDepartmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar departamentos
// @Tags         departments
// @Produce      json
// @Success      200  {array}  dto.DepartmentResponse
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

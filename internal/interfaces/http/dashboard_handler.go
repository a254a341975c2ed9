package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-erp/fabrica-api/internal/application/usecase"
)

// DashboardHandler expone los resúmenes de conteo de admin y jefe.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler de dashboard.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// AdminSummary godoc
// @Summary      Resumen global (solo admin)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.AdminSummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) AdminSummary(c *fiber.Ctx) error {
	out, err := h.uc.AdminSummary(c.UserContext(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ManagerSummary godoc
// @Summary      Resumen del departamento del jefe logueado
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.ManagerSummaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/manager-summary [get]
func (h *DashboardHandler) ManagerSummary(c *fiber.Ctx) error {
	out, err := h.uc.ManagerSummary(c.UserContext(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

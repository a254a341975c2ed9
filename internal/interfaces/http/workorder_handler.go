package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/application/usecase"
)

// WorkOrderHandler maneja el ciclo de vida de las órdenes de trabajo.
type WorkOrderHandler struct {
	uc       *usecase.WorkOrderUseCase
	reportUC *usecase.ReportUseCase
}

// NewWorkOrderHandler construye el handler de órdenes de trabajo.
func NewWorkOrderHandler(uc *usecase.WorkOrderUseCase, reportUC *usecase.ReportUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc, reportUC: reportUC}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "product, department, assigned_manager?, materials?"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workorders/admin [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Product == "" || in.Department == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product y department son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AssignManager godoc
// @Summary      Asignar jefe de departamento a la orden
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AssignManagerRequest  true  "assigned_manager"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/assign-manager [put]
func (h *WorkOrderHandler) AssignManager(c *fiber.Ctx) error {
	var in dto.AssignManagerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AssignedManager == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "assigned_manager es requerido"})
	}
	out, err := h.uc.AssignManager(c.UserContext(), GetActor(c), c.Params("id"), in.AssignedManager)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// AssignEmployee godoc
// @Summary      Asignar un empleado a la orden
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AssignEmployeeRequest  true  "assigned_employee"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/assign-employee [put]
func (h *WorkOrderHandler) AssignEmployee(c *fiber.Ctx) error {
	var in dto.AssignEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.AssignedEmployee == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "assigned_employee es requerido"})
	}
	out, err := h.uc.AssignEmployee(c.UserContext(), GetActor(c), c.Params("id"), in.AssignedEmployee)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// AssignEmployees godoc
// @Summary      Reemplazar el conjunto de empleados asignados a la orden
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AssignEmployeesRequest  true  "assigned_employees"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/assign-employees [put]
func (h *WorkOrderHandler) AssignEmployees(c *fiber.Ctx) error {
	var in dto.AssignEmployeesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Un arreglo vacío es válido: reemplaza el conjunto por "nadie asignado".
	out, err := h.uc.AssignEmployees(c.UserContext(), GetActor(c), c.Params("id"), in.AssignedEmployees)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar el estado de la orden (opcionalmente con materiales)
// @Tags         workorders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.SetStatusRequest  true  "status, materials?"
// @Success      200   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/status [put]
func (h *WorkOrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.SetStatus(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar todas las órdenes (solo admin)
// @Tags         workorders
// @Produce      json
// @Success      200  {object}  dto.WorkOrderListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workorders [get]
func (h *WorkOrderHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListForManager godoc
// @Summary      Listar órdenes donde el jefe logueado es el responsable
// @Tags         workorders
// @Produce      json
// @Success      200  {object}  dto.WorkOrderListResponse
// @Router       /api/workorders/manager [get]
func (h *WorkOrderHandler) ListForManager(c *fiber.Ctx) error {
	out, err := h.uc.ListForManager(c.UserContext(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListForEmployee godoc
// @Summary      Listar órdenes asignadas al empleado logueado
// @Tags         workorders
// @Produce      json
// @Success      200  {object}  dto.WorkOrderListResponse
// @Router       /api/workorders/employee [get]
func (h *WorkOrderHandler) ListForEmployee(c *fiber.Ctx) error {
	out, err := h.uc.ListForEmployee(c.UserContext(), GetActor(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar la ficha PDF de la orden
// @Tags         workorders
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workorders/{id}/report [get]
func (h *WorkOrderHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.WorkOrderPDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-trabajo.pdf"`)
	return c.Send(pdfBytes)
}

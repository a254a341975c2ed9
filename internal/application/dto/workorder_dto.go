package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialDTO una línea de la lista de materiales.
type MaterialDTO struct {
	Name     string          `json:"name" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateWorkOrderRequest entrada para crear una orden (solo admin).
// AssignedManager es opcional; si viene, debe pertenecer al departamento.
type CreateWorkOrderRequest struct {
	Product         string        `json:"product" validate:"required,min=1,max=200"`
	Description     string        `json:"description"`
	Department      string        `json:"department" validate:"required"`
	AssignedManager string        `json:"assigned_manager"`
	Materials       []MaterialDTO `json:"materials"`
}

// AssignManagerRequest entrada para asignar el jefe responsable.
type AssignManagerRequest struct {
	AssignedManager string `json:"assigned_manager" validate:"required"`
}

// AssignEmployeeRequest entrada de la vía legada de asignación única.
type AssignEmployeeRequest struct {
	AssignedEmployee string `json:"assigned_employee" validate:"required"`
}

// AssignEmployeesRequest entrada de la vía actual: reemplaza el conjunto
// completo de asignados (no es un merge).
type AssignEmployeesRequest struct {
	AssignedEmployees []string `json:"assigned_employees"`
}

// SetStatusRequest entrada de cambio de estado. Materials es opcional; si
// viene, el costo total se recalcula en el servidor a partir de las líneas
// (el total enviado por el caller no se usa en ese caso).
type SetStatusRequest struct {
	Status    string           `json:"status" validate:"required"`
	Materials []MaterialDTO    `json:"materials"`
	TotalCost *decimal.Decimal `json:"total_cost"`
}

// WorkOrderResponse salida de una orden resuelta: departamento, jefe y
// empleados poblados, nunca ids pelados.
type WorkOrderResponse struct {
	ID                string              `json:"id"`
	Product           string              `json:"product"`
	Description       string              `json:"description"`
	Department        *DepartmentResponse `json:"department"`
	AssignedManager   *EmployeeResponse   `json:"assigned_manager"`
	AssignedEmployee  *EmployeeResponse   `json:"assigned_employee"`
	AssignedEmployees []EmployeeResponse  `json:"assigned_employees"`
	Status            string              `json:"status"`
	Materials         []MaterialDTO       `json:"materials"`
	TotalCost         decimal.Decimal     `json:"total_cost"`
	CreatedBy         string              `json:"created_by"`
	CreatedAt         time.Time           `json:"created_at"`
}

// WorkOrderListResponse lista de órdenes resueltas.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
}

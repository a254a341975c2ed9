package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estado del ciclo de vida de una orden de trabajo.
type Status string

// Estados válidos de WorkOrder. Los strings son los valores de wire que consume el frontend.
const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// ParseStatus valida un estado recibido por la API.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// Material una línea de la lista de materiales (BOM) de una orden.
// Se persiste embebido en la orden como JSONB.
type Material struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// WorkOrder representa una orden de producción ligada a un producto y un
// departamento, con cero o más personas asignadas.
//
// Conviven dos vías de asignación: AssignedEmployeeID (campo único, vía
// legada) y AssignedEmployeeIDs (conjunto, vía actual). Una persona se
// considera asignada a la orden si aparece en cualquiera de las dos.
//
// Los campos Department, AssignedManager, AssignedEmployee y
// AssignedEmployees son las vistas resueltas que cargan los repositorios.
type WorkOrder struct {
	ID          string
	Product     string
	Description string

	DepartmentID string
	Department   *Department

	AssignedManagerID   *string
	AssignedManager     *Employee
	AssignedEmployeeID  *string // vía legada de asignación única
	AssignedEmployee    *Employee
	AssignedEmployeeIDs []string // conjunto actual; el orden no importa
	AssignedEmployees   []Employee

	Status    Status
	Materials []Material
	TotalCost decimal.Decimal

	CreatedByID string
	CreatedAt   time.Time
}

// IsAssignedTo indica si el empleado aparece en cualquiera de las dos vías de asignación.
func (w *WorkOrder) IsAssignedTo(employeeID string) bool {
	if w.AssignedEmployeeID != nil && *w.AssignedEmployeeID == employeeID {
		return true
	}
	for _, id := range w.AssignedEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

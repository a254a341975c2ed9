package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

// WorkOrderRepository define el puerto de persistencia para WorkOrder.
//
// Todas las lecturas devuelven órdenes resueltas (departamento, jefe y
// empleados poblados, nunca ids pelados) para que los consumidores de solo
// lectura no necesiten un segundo round trip.
//
// Cada grupo de campos se actualiza con una sola sentencia (estado+materiales
// vs. asignación), de modo que dos llamadas concurrentes sobre grupos
// distintos se entrelazan con semántica last-write-wins por grupo, sin
// estados corruptos.
type WorkOrderRepository interface {
	Create(ctx context.Context, order *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	ListAll(ctx context.Context) ([]*entity.WorkOrder, error)
	ListByManager(ctx context.Context, managerID string) ([]*entity.WorkOrder, error)
	// ListByAssignee devuelve las órdenes donde el empleado aparece en el
	// campo único legado O en el conjunto de asignados (OR lógico).
	ListByAssignee(ctx context.Context, employeeID string) ([]*entity.WorkOrder, error)

	UpdateManager(ctx context.Context, orderID, managerID string) error
	UpdateAssignee(ctx context.Context, orderID, employeeID string) error
	// ReplaceAssignees reemplaza por completo el conjunto de asignados (no
	// es un merge). Se usa dentro de una transacción vía WorkOrderTxRunner.
	ReplaceAssignees(ctx context.Context, orderID string, employeeIDs []string) error
	// UpdateStatus escribe el nuevo estado; si materials no es nil también
	// escribe materiales y costo total, todo en una sola sentencia.
	UpdateStatus(ctx context.Context, orderID string, status entity.Status, materials []entity.Material, totalCost decimal.Decimal) error
}

// WorkOrderTxRunner ejecuta fn con un WorkOrderRepository atado a una
// transacción: o todo el reemplazo del conjunto de asignados se aplica, o nada.
type WorkOrderTxRunner interface {
	Run(ctx context.Context, fn func(orders WorkOrderRepository) error) error
}

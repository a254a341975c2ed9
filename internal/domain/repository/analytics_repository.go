package repository

import (
	"context"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

// AnalyticsRepository consultas read-only de conteo para los dashboards.
// No muta nada; delega toda la agregación en la base de datos.
type AnalyticsRepository interface {
	CountEmployeesByRole(ctx context.Context, role entity.Role) (int, error)
	CountEmployeesByDepartment(ctx context.Context, departmentID string) (int, error)
	CountWorkOrders(ctx context.Context) (int, error)
	// CountMaterialLines suma las líneas de materiales de todas las órdenes
	// (tamaño agregado de los BOM del sistema).
	CountMaterialLines(ctx context.Context) (int, error)
	CountOrdersByManager(ctx context.Context, departmentID, managerID string) (int, error)
	CountCompletedOrdersByManager(ctx context.Context, departmentID, managerID string) (int, error)
}

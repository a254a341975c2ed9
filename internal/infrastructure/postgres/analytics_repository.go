package postgres

import (
	"context"
	"fmt"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo conteos read-only para los dashboards, delegados a SQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) count(ctx context.Context, label, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", label, err)
	}
	return n, nil
}

// CountEmployeesByRole cuenta empleados con el rol dado.
func (r *AnalyticsRepo) CountEmployeesByRole(ctx context.Context, role entity.Role) (int, error) {
	return r.count(ctx, "count employees by role",
		`SELECT COUNT(*) FROM employees WHERE role = $1`, string(role))
}

// CountEmployeesByDepartment cuenta empleados de un departamento.
func (r *AnalyticsRepo) CountEmployeesByDepartment(ctx context.Context, departmentID string) (int, error) {
	return r.count(ctx, "count employees by department",
		`SELECT COUNT(*) FROM employees WHERE department_id = $1`, departmentID)
}

// CountWorkOrders cuenta todas las órdenes.
func (r *AnalyticsRepo) CountWorkOrders(ctx context.Context) (int, error) {
	return r.count(ctx, "count work orders", `SELECT COUNT(*) FROM work_orders`)
}

// CountMaterialLines suma las líneas de materiales de todas las órdenes
// (materials es un arreglo JSONB embebido en cada fila).
func (r *AnalyticsRepo) CountMaterialLines(ctx context.Context) (int, error) {
	return r.count(ctx, "count material lines",
		`SELECT COALESCE(SUM(jsonb_array_length(COALESCE(materials, '[]'::jsonb))), 0) FROM work_orders`)
}

// CountOrdersByManager cuenta órdenes del departamento asignadas al jefe.
func (r *AnalyticsRepo) CountOrdersByManager(ctx context.Context, departmentID, managerID string) (int, error) {
	return r.count(ctx, "count orders by manager",
		`SELECT COUNT(*) FROM work_orders WHERE department_id = $1 AND assigned_manager_id = $2`,
		departmentID, managerID)
}

// CountCompletedOrdersByManager como CountOrdersByManager pero solo Completed.
func (r *AnalyticsRepo) CountCompletedOrdersByManager(ctx context.Context, departmentID, managerID string) (int, error) {
	return r.count(ctx, "count completed orders by manager",
		`SELECT COUNT(*) FROM work_orders WHERE department_id = $1 AND assigned_manager_id = $2 AND status = $3`,
		departmentID, managerID, string(entity.StatusCompleted))
}

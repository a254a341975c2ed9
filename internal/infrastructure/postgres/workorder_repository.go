package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre
// PostgreSQL. Los materiales se persisten como JSONB embebido en la fila; el
// conjunto de asignados vive en la tabla work_order_assignees. Cada grupo de
// campos (estado+materiales vs. asignación) se escribe con una sola
// sentencia, así dos escrituras concurrentes sobre grupos distintos quedan
// en last-write-wins por grupo sin estados intermedios corruptos.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const orderSelect = `
	SELECT id, product, description, department_id, assigned_manager_id,
	       assigned_employee_id, status, materials, total_cost, created_by, created_at
	FROM work_orders`

// Create persiste una orden nueva.
func (r *WorkOrderRepo) Create(ctx context.Context, order *entity.WorkOrder) error {
	materials, err := marshalMaterials(order.Materials)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO work_orders (id, product, description, department_id, assigned_manager_id,
		                         assigned_employee_id, status, materials, total_cost, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		order.ID, order.Product, order.Description, order.DepartmentID, order.AssignedManagerID,
		order.AssignedEmployeeID, string(order.Status), materials, order.TotalCost,
		order.CreatedByID, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden completamente resuelta.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	row := r.q.QueryRow(ctx, orderSelect+` WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	if err := r.resolve(ctx, []*entity.WorkOrder{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// ListAll todas las órdenes resueltas, más recientes primero.
func (r *WorkOrderRepo) ListAll(ctx context.Context) ([]*entity.WorkOrder, error) {
	return r.list(ctx, orderSelect+` ORDER BY created_at DESC`)
}

// ListByManager órdenes cuyo jefe asignado es el dado.
func (r *WorkOrderRepo) ListByManager(ctx context.Context, managerID string) ([]*entity.WorkOrder, error) {
	return r.list(ctx, orderSelect+` WHERE assigned_manager_id = $1 ORDER BY created_at DESC`, managerID)
}

// ListByAssignee órdenes donde el empleado aparece en el campo único legado
// O en el conjunto de asignados.
func (r *WorkOrderRepo) ListByAssignee(ctx context.Context, employeeID string) ([]*entity.WorkOrder, error) {
	query := orderSelect + `
	WHERE assigned_employee_id = $1
	   OR id IN (SELECT work_order_id FROM work_order_assignees WHERE employee_id = $1)
	ORDER BY created_at DESC`
	return r.list(ctx, query, employeeID)
}

// UpdateManager escribe el jefe asignado.
func (r *WorkOrderRepo) UpdateManager(ctx context.Context, orderID, managerID string) error {
	_, err := r.q.Exec(ctx, `UPDATE work_orders SET assigned_manager_id = $2 WHERE id = $1`, orderID, managerID)
	if err != nil {
		return fmt.Errorf("update work order manager: %w", err)
	}
	return nil
}

// UpdateAssignee escribe el campo único legado de asignación.
func (r *WorkOrderRepo) UpdateAssignee(ctx context.Context, orderID, employeeID string) error {
	_, err := r.q.Exec(ctx, `UPDATE work_orders SET assigned_employee_id = $2 WHERE id = $1`, orderID, employeeID)
	if err != nil {
		return fmt.Errorf("update work order assignee: %w", err)
	}
	return nil
}

// ReplaceAssignees reemplaza el conjunto completo de asignados (no merge).
// Pensado para ejecutarse dentro de una transacción (WorkOrderTxRunner).
func (r *WorkOrderRepo) ReplaceAssignees(ctx context.Context, orderID string, employeeIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM work_order_assignees WHERE work_order_id = $1`, orderID); err != nil {
		return fmt.Errorf("clear work order assignees: %w", err)
	}
	for _, employeeID := range employeeIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO work_order_assignees (work_order_id, employee_id) VALUES ($1, $2)`,
			orderID, employeeID,
		)
		if err != nil {
			return fmt.Errorf("insert work order assignee %s: %w", employeeID, err)
		}
	}
	return nil
}

// UpdateStatus escribe el nuevo estado; con materiales, también BOM y costo
// total en la misma sentencia (grupo de campos atómico).
func (r *WorkOrderRepo) UpdateStatus(ctx context.Context, orderID string, status entity.Status, materials []entity.Material, totalCost decimal.Decimal) error {
	if materials == nil {
		_, err := r.q.Exec(ctx, `UPDATE work_orders SET status = $2 WHERE id = $1`, orderID, string(status))
		if err != nil {
			return fmt.Errorf("update work order status: %w", err)
		}
		return nil
	}
	raw, err := marshalMaterials(materials)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`UPDATE work_orders SET status = $2, materials = $3, total_cost = $4 WHERE id = $1`,
		orderID, string(status), raw, totalCost,
	)
	if err != nil {
		return fmt.Errorf("update work order status+materials: %w", err)
	}
	return nil
}

// ── Carga y resolución ────────────────────────────────────────────────────────

func (r *WorkOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.WorkOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var orders []*entity.WorkOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.resolve(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// resolve puebla departamento, jefe, asignado legado y conjunto de asignados
// de todas las órdenes con lecturas en lote (una por tipo de referencia).
// Los ids que ya no resuelven (ej. empleado dado de baja) se omiten de la
// vista resuelta en lugar de fallar.
func (r *WorkOrderRepo) resolve(ctx context.Context, orders []*entity.WorkOrder) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	// Conjunto de asignados por orden.
	assignees := make(map[string][]string)
	rows, err := r.q.Query(ctx,
		`SELECT work_order_id, employee_id FROM work_order_assignees WHERE work_order_id = ANY($1)`,
		orderIDs,
	)
	if err != nil {
		return fmt.Errorf("load work order assignees: %w", err)
	}
	for rows.Next() {
		var orderID, employeeID string
		if err := rows.Scan(&orderID, &employeeID); err != nil {
			rows.Close()
			return fmt.Errorf("scan work order assignee: %w", err)
		}
		assignees[orderID] = append(assignees[orderID], employeeID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Ids de empleados y departamentos referenciados.
	employeeIDs := make(map[string]struct{})
	departmentIDs := make(map[string]struct{})
	for _, o := range orders {
		o.AssignedEmployeeIDs = assignees[o.ID]
		departmentIDs[o.DepartmentID] = struct{}{}
		if o.AssignedManagerID != nil {
			employeeIDs[*o.AssignedManagerID] = struct{}{}
		}
		if o.AssignedEmployeeID != nil {
			employeeIDs[*o.AssignedEmployeeID] = struct{}{}
		}
		for _, id := range o.AssignedEmployeeIDs {
			employeeIDs[id] = struct{}{}
		}
	}

	departments, err := r.loadDepartments(ctx, keys(departmentIDs))
	if err != nil {
		return err
	}
	employees, err := r.loadEmployees(ctx, keys(employeeIDs))
	if err != nil {
		return err
	}

	for _, o := range orders {
		o.Department = departments[o.DepartmentID]
		if o.AssignedManagerID != nil {
			o.AssignedManager = employees[*o.AssignedManagerID]
		}
		if o.AssignedEmployeeID != nil {
			o.AssignedEmployee = employees[*o.AssignedEmployeeID]
		}
		o.AssignedEmployees = make([]entity.Employee, 0, len(o.AssignedEmployeeIDs))
		for _, id := range o.AssignedEmployeeIDs {
			if emp := employees[id]; emp != nil {
				o.AssignedEmployees = append(o.AssignedEmployees, *emp)
			}
		}
	}
	return nil
}

func (r *WorkOrderRepo) loadDepartments(ctx context.Context, ids []string) (map[string]*entity.Department, error) {
	out := make(map[string]*entity.Department, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, name, description, created_at FROM departments WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out[d.ID] = &d
	}
	return out, rows.Err()
}

func (r *WorkOrderRepo) loadEmployees(ctx context.Context, ids []string) (map[string]*entity.Employee, error) {
	out := make(map[string]*entity.Employee, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := NewEmployeeRepository(r.q).GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		out[e.ID] = e
	}
	return out, nil
}

// scanOrder lee una fila del orderSelect (sin resolver referencias).
func scanOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var o entity.WorkOrder
	var status string
	var materials []byte
	if err := row.Scan(
		&o.ID, &o.Product, &o.Description, &o.DepartmentID, &o.AssignedManagerID,
		&o.AssignedEmployeeID, &status, &materials, &o.TotalCost, &o.CreatedByID, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Status = entity.Status(status)
	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &o.Materials); err != nil {
			return nil, fmt.Errorf("unmarshal materials: %w", err)
		}
	}
	return &o, nil
}

func marshalMaterials(materials []entity.Material) ([]byte, error) {
	if materials == nil {
		materials = []entity.Material{}
	}
	raw, err := json.Marshal(materials)
	if err != nil {
		return nil, fmt.Errorf("marshal materials: %w", err)
	}
	return raw, nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

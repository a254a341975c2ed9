package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fabrica-erp/fabrica-api/internal/domain"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del repo de empleados sobre PostgreSQL. Todas
// las lecturas resuelven el departamento con un LEFT JOIN.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeSelect = `
	SELECT e.id, e.name, e.email, e.password_hash, e.role, e.department_id, e.created_at,
	       d.id, d.name, d.description, d.created_at
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id`

// Create persiste un empleado.
func (r *EmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, name, email, password_hash, role, department_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		employee.ID, employee.Name, employee.Email, employee.PasswordHash,
		string(employee.Role), employee.DepartmentID, employee.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID con su departamento resuelto.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	row := r.q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id)
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return emp, nil
}

// GetByEmail obtiene un empleado por email (para login).
func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	row := r.q.QueryRow(ctx, employeeSelect+` WHERE e.email = $1`, email)
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return emp, nil
}

// GetByIDs devuelve los empleados existentes entre los ids pedidos; los ids
// que no resuelven no aparecen en el resultado.
func (r *EmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, employeeSelect+` WHERE e.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get employees by ids: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// List lista todos los empleados con su departamento resuelto.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, employeeSelect+` ORDER BY e.name`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// ListByDepartment lista los empleados de un departamento.
func (r *EmployeeRepo) ListByDepartment(ctx context.Context, departmentID string) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, employeeSelect+` WHERE e.department_id = $1 ORDER BY e.name`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("list employees by department: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// Delete elimina un empleado. Las filas del conjunto de asignados caen por
// FK en cascada; el campo único legado de las órdenes queda en NULL (sin
// limpieza adicional, igual que el resto del sistema).
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// scanEmployee lee una fila del employeeSelect (empleado + departamento opcional).
func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	var role string
	var dID, dName, dDescription *string
	var dCreatedAt *time.Time
	if err := row.Scan(
		&e.ID, &e.Name, &e.Email, &e.PasswordHash, &role, &e.DepartmentID, &e.CreatedAt,
		&dID, &dName, &dDescription, &dCreatedAt,
	); err != nil {
		return nil, err
	}
	e.Role = entity.Role(role)
	if dID != nil {
		e.Department = &entity.Department{
			ID:          *dID,
			Name:        derefString(dName),
			Description: derefString(dDescription),
		}
		if dCreatedAt != nil {
			e.Department.CreatedAt = *dCreatedAt
		}
	}
	return &e, nil
}

func scanEmployees(rows pgx.Rows) ([]*entity.Employee, error) {
	var list []*entity.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, emp)
	}
	return list, rows.Err()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

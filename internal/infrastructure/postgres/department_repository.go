package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste un departamento.
func (r *DepartmentRepo) Create(ctx context.Context, department *entity.Department) error {
	query := `
		INSERT INTO departments (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query,
		department.ID, department.Name, department.Description, department.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	query := `
		SELECT id, name, description, created_at
		FROM departments WHERE id = $1`
	var d entity.Department
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// List lista todos los departamentos.
func (r *DepartmentRepo) List(ctx context.Context) ([]*entity.Department, error) {
	query := `
		SELECT id, name, description, created_at
		FROM departments ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

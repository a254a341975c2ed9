package repository

import (
	"context"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee:
// lookups por id, email y departamento.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	// GetByIDs devuelve los empleados existentes entre los ids pedidos;
	// los ids que no resuelven simplemente no aparecen en el resultado.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]*entity.Employee, error)
	Delete(ctx context.Context, id string) error
}

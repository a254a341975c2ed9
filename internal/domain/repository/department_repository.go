package repository

import (
	"context"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

// DepartmentRepository define el puerto de persistencia para Department (DIP).
type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	GetByID(ctx context.Context, id string) (*entity.Department, error)
	List(ctx context.Context) ([]*entity.Department, error)
}

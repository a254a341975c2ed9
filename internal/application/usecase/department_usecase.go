package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fabrica-erp/fabrica-api/internal/application/authz"
	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
)

// DepartmentUseCase CRUD mínimo de departamentos (creación es solo admin;
// el listado lo consume cualquier rol autenticado para los formularios).
type DepartmentUseCase struct {
	repo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo}
}

// Create crea un departamento.
func (uc *DepartmentUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := authz.Authorize(actor, authz.ActionCreateDepartment, authz.Resource{}); err != nil {
		return nil, err
	}
	dept := &entity.Department{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dto.NewDepartmentResponse(dept), nil
}

// List lista todos los departamentos.
func (uc *DepartmentUseCase) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, *dto.NewDepartmentResponse(d))
	}
	return out, nil
}

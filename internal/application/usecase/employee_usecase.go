package usecase

import (
	"context"

	"github.com/fabrica-erp/fabrica-api/internal/application/authz"
	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/domain"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
)

// EmployeeUseCase operaciones de plantilla expuestas por la API: listado
// resuelto y baja de empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// List lista todos los empleados con su departamento resuelto.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, *dto.NewEmployeeResponse(e))
	}
	return out, nil
}

// Delete elimina un empleado (solo admin). No hay limpieza en cascada de las
// órdenes que lo referencian: las vistas resueltas simplemente omiten el id
// que ya no resuelve.
func (uc *EmployeeUseCase) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := authz.Authorize(actor, authz.ActionDeleteEmployee, authz.Resource{}); err != nil {
		return err
	}
	emp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrEmployeeNotFound
	}
	return uc.repo.Delete(ctx, id)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/fabrica-erp/fabrica-api/internal/application/authz"
	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/domain"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
)

// DashboardUseCase resúmenes de conteo para los dashboards de admin y jefe.
//
// Fuente de datos: AnalyticsRepository (consultas read-only); no toca las
// tablas directamente. Las consultas independientes se lanzan en paralelo.
type DashboardUseCase struct {
	analytics   repository.AnalyticsRepository
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analytics repository.AnalyticsRepository,
	employees repository.EmployeeRepository,
	departments repository.DepartmentRepository,
) *DashboardUseCase {
	return &DashboardUseCase{analytics: analytics, employees: employees, departments: departments}
}

// AdminSummary conteos globales: empleados, jefes, órdenes y líneas de
// materiales agregadas. Cuatro consultas en paralelo.
func (uc *DashboardUseCase) AdminSummary(ctx context.Context, actor authz.Actor) (*dto.AdminSummaryResponse, error) {
	if err := authz.Authorize(actor, authz.ActionAdminSummary, authz.Resource{}); err != nil {
		return nil, err
	}

	admin, err := uc.employees.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrEmployeeNotFound
	}

	type countResult struct {
		n   int
		err error
	}
	employeesCh := make(chan countResult, 1)
	managersCh := make(chan countResult, 1)
	ordersCh := make(chan countResult, 1)
	materialsCh := make(chan countResult, 1)

	go func() {
		n, err := uc.analytics.CountEmployeesByRole(ctx, entity.RoleEmployee)
		employeesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analytics.CountEmployeesByRole(ctx, entity.RoleManager)
		managersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analytics.CountWorkOrders(ctx)
		ordersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analytics.CountMaterialLines(ctx)
		materialsCh <- countResult{n, err}
	}()

	employees := <-employeesCh
	managers := <-managersCh
	orders := <-ordersCh
	materials := <-materialsCh

	for _, r := range []countResult{employees, managers, orders, materials} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: conteos de admin: %w", r.err)
		}
	}

	return &dto.AdminSummaryResponse{
		AdminName:      admin.Name,
		Employees:      employees.n,
		Managers:       managers.n,
		WorkOrders:     orders.n,
		InventoryItems: materials.n,
	}, nil
}

// ManagerSummary conteos del departamento del jefe logueado: empleados del
// departamento, órdenes asignadas al jefe y cuántas de ellas completadas.
// ManagerDepartment queda nil si el jefe no tiene departamento.
func (uc *DashboardUseCase) ManagerSummary(ctx context.Context, actor authz.Actor) (*dto.ManagerSummaryResponse, error) {
	if err := authz.Authorize(actor, authz.ActionManagerSummary, authz.Resource{}); err != nil {
		return nil, err
	}

	mgr, err := uc.employees.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if mgr == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if mgr.DepartmentID == nil {
		return &dto.ManagerSummaryResponse{ManagerName: mgr.Name}, nil
	}

	dept, err := uc.departments.GetByID(ctx, *mgr.DepartmentID)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrDepartmentNotFound
	}

	type countResult struct {
		n   int
		err error
	}
	employeesCh := make(chan countResult, 1)
	assignedCh := make(chan countResult, 1)
	completedCh := make(chan countResult, 1)

	go func() {
		n, err := uc.analytics.CountEmployeesByDepartment(ctx, dept.ID)
		employeesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analytics.CountOrdersByManager(ctx, dept.ID, mgr.ID)
		assignedCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analytics.CountCompletedOrdersByManager(ctx, dept.ID, mgr.ID)
		completedCh <- countResult{n, err}
	}()

	employees := <-employeesCh
	assigned := <-assignedCh
	completed := <-completedCh

	for _, r := range []countResult{employees, assigned, completed} {
		if r.err != nil {
			return nil, fmt.Errorf("dashboard: conteos del jefe: %w", r.err)
		}
	}

	return &dto.ManagerSummaryResponse{
		ManagerName: mgr.Name,
		ManagerDepartment: &dto.ManagerDepartmentSummary{
			DepartmentID:        dept.ID,
			DepartmentName:      dept.Name,
			EmployeesCount:      employees.n,
			AssignedWorkOrders:  assigned.n,
			CompletedWorkOrders: completed.n,
		},
	}, nil
}

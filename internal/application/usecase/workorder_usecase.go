package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fabrica-erp/fabrica-api/internal/application/authz"
	"github.com/fabrica-erp/fabrica-api/internal/application/dto"
	"github.com/fabrica-erp/fabrica-api/internal/application/ports"
	"github.com/fabrica-erp/fabrica-api/internal/domain"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/repository"
	"github.com/fabrica-erp/fabrica-api/internal/domain/workorder"
)

// WorkOrderUseCase núcleo del sistema: creación de órdenes, motor de
// asignación y máquina de estados. Toda mutación valida primero contra el
// guard de autorización y los repos de empleados, y al confirmar emite la orden
// resuelta por el Broadcaster.
type WorkOrderUseCase struct {
	orders      repository.WorkOrderRepository
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	tx          repository.WorkOrderTxRunner
	broadcaster ports.Broadcaster
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(
	orders repository.WorkOrderRepository,
	employees repository.EmployeeRepository,
	departments repository.DepartmentRepository,
	tx repository.WorkOrderTxRunner,
	broadcaster ports.Broadcaster,
) *WorkOrderUseCase {
	return &WorkOrderUseCase{
		orders:      orders,
		employees:   employees,
		departments: departments,
		tx:          tx,
		broadcaster: broadcaster,
	}
}

// Create crea una orden (solo admin). Si viene un jefe asignado, debe ser un
// manager del departamento indicado; si no, la creación falla completa sin
// escribir nada.
func (uc *WorkOrderUseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	if err := authz.Authorize(actor, authz.ActionCreateWorkOrder, authz.Resource{}); err != nil {
		return nil, err
	}

	dept, err := uc.departments.GetByID(ctx, in.Department)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrDepartmentNotFound
	}

	var managerID *string
	if in.AssignedManager != "" {
		if err := uc.validateManager(ctx, in.AssignedManager, dept.ID); err != nil {
			return nil, err
		}
		managerID = &in.AssignedManager
	}

	materials := toMaterials(in.Materials)
	order := &entity.WorkOrder{
		ID:                uuid.New().String(),
		Product:           in.Product,
		Description:       in.Description,
		DepartmentID:      dept.ID,
		AssignedManagerID: managerID,
		Status:            entity.StatusPending,
		Materials:         materials,
		TotalCost:         workorder.TotalCost(materials),
		CreatedByID:       actor.ID,
		CreatedAt:         time.Now(),
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return uc.resolveAndEmit(ctx, order.ID, ports.EventWorkOrderCreated)
}

// AssignManager asigna el jefe responsable de la orden. Admin puede hacerlo
// sobre cualquier orden; un manager solo dentro de su propio departamento.
func (uc *WorkOrderUseCase) AssignManager(ctx context.Context, actor authz.Actor, orderID, managerID string) (*dto.WorkOrderResponse, error) {
	order, err := uc.mustGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionAssignManager, authz.Resource{Order: order}); err != nil {
		return nil, err
	}
	if err := uc.validateManager(ctx, managerID, order.DepartmentID); err != nil {
		return nil, err
	}
	if err := uc.orders.UpdateManager(ctx, orderID, managerID); err != nil {
		return nil, err
	}
	return uc.resolveAndEmit(ctx, orderID, ports.EventWorkOrderUpdated)
}

// AssignEmployee vía legada de asignación única. El empleado debe existir y
// pertenecer al departamento de la orden.
func (uc *WorkOrderUseCase) AssignEmployee(ctx context.Context, actor authz.Actor, orderID, employeeID string) (*dto.WorkOrderResponse, error) {
	order, err := uc.mustGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionAssign, authz.Resource{Order: order}); err != nil {
		return nil, err
	}
	if err := uc.validateAssignees(ctx, []string{employeeID}, order.DepartmentID); err != nil {
		return nil, err
	}
	if err := uc.orders.UpdateAssignee(ctx, orderID, employeeID); err != nil {
		return nil, err
	}
	return uc.resolveAndEmit(ctx, orderID, ports.EventWorkOrderUpdated)
}

// AssignEmployees vía actual: reemplaza el conjunto completo de asignados.
// Atómico: o todos los candidatos pasan la validación y el conjunto se
// aplica, o ninguno (el primer id inválido aborta con AssignmentError).
func (uc *WorkOrderUseCase) AssignEmployees(ctx context.Context, actor authz.Actor, orderID string, employeeIDs []string) (*dto.WorkOrderResponse, error) {
	order, err := uc.mustGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionAssign, authz.Resource{Order: order}); err != nil {
		return nil, err
	}

	ids := dedupe(employeeIDs)
	if err := uc.validateAssignees(ctx, ids, order.DepartmentID); err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(orders repository.WorkOrderRepository) error {
		return orders.ReplaceAssignees(ctx, orderID, ids)
	})
	if err != nil {
		return nil, err
	}
	return uc.resolveAndEmit(ctx, orderID, ports.EventWorkOrderUpdated)
}

// SetStatus aplica una transición de estado (manager del departamento o
// empleado asignado). Si vienen materiales, el costo total se recalcula en
// el servidor a partir de las líneas; sin materiales, BOM y costo quedan
// intactos. Estado + materiales + costo se escriben en una sola sentencia.
func (uc *WorkOrderUseCase) SetStatus(ctx context.Context, actor authz.Actor, orderID string, in dto.SetStatusRequest) (*dto.WorkOrderResponse, error) {
	status, ok := entity.ParseStatus(in.Status)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}
	order, err := uc.mustGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionSetStatus, authz.Resource{Order: order}); err != nil {
		return nil, err
	}
	if !workorder.CanTransition(order.Status, status) {
		return nil, domain.ErrInvalidStatus
	}

	materials := toMaterials(in.Materials)
	if err := uc.orders.UpdateStatus(ctx, orderID, status, materials, workorder.TotalCost(materials)); err != nil {
		return nil, err
	}
	return uc.resolveAndEmit(ctx, orderID, ports.EventWorkOrderUpdated)
}

// GetByID devuelve la orden resuelta; el acceso se decide con la acción dada
// (ej. export de reporte).
func (uc *WorkOrderUseCase) GetByID(ctx context.Context, actor authz.Actor, action authz.Action, orderID string) (*entity.WorkOrder, error) {
	order, err := uc.mustGetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, action, authz.Resource{Order: order}); err != nil {
		return nil, err
	}
	return order, nil
}

// ListAll todas las órdenes resueltas (solo admin).
func (uc *WorkOrderUseCase) ListAll(ctx context.Context, actor authz.Actor) (*dto.WorkOrderListResponse, error) {
	if err := authz.Authorize(actor, authz.ActionListAll, authz.Resource{}); err != nil {
		return nil, err
	}
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toListResponse(orders), nil
}

// ListForManager órdenes cuyo jefe asignado es el caller.
func (uc *WorkOrderUseCase) ListForManager(ctx context.Context, actor authz.Actor) (*dto.WorkOrderListResponse, error) {
	orders, err := uc.orders.ListByManager(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toListResponse(orders), nil
}

// ListForEmployee órdenes donde el caller aparece en el campo único legado
// O en el conjunto de asignados.
func (uc *WorkOrderUseCase) ListForEmployee(ctx context.Context, actor authz.Actor) (*dto.WorkOrderListResponse, error) {
	orders, err := uc.orders.ListByAssignee(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return toListResponse(orders), nil
}

// ── Validaciones contra el repo de empleados ─────────────────────────────────

// validateManager: el id debe resolver a un manager del departamento dado.
func (uc *WorkOrderUseCase) validateManager(ctx context.Context, managerID, departmentID string) error {
	mgr, err := uc.employees.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if mgr == nil || mgr.Role != entity.RoleManager {
		return &domain.AssignmentError{EmployeeID: managerID, Reason: domain.AssignReasonNotFound}
	}
	if !mgr.InDepartment(departmentID) {
		return &domain.AssignmentError{EmployeeID: managerID, Reason: domain.AssignReasonWrongDepartment}
	}
	return nil
}

// validateAssignees: cada candidato debe existir y pertenecer al departamento
// de la orden. Falla con el id exacto del primer candidato inválido.
func (uc *WorkOrderUseCase) validateAssignees(ctx context.Context, employeeIDs []string, departmentID string) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	found, err := uc.employees.GetByIDs(ctx, employeeIDs)
	if err != nil {
		return err
	}
	byID := make(map[string]*entity.Employee, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	for _, id := range employeeIDs {
		emp, ok := byID[id]
		if !ok {
			return &domain.AssignmentError{EmployeeID: id, Reason: domain.AssignReasonNotFound}
		}
		if !emp.InDepartment(departmentID) {
			return &domain.AssignmentError{EmployeeID: id, Reason: domain.AssignReasonWrongDepartment}
		}
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (uc *WorkOrderUseCase) mustGetOrder(ctx context.Context, orderID string) (*entity.WorkOrder, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// resolveAndEmit relee la orden completamente resuelta y la emite. Usa un
// contexto sin cancelación: el emit debe dispararse aunque la conexión del
// caller original ya se haya caído.
func (uc *WorkOrderUseCase) resolveAndEmit(ctx context.Context, orderID, event string) (*dto.WorkOrderResponse, error) {
	resolved, err := uc.orders.GetByID(context.WithoutCancel(ctx), orderID)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, domain.ErrOrderNotFound
	}
	out := dto.NewWorkOrderResponse(resolved)
	uc.broadcaster.Broadcast(event, out)
	return out, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toMaterials(in []dto.MaterialDTO) []entity.Material {
	if in == nil {
		return nil
	}
	out := make([]entity.Material, 0, len(in))
	for _, m := range in {
		out = append(out, entity.Material{Name: m.Name, Quantity: m.Quantity, Price: m.Price})
	}
	return out
}

func toListResponse(orders []*entity.WorkOrder) *dto.WorkOrderListResponse {
	items := make([]dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *dto.NewWorkOrderResponse(o))
	}
	return &dto.WorkOrderListResponse{Items: items}
}

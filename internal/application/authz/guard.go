// Package authz implementa el guard de autorización: un predicado puro
// sobre el caller, la acción pedida y el estado actual del recurso. No tiene
// efectos secundarios ni acceso a infraestructura; los casos de uso lo
// invocan antes de tocar la persistencia.
package authz

import (
	"github.com/fabrica-erp/fabrica-api/internal/domain"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

// Actor identidad verificada del caller: (id, rol, departamento), resuelta
// por la capa de autenticación a partir del token.
type Actor struct {
	ID           string
	Role         entity.Role
	DepartmentID *string
}

// Action acción sobre la que decide el guard.
type Action string

// Acciones del núcleo.
const (
	ActionCreateWorkOrder  Action = "workorder:create"
	ActionAssignManager    Action = "workorder:assign-manager"
	ActionAssign           Action = "workorder:assign"
	ActionSetStatus        Action = "workorder:set-status"
	ActionListAll          Action = "workorder:list-all"
	ActionExportReport     Action = "workorder:export-report"
	ActionCreateDepartment Action = "department:create"
	ActionDeleteEmployee   Action = "employee:delete"
	ActionAdminSummary     Action = "dashboard:summary"
	ActionManagerSummary   Action = "dashboard:manager-summary"
)

// Resource contexto del recurso afectado. Order es nil para acciones que no
// apuntan a una orden concreta (creación, listados, dashboards).
type Resource struct {
	Order *entity.WorkOrder
}

// Authorize acepta o rechaza la acción. Los rechazos son distinguibles:
// ErrNoCredential (sin identidad), ErrRoleNotPermitted (rol equivocado) y
// ErrOutOfScope (rol correcto, pero otro departamento u orden no asignada).
func Authorize(actor Actor, action Action, res Resource) error {
	if actor.ID == "" {
		return domain.ErrNoCredential
	}
	if _, ok := entity.ParseRole(string(actor.Role)); !ok {
		return domain.ErrNoCredential
	}

	switch action {
	case ActionCreateWorkOrder, ActionCreateDepartment, ActionDeleteEmployee, ActionListAll, ActionAdminSummary:
		return requireRole(actor, entity.RoleAdmin)

	case ActionManagerSummary:
		return requireRole(actor, entity.RoleManager)

	case ActionAssign:
		if err := requireRole(actor, entity.RoleManager); err != nil {
			return err
		}
		return requireOwnDepartment(actor, res.Order)

	case ActionAssignManager, ActionExportReport:
		switch actor.Role {
		case entity.RoleAdmin:
			return nil
		case entity.RoleManager:
			return requireOwnDepartment(actor, res.Order)
		case entity.RoleEmployee:
			return domain.ErrRoleNotPermitted
		}

	case ActionSetStatus:
		switch actor.Role {
		case entity.RoleManager:
			return requireOwnDepartment(actor, res.Order)
		case entity.RoleEmployee:
			if res.Order == nil || !res.Order.IsAssignedTo(actor.ID) {
				return domain.ErrOutOfScope
			}
			return nil
		case entity.RoleAdmin:
			return domain.ErrRoleNotPermitted
		}
	}

	return domain.ErrRoleNotPermitted
}

func requireRole(actor Actor, role entity.Role) error {
	if actor.Role != role {
		return domain.ErrRoleNotPermitted
	}
	return nil
}

// requireOwnDepartment: un jefe solo actúa sobre órdenes de su propio departamento.
func requireOwnDepartment(actor Actor, order *entity.WorkOrder) error {
	if order == nil || actor.DepartmentID == nil || *actor.DepartmentID != order.DepartmentID {
		return domain.ErrOutOfScope
	}
	return nil
}

package dto

import "github.com/fabrica-erp/fabrica-api/internal/domain/entity"

// NewDepartmentResponse mapea un departamento a su DTO.
func NewDepartmentResponse(d *entity.Department) *DepartmentResponse {
	if d == nil {
		return nil
	}
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

// NewEmployeeResponse mapea un empleado (con departamento resuelto) a su DTO.
func NewEmployeeResponse(e *entity.Employee) *EmployeeResponse {
	if e == nil {
		return nil
	}
	return &EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       string(e.Role),
		Department: NewDepartmentResponse(e.Department),
		CreatedAt:  e.CreatedAt,
	}
}

// NewMaterialDTOs mapea la lista de materiales.
func NewMaterialDTOs(materials []entity.Material) []MaterialDTO {
	out := make([]MaterialDTO, 0, len(materials))
	for _, m := range materials {
		out = append(out, MaterialDTO{Name: m.Name, Quantity: m.Quantity, Price: m.Price})
	}
	return out
}

// NewWorkOrderResponse mapea una orden resuelta a su DTO. Es el payload que
// reciben tanto los callers HTTP como los suscriptores de tiempo real.
func NewWorkOrderResponse(o *entity.WorkOrder) *WorkOrderResponse {
	if o == nil {
		return nil
	}
	assignees := make([]EmployeeResponse, 0, len(o.AssignedEmployees))
	for i := range o.AssignedEmployees {
		assignees = append(assignees, *NewEmployeeResponse(&o.AssignedEmployees[i]))
	}
	return &WorkOrderResponse{
		ID:                o.ID,
		Product:           o.Product,
		Description:       o.Description,
		Department:        NewDepartmentResponse(o.Department),
		AssignedManager:   NewEmployeeResponse(o.AssignedManager),
		AssignedEmployee:  NewEmployeeResponse(o.AssignedEmployee),
		AssignedEmployees: assignees,
		Status:            string(o.Status),
		Materials:         NewMaterialDTOs(o.Materials),
		TotalCost:         o.TotalCost,
		CreatedBy:         o.CreatedByID,
		CreatedAt:         o.CreatedAt,
	}
}

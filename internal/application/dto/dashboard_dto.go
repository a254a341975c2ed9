package dto

// AdminSummaryResponse conteos globales del dashboard de administración.
// InventoryItems es el total de líneas de materiales sobre todas las órdenes.
type AdminSummaryResponse struct {
	AdminName      string `json:"admin_name"`
	Employees      int    `json:"employees"`
	Managers       int    `json:"managers"`
	WorkOrders     int    `json:"work_orders"`
	InventoryItems int    `json:"inventory_items"`
}

// ManagerDepartmentSummary conteos del departamento del jefe logueado.
type ManagerDepartmentSummary struct {
	DepartmentID        string `json:"department_id"`
	DepartmentName      string `json:"department_name"`
	EmployeesCount      int    `json:"employees_count"`
	AssignedWorkOrders  int    `json:"assigned_work_orders"`
	CompletedWorkOrders int    `json:"completed_work_orders"`
}

// ManagerSummaryResponse resumen por departamento para el jefe logueado.
// ManagerDepartment es nil si el jefe no tiene departamento asignado.
type ManagerSummaryResponse struct {
	ManagerName       string                    `json:"manager_name"`
	ManagerDepartment *ManagerDepartmentSummary `json:"manager_department"`
}

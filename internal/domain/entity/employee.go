package entity

import "time"

// Role rol cerrado de un empleado. Se valida con ParseRole; el guard de
// autorización hace switch exhaustivo sobre este tipo, no sobre strings sueltos.
type Role string

// Roles válidos para Employee.
const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole valida un rol recibido por la API. Devuelve false si no es uno de los tres roles del sistema.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// RequiresDepartment indica si el rol exige pertenecer a un departamento al crearse.
func (r Role) RequiresDepartment() bool {
	return r == RoleManager || r == RoleEmployee
}

// Employee representa a una persona del sistema: administrador, jefe de
// departamento o empleado de planta.
//
// DepartmentID es obligatorio para manager/employee al momento de crear la
// cuenta; para admin es conceptualmente opcional. Department es la vista
// resuelta que cargan los repositorios para los consumidores de solo lectura.
type Employee struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         Role
	DepartmentID *string
	Department   *Department // resuelto (puede ser nil para admin)
	CreatedAt    time.Time
}

// InDepartment indica si el empleado pertenece al departamento dado.
func (e *Employee) InDepartment(departmentID string) bool {
	return e.DepartmentID != nil && *e.DepartmentID == departmentID
}

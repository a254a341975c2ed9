package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrOrderNotFound      = errors.New("orden de trabajo no encontrada")
	ErrEmployeeNotFound   = errors.New("empleado no encontrado")
	ErrDepartmentNotFound = errors.New("departamento no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrInvalidStatus      = errors.New("estado inválido")

	// Razones de rechazo del guard de autorización, distinguibles entre sí:
	// sin credencial, rol incorrecto, y rol correcto pero fuera de alcance
	// (otro departamento u orden no asignada).
	ErrNoCredential     = errors.New("credencial ausente o inválida")
	ErrRoleNotPermitted = errors.New("rol no permitido para esta operación")
	ErrOutOfScope       = errors.New("fuera del alcance del departamento o asignación")
)

// Razones de una asignación inválida.
const (
	AssignReasonNotFound        = "no existe"
	AssignReasonWrongDepartment = "no pertenece al departamento de la orden"
)

// AssignmentError identifica exactamente qué empleado falló la validación de
// asignación y por qué (no existe vs. departamento equivocado). La llamada
// completa es atómica: si un candidato falla, no se aplica ninguno.
type AssignmentError struct {
	EmployeeID string
	Reason     string
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("asignación inválida: empleado %s %s", e.EmployeeID, e.Reason)
}

// IsAssignmentError extrae un *AssignmentError de la cadena de errores.
func IsAssignmentError(err error) (*AssignmentError, bool) {
	var ae *AssignmentError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

package dto

import "time"

// RegisterRequest entrada para registrar una cuenta. Department es
// obligatorio para los roles manager y employee.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token + usuario resuelto.
type LoginResponse struct {
	Token string           `json:"token"`
	User  EmployeeResponse `json:"user"`
}

// EmployeeResponse salida de un empleado con su departamento resuelto.
type EmployeeResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Role       string              `json:"role"`
	Department *DepartmentResponse `json:"department"`
	CreatedAt  time.Time           `json:"created_at"`
}

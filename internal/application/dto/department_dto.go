package dto

import "time"

// CreateDepartmentRequest entrada para crear un departamento (solo admin).
type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
}

// DepartmentResponse salida de un departamento.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

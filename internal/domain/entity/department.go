package entity

import "time"

// Department representa un departamento de planta (Soldadura, Pintura, etc.).
// Identidad inmutable: siempre se referencia por ID, nunca se embebe.
type Department struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

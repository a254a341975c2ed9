package dto

// ErrorResponse cuerpo de error HTTP. Code es el tipo distinguible por
// máquina; Message la razón legible que el caller debe mostrar.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

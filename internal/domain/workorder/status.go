// Package workorder contiene la lógica pura del ciclo de vida de una orden
// de trabajo: legalidad de transiciones de estado y costo de la lista de
// materiales (servicios de dominio, sin dependencias de infraestructura).
package workorder

import (
	"github.com/shopspring/decimal"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

// CanTransition decide si el cambio from → to es legal. Único punto de
// decisión de la política de transiciones: hoy es permisiva (cualquier
// estado del conjunto puede escribirse sobre cualquier otro y Completed no
// es terminal). Endurecer la política es editar solo esta función; los
// callers no cambian.
func CanTransition(from, to entity.Status) bool {
	_, okFrom := entity.ParseStatus(string(from))
	_, okTo := entity.ParseStatus(string(to))
	return okFrom && okTo
}

// TotalCost recalcula el costo total de la lista de materiales:
// Σ(cantidad × precio). El motor de estados siempre recalcula desde los
// materiales en lugar de confiar en un total enviado por el caller.
func TotalCost(materials []entity.Material) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(m.Quantity.Mul(m.Price))
	}
	return total
}

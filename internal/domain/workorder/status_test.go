package workorder_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
	"github.com/fabrica-erp/fabrica-api/internal/domain/workorder"
)

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_EstadosConocidos(t *testing.T) {
	known := []entity.Status{entity.StatusPending, entity.StatusInProgress, entity.StatusCompleted}

	// Cualquier par de estados válidos es una transición permitida,
	// incluidos los retrocesos (Completed → In Progress) y los no-op.
	for _, from := range known {
		for _, to := range known {
			assert.True(t, workorder.CanTransition(from, to),
				"la transición %s → %s debe permitirse", from, to)
		}
	}
}

func TestCanTransition_EstadoDesconocido(t *testing.T) {
	assert.False(t, workorder.CanTransition(entity.StatusPending, entity.Status("Cancelled")),
		"un estado destino desconocido debe rechazarse")
	assert.False(t, workorder.CanTransition(entity.Status(""), entity.StatusPending),
		"un estado origen vacío debe rechazarse")
	assert.False(t, workorder.CanTransition(entity.Status("pending"), entity.StatusCompleted),
		"los estados distinguen mayúsculas: 'pending' no es 'Pending'")
}

// ──────────────────────────────────────────────────────────────────────────────
// Costo total
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalCost_SumaExacta(t *testing.T) {
	materials := []entity.Material{
		{Name: "Tornillo", Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(2)},
		{Name: "Lámina", Quantity: decimal.NewFromInt(3), Price: decimal.RequireFromString("15.50")},
	}

	total := workorder.TotalCost(materials)
	assert.True(t, total.Equal(decimal.RequireFromString("66.50")),
		"10×2 + 3×15.50 = 66.50, se obtuvo %s", total)
}

func TestTotalCost_DecimalesSinErrorDeFlotante(t *testing.T) {
	// 0.1 × 3 debe ser exactamente 0.3, no 0.30000000000000004.
	materials := []entity.Material{
		{Name: "Cable", Quantity: decimal.NewFromInt(3), Price: decimal.RequireFromString("0.1")},
	}
	assert.True(t, workorder.TotalCost(materials).Equal(decimal.RequireFromString("0.3")))
}

func TestTotalCost_SinMateriales(t *testing.T) {
	assert.True(t, workorder.TotalCost(nil).IsZero())
	assert.True(t, workorder.TotalCost([]entity.Material{}).IsZero())
}

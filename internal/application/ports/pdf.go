package ports

import (
	"context"

	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

// WorkOrderPDFGenerator genera la ficha imprimible de una orden de trabajo
// (datos generales + tabla de materiales + costo total).
type WorkOrderPDFGenerator interface {
	GenerateWorkOrderPDF(ctx context.Context, order *entity.WorkOrder) ([]byte, error)
}

package usecase

import (
	"context"

	"github.com/fabrica-erp/fabrica-api/internal/application/authz"
	"github.com/fabrica-erp/fabrica-api/internal/application/ports"
)

// ReportUseCase exporta la ficha PDF de una orden de trabajo (admin, o jefe
// del departamento de la orden).
type ReportUseCase struct {
	workOrders *WorkOrderUseCase
	pdf        ports.WorkOrderPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(workOrders *WorkOrderUseCase, pdf ports.WorkOrderPDFGenerator) *ReportUseCase {
	return &ReportUseCase{workOrders: workOrders, pdf: pdf}
}

// WorkOrderPDF genera el PDF de la orden resuelta.
func (uc *ReportUseCase) WorkOrderPDF(ctx context.Context, actor authz.Actor, orderID string) ([]byte, error) {
	order, err := uc.workOrders.GetByID(ctx, actor, authz.ActionExportReport, orderID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateWorkOrderPDF(ctx, order)
}

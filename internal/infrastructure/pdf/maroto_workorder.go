// Package pdf genera la ficha imprimible de una orden de trabajo:
// datos generales + responsables + tabla de materiales + costo total.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/fabrica-erp/fabrica-api/internal/application/ports"
	"github.com/fabrica-erp/fabrica-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.WorkOrderPDFGenerator = (*MarotoWorkOrderGenerator)(nil)

// MarotoWorkOrderGenerator implementa ports.WorkOrderPDFGenerator usando Maroto v2.
type MarotoWorkOrderGenerator struct{}

// NewMarotoWorkOrderGenerator construye el generador.
func NewMarotoWorkOrderGenerator() *MarotoWorkOrderGenerator { return &MarotoWorkOrderGenerator{} }

// GenerateWorkOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoWorkOrderGenerator) GenerateWorkOrderPDF(_ context.Context, order *entity.WorkOrder) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Trabajo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(responsiblesRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range materialRows(order.Materials) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: producto + estado (izq) y número de orden + fecha (der).
func headerRow(order *entity.WorkOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(order.Product, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+string(order.Status), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// responsiblesRow: departamento, jefe y asignados.
func responsiblesRow(order *entity.WorkOrder) core.Row {
	dept := "—"
	if order.Department != nil {
		dept = order.Department.Name
	}
	manager := "—"
	if order.AssignedManager != nil {
		manager = order.AssignedManager.Name
	}
	names := make([]string, 0, len(order.AssignedEmployees)+1)
	if order.AssignedEmployee != nil {
		names = append(names, order.AssignedEmployee.Name)
	}
	for _, e := range order.AssignedEmployees {
		names = append(names, e.Name)
	}
	assignees := "—"
	if len(names) > 0 {
		assignees = strings.Join(names, ", ")
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("RESPONSABLES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Departamento: %s   |   Jefe: %s", dept, manager),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New("Asignados: "+assignees,
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Material", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// materialRows: una fila por línea del BOM.
func materialRows(materials []entity.Material) []core.Row {
	result := make([]core.Row, 0, len(materials))
	for _, mat := range materials {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mat.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				mat.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+mat.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+mat.Quantity.Mul(mat.Price).StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: costo total alineado a la derecha.
func totalRow(order *entity.WorkOrder) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("COSTO TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+order.TotalCost.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// shortID: prefijo legible del UUID para el encabezado.
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}

// Package pdf implementa la representación PDF del reporte de stock bajo
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + fecha de generación           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Alimento | Estoque | Mínimo | Categoria | Local  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: cantidad de alimentos en stock bajo                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/despensa-core/internal/application/report"
	"github.com/jhoicas/despensa-core/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarning = &props.Color{Red: 180, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Ensure MarotoReportGenerator implements report.LowStockPDFGenerator.
var _ report.LowStockPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.LowStockPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateLowStockPDF(title string, items []*entity.Item, now time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, now))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string, now time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+now.Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de alimentos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Alimento", 4, align.Left),
		h("Estoque", 1, align.Center),
		h("Mínimo", 1, align.Center),
		h("Categoria", 2, align.Left),
		h("Localização", 3, align.Left),
	)
}

// tableItemRows: una fila por alimento; existencia en cero resaltada en rojo,
// el resto del stock bajo en ámbar.
func tableItemRows(items []*entity.Item) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		qtyColor := colorWarning
		if it.IsCritical() {
			qtyColor = colorDanger
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(it.Quantity),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: qtyColor},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(it.MinStock),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.Category,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.Location,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// totalRow: conteo final, mismo texto que el reporte en texto plano.
func totalRow(count int) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total: %d Alimentos", count), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 1,
			}),
		),
	)
}

// Package pdf implementa la generación del informe de antigüedad de saldos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del informe  │  Período + Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Cuentas / Corriente / 30 / 60 / 90 / 120+ / Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cuenta | Corriente | 30d | 60d | 90d | 120+ | Total  │
//	│         (cuentas de mayor deuda, hasta 50 filas)             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/application/reports"
	"github.com/tu-usuario/municare-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.AgedReportGenerator = (*MarotoAgedReportGenerator)(nil)

// MarotoAgedReportGenerator implementa reports.AgedReportGenerator usando Maroto v2.
type MarotoAgedReportGenerator struct {
	appName string
}

// NewMarotoAgedReportGenerator construye el generador.
func NewMarotoAgedReportGenerator(appName string) *MarotoAgedReportGenerator {
	return &MarotoAgedReportGenerator{appName: appName}
}

// GenerateAgedReport genera el PDF y devuelve sus bytes.
func (g *MarotoAgedReportGenerator) GenerateAgedReport(
	_ context.Context,
	summary dto.AgedSummaryDTO,
	records []*entity.AgedRecord,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Antigüedad de Saldos "+summary.Period, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, summary.Period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de mayores deudores
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(records) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del informe (izq) y período + fecha de emisión (der).
func headerRow(appName, period string) core.Row {
	emitted := time.Now().Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("INFORME DE ANTIGÜEDAD DE SALDOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 3,
			}),
			text.New("Emitido: "+emitted, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// summaryRows: totales del período por tramo.
func summaryRows(s dto.AgedSummaryDTO) []core.Row {
	label := func(l string) core.Component {
		return text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: align.Center,
			Color: colorGray, Top: 1,
		})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 5,
		})
	}
	cell := func(l, v string) core.Col {
		return col.New(2).Add(label(l), value(v))
	}

	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("RESUMEN DEL PERÍODO (%d cuentas)", s.Accounts), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
		row.New(11).Add(
			cell("Corriente", s.Current),
			cell("30 días", s.Days30),
			cell("60 días", s.Days60),
			cell("90 días", s.Days90),
			cell("120+ días", s.Days120Plus),
			cell("TOTAL", s.Total),
		),
	}
}

// tableHeaderRow: cabecera de la tabla de mayores deudores.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cuenta", 2, align.Left),
		h("Corriente", 2, align.Right),
		h("30 días", 2, align.Right),
		h("60 días", 2, align.Right),
		h("90/120+", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por cuenta, ya ordenadas por deuda descendente.
func tableDetailRows(records []*entity.AgedRecord) []core.Row {
	cell := func(v string, a align.Type) core.Col {
		return col.New(2).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(records))
	for _, r := range records {
		overdue := r.Days90.Add(r.Days120Plus)
		result = append(result, row.New(7).Add(
			cell(r.AccountNumber, align.Left),
			cell(r.Current.StringFixed(2), align.Right),
			cell(r.Days30.StringFixed(2), align.Right),
			cell(r.Days60.StringFixed(2), align.Right),
			cell(overdue.StringFixed(2), align.Right),
			cell(r.Total.StringFixed(2), align.Right),
		))
	}
	return result
}

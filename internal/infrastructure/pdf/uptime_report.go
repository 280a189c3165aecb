// Package pdf genera el reporte de disponibilidad de un controlador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Controlador + número │ Rango de fechas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Minutos en línea / fuera de línea / % uptime       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Día | Inicio | Fin | Estado | Minutos                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el número del controlador                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Telemetria-api/internal/application/analytics"
	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

var _ analytics.UptimeReportGenerator = (*UptimeReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDown    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// UptimeReportGenerator implementa analytics.UptimeReportGenerator usando Maroto v2.
type UptimeReportGenerator struct{}

// NewUptimeReportGenerator construye el generador.
func NewUptimeReportGenerator() *UptimeReportGenerator { return &UptimeReportGenerator{} }

// GenerateUptimeReport genera el PDF y devuelve sus bytes.
func (g *UptimeReportGenerator) GenerateUptimeReport(controller *entity.Controller, report *dto.UptimeResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de disponibilidad", true).
		WithAuthor(controller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(controller, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(intervalRows(report.DailyActivity)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(controller))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(controller *entity.Controller, report *dto.UptimeResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(controller.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Número: "+nonEmpty(controller.Address, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE DISPONIBILIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(report.StartDate+" a "+report.EndDate, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

func totalsRow(report *dto.UptimeResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		cell("Minutos en línea", report.UptimeMinutes.StringFixed(1)),
		cell("Minutos fuera de línea", report.DowntimeMinutes.StringFixed(1)),
		cell("Disponibilidad", report.UptimePercent.StringFixed(2)+"%"),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Día", 3, align.Left),
		h("Inicio", 2, align.Center),
		h("Fin", 2, align.Center),
		h("Estado", 3, align.Center),
		h("Minutos", 2, align.Right),
	)
}

// intervalRows una fila por intervalo, días en orden cronológico.
func intervalRows(daily map[string][]dto.IntervalDTO) []core.Row {
	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	var rows []core.Row
	for _, day := range days {
		for _, iv := range daily[day] {
			status, color := "En línea", colorGray
			if iv.Type == "downtime" {
				status, color = "Fuera de línea", colorDown
			}
			rows = append(rows, row.New(6).Add(
				col.New(3).Add(text.New(day, props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(2).Add(text.New(iv.Start.Format("15:04"), props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(2).Add(text.New(iv.End.Format("15:04"), props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(3).Add(text.New(status, props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
				col.New(2).Add(text.New(minutes(iv.End.Sub(iv.Start)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Sin señales en el rango.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	return rows
}

func footerRow(controller *entity.Controller) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(controller.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Identificador del controlador", props.Text{Size: 8, Top: 6, Left: 3, Color: colorGray}),
			text.New(controller.ID, props.Text{Style: fontstyle.Bold, Size: 9, Top: 12, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func minutes(d time.Duration) string {
	return fmt.Sprintf("%.1f", d.Minutes())
}

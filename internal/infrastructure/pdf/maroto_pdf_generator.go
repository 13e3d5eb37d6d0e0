// Package pdf imprime la agenda de horarios en PDF.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: título + ventana de fechas          │
//	│  ──────────────────────────────────────────  │
//	│  DÍA: "Segunda-feira 19/10/2026"  (n livres) │
//	│  GRILLA: 6 horarios por fila, color estado   │
//	│  ... un bloque por día con horarios          │
//	│  ──────────────────────────────────────────  │
//	│  FOOTER: totales libres / ocupados           │
//	└──────────────────────────────────────────────┘
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

	appagenda "github.com/jhoicas/flowboard-api/internal/application/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 36, Green: 69, Blue: 97}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorFree     = &props.Color{Red: 34, Green: 197, Blue: 94}
	colorOccupied = &props.Color{Red: 239, Green: 68, Blue: 68}
)

const slotsPerRow = 6

var weekdayLabels = [...]string{
	"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
	"Quinta-feira", "Sexta-feira", "Sábado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appagenda.AgendaPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa agenda.AgendaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author aparece en los metadatos.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateAgendaPDF genera el PDF y devuelve sus bytes. slots debe venir ordenado por fecha y hora.
func (g *MarotoPDFGenerator) GenerateAgendaPDF(
	_ context.Context,
	title string,
	slots []entity.TimeSlot,
	window agenda.Window,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, window))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	free, occupied := 0, 0
	for _, day := range groupByDay(slots) {
		m.AddRows(dayHeaderRow(day))
		m.AddRows(slotGridRows(day.slots)...)
		m.AddRows(row.New(2))
		for _, s := range day.slots {
			if s.Status == entity.SlotFree {
				free++
			} else {
				occupied++
			}
		}
	}
	if len(slots) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Nenhum horário gerado para o período.", props.Text{
				Size: 10, Align: align.Center, Color: colorGray, Top: 4,
			}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(free, occupied))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, w agenda.Window) core.Row {
	last := w.To.AddDate(0, 0, -1)
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%s a %s", w.From.Format("02/01/2006"), last.Format("02/01/2006")), props.Text{
				Size: 9, Align: align.Right, Color: colorGray, Top: 3,
			}),
		),
	)
}

type daySlots struct {
	date  time.Time
	slots []entity.TimeSlot
}

func groupByDay(slots []entity.TimeSlot) []daySlots {
	var out []daySlots
	for _, s := range slots {
		key := s.Date.Format(time.DateOnly)
		if n := len(out); n > 0 && out[n-1].date.Format(time.DateOnly) == key {
			out[n-1].slots = append(out[n-1].slots, s)
			continue
		}
		out = append(out, daySlots{date: s.Date, slots: []entity.TimeSlot{s}})
	}
	return out
}

func dayHeaderRow(d daySlots) core.Row {
	free := 0
	for _, s := range d.slots {
		if s.Status == entity.SlotFree {
			free++
		}
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(
			fmt.Sprintf("%s %s", weekdayLabels[d.date.Weekday()], d.date.Format("02/01/2006")),
			props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2},
		)),
		col.New(4).Add(text.New(
			fmt.Sprintf("%d de %d livres", free, len(d.slots)),
			props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 3},
		)),
	)
}

// slotGridRows: slotsPerRow horarios por fila, verde libre y rojo ocupado.
func slotGridRows(slots []entity.TimeSlot) []core.Row {
	rows := make([]core.Row, 0, len(slots)/slotsPerRow+1)
	for start := 0; start < len(slots); start += slotsPerRow {
		end := min(start+slotsPerRow, len(slots))
		cols := make([]core.Col, 0, slotsPerRow)
		for _, s := range slots[start:end] {
			label, color := s.Time.String()+" livre", colorFree
			if s.Status != entity.SlotFree {
				label, color = s.Time.String()+" ocupado", colorOccupied
			}
			cols = append(cols, col.New(12/slotsPerRow).Add(text.New(label, props.Text{
				Size: 8, Color: color, Top: 1, Left: 1,
			})))
		}
		for len(cols) < slotsPerRow {
			cols = append(cols, col.New(12/slotsPerRow))
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	return rows
}

func footerRow(free, occupied int) core.Row {
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Total: %d horários (%d livres, %d ocupados)", free+occupied, free, occupied),
			props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 3},
		)),
	)
}

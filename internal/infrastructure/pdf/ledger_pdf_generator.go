// Package pdf genera el reporte PDF del libro de transacciones de redistribución.
//
// Layout de la página A4 (horizontal):
//
//	┌───────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + alcance       │  Fecha de generación        │
//	│  ───────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tx | Producto | Origen | Destino | Cant | Valor │
//	│  ───────────────────────────────────────────────────────────  │
//	│  TOTALES: N° transacciones / Valor total                       │
//	└───────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

var _ ports.LedgerPDFGenerator = (*LedgerPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 98, Blue: 65}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LedgerPDFGenerator implementa ports.LedgerPDFGenerator usando Maroto v2.
type LedgerPDFGenerator struct {
	printer *message.Printer
}

// NewLedgerPDFGenerator construye el generador. Los montos se formatean con separadores de es.
func NewLedgerPDFGenerator() *LedgerPDFGenerator {
	return &LedgerPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateLedgerPDF genera el PDF y devuelve sus bytes.
func (g *LedgerPDFGenerator) GenerateLedgerPDF(report ports.LedgerReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Libro de redistribuciones", true).
		WithAuthor(report.CompanyName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, t := range report.Transactions {
		m.AddRows(g.transactionRow(t, report))
		total = total.Add(t.Value)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(len(report.Transactions), total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *LedgerPDFGenerator) headerRow(report ports.LedgerReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(report.CompanyName, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary}),
			text.New("Libro de redistribuciones · "+report.Scope, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("2006-01-02 15:04"), props.Text{Size: 9, Align: align.Right, Top: 2}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tx", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Origen", 1, align.Center),
		h("Destino", 1, align.Center),
		h("Cantidad", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

func (g *LedgerPDFGenerator) transactionRow(t *entity.Transaction, report ports.LedgerReport) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(t.CreatedAt.Format("2006-01-02 15:04"), 2, align.Left),
		cell(shortID(t.TxID), 2, align.Left),
		cell(nonEmpty(report.ProductNames[t.ProductID], t.ProductID), 3, align.Left),
		cell(nonEmpty(report.KioskCodes[t.FromKioskID], shortID(t.FromKioskID)), 1, align.Center),
		cell(nonEmpty(report.KioskCodes[t.ToKioskID], shortID(t.ToKioskID)), 1, align.Center),
		cell(t.Quantity.String()+" "+t.Unit, 1, align.Right),
		cell(g.money(t.Value), 2, align.Right),
	)
}

func (g *LedgerPDFGenerator) totalsRow(count int, total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Transacciones:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}),
			text.New("VALOR TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 5, Color: colorPrimary}),
		),
		col.New(3).Add(
			text.New(g.printer.Sprintf("%d", count), props.Text{Size: 9, Align: align.Right}),
			text.New(g.money(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 5, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separador de miles del locale, 2 decimales.
func (g *LedgerPDFGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$" + g.printer.Sprintf("%.2f", f)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// Package pdf genera la factura de un trabajo del taller.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + dirección   │  N° Factura + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VEHÍCULO: Placa / Modelo / Km │ CLIENTE: Propietario + Tel  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REPUESTOS: Cant | Código | Descripción | P.Unit | Total    │
//	│  MANO DE OBRA: Horas | Tarifa | Total                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Repuestos / Mano de obra / Taxi / TOTAL           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR (número + total) + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/workshop"
)

var _ workshop.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa workshop.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateJobInvoice genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateJobInvoice(_ context.Context, data *dto.JobInvoiceData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("pdf: datos de factura vacíos")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+data.InvoiceNumber, true).
		WithAuthor(data.Workshop.Name, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(vehicleRow(data.Detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Repuestos
	m.AddRows(sectionTitleRow("REPUESTOS"))
	m.AddRows(partsHeaderRow())
	for _, r := range partsRows(data.Detail.Parts) {
		m.AddRows(r)
	}

	// Mano de obra
	if len(data.Detail.Labor) > 0 {
		m.AddRows(line.NewRow(2))
		m.AddRows(sectionTitleRow("MANO DE OBRA"))
		m.AddRows(laborHeaderRow())
		for _, r := range laborRows(data.Detail.Labor) {
			m.AddRows(r)
		}
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: taller + contacto (izq) y N° Factura + Fecha (der).
func headerRow(data *dto.JobInvoiceData) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(data.Workshop.Name, "Taller"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.Workshop.Address, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New("Tel: "+nonEmpty(data.Workshop.Phone, "—"), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+data.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// vehicleRow: datos del vehículo (izq) y del propietario al momento del servicio (der).
func vehicleRow(d dto.JobDetailResponse) core.Row {
	owner := d.Vehicle.CurrentOwner
	if d.Job.OwnerName != nil {
		owner = *d.Job.OwnerName
	}
	contact := d.Vehicle.ContactNumber
	if d.Job.OwnerPhone != nil {
		contact = *d.Job.OwnerPhone
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New("VEHÍCULO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(d.Vehicle.LicensePlate, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s   |   Km entrada: %s   |   Km salida: %s",
				nonEmpty(d.Vehicle.MakeModel, "—"),
				mileage(d.Job.MileageIn),
				mileage(d.Job.MileageOut),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(owner, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Tel: "+nonEmpty(contact, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

func tableHeader(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorWhite, Top: 2, Left: 1, Right: 1,
	})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// partsHeaderRow: cabecera de la tabla de repuestos.
func partsHeaderRow() core.Row {
	return row.New(8).Add(
		tableHeader("Cant.", 1, align.Center),
		tableHeader("Código", 2, align.Left),
		tableHeader("Descripción", 5, align.Left),
		tableHeader("Precio Unit.", 2, align.Right),
		tableHeader("Total", 2, align.Right),
	)
}

// partsRows: una fila por repuesto vendido, con el precio tomado al momento de la venta.
func partsRows(parts []dto.JobPartResponse) []core.Row {
	if len(parts) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin repuestos", props.Text{Size: 8, Top: 1, Color: colorGray, Left: 1}),
		))}
	}
	result := make([]core.Row, 0, len(parts))
	for _, p := range parts {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", p.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				p.PartNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				nonEmpty(p.PartName, p.PartNumber),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(p.PriceAtSale),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(p.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func laborHeaderRow() core.Row {
	return row.New(8).Add(
		tableHeader("Fecha", 3, align.Left),
		tableHeader("Horas", 3, align.Center),
		tableHeader("Tarifa", 3, align.Right),
		tableHeader("Total", 3, align.Right),
	)
}

// laborRows: una fila por entrada de mano de obra con la tarifa registrada.
func laborRows(labor []dto.LaborChargeResponse) []core.Row {
	result := make([]core.Row, 0, len(labor))
	for _, l := range labor {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				l.RecordedAt.Format("02/01/2006"),
				props.Text{Size: 8, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				l.HoursWorked.StringFixed(2),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(l.HourlyRate),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(l.TotalLaborCost),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(data *dto.JobInvoiceData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	// Top acumulado: maroto apila los textos de una columna por su offset.
	labelAt := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	valueAt := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2, Top: 18,
	})
	grandValue := text.New(formatMoney(data.Total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1, Top: 18,
	})

	job := data.Detail.Job
	return row.New(26).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(
			label("Repuestos:"),
			labelAt("Mano de obra:", 6),
			labelAt("Taxi / transporte:", 12),
			grandLabel,
		),
		col.New(3).Add(
			value(formatMoney(data.PartsTotal)),
			valueAt(formatMoney(job.LaborCost), 6),
			valueAt(formatMoney(job.TaxiCost), 12),
			grandValue,
		),
	)
}

// footerRow: QR con número y total (para cotejar la copia impresa) + leyenda.
func footerRow(data *dto.JobInvoiceData) core.Row {
	qr := fmt.Sprintf("%s|%s|%s", data.InvoiceNumber, data.Detail.Vehicle.LicensePlate, data.Total.StringFixed(2))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Gracias por confiar su vehículo a "+nonEmpty(data.Workshop.Name, "nuestro taller")+".", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Los repuestos se facturan al precio vigente al momento de su instalación.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func mileage(km *int64) string {
	if km == nil {
		return "—"
	}
	return groupThousands(fmt.Sprintf("%d", *km))
}

// formatMoney formatea con separador de miles y dos decimales.
// Ej: 25000 → "25,000.00", -1234.5 → "-1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "." + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// groupThousands inserta comas de miles en un string de dígitos.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

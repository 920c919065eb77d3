package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
)

func TestGenerateJobInvoice_GeneraPDF(t *testing.T) {
	owner := "Nimal Perera"
	mileageIn := int64(45200)
	data := &dto.JobInvoiceData{
		Workshop:      dto.WorkshopInfo{Name: "Taller Peugeot", Address: "Galle Road 12", Phone: "+94112345678"},
		InvoiceNumber: "INV-2026-00042",
		IssuedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Detail: dto.JobDetailResponse{
			Job: dto.JobResponse{
				ID: 42, Status: "completed", MileageIn: &mileageIn, OwnerName: &owner,
				LaborCost: decimal.NewFromInt(60), TaxiCost: decimal.RequireFromString("12.25"),
			},
			Vehicle: dto.VehicleResponse{LicensePlate: "CAB-1234", MakeModel: "Peugeot 308"},
			Parts: []dto.JobPartResponse{{
				PartNumber: "P-PAS-01", PartName: "Pastillas de freno", Quantity: 2,
				PriceAtSale: decimal.RequireFromString("35.50"), LineTotal: decimal.NewFromInt(71),
			}},
			Labor: []dto.LaborChargeResponse{{
				HoursWorked: decimal.RequireFromString("1.5"), HourlyRate: decimal.NewFromInt(40),
				TotalLaborCost: decimal.NewFromInt(60), RecordedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			}},
		},
		PartsTotal: decimal.NewFromInt(71),
		Total:      decimal.RequireFromString("143.25"),
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateJobInvoice(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateJobInvoice_SinRepuestosNiDatos(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator().GenerateJobInvoice(context.Background(), &dto.JobInvoiceData{
		InvoiceNumber: "INV-2026-00001",
		IssuedAt:      time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = pdf.NewMarotoPDFGenerator().GenerateJobInvoice(context.Background(), nil)
	assert.Error(t, err)
}

package workshop

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/job"
)

// InvoicePDF renderiza la factura del trabajo. La primera impresión asigna invoice_number;
// las siguientes reutilizan el mismo número.
func (uc *JobUseCase) InvoicePDF(ctx context.Context, jobID int64) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", domain.InvalidInputf("generador de facturas no configurado")
	}
	detail, err := uc.GetDetail(ctx, jobID)
	if err != nil {
		return nil, "", err
	}

	issued := time.Now().UTC()
	if detail.Job.CompletionDate != nil {
		issued = *detail.Job.CompletionDate
	}
	var number string
	if detail.Job.InvoiceNumber != nil {
		number = *detail.Job.InvoiceNumber
	} else {
		number = job.InvoiceNumber(issued, jobID)
		if err := uc.repos.Jobs.SetInvoiceNumber(ctx, jobID, number); err != nil {
			return nil, "", domain.Storage("asignar número de factura", err)
		}
		detail.Job.InvoiceNumber = &number
		uc.log.Info().Int64("job_id", jobID).Str("invoice_number", number).Msg("número de factura asignado")
	}

	partsTotal := decimal.Zero
	for _, p := range detail.Parts {
		partsTotal = partsTotal.Add(p.LineTotal)
	}
	data := &dto.JobInvoiceData{
		Workshop:      uc.workshop,
		InvoiceNumber: number,
		IssuedAt:      issued,
		Detail:        *detail,
		PartsTotal:    partsTotal,
		Total:         detail.FreshTotal,
	}
	pdf, err := uc.generator.GenerateJobInvoice(ctx, data)
	if err != nil {
		uc.log.Error().Err(err).Int64("job_id", jobID).Msg("error generando factura")
		return nil, "", err
	}
	return pdf, number, nil
}

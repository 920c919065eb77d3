package job_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/job"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLaborTotal_Limites(t *testing.T) {
	total, err := job.LaborTotal(d("2.5"), d("1500"))
	assert.NoError(t, err)
	assert.True(t, d("3750").Equal(total))

	total, err = job.LaborTotal(d("24"), d("0"))
	assert.NoError(t, err)
	assert.True(t, total.IsZero())

	_, err = job.LaborTotal(d("0"), d("100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = job.LaborTotal(d("24.01"), d("100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = job.LaborTotal(d("1"), d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = job.LaborTotal(d("1"), d("10000.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLaborTotal_RedondeaADosDecimales(t *testing.T) {
	total, err := job.LaborTotal(d("1.333"), d("10"))
	assert.NoError(t, err)
	assert.Equal(t, "13.33", total.StringFixed(2))
	assert.True(t, d("13.33").Equal(total))
}

func TestRecomputeTotal(t *testing.T) {
	j := &entity.Job{LaborCost: d("4500"), TaxiCost: d("750")}
	parts := []entity.JobPart{
		{Quantity: 2, PriceAtSale: d("1200.50"), CostAtSale: d("900")},
		{Quantity: 1, PriceAtSale: d("300"), CostAtSale: d("150")},
	}
	got := job.RecomputeTotal(j, parts)
	assert.True(t, d("7951").Equal(got), "obtenido %s", got)
	assert.True(t, d("1950").Equal(job.PartsCost(parts)))
}

func TestRecomputeTotal_SinLineas(t *testing.T) {
	j := &entity.Job{LaborCost: d("10"), TaxiCost: decimal.Zero}
	assert.True(t, d("10").Equal(job.RecomputeTotal(j, nil)))
}

func TestLaborAggregate(t *testing.T) {
	hours, cost := job.LaborAggregate([]entity.LaborCharge{
		{HoursWorked: d("1.5"), TotalLaborCost: d("150")},
		{HoursWorked: d("2"), TotalLaborCost: d("260.40")},
	})
	assert.True(t, d("3.5").Equal(hours))
	assert.True(t, d("410.40").Equal(cost))
}

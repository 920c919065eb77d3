package job

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/inventory"
)

// Límites de registro de mano de obra.
var (
	MaxHoursPerEntry = decimal.NewFromInt(24)
	MaxHourlyRate    = decimal.NewFromInt(10000)
)

// LaborTotal valida horas y tarifa y devuelve horas × tarifa redondeado a 2 decimales.
// 0 < horas <= 24, 0 <= tarifa <= 10000.
func LaborTotal(hours, rate decimal.Decimal) (decimal.Decimal, error) {
	if !hours.GreaterThan(decimal.Zero) || hours.GreaterThan(MaxHoursPerEntry) {
		return decimal.Zero, domain.InvalidInputf("las horas deben estar entre 0 y 24")
	}
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(MaxHourlyRate) {
		return decimal.Zero, domain.InvalidInputf("tarifa por hora inválida")
	}
	return hours.Mul(rate).Round(inventory.MoneyPlaces), nil
}

// PartsTotal es Σ PriceAtSale × Quantity de las líneas de repuestos.
func PartsTotal(parts []entity.JobPart) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p.LineTotal())
	}
	return total
}

// RecomputeTotal calcula total = labor_cost + taxi_cost + Σ(price_at_sale × qty).
// Es una función pura; quien necesite el valor persistido debe guardarlo explícitamente.
func RecomputeTotal(j *entity.Job, parts []entity.JobPart) decimal.Decimal {
	return j.LaborCost.Add(j.TaxiCost).Add(PartsTotal(parts)).Round(inventory.MoneyPlaces)
}

// LaborAggregate suma horas y costo de las entradas de mano de obra de un trabajo.
func LaborAggregate(charges []entity.LaborCharge) (hours, cost decimal.Decimal) {
	hours, cost = decimal.Zero, decimal.Zero
	for _, c := range charges {
		hours = hours.Add(c.HoursWorked)
		cost = cost.Add(c.TotalLaborCost)
	}
	return hours, cost.Round(inventory.MoneyPlaces)
}

// PartsCost es Σ CostAtSale × Quantity (costo de los repuestos vendidos).
func PartsCost(parts []entity.JobPart) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p.CostAtSale.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return total
}

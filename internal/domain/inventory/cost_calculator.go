package inventory

import "github.com/shopspring/decimal"

// MoneyPlaces es la precisión monetaria usada para el costo promedio.
const MoneyPlaces = 2

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
//
// El resultado se redondea a 2 decimales en cada recepción y la siguiente recepción parte de
// ese valor redondeado, no de un total acumulado sin redondear. Los costos históricos dependen
// de esta regla: no cambiarla por un redondeo final.
func CostCalculator(stockActual int, costoActual decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	qtyActual := decimal.NewFromInt(int64(stockActual))
	qtyEntrada := decimal.NewFromInt(int64(cantEntrada))
	sum := qtyActual.Add(qtyEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := qtyActual.Mul(costoActual).Add(qtyEntrada.Mul(costoEntrada))
	return num.DivRound(sum, 16).Round(MoneyPlaces)
}

// InitialCost es el costo base de la primera recepción de una parte.
func InitialCost(costoEntrada decimal.Decimal) decimal.Decimal {
	return costoEntrada.Round(MoneyPlaces)
}

// CanConsume indica si hay existencias para una salida de cantidad solicitada (todo o nada).
func CanConsume(disponible, solicitado int) bool {
	return solicitado > 0 && disponible >= solicitado
}

// Package redistribution contiene el núcleo puro de decisión de redistribución:
// clasificación de abastecimiento, proyección financiera, flujo de aprobación de
// solicitudes y política de solicitud automática. No hace I/O.
package redistribution

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// SupplyStatus estado de abastecimiento de un producto frente a sus límites.
type SupplyStatus string

const (
	SupplyOversupply  SupplyStatus = "oversupply"
	SupplyUndersupply SupplyStatus = "undersupply"
	SupplyNormal      SupplyStatus = "normal"
)

var hundred = decimal.NewFromInt(100)

// Classify compara la cantidad contra los límites configurados.
// quantity > over → oversupply; quantity < under → undersupply; si no, normal.
// Sin límites configurados (ambos en cero) el producto se considera normal.
func Classify(quantity, overSupplyLimit, underSupplyLimit decimal.Decimal) SupplyStatus {
	if overSupplyLimit.IsZero() && underSupplyLimit.IsZero() {
		return SupplyNormal
	}
	if quantity.GreaterThan(overSupplyLimit) {
		return SupplyOversupply
	}
	if quantity.LessThan(underSupplyLimit) {
		return SupplyUndersupply
	}
	return SupplyNormal
}

// ClassifyProduct clasifica el stock agregado del producto; límites NULL se leen como cero.
func ClassifyProduct(p *entity.Product) SupplyStatus {
	if p == nil {
		return SupplyNormal
	}
	return Classify(p.Quantity, valueOrZero(p.OverSupplyLimit), valueOrZero(p.UnderSupplyLimit))
}

// SupplyLevel porcentaje de la cantidad respecto al nivel normal (2 decimales).
// Devuelve 0 si el nivel normal no está configurado.
func SupplyLevel(quantity, normalSupplyLevel decimal.Decimal) decimal.Decimal {
	if normalSupplyLevel.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return quantity.Div(normalSupplyLevel).Mul(hundred).Round(2)
}

func valueOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

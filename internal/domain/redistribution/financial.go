package redistribution

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// Constantes de política de la proyección.
var (
	// RedistributionCostRate sobrecosto logístico fijo sobre el costo original (10%).
	RedistributionCostRate = decimal.NewFromFloat(0.10)
	// MaterialityThreshold banda (en unidades monetarias) bajo la cual el resultado se considera punto de equilibrio.
	MaterialityThreshold = decimal.NewFromInt(50)
)

// Outcome resultado financiero de la redistribución.
type Outcome string

const (
	OutcomeProfitable Outcome = "profitable"
	OutcomeBreakEven  Outcome = "break_even"
	OutcomeLoss       Outcome = "loss"
)

// FinancialInput datos de entrada de la proyección. Los campos no válidos cuentan como cero.
type FinancialInput struct {
	CurrentQuantity       decimal.NullDecimal
	OverSupplyLimit       decimal.NullDecimal
	AcquiredPrice         decimal.NullDecimal
	SuggestedSellingPrice decimal.NullDecimal
}

// FinancialProjection proyección de ejecutar la redistribución del excedente.
// Solo RedistributableQty se acota en cero; costos y utilidad pueden ser negativos.
type FinancialProjection struct {
	RedistributableQty decimal.Decimal
	ExpectedRevenue    decimal.Decimal
	OriginalCost       decimal.Decimal
	RedistributionCost decimal.Decimal
	NetProfit          decimal.Decimal
	Outcome            Outcome
	IsProfitable       bool
	BreakEven          bool
}

// Evaluate calcula la proyección:
//
//	qty     = max(0, actual - límite de sobreoferta)
//	ingreso = qty * precio sugerido
//	costo   = qty * precio de adquisición
//	logíst. = costo * 0.10
//	neto    = ingreso - costo - logíst.
func Evaluate(in FinancialInput) FinancialProjection {
	qty := valueOrZero(in.CurrentQuantity).Sub(valueOrZero(in.OverSupplyLimit))
	if qty.LessThan(decimal.Zero) {
		qty = decimal.Zero
	}
	revenue := qty.Mul(valueOrZero(in.SuggestedSellingPrice))
	cost := qty.Mul(valueOrZero(in.AcquiredPrice))
	logistics := cost.Mul(RedistributionCostRate)
	net := revenue.Sub(cost).Sub(logistics)

	p := FinancialProjection{
		RedistributableQty: qty,
		ExpectedRevenue:    revenue,
		OriginalCost:       cost,
		RedistributionCost: logistics,
		NetProfit:          net,
	}
	switch {
	case net.GreaterThan(MaterialityThreshold):
		p.Outcome = OutcomeProfitable
		p.IsProfitable = true
	case net.Abs().LessThanOrEqual(MaterialityThreshold):
		p.Outcome = OutcomeBreakEven
		p.BreakEven = true
	default:
		p.Outcome = OutcomeLoss
	}
	return p
}

// EvaluateProduct proyecta la redistribución del producto para la cantidad actual indicada.
func EvaluateProduct(p *entity.Product, currentQuantity decimal.Decimal) FinancialProjection {
	in := FinancialInput{CurrentQuantity: decimal.NewNullDecimal(currentQuantity)}
	if p != nil {
		in.OverSupplyLimit = p.OverSupplyLimit
		in.AcquiredPrice = p.AcquiredPrice
		in.SuggestedSellingPrice = p.SuggestedSellingPrice
	}
	return Evaluate(in)
}

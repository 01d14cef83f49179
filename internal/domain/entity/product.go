package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tasas de agotamiento (depletion_rate).
const (
	DepletionLow    = "low"
	DepletionMedium = "medium"
	DepletionHigh   = "high"
)

// Product representa un SKU del catálogo central.
// Quantity es el stock agregado de todos los kioscos; los límites y precios son opcionales
// (columnas NULL) y se leen como cero en los cálculos de redistribución.
type Product struct {
	ID                        string
	CompanyID                 string
	SKU                       string
	Name                      string
	Unit                      string
	Quantity                  decimal.Decimal
	AcquiredPrice             decimal.NullDecimal
	MRP                       decimal.NullDecimal
	SuggestedSellingPrice     decimal.NullDecimal
	OverSupplyLimit           decimal.NullDecimal
	UnderSupplyLimit          decimal.NullDecimal
	NormalSupplyLevel         decimal.NullDecimal
	SupplyLevel               decimal.NullDecimal // porcentaje almacenado respecto a NormalSupplyLevel
	DepletionRate             string              // low, medium, high
	EligibleForRedistribution bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

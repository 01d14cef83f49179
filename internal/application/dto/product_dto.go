package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo central.
type CreateProductRequest struct {
	SKU                   string           `json:"sku" validate:"required,min=1,max=100"`
	Name                  string           `json:"name" validate:"required,min=1,max=200"`
	Unit                  string           `json:"unit" validate:"required"`
	AcquiredPrice         *decimal.Decimal `json:"acquired_price"`
	MRP                   *decimal.Decimal `json:"mrp"`
	SuggestedSellingPrice *decimal.Decimal `json:"suggested_selling_price"`
	OverSupplyLimit       *decimal.Decimal `json:"over_supply_limit"`
	UnderSupplyLimit      *decimal.Decimal `json:"under_supply_limit"`
	NormalSupplyLevel     *decimal.Decimal `json:"normal_supply_level"`
	DepletionRate         string           `json:"depletion_rate" validate:"omitempty,oneof=low medium high"`
}

// UpdateProductRequest entrada para actualizar precios y límites (campos opcionales).
type UpdateProductRequest struct {
	Name                  *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit                  *string          `json:"unit"`
	AcquiredPrice         *decimal.Decimal `json:"acquired_price"`
	MRP                   *decimal.Decimal `json:"mrp"`
	SuggestedSellingPrice *decimal.Decimal `json:"suggested_selling_price"`
	OverSupplyLimit       *decimal.Decimal `json:"over_supply_limit"`
	UnderSupplyLimit      *decimal.Decimal `json:"under_supply_limit"`
	NormalSupplyLevel     *decimal.Decimal `json:"normal_supply_level"`
	DepletionRate         *string          `json:"depletion_rate" validate:"omitempty,oneof=low medium high"`
}

// SetEligibilityRequest body para PUT /api/products/:id/eligibility.
type SetEligibilityRequest struct {
	Eligible bool `json:"eligible"`
}

// ProductResponse salida de un producto. supply_status y computed_supply_level se derivan al leer.
type ProductResponse struct {
	ID                        string               `json:"id"`
	CompanyID                 string               `json:"company_id"`
	SKU                       string               `json:"sku"`
	Name                      string               `json:"name"`
	Unit                      string               `json:"unit"`
	Quantity                  decimal.Decimal      `json:"quantity"`
	AcquiredPrice             decimal.NullDecimal  `json:"acquired_price"`
	MRP                       decimal.NullDecimal  `json:"mrp"`
	SuggestedSellingPrice     decimal.NullDecimal  `json:"suggested_selling_price"`
	OverSupplyLimit           decimal.NullDecimal  `json:"over_supply_limit"`
	UnderSupplyLimit          decimal.NullDecimal  `json:"under_supply_limit"`
	NormalSupplyLevel         decimal.NullDecimal  `json:"normal_supply_level"`
	SupplyLevel               decimal.NullDecimal  `json:"supply_level"`
	ComputedSupplyLevel       decimal.Decimal      `json:"computed_supply_level"`
	SupplyStatus              string               `json:"supply_status"`
	DepletionRate             string               `json:"depletion_rate"`
	EligibleForRedistribution bool                 `json:"eligible_for_redistribution"`
	CreatedAt                 time.Time            `json:"created_at"`
	UpdatedAt                 time.Time            `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// FinancialProjectionDTO proyección financiera de redistribuir el excedente.
type FinancialProjectionDTO struct {
	RedistributableQty decimal.Decimal `json:"redistributable_qty"`
	ExpectedRevenue    decimal.Decimal `json:"expected_revenue"`
	OriginalCost       decimal.Decimal `json:"original_cost"`
	RedistributionCost decimal.Decimal `json:"redistribution_cost"` // 10% del costo original
	NetProfit          decimal.Decimal `json:"net_profit"`
	Outcome            string          `json:"outcome"` // profitable, break_even, loss
	IsProfitable       bool            `json:"is_profitable"`
	BreakEven          bool            `json:"break_even"`
}

// ProductAnalysisResponse salida de GET /api/products/:id/analysis.
type ProductAnalysisResponse struct {
	Product     ProductResponse        `json:"product"`
	Projection  FinancialProjectionDTO `json:"projection"`
	Recommended bool                   `json:"recommended"` // elegible + sobreoferta + rentable
}

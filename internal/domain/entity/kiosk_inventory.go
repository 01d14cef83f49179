package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KioskInventory stock de un producto en un kiosco. Único por (KioskID, ProductID).
// Threshold es el punto de reorden del kiosco; AutoRequestEnabled habilita solicitudes automáticas.
type KioskInventory struct {
	ID                 string
	KioskID            string
	ProductID          string
	Quantity           decimal.Decimal
	Threshold          decimal.Decimal
	AutoRequestEnabled bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

package redistribution

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// DefaultThreshold punto de reorden usado cuando un registro de inventario no tiene umbral propio.
var DefaultThreshold = decimal.NewFromInt(20)

// ShouldAutoRequest indica si el kiosco debe disparar una solicitud automática:
// auto-request habilitado y cantidad por debajo del umbral.
func ShouldAutoRequest(item entity.KioskInventory) bool {
	return item.AutoRequestEnabled && item.Quantity.LessThan(item.Threshold)
}

// Suggestion recomendación para el kiosco en el diálogo de redistribución.
type Suggestion struct {
	Direction Direction
	Quantity  decimal.Decimal
}

// Suggest recomienda recibir (pull) si el stock está bajo el umbral y enviar (push) en otro caso,
// con la cantidad necesaria para volver al umbral.
func Suggest(item entity.KioskInventory) Suggestion {
	diff := item.Quantity.Sub(item.Threshold)
	if item.Quantity.LessThan(item.Threshold) {
		return Suggestion{Direction: DirectionPull, Quantity: diff.Abs()}
	}
	return Suggestion{Direction: DirectionPush, Quantity: diff}
}

// Surplus excedente disponible sobre el umbral (nunca negativo).
func Surplus(item entity.KioskInventory) decimal.Decimal {
	s := item.Quantity.Sub(item.Threshold)
	if s.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return s
}

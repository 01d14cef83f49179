package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// KioskInventoryItem fila de inventario enriquecida con datos del producto para listados.
type KioskInventoryItem struct {
	entity.KioskInventory
	ProductName string
	SKU         string
	Unit        string
}

// KioskInventoryRepository puerto para el stock por (kiosco, producto).
// Usable con pool o dentro de una transacción.
type KioskInventoryRepository interface {
	Get(ctx context.Context, kioskID, productID string) (*entity.KioskInventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); devuelve nil si no existe.
	GetForUpdate(ctx context.Context, kioskID, productID string) (*entity.KioskInventory, error)
	Upsert(ctx context.Context, item *entity.KioskInventory) error
	// AddQuantity suma delta (puede ser negativo) creando la fila si no existe.
	AddQuantity(ctx context.Context, kioskID, productID string, delta decimal.Decimal) error
	ListByKiosk(ctx context.Context, kioskID string) ([]KioskInventoryItem, error)
}

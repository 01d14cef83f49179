package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

var _ repository.KioskInventoryRepository = (*KioskInventoryRepo)(nil)

const inventoryColumns = `id, kiosk_id, product_id, quantity, threshold, auto_request_enabled, created_at, updated_at`

// KioskInventoryRepo implementación de KioskInventoryRepository sobre PostgreSQL (usable con pool o tx).
type KioskInventoryRepo struct {
	q Querier
}

// NewKioskInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKioskInventoryRepository(q Querier) *KioskInventoryRepo {
	return &KioskInventoryRepo{q: q}
}

// Get obtiene la fila (kiosco, producto). nil si no existe.
func (r *KioskInventoryRepo) Get(ctx context.Context, kioskID, productID string) (*entity.KioskInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM kiosk_inventory WHERE kiosk_id = $1 AND product_id = $2`
	return r.one(ctx, "get kiosk inventory", query, kioskID, productID)
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *KioskInventoryRepo) GetForUpdate(ctx context.Context, kioskID, productID string) (*entity.KioskInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM kiosk_inventory WHERE kiosk_id = $1 AND product_id = $2 FOR UPDATE`
	return r.one(ctx, "get kiosk inventory for update", query, kioskID, productID)
}

// Upsert inserta o actualiza cantidad, umbral y auto-request (una fila por kiosco/producto).
func (r *KioskInventoryRepo) Upsert(ctx context.Context, item *entity.KioskInventory) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO kiosk_inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (kiosk_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, threshold = EXCLUDED.threshold,
			auto_request_enabled = EXCLUDED.auto_request_enabled, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.KioskID, item.ProductID, item.Quantity, item.Threshold, item.AutoRequestEnabled,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("upsert kiosk inventory: %w", err)
	}
	return nil
}

// AddQuantity suma delta a la fila; si no existe la crea con el umbral por defecto de la tabla.
// Un resultado negativo viola el CHECK y se traduce a domain.ErrInsufficientStock.
func (r *KioskInventoryRepo) AddQuantity(ctx context.Context, kioskID, productID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO kiosk_inventory (id, kiosk_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (kiosk_id, product_id)
		DO UPDATE SET quantity = kiosk_inventory.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, uuid.New().String(), kioskID, productID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("add kiosk inventory quantity: %w", err)
	}
	return nil
}

// ListByKiosk lista el inventario del kiosco con nombre, SKU y unidad del producto.
func (r *KioskInventoryRepo) ListByKiosk(ctx context.Context, kioskID string) ([]repository.KioskInventoryItem, error) {
	query := `
		SELECT ki.id, ki.kiosk_id, ki.product_id, ki.quantity, ki.threshold, ki.auto_request_enabled,
			ki.created_at, ki.updated_at, p.name, p.sku, p.unit
		FROM kiosk_inventory ki
		JOIN products p ON p.id = ki.product_id
		WHERE ki.kiosk_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query, kioskID)
	if err != nil {
		return nil, fmt.Errorf("list kiosk inventory: %w", err)
	}
	defer rows.Close()
	var list []repository.KioskInventoryItem
	for rows.Next() {
		var it repository.KioskInventoryItem
		if err := rows.Scan(
			&it.ID, &it.KioskID, &it.ProductID, &it.Quantity, &it.Threshold, &it.AutoRequestEnabled,
			&it.CreatedAt, &it.UpdatedAt, &it.ProductName, &it.SKU, &it.Unit,
		); err != nil {
			return nil, fmt.Errorf("scan kiosk inventory: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *KioskInventoryRepo) one(ctx context.Context, op, query string, args ...any) (*entity.KioskInventory, error) {
	var it entity.KioskInventory
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.KioskID, &it.ProductID, &it.Quantity, &it.Threshold, &it.AutoRequestEnabled,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

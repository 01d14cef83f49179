package redistribution

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// Settler liquida una solicitud aprobada: mueve el stock entre kioscos y asienta la transacción.
// Siempre se invoca con los repos de la transacción de aprobación.
type Settler struct {
	// ExternalRef genera la referencia externa de la transacción; por defecto un hash del asiento.
	ExternalRef func(tx *entity.Transaction) string
}

// NewSettler construye el liquidador con la referencia por defecto.
func NewSettler() *Settler {
	return &Settler{ExternalRef: hashRef}
}

// Settle descuenta la cantidad del kiosco origen (ErrInsufficientStock si no alcanza), la suma al destino
// y agrega la transacción al libro. value = cantidad × precio sugerido (0 si no está definido).
func (s *Settler) Settle(ctx context.Context, repos ports.TxRepos, r *entity.Redistribution, product *entity.Product, now time.Time) (*entity.Transaction, error) {
	if r.FromKioskID == "" || r.ToKioskID == "" {
		return nil, domain.ErrInvalidInput
	}
	src, err := repos.Inventory.GetForUpdate(ctx, r.FromKioskID, r.ProductID)
	if err != nil {
		return nil, err
	}
	if src == nil || src.Quantity.LessThan(r.Quantity) {
		return nil, domain.ErrInsufficientStock
	}
	// Bloquea también la fila destino cuando existe.
	if _, err := repos.Inventory.GetForUpdate(ctx, r.ToKioskID, r.ProductID); err != nil {
		return nil, err
	}
	if err := repos.Inventory.AddQuantity(ctx, r.FromKioskID, r.ProductID, r.Quantity.Neg()); err != nil {
		return nil, err
	}
	if err := repos.Inventory.AddQuantity(ctx, r.ToKioskID, r.ProductID, r.Quantity); err != nil {
		return nil, err
	}

	price := decimal.Zero
	if product != nil && product.SuggestedSellingPrice.Valid {
		price = product.SuggestedSellingPrice.Decimal
	}
	tx := &entity.Transaction{
		ID:               uuid.New().String(),
		TxID:             uuid.New().String(),
		CompanyID:        r.CompanyID,
		RedistributionID: r.ID,
		ProductID:        r.ProductID,
		FromKioskID:      r.FromKioskID,
		ToKioskID:        r.ToKioskID,
		Quantity:         r.Quantity,
		Unit:             r.Unit,
		Value:            r.Quantity.Mul(price),
		Status:           entity.TransactionCompleted,
		CreatedAt:        now,
	}
	ref := s.ExternalRef
	if ref == nil {
		ref = hashRef
	}
	tx.ExternalRef = ref(tx)
	if err := repos.Transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// hashRef referencia estable derivada del contenido del asiento (0x + sha256).
func hashRef(tx *entity.Transaction) string {
	h := sha256.New()
	for _, part := range []string{tx.TxID, tx.RedistributionID, tx.ProductID, tx.FromKioskID, tx.ToKioskID, tx.Quantity.String(), tx.Value.String()} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

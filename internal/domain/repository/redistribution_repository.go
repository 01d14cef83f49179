package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// RedistributionFilter filtros de listado. KioskID filtra solicitudes donde el kiosco es origen o destino.
type RedistributionFilter struct {
	KioskID string
	Status  string
	Limit   int
	Offset  int
}

// RedistributionStats contadores del tablero de redistribución.
type RedistributionStats struct {
	Pending             int
	HighPriorityPending int
	ApprovedToday       int
	Rejected            int
}

// RedistributionRepository puerto de persistencia de solicitudes.
type RedistributionRepository interface {
	Create(ctx context.Context, r *entity.Redistribution) error
	GetByID(ctx context.Context, id string) (*entity.Redistribution, error)
	List(ctx context.Context, companyID string, filter RedistributionFilter) ([]*entity.Redistribution, error)
	// HasPendingPull indica si el kiosco ya tiene una solicitud pull pendiente (to_kiosk_id) para el producto.
	HasPendingPull(ctx context.Context, kioskID, productID string) (bool, error)
	// UpdateIfPending persiste estado, completed_at y kioscos solo si la fila sigue en pending.
	// Devuelve domain.ErrConflict si otra operación ya la cerró.
	UpdateIfPending(ctx context.Context, r *entity.Redistribution) error
	Stats(ctx context.Context, companyID string, dayStart time.Time) (*RedistributionStats, error)
}

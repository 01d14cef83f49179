package repository

import (
	"context"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// KioskRepository define el puerto de persistencia para Kiosk.
type KioskRepository interface {
	Create(ctx context.Context, kiosk *entity.Kiosk) error
	GetByID(ctx context.Context, id string) (*entity.Kiosk, error)
	Update(ctx context.Context, kiosk *entity.Kiosk) error
	// ListByCompany lista kioscos; status vacío = todos.
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Kiosk, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// ProductFilter filtros para listar el catálogo.
type ProductFilter struct {
	EligibleOnly bool
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SetEligibility(ctx context.Context, productID string, eligible bool) error
	ListByCompany(ctx context.Context, companyID string, filter ProductFilter) ([]*entity.Product, error)
	// RefreshQuantity recalcula Quantity como la suma del stock de todos los kioscos.
	RefreshQuantity(ctx context.Context, productID string) error
}

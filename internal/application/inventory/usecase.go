package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/redistribution"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/logger"
)

// Estados de una fila de inventario frente a su umbral.
const (
	ItemLowStock = "low_stock"
	ItemSurplus  = "surplus"
	ItemNormal   = "normal"
)

// Acciones sugeridas al kiosco.
const (
	ActionReceive = "receive"
	ActionSend    = "send"
)

// KioskInventoryUseCase gestiona el stock por kiosco, sus umbrales y la solicitud automática.
// Toda escritura corre en una transacción con bloqueo de fila (SELECT FOR UPDATE).
type KioskInventoryUseCase struct {
	txRunner    ports.TxRunner
	invRepo     repository.KioskInventoryRepository
	kioskRepo   repository.KioskRepository
	productRepo repository.ProductRepository
	metrics     ports.WorkflowMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewKioskInventoryUseCase construye el caso de uso. metrics puede ser nil.
func NewKioskInventoryUseCase(
	txRunner ports.TxRunner,
	invRepo repository.KioskInventoryRepository,
	kioskRepo repository.KioskRepository,
	productRepo repository.ProductRepository,
	metrics ports.WorkflowMetrics,
	log *logger.Logger,
) *KioskInventoryUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &KioskInventoryUseCase{
		txRunner:    txRunner,
		invRepo:     invRepo,
		kioskRepo:   kioskRepo,
		productRepo: productRepo,
		metrics:     metrics,
		log:         log,
		now:         time.Now,
	}
}

// List devuelve el inventario del kiosco con estado y acción sugerida por fila.
func (uc *KioskInventoryUseCase) List(ctx context.Context, actor ports.Actor, kioskID string) ([]dto.KioskInventoryItemDTO, error) {
	if _, err := uc.authorizeKiosk(ctx, actor, kioskID); err != nil {
		return nil, err
	}
	rows, err := uc.invRepo.ListByKiosk(ctx, kioskID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.KioskInventoryItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, toItemDTO(r))
	}
	return items, nil
}

// ListSurplus devuelve solo las filas con cantidad por encima del umbral.
func (uc *KioskInventoryUseCase) ListSurplus(ctx context.Context, actor ports.Actor, kioskID string) ([]dto.KioskInventoryItemDTO, error) {
	all, err := uc.List(ctx, actor, kioskID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KioskInventoryItemDTO, 0, len(all))
	for _, it := range all {
		if it.Status == ItemSurplus {
			out = append(out, it)
		}
	}
	return out, nil
}

// SetQuantity fija la cantidad disponible del producto en el kiosco (una fila por kiosco/producto).
func (uc *KioskInventoryUseCase) SetQuantity(ctx context.Context, actor ports.Actor, kioskID, productID string, quantity decimal.Decimal) (*dto.InventoryWriteResponse, error) {
	if quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return uc.write(ctx, actor, kioskID, productID, func(item *entity.KioskInventory) {
		item.Quantity = quantity
	})
}

// UpdateSettings cambia el umbral y el interruptor de solicitud automática.
func (uc *KioskInventoryUseCase) UpdateSettings(ctx context.Context, actor ports.Actor, kioskID, productID string, in dto.UpdateInventorySettingsRequest) (*dto.InventoryWriteResponse, error) {
	if in.Threshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	return uc.write(ctx, actor, kioskID, productID, func(item *entity.KioskInventory) {
		item.Threshold = in.Threshold
		item.AutoRequestEnabled = in.AutoRequestEnabled
	})
}

// write aplica la mutación, recalcula la cantidad agregada del producto y dispara la solicitud
// automática si corresponde, todo en la misma transacción.
func (uc *KioskInventoryUseCase) write(ctx context.Context, actor ports.Actor, kioskID, productID string, mutate func(*entity.KioskInventory)) (*dto.InventoryWriteResponse, error) {
	kiosk, err := uc.authorizeKiosk(ctx, actor, kioskID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != kiosk.CompanyID {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	var (
		saved *entity.KioskInventory
		auto  *entity.Redistribution
	)
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		item, err := repos.Inventory.GetForUpdate(ctx, kioskID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			item = &entity.KioskInventory{
				ID:        uuid.New().String(),
				KioskID:   kioskID,
				ProductID: productID,
				Quantity:  decimal.Zero,
				Threshold: redistribution.DefaultThreshold,
				CreatedAt: now,
			}
		}
		mutate(item)
		item.UpdatedAt = now
		if err := repos.Inventory.Upsert(ctx, item); err != nil {
			return err
		}
		if err := repos.Products.RefreshQuantity(ctx, productID); err != nil {
			return err
		}
		saved = item

		auto, err = uc.maybeAutoRequest(ctx, repos, actor, product, item, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.InventoryWriteResponse{Item: toItemDTO(repository.KioskInventoryItem{
		KioskInventory: *saved,
		ProductName:    product.Name,
		SKU:            product.SKU,
		Unit:           product.Unit,
	})}
	if auto != nil {
		uc.metrics.RequestCreated(string(redistribution.DirectionPull), "auto")
		uc.log.Info().
			Str("redistribution_id", auto.ID).
			Str("kiosk_id", kioskID).
			Str("product_id", productID).
			Str("quantity", auto.Quantity.String()).
			Msg("solicitud automática creada")
		r := ToRedistributionResponse(auto)
		resp.AutoRequest = &r
	}
	return resp, nil
}

// maybeAutoRequest crea una solicitud pull por threshold − quantity si el kiosco la tiene habilitada,
// está bajo el umbral y no existe ya una pull pendiente para el mismo producto.
func (uc *KioskInventoryUseCase) maybeAutoRequest(
	ctx context.Context,
	repos ports.TxRepos,
	actor ports.Actor,
	product *entity.Product,
	item *entity.KioskInventory,
	now time.Time,
) (*entity.Redistribution, error) {
	if !redistribution.ShouldAutoRequest(*item) {
		return nil, nil
	}
	pending, err := repos.Redistributions.HasPendingPull(ctx, item.KioskID, item.ProductID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, nil
	}
	req, err := redistribution.NewRequest(redistribution.NewRequestInput{
		CompanyID: product.CompanyID,
		ProductID: product.ID,
		Quantity:  item.Threshold.Sub(item.Quantity),
		Unit:      product.Unit,
		Reason:    fmt.Sprintf("Stock below threshold (current: %s, threshold: %s)", item.Quantity, item.Threshold),
		ToKioskID: item.KioskID,
		CreatedBy: actor.UserID,
	}, now)
	if err != nil {
		return nil, err
	}
	if err := repos.Redistributions.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (uc *KioskInventoryUseCase) authorizeKiosk(ctx context.Context, actor ports.Actor, kioskID string) (*entity.Kiosk, error) {
	if !actor.CanAccessKiosk(kioskID) {
		return nil, domain.ErrForbidden
	}
	kiosk, err := uc.kioskRepo.GetByID(ctx, kioskID)
	if err != nil {
		return nil, err
	}
	if kiosk == nil || kiosk.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	return kiosk, nil
}

func toItemDTO(r repository.KioskInventoryItem) dto.KioskInventoryItemDTO {
	status := ItemNormal
	switch {
	case r.Quantity.LessThan(r.Threshold):
		status = ItemLowStock
	case r.Quantity.GreaterThan(r.Threshold):
		status = ItemSurplus
	}
	s := redistribution.Suggest(r.KioskInventory)
	action := ActionSend
	if s.Direction == redistribution.DirectionPull {
		action = ActionReceive
	}
	return dto.KioskInventoryItemDTO{
		ID:                 r.ID,
		KioskID:            r.KioskID,
		ProductID:          r.ProductID,
		ProductName:        r.ProductName,
		SKU:                r.SKU,
		Unit:               r.Unit,
		Quantity:           r.Quantity,
		Threshold:          r.Threshold,
		AutoRequestEnabled: r.AutoRequestEnabled,
		Status:             status,
		Surplus:            redistribution.Surplus(r.KioskInventory),
		SuggestedAction:    action,
		SuggestedQuantity:  s.Quantity,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ToRedistributionResponse mapea una solicitud a su DTO de salida.
func ToRedistributionResponse(r *entity.Redistribution) dto.RedistributionResponse {
	return dto.RedistributionResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		Status:      r.Status,
		Priority:    r.Priority,
		Reason:      r.Reason,
		Direction:   string(redistribution.DirectionOf(r)),
		FromKioskID: r.FromKioskID,
		ToKioskID:   r.ToKioskID,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

package redistribution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/inventory"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ledger"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	core "github.com/jhoicas/kiosk-redistribution-api/internal/domain/redistribution"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
	"github.com/jhoicas/kiosk-redistribution-api/pkg/logger"
)

// Motivos por defecto de las solicitudes creadas por kioscos.
const (
	ReasonSurplus  = "Surplus stock above threshold"
	ReasonLowStock = "Stock below threshold"
)

// UseCase ciclo de vida de las solicitudes de redistribución: creación, aprobación con liquidación,
// rechazo, listados y contadores.
type UseCase struct {
	txRunner    ports.TxRunner
	redisRepo   repository.RedistributionRepository
	kioskRepo   repository.KioskRepository
	productRepo repository.ProductRepository
	invRepo     repository.KioskInventoryRepository
	settler     *Settler
	metrics     ports.WorkflowMetrics
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso. settler y metrics pueden ser nil.
func NewUseCase(
	txRunner ports.TxRunner,
	redisRepo repository.RedistributionRepository,
	kioskRepo repository.KioskRepository,
	productRepo repository.ProductRepository,
	invRepo repository.KioskInventoryRepository,
	settler *Settler,
	metrics ports.WorkflowMetrics,
	log *logger.Logger,
) *UseCase {
	if settler == nil {
		settler = NewSettler()
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{
		txRunner:    txRunner,
		redisRepo:   redisRepo,
		kioskRepo:   kioskRepo,
		productRepo: productRepo,
		invRepo:     invRepo,
		settler:     settler,
		metrics:     metrics,
		log:         log,
		now:         time.Now,
	}
}

// Create registra una solicitud pendiente.
// kiosk_user: action send (push desde su kiosco) o receive (pull hacia su kiosco).
// admin: indica exactamente uno de from_kiosk_id / to_kiosk_id.
func (uc *UseCase) Create(ctx context.Context, actor ports.Actor, in dto.CreateRedistributionRequest) (*dto.RedistributionResponse, error) {
	from, to := in.FromKioskID, in.ToKioskID
	if !actor.IsAdmin() {
		if actor.KioskID == "" {
			return nil, domain.ErrForbidden
		}
		switch in.Action {
		case "send":
			from, to = actor.KioskID, ""
		case "receive":
			from, to = "", actor.KioskID
		case "":
			if (from != "" && from != actor.KioskID) || (to != "" && to != actor.KioskID) {
				return nil, domain.ErrForbidden
			}
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	kioskID := from
	if kioskID == "" {
		kioskID = to
	}
	if kioskID != "" {
		if _, err := uc.companyKiosk(ctx, actor.CompanyID, kioskID); err != nil {
			return nil, err
		}
	}
	product, err := uc.companyProduct(ctx, actor.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	reason := in.Reason
	if reason == "" {
		reason = ReasonLowStock
		if from != "" {
			reason = ReasonSurplus
		}
	}
	if in.Priority != "" && !validPriority(in.Priority) {
		return nil, domain.ErrInvalidInput
	}

	req, err := core.NewRequest(core.NewRequestInput{
		CompanyID:   actor.CompanyID,
		ProductID:   product.ID,
		Quantity:    in.Quantity,
		Unit:        product.Unit,
		Priority:    in.Priority,
		Reason:      reason,
		FromKioskID: from,
		ToKioskID:   to,
		CreatedBy:   actor.UserID,
	}, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.redisRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	uc.metrics.RequestCreated(string(core.DirectionOf(req)), "manual")
	out := inventory.ToRedistributionResponse(req)
	return &out, nil
}

// SubmitSurplus envía varias solicitudes push desde el kiosco del actor en una sola transacción.
// Cada cantidad debe ser positiva y no superar la cantidad disponible.
func (uc *UseCase) SubmitSurplus(ctx context.Context, actor ports.Actor, in dto.SubmitSurplusRequest) ([]dto.RedistributionResponse, error) {
	if actor.KioskID == "" {
		return nil, domain.ErrForbidden
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.companyKiosk(ctx, actor.CompanyID, actor.KioskID); err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(in.Items))
	for _, it := range in.Items {
		p, err := uc.companyProduct(ctx, actor.CompanyID, it.ProductID)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}

	now := uc.now()
	created := make([]*entity.Redistribution, 0, len(in.Items))
	err := uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		created = created[:0]
		for _, it := range in.Items {
			item, err := repos.Inventory.Get(ctx, actor.KioskID, it.ProductID)
			if err != nil {
				return err
			}
			if item == nil || item.Quantity.LessThan(it.Quantity) {
				return domain.ErrInsufficientStock
			}
			p := products[it.ProductID]
			req, err := core.NewRequest(core.NewRequestInput{
				CompanyID:   actor.CompanyID,
				ProductID:   p.ID,
				Quantity:    it.Quantity,
				Unit:        p.Unit,
				Reason:      fmt.Sprintf("Surplus inventory - Current: %s, Threshold: %s", item.Quantity, item.Threshold),
				FromKioskID: actor.KioskID,
				CreatedBy:   actor.UserID,
			}, now)
			if err != nil {
				return err
			}
			if err := repos.Redistributions.Create(ctx, req); err != nil {
				return err
			}
			created = append(created, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RedistributionResponse, 0, len(created))
	for _, r := range created {
		uc.metrics.RequestCreated(string(core.DirectionPush), "surplus")
		out = append(out, inventory.ToRedistributionResponse(r))
	}
	uc.log.Info().Str("kiosk_id", actor.KioskID).Int("count", len(out)).Msg("excedentes enviados")
	return out, nil
}

// Get obtiene una solicitud visible para el actor.
func (uc *UseCase) Get(ctx context.Context, actor ports.Actor, id string) (*dto.RedistributionResponse, error) {
	r, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := inventory.ToRedistributionResponse(r)
	return &out, nil
}

// List admin: todas las de la empresa; kiosk_user: solo las que involucran su kiosco.
func (uc *UseCase) List(ctx context.Context, actor ports.Actor, status string, limit, offset int) (*dto.RedistributionListResponse, error) {
	filter := repository.RedistributionFilter{Status: status, Limit: limit, Offset: offset}
	if !actor.IsAdmin() {
		if actor.KioskID == "" {
			return nil, domain.ErrForbidden
		}
		filter.KioskID = actor.KioskID
	}
	list, err := uc.redisRepo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RedistributionResponse, 0, len(list))
	for _, r := range list {
		items = append(items, inventory.ToRedistributionResponse(r))
	}
	return &dto.RedistributionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Approve aprueba la solicitud y la liquida en una sola transacción: actualización condicional del
// estado, movimiento de stock y asiento en el libro. Si algo falla no queda ningún cambio.
func (uc *UseCase) Approve(ctx context.Context, actor ports.Actor, id, counterpartyKioskID string) (*dto.RedistributionDecisionResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	req, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	// Una solicitud terminal es conflicto aunque la contraparte sea inválida.
	if !req.IsPending() {
		uc.recordFailure(core.ErrIllegalTransition)
		return nil, core.ErrIllegalTransition
	}
	if counterpartyKioskID != "" {
		cp, err := uc.companyKiosk(ctx, actor.CompanyID, counterpartyKioskID)
		if err != nil {
			return nil, err
		}
		if !cp.IsActive() {
			return nil, fmt.Errorf("%w: el kiosco contraparte está inactivo", domain.ErrInvalidInput)
		}
	}
	product, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var (
		approved *entity.Redistribution
		effects  core.Effects
		tx       *entity.Transaction
	)
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		approved, effects, err = core.Approve(req, counterpartyKioskID, now)
		if err != nil {
			return err
		}
		if err := repos.Redistributions.UpdateIfPending(ctx, approved); err != nil {
			return err
		}
		tx, err = uc.settler.Settle(ctx, repos, approved, product, now)
		return err
	})
	if err != nil {
		uc.recordFailure(err)
		uc.log.Warn().Err(err).Str("redistribution_id", id).Msg("aprobación fallida")
		return nil, err
	}

	uc.metrics.RequestDecided(entity.RedistributionApproved)
	uc.log.Info().
		Str("redistribution_id", approved.ID).
		Str("from_kiosk_id", approved.FromKioskID).
		Str("to_kiosk_id", approved.ToKioskID).
		Str("tx_id", tx.TxID).
		Str("status", approved.Status).
		Msg("redistribución aprobada")

	txResp := ledger.ToTransactionResponse(tx)
	return &dto.RedistributionDecisionResponse{
		Redistribution: inventory.ToRedistributionResponse(approved),
		Transaction:    &txResp,
		Affected:       affectedStrings(effects),
	}, nil
}

// Reject rechaza una solicitud pendiente. No mueve cantidades.
func (uc *UseCase) Reject(ctx context.Context, actor ports.Actor, id string) (*dto.RedistributionDecisionResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	req, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	var (
		rejected *entity.Redistribution
		effects  core.Effects
	)
	err = uc.txRunner.Run(ctx, func(repos ports.TxRepos) error {
		var err error
		rejected, effects, err = core.Reject(req)
		if err != nil {
			return err
		}
		return repos.Redistributions.UpdateIfPending(ctx, rejected)
	})
	if err != nil {
		uc.recordFailure(err)
		return nil, err
	}
	uc.metrics.RequestDecided(entity.RedistributionRejected)
	uc.log.Info().Str("redistribution_id", rejected.ID).Str("status", rejected.Status).Msg("redistribución rechazada")
	return &dto.RedistributionDecisionResponse{
		Redistribution: inventory.ToRedistributionResponse(rejected),
		Affected:       affectedStrings(effects),
	}, nil
}

// Stats contadores del tablero: pendientes, pendientes de alta prioridad, aprobadas hoy y rechazadas.
func (uc *UseCase) Stats(ctx context.Context, actor ports.Actor) (*dto.RedistributionStatsResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s, err := uc.redisRepo.Stats(ctx, actor.CompanyID, dayStart)
	if err != nil {
		return nil, err
	}
	return &dto.RedistributionStatsResponse{
		Pending:             s.Pending,
		HighPriorityPending: s.HighPriorityPending,
		ApprovedToday:       s.ApprovedToday,
		Rejected:            s.Rejected,
	}, nil
}

// visible carga la solicitud si pertenece a la empresa y, para kiosk_user, involucra su kiosco.
func (uc *UseCase) visible(ctx context.Context, actor ports.Actor, id string) (*entity.Redistribution, error) {
	r, err := uc.redisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && !r.Involves(actor.KioskID) {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (uc *UseCase) companyKiosk(ctx context.Context, companyID, kioskID string) (*entity.Kiosk, error) {
	k, err := uc.kioskRepo.GetByID(ctx, kioskID)
	if err != nil {
		return nil, err
	}
	if k == nil || k.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return k, nil
}

func (uc *UseCase) companyProduct(ctx context.Context, companyID, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *UseCase) recordFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		uc.metrics.SettlementFailed("insufficient_stock")
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.SettlementFailed("conflict")
	case errors.Is(err, domain.ErrInvalidInput):
		// validación: no cuenta como fallo de liquidación
	default:
		uc.metrics.SettlementFailed("error")
	}
}

func validPriority(p string) bool {
	switch p {
	case entity.PriorityHigh, entity.PriorityMedium, entity.PriorityLow:
		return true
	}
	return false
}

func affectedStrings(e core.Effects) []string {
	out := make([]string, 0, len(e.Affected))
	for _, a := range e.Affected {
		out = append(out, string(a))
	}
	return out
}

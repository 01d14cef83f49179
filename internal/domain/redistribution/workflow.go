package redistribution

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// Errores del flujo de aprobación. Envuelven los sentinelas de domain para que la capa
// HTTP los traduzca con errors.Is.
var (
	ErrIllegalTransition    = fmt.Errorf("%w: la solicitud ya no está pendiente", domain.ErrConflict)
	ErrCounterpartyRequired = fmt.Errorf("%w: se requiere el kiosco contraparte", domain.ErrInvalidInput)
	ErrSameKiosk            = fmt.Errorf("%w: origen y destino no pueden ser el mismo kiosco", domain.ErrInvalidInput)
	ErrDirection            = fmt.Errorf("%w: debe indicarse exactamente uno de from_kiosk_id o to_kiosk_id", domain.ErrInvalidInput)
	ErrQuantityRequired     = fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
)

// Direction sentido de la solicitud según el lado que la originó.
type Direction string

const (
	DirectionPush Direction = "push" // el kiosco ofrece excedente (from_kiosk_id)
	DirectionPull Direction = "pull" // el kiosco pide cubrir faltante (to_kiosk_id)
)

// DirectionOf deduce el sentido de una solicitud a partir del lado informado al crearla.
func DirectionOf(r *entity.Redistribution) Direction {
	if r.FromKioskID != "" && r.ToKioskID == "" {
		return DirectionPush
	}
	if r.ToKioskID != "" && r.FromKioskID == "" {
		return DirectionPull
	}
	// Ambos lados asignados: se conserva el origen como iniciador.
	return DirectionPush
}

// Aggregate agregado que la capa llamadora debe refrescar tras una mutación.
type Aggregate string

const (
	AggregateRedistributions Aggregate = "redistributions"
	AggregateStats           Aggregate = "redistribution_stats"
	AggregateKioskInventory  Aggregate = "kiosk_inventory"
	AggregateTransactions    Aggregate = "transactions"
)

// KioskAggregate agregado de notificaciones de un kiosco concreto.
func KioskAggregate(kioskID string) Aggregate { return Aggregate("kiosk:" + kioskID) }

// Effects lista explícita de agregados afectados por Approve/Reject.
type Effects struct {
	Affected []Aggregate
}

// NewRequestInput datos para crear una solicitud.
type NewRequestInput struct {
	CompanyID   string
	ProductID   string
	Quantity    decimal.Decimal
	Unit        string
	Priority    string
	Reason      string
	FromKioskID string
	ToKioskID   string
	CreatedBy   string
}

// NewRequest valida y construye una solicitud pendiente.
// Exactamente uno de FromKioskID/ToKioskID debe venir informado.
func NewRequest(in NewRequestInput, now time.Time) (*entity.Redistribution, error) {
	if in.ProductID == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, ErrQuantityRequired
	}
	if (in.FromKioskID == "") == (in.ToKioskID == "") {
		return nil, ErrDirection
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	return &entity.Redistribution{
		ID:          uuid.New().String(),
		CompanyID:   in.CompanyID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Status:      entity.RedistributionPending,
		Priority:    priority,
		Reason:      in.Reason,
		FromKioskID: in.FromKioskID,
		ToKioskID:   in.ToKioskID,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}, nil
}

// Approve marca la solicitud como aprobada y completa el lado faltante con counterpartyKioskID.
// No modifica req: devuelve una copia. La liquidación (transacción y stock) es responsabilidad del llamador.
func Approve(req *entity.Redistribution, counterpartyKioskID string, now time.Time) (*entity.Redistribution, Effects, error) {
	if req == nil {
		return nil, Effects{}, domain.ErrNotFound
	}
	if !req.IsPending() {
		return nil, Effects{}, ErrIllegalTransition
	}
	out := *req
	switch {
	case out.FromKioskID != "" && out.ToKioskID == "":
		if counterpartyKioskID == "" {
			return nil, Effects{}, ErrCounterpartyRequired
		}
		if counterpartyKioskID == out.FromKioskID {
			return nil, Effects{}, ErrSameKiosk
		}
		out.ToKioskID = counterpartyKioskID
	case out.ToKioskID != "" && out.FromKioskID == "":
		if counterpartyKioskID == "" {
			return nil, Effects{}, ErrCounterpartyRequired
		}
		if counterpartyKioskID == out.ToKioskID {
			return nil, Effects{}, ErrSameKiosk
		}
		out.FromKioskID = counterpartyKioskID
	case out.FromKioskID == "" && out.ToKioskID == "":
		return nil, Effects{}, ErrDirection
	}
	completed := now
	out.Status = entity.RedistributionApproved
	out.CompletedAt = &completed

	return &out, Effects{Affected: affected(&out, true)}, nil
}

// Reject marca la solicitud como rechazada. No hay movimiento de cantidades.
func Reject(req *entity.Redistribution) (*entity.Redistribution, Effects, error) {
	if req == nil {
		return nil, Effects{}, domain.ErrNotFound
	}
	if !req.IsPending() {
		return nil, Effects{}, ErrIllegalTransition
	}
	out := *req
	out.Status = entity.RedistributionRejected
	return &out, Effects{Affected: affected(&out, false)}, nil
}

func affected(r *entity.Redistribution, settled bool) []Aggregate {
	list := []Aggregate{AggregateRedistributions, AggregateStats}
	if settled {
		list = append(list, AggregateKioskInventory, AggregateTransactions)
	}
	for _, id := range []string{r.FromKioskID, r.ToKioskID} {
		if id != "" {
			list = append(list, KioskAggregate(id))
		}
	}
	return list
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRedistributionRequest body para POST /api/redistributions.
// Exactamente uno de from_kiosk_id / to_kiosk_id. Para kiosk_user se usa action (send/receive)
// y el kiosco del token.
type CreateRedistributionRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Action      string          `json:"action,omitempty" validate:"omitempty,oneof=send receive"`
	FromKioskID string          `json:"from_kiosk_id,omitempty"`
	ToKioskID   string          `json:"to_kiosk_id,omitempty"`
	Priority    string          `json:"priority,omitempty"`
	Reason      string          `json:"reason,omitempty"`
}

// SurplusItemRequest elemento del envío masivo de excedentes.
type SurplusItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SubmitSurplusRequest body para POST /api/redistributions/surplus.
type SubmitSurplusRequest struct {
	Items []SurplusItemRequest `json:"items"`
}

// ApproveRedistributionRequest body para POST /api/redistributions/:id/approve.
type ApproveRedistributionRequest struct {
	CounterpartyKioskID string `json:"counterparty_kiosk_id"`
}

// RedistributionResponse salida de una solicitud.
type RedistributionResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Reason      string          `json:"reason"`
	Direction   string          `json:"direction"` // push, pull
	FromKioskID string          `json:"from_kiosk_id,omitempty"`
	ToKioskID   string          `json:"to_kiosk_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// RedistributionDecisionResponse salida de aprobar/rechazar: la solicitud y los agregados a refrescar.
type RedistributionDecisionResponse struct {
	Redistribution RedistributionResponse `json:"redistribution"`
	Transaction    *TransactionResponse   `json:"transaction,omitempty"`
	Affected       []string               `json:"affected"`
}

// RedistributionListResponse lista paginada.
type RedistributionListResponse struct {
	Items []RedistributionResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// RedistributionStatsResponse contadores del tablero.
type RedistributionStatsResponse struct {
	Pending             int `json:"pending"`
	HighPriorityPending int `json:"high_priority_pending"`
	ApprovedToday       int `json:"approved_today"`
	Rejected            int `json:"rejected"`
}

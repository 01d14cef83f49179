package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de redistribución. approved y rejected son terminales.
const (
	RedistributionPending  = "pending"
	RedistributionApproved = "approved"
	RedistributionRejected = "rejected"
)

// Prioridades (texto libre en la tabla; estos son los valores que emite la API).
const (
	PriorityHigh   = "High Priority"
	PriorityMedium = "Medium Priority"
	PriorityLow    = "Low Priority"
)

// Redistribution solicitud de traslado de mercancía entre kioscos.
// Al crearse solo uno de FromKioskID/ToKioskID tiene valor: FromKioskID = el kiosco ofrece
// excedente (push), ToKioskID = el kiosco pide cubrir faltante (pull). El otro lado lo asigna
// el admin al aprobar.
type Redistribution struct {
	ID          string
	CompanyID   string
	ProductID   string
	Quantity    decimal.Decimal
	Unit        string
	Status      string
	Priority    string
	Reason      string
	FromKioskID string
	ToKioskID   string
	CreatedBy   string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// IsPending indica si la solicitud aún admite aprobación o rechazo.
func (r *Redistribution) IsPending() bool { return r != nil && r.Status == RedistributionPending }

// Involves indica si el kiosco participa en la solicitud (origen o destino).
func (r *Redistribution) Involves(kioskID string) bool {
	return kioskID != "" && (r.FromKioskID == kioskID || r.ToKioskID == kioskID)
}

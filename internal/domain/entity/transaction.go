package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción del libro.
const (
	TransactionCompleted = "completed"
	TransactionPending   = "pending"
)

// Transaction registro inmutable del libro de auditoría, creado al liquidar una redistribución aprobada.
type Transaction struct {
	ID               string
	TxID             string
	CompanyID        string
	RedistributionID string
	ProductID        string
	FromKioskID      string
	ToKioskID        string
	Quantity         decimal.Decimal
	Unit             string
	Value            decimal.Decimal
	Status           string
	ExternalRef      string
	CreatedAt        time.Time
}

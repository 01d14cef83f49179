package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionResponse salida de una transacción del libro.
type TransactionResponse struct {
	TxID             string          `json:"tx_id"`
	RedistributionID string          `json:"redistribution_id"`
	ProductID        string          `json:"product_id"`
	FromKioskID      string          `json:"from_kiosk_id"`
	ToKioskID        string          `json:"to_kiosk_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	Value            decimal.Decimal `json:"value"`
	Status           string          `json:"status"`
	ExternalRef      string          `json:"external_ref"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TransactionListResponse lista paginada del libro.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

package repository

import (
	"context"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// TransactionFilter filtros del libro. KioskID filtra por origen o destino.
type TransactionFilter struct {
	KioskID string
	Limit   int
	Offset  int
}

// TransactionRepository puerto del libro de transacciones (solo inserción y lectura).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByTxID(ctx context.Context, companyID, txID string) (*entity.Transaction, error)
	List(ctx context.Context, companyID string, filter TransactionFilter) ([]*entity.Transaction, error)
}

package ports

import (
	"context"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Inventory       repository.KioskInventoryRepository
	Redistributions repository.RedistributionRepository
	Transactions    repository.TransactionRepository
	Products        repository.ProductRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback en cualquier error.
// La aprobación, la liquidación y la solicitud automática dependen de esta atomicidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

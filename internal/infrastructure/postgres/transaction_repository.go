package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, tx_id, company_id, redistribution_id, product_id, from_kiosk_id, to_kiosk_id,
	quantity, unit, value, status, external_ref, created_at`

// TransactionRepo libro de transacciones sobre PostgreSQL. Solo inserción y lectura.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create agrega un asiento.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.TxID, t.CompanyID, t.RedistributionID, t.ProductID, t.FromKioskID, t.ToKioskID,
		t.Quantity, t.Unit, t.Value, t.Status, t.ExternalRef, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByTxID obtiene un asiento de la empresa por tx_id. nil si no existe.
func (r *TransactionRepo) GetByTxID(ctx context.Context, companyID, txID string) (*entity.Transaction, error) {
	row := r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE company_id = $1 AND tx_id = $2`, companyID, txID)
	t, err := scanTransaction(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// List lista el libro, más recientes primero. KioskID filtra por origen o destino.
func (r *TransactionRepo) List(ctx context.Context, companyID string, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + ` FROM transactions
		WHERE company_id = $1 AND ($2 = '' OR from_kiosk_id::text = $2 OR to_kiosk_id::text = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, f.KioskID, pageLimit(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.TxID, &t.CompanyID, &t.RedistributionID, &t.ProductID, &t.FromKioskID, &t.ToKioskID,
		&t.Quantity, &t.Unit, &t.Value, &t.Status, &t.ExternalRef, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

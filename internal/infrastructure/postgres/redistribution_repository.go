package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

var _ repository.RedistributionRepository = (*RedistributionRepo)(nil)

const redistributionColumns = `id, company_id, product_id, quantity, unit, status, priority, reason,
	from_kiosk_id, to_kiosk_id, created_by, created_at, completed_at`

// RedistributionRepo implementación de RedistributionRepository sobre PostgreSQL (usable con pool o tx).
type RedistributionRepo struct {
	q Querier
}

// NewRedistributionRepository construye el adaptador de solicitudes.
func NewRedistributionRepository(q Querier) *RedistributionRepo {
	return &RedistributionRepo{q: q}
}

// Create persiste una solicitud.
func (r *RedistributionRepo) Create(ctx context.Context, red *entity.Redistribution) error {
	query := `
		INSERT INTO redistributions (` + redistributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		red.ID, red.CompanyID, red.ProductID, red.Quantity, red.Unit, red.Status, red.Priority, red.Reason,
		nullString(red.FromKioskID), nullString(red.ToKioskID), nullString(red.CreatedBy), red.CreatedAt, red.CompletedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert redistribution: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud. nil si no existe.
func (r *RedistributionRepo) GetByID(ctx context.Context, id string) (*entity.Redistribution, error) {
	red, err := scanRedistribution(r.q.QueryRow(ctx, `SELECT `+redistributionColumns+` FROM redistributions WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get redistribution: %w", err)
	}
	return red, nil
}

// List lista solicitudes de la empresa, más recientes primero.
func (r *RedistributionRepo) List(ctx context.Context, companyID string, f repository.RedistributionFilter) ([]*entity.Redistribution, error) {
	query := `
		SELECT ` + redistributionColumns + ` FROM redistributions
		WHERE company_id = $1
			AND ($2 = '' OR status = $2)
			AND ($3 = '' OR from_kiosk_id::text = $3 OR to_kiosk_id::text = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, companyID, f.Status, f.KioskID, pageLimit(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list redistributions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Redistribution
	for rows.Next() {
		red, err := scanRedistribution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan redistribution: %w", err)
		}
		list = append(list, red)
	}
	return list, rows.Err()
}

// HasPendingPull indica si el kiosco ya tiene una solicitud pull pendiente (to_kiosk_id) para el producto.
func (r *RedistributionRepo) HasPendingPull(ctx context.Context, kioskID, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM redistributions
			WHERE to_kiosk_id = $1 AND product_id = $2 AND status = 'pending' AND from_kiosk_id IS NULL
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, kioskID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has pending pull: %w", err)
	}
	return exists, nil
}

// UpdateIfPending aplica el resultado de Approve/Reject solo si la fila sigue pendiente.
func (r *RedistributionRepo) UpdateIfPending(ctx context.Context, red *entity.Redistribution) error {
	query := `
		UPDATE redistributions
		SET status = $2, completed_at = $3, from_kiosk_id = $4, to_kiosk_id = $5
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(ctx, query, red.ID, red.Status, red.CompletedAt, nullString(red.FromKioskID), nullString(red.ToKioskID))
	if err != nil {
		return fmt.Errorf("update redistribution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Stats contadores del tablero para la empresa.
func (r *RedistributionRepo) Stats(ctx context.Context, companyID string, dayStart time.Time) (*repository.RedistributionStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'pending' AND priority = $2),
			COUNT(*) FILTER (WHERE status = 'approved' AND completed_at >= $3),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM redistributions WHERE company_id = $1`
	var s repository.RedistributionStats
	err := r.q.QueryRow(ctx, query, companyID, entity.PriorityHigh, dayStart).Scan(
		&s.Pending, &s.HighPriorityPending, &s.ApprovedToday, &s.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("redistribution stats: %w", err)
	}
	return &s, nil
}

func scanRedistribution(row pgx.Row) (*entity.Redistribution, error) {
	var (
		red             entity.Redistribution
		from, to, creat *string
	)
	err := row.Scan(&red.ID, &red.CompanyID, &red.ProductID, &red.Quantity, &red.Unit, &red.Status, &red.Priority,
		&red.Reason, &from, &to, &creat, &red.CreatedAt, &red.CompletedAt)
	if err != nil {
		return nil, err
	}
	red.FromKioskID, red.ToKioskID, red.CreatedBy = fromNull(from), fromNull(to), fromNull(creat)
	return &red, nil
}

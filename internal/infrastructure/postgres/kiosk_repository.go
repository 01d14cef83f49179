package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

var _ repository.KioskRepository = (*KioskRepo)(nil)

const kioskColumns = `id, company_id, kiosk_code, name, address, manager_name, email, phone, status, created_at, updated_at`

// KioskRepo implementación de KioskRepository sobre PostgreSQL.
type KioskRepo struct {
	q Querier
}

// NewKioskRepository construye el adaptador de kioscos.
func NewKioskRepository(q Querier) *KioskRepo {
	return &KioskRepo{q: q}
}

// Create persiste un kiosco. El código duplicado en la empresa devuelve domain.ErrDuplicate.
func (r *KioskRepo) Create(ctx context.Context, k *entity.Kiosk) error {
	query := `
		INSERT INTO kiosks (` + kioskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		k.ID, k.CompanyID, k.Code, k.Name, k.Address, k.ManagerName, k.Email, k.Phone, k.Status,
		k.CreatedAt, k.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert kiosk: %w", err)
	}
	return nil
}

// GetByID obtiene un kiosco por ID. nil si no existe.
func (r *KioskRepo) GetByID(ctx context.Context, id string) (*entity.Kiosk, error) {
	row := r.q.QueryRow(ctx, `SELECT `+kioskColumns+` FROM kiosks WHERE id = $1`, id)
	k, err := scanKiosk(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kiosk: %w", err)
	}
	return k, nil
}

// Update actualiza datos y estado del kiosco. El código no cambia.
func (r *KioskRepo) Update(ctx context.Context, k *entity.Kiosk) error {
	query := `
		UPDATE kiosks SET name = $2, address = $3, manager_name = $4, email = $5, phone = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, k.ID, k.Name, k.Address, k.ManagerName, k.Email, k.Phone, k.Status, k.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update kiosk: %w", err)
	}
	return nil
}

// ListByCompany lista kioscos ordenados por código. status vacío = todos; limit 0 = sin límite.
func (r *KioskRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Kiosk, error) {
	query := `
		SELECT ` + kioskColumns + ` FROM kiosks
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY kiosk_code LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, status, pageLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list kiosks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Kiosk
	for rows.Next() {
		k, err := scanKiosk(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kiosk: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

func scanKiosk(row pgx.Row) (*entity.Kiosk, error) {
	var k entity.Kiosk
	err := row.Scan(&k.ID, &k.CompanyID, &k.Code, &k.Name, &k.Address, &k.ManagerName, &k.Email, &k.Phone, &k.Status,
		&k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

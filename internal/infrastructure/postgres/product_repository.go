package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, name, unit, quantity, acquired_price, mrp, suggested_selling_price,
	over_supply_limit, under_supply_limit, normal_supply_level, supply_level, depletion_rate,
	eligible_for_redistribution, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Las columnas NULL quedan en NULL (NullDecimal).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SKU, p.Name, p.Unit, p.Quantity, p.AcquiredPrice, p.MRP, p.SuggestedSellingPrice,
		p.OverSupplyLimit, p.UnderSupplyLimit, p.NormalSupplyLevel, p.SupplyLevel, p.DepletionRate,
		p.EligibleForRedistribution, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND sku = $2`, companyID, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza metadatos, precios y límites. Quantity y supply_level solo cambian vía RefreshQuantity.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, unit = $3, acquired_price = $4, mrp = $5, suggested_selling_price = $6,
			over_supply_limit = $7, under_supply_limit = $8, normal_supply_level = $9, depletion_rate = $10,
			updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Unit, p.AcquiredPrice, p.MRP, p.SuggestedSellingPrice,
		p.OverSupplyLimit, p.UnderSupplyLimit, p.NormalSupplyLevel, p.DepletionRate, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetEligibility cambia eligible_for_redistribution.
func (r *ProductRepo) SetEligibility(ctx context.Context, productID string, eligible bool) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET eligible_for_redistribution = $2, updated_at = now() WHERE id = $1`, productID, eligible)
	if err != nil {
		return fmt.Errorf("set eligibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND (NOT $2 OR eligible_for_redistribution)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, filter.EligibleOnly, pageLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// RefreshQuantity recalcula la cantidad agregada y el supply_level almacenado a partir de kiosk_inventory.
func (r *ProductRepo) RefreshQuantity(ctx context.Context, productID string) error {
	query := `
		UPDATE products p SET
			quantity = s.total,
			supply_level = CASE WHEN p.normal_supply_level > 0 THEN round(s.total / p.normal_supply_level * 100, 2) END,
			updated_at = now()
		FROM (SELECT COALESCE(SUM(quantity), 0) AS total FROM kiosk_inventory WHERE product_id = $1) s
		WHERE p.id = $1`
	if _, err := r.q.Exec(ctx, query, productID); err != nil {
		return fmt.Errorf("refresh product quantity: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Unit, &p.Quantity, &p.AcquiredPrice, &p.MRP, &p.SuggestedSellingPrice,
		&p.OverSupplyLimit, &p.UnderSupplyLimit, &p.NormalSupplyLevel, &p.SupplyLevel, &p.DepletionRate,
		&p.EligibleForRedistribution, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

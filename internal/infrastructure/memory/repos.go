package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/redistribution"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository        = (*CompanyRepo)(nil)
	_ repository.UserRepository           = (*UserRepo)(nil)
	_ repository.KioskRepository          = (*KioskRepo)(nil)
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.KioskInventoryRepository = (*KioskInventoryRepo)(nil)
	_ repository.RedistributionRepository = (*RedistributionRepo)(nil)
	_ repository.TransactionRepository    = (*TransactionRepo)(nil)
)

// ── Companies ────────────────────────────────────────────────────────────────

type CompanyRepo struct{ v view }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.v.do(func(st *state) error {
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// ── Users ────────────────────────────────────────────────────────────────────

type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.do(func(st *state) error {
		for _, x := range st.users {
			if x.CompanyID == u.CompanyID && strings.EqualFold(x.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *UserRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email && u.CompanyID == companyID })
}

func (r *UserRepo) find(match func(entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ── Kiosks ───────────────────────────────────────────────────────────────────

type KioskRepo struct{ v view }

func (r *KioskRepo) Create(_ context.Context, k *entity.Kiosk) error {
	return r.v.do(func(st *state) error {
		for _, x := range st.kiosks {
			if x.CompanyID == k.CompanyID && x.Code == k.Code {
				return domain.ErrDuplicate
			}
		}
		st.kiosks[k.ID] = *k
		return nil
	})
}

func (r *KioskRepo) GetByID(_ context.Context, id string) (*entity.Kiosk, error) {
	var out *entity.Kiosk
	err := r.v.do(func(st *state) error {
		if k, ok := st.kiosks[id]; ok {
			out = &k
		}
		return nil
	})
	return out, err
}

func (r *KioskRepo) Update(_ context.Context, k *entity.Kiosk) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.kiosks[k.ID]
		if !ok {
			return nil
		}
		next := *k
		next.Code, next.CompanyID, next.CreatedAt = cur.Code, cur.CompanyID, cur.CreatedAt
		st.kiosks[k.ID] = next
		return nil
	})
}

func (r *KioskRepo) ListByCompany(_ context.Context, companyID, status string, limit, offset int) ([]*entity.Kiosk, error) {
	var list []*entity.Kiosk
	err := r.v.do(func(st *state) error {
		for _, k := range st.kiosks {
			if k.CompanyID == companyID && (status == "" || k.Status == status) {
				k := k
				list = append(list, &k)
			}
		}
		return nil
	})
	sortBy(list, func(a, b *entity.Kiosk) bool { return a.Code < b.Code })
	return page(list, limit, offset), err
}

// ── Products ─────────────────────────────────────────────────────────────────

type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		for _, x := range st.products {
			if x.CompanyID == p.CompanyID && x.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID && p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return nil
		}
		next := *p
		next.Quantity, next.SupplyLevel = cur.Quantity, cur.SupplyLevel
		next.EligibleForRedistribution = cur.EligibleForRedistribution
		next.SKU, next.CompanyID, next.CreatedAt = cur.SKU, cur.CompanyID, cur.CreatedAt
		st.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) SetEligibility(_ context.Context, productID string, eligible bool) error {
	return r.v.do(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.EligibleForRedistribution = eligible
		st.products[productID] = p
		return nil
	})
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID && (!f.EligibleOnly || p.EligibleForRedistribution) {
				p := p
				list = append(list, &p)
			}
		}
		return nil
	})
	sortBy(list, func(a, b *entity.Product) bool { return a.Name < b.Name })
	return page(list, f.Limit, f.Offset), err
}

func (r *ProductRepo) RefreshQuantity(_ context.Context, productID string) error {
	return r.v.do(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return nil
		}
		total := decimal.Zero
		for k, it := range st.inventory {
			if k.product == productID {
				total = total.Add(it.Quantity)
			}
		}
		p.Quantity = total
		p.SupplyLevel = decimal.NullDecimal{}
		if p.NormalSupplyLevel.Valid && p.NormalSupplyLevel.Decimal.IsPositive() {
			p.SupplyLevel = decimal.NewNullDecimal(redistribution.SupplyLevel(total, p.NormalSupplyLevel.Decimal))
		}
		st.products[productID] = p
		return nil
	})
}

// ── Kiosk inventory ──────────────────────────────────────────────────────────

type KioskInventoryRepo struct{ v view }

func (r *KioskInventoryRepo) Get(_ context.Context, kioskID, productID string) (*entity.KioskInventory, error) {
	var out *entity.KioskInventory
	err := r.v.do(func(st *state) error {
		if it, ok := st.inventory[invKey{kioskID, productID}]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: Run ya serializa las transacciones.
func (r *KioskInventoryRepo) GetForUpdate(ctx context.Context, kioskID, productID string) (*entity.KioskInventory, error) {
	return r.Get(ctx, kioskID, productID)
}

func (r *KioskInventoryRepo) Upsert(_ context.Context, item *entity.KioskInventory) error {
	if item.Quantity.IsNegative() || item.Threshold.IsNegative() {
		return domain.ErrInvalidInput
	}
	return r.v.do(func(st *state) error {
		k := invKey{item.KioskID, item.ProductID}
		next := *item
		if cur, ok := st.inventory[k]; ok {
			next.ID, next.CreatedAt = cur.ID, cur.CreatedAt
		} else if next.ID == "" {
			next.ID = uuid.New().String()
		}
		st.inventory[k] = next
		return nil
	})
}

func (r *KioskInventoryRepo) AddQuantity(_ context.Context, kioskID, productID string, delta decimal.Decimal) error {
	return r.v.do(func(st *state) error {
		k := invKey{kioskID, productID}
		it, ok := st.inventory[k]
		if !ok {
			now := time.Now()
			it = entity.KioskInventory{
				ID: uuid.New().String(), KioskID: kioskID, ProductID: productID,
				Quantity: decimal.Zero, Threshold: redistribution.DefaultThreshold,
				CreatedAt: now,
			}
		}
		it.Quantity = it.Quantity.Add(delta)
		if it.Quantity.IsNegative() {
			return domain.ErrInsufficientStock
		}
		it.UpdatedAt = time.Now()
		st.inventory[k] = it
		return nil
	})
}

func (r *KioskInventoryRepo) ListByKiosk(_ context.Context, kioskID string) ([]repository.KioskInventoryItem, error) {
	var list []repository.KioskInventoryItem
	err := r.v.do(func(st *state) error {
		for k, it := range st.inventory {
			if k.kiosk != kioskID {
				continue
			}
			p := st.products[k.product]
			list = append(list, repository.KioskInventoryItem{KioskInventory: it, ProductName: p.Name, SKU: p.SKU, Unit: p.Unit})
		}
		return nil
	})
	sortBy(list, func(a, b repository.KioskInventoryItem) bool { return a.ProductName < b.ProductName })
	return list, err
}

// ── Redistributions ──────────────────────────────────────────────────────────

type RedistributionRepo struct{ v view }

func (r *RedistributionRepo) Create(_ context.Context, red *entity.Redistribution) error {
	return r.v.do(func(st *state) error {
		st.redistributions[red.ID] = *red
		return nil
	})
}

func (r *RedistributionRepo) GetByID(_ context.Context, id string) (*entity.Redistribution, error) {
	var out *entity.Redistribution
	err := r.v.do(func(st *state) error {
		if red, ok := st.redistributions[id]; ok {
			out = &red
		}
		return nil
	})
	return out, err
}

func (r *RedistributionRepo) List(_ context.Context, companyID string, f repository.RedistributionFilter) ([]*entity.Redistribution, error) {
	var list []*entity.Redistribution
	err := r.v.do(func(st *state) error {
		for _, red := range st.redistributions {
			if red.CompanyID != companyID || (f.Status != "" && red.Status != f.Status) {
				continue
			}
			if f.KioskID != "" && !red.Involves(f.KioskID) {
				continue
			}
			red := red
			list = append(list, &red)
		}
		return nil
	})
	sortBy(list, func(a, b *entity.Redistribution) bool { return a.CreatedAt.After(b.CreatedAt) })
	return page(list, f.Limit, f.Offset), err
}

func (r *RedistributionRepo) HasPendingPull(_ context.Context, kioskID, productID string) (bool, error) {
	found := false
	err := r.v.do(func(st *state) error {
		for _, red := range st.redistributions {
			if red.IsPending() && red.ToKioskID == kioskID && red.FromKioskID == "" && red.ProductID == productID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *RedistributionRepo) UpdateIfPending(_ context.Context, red *entity.Redistribution) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.redistributions[red.ID]
		if !ok || !cur.IsPending() {
			return domain.ErrConflict
		}
		cur.Status, cur.CompletedAt = red.Status, red.CompletedAt
		cur.FromKioskID, cur.ToKioskID = red.FromKioskID, red.ToKioskID
		st.redistributions[red.ID] = cur
		return nil
	})
}

func (r *RedistributionRepo) Stats(_ context.Context, companyID string, dayStart time.Time) (*repository.RedistributionStats, error) {
	var s repository.RedistributionStats
	err := r.v.do(func(st *state) error {
		for _, red := range st.redistributions {
			if red.CompanyID != companyID {
				continue
			}
			switch red.Status {
			case entity.RedistributionPending:
				s.Pending++
				if red.Priority == entity.PriorityHigh {
					s.HighPriorityPending++
				}
			case entity.RedistributionApproved:
				if red.CompletedAt != nil && !red.CompletedAt.Before(dayStart) {
					s.ApprovedToday++
				}
			case entity.RedistributionRejected:
				s.Rejected++
			}
		}
		return nil
	})
	return &s, err
}

// ── Transactions ─────────────────────────────────────────────────────────────

type TransactionRepo struct{ v view }

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	return r.v.do(func(st *state) error {
		for _, x := range st.transactions {
			if x.TxID == t.TxID {
				return domain.ErrDuplicate
			}
		}
		st.transactions = append(st.transactions, *t)
		return nil
	})
}

func (r *TransactionRepo) GetByTxID(_ context.Context, companyID, txID string) (*entity.Transaction, error) {
	var out *entity.Transaction
	err := r.v.do(func(st *state) error {
		for _, t := range st.transactions {
			if t.CompanyID == companyID && t.TxID == txID {
				t := t
				out = &t
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *TransactionRepo) List(_ context.Context, companyID string, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	err := r.v.do(func(st *state) error {
		for _, t := range st.transactions {
			if t.CompanyID != companyID {
				continue
			}
			if f.KioskID != "" && t.FromKioskID != f.KioskID && t.ToKioskID != f.KioskID {
				continue
			}
			t := t
			list = append(list, &t)
		}
		return nil
	})
	sortBy(list, func(a, b *entity.Transaction) bool { return a.CreatedAt.After(b.CreatedAt) })
	return page(list, f.Limit, f.Offset), err
}

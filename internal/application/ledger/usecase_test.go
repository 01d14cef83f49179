package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ledger"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/ports"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/infrastructure/memory"
)

type capturePDF struct {
	report ports.LedgerReport
}

func (c *capturePDF) GenerateLedgerPDF(r ports.LedgerReport) ([]byte, error) {
	c.report = r
	return []byte("%PDF-1.4"), nil
}

var (
	admin  = ports.Actor{UserID: "u-1", CompanyID: "c-1", Role: entity.RoleAdmin}
	kiosk1 = ports.Actor{UserID: "u-2", CompanyID: "c-1", KioskID: "k-1", Role: entity.RoleKioskUser}
	kiosk3 = ports.Actor{UserID: "u-3", CompanyID: "c-1", KioskID: "k-3", Role: entity.RoleKioskUser}
	orphan = ports.Actor{UserID: "u-4", CompanyID: "c-1", Role: entity.RoleKioskUser}
)

func setup(t *testing.T) (*ledger.UseCase, *capturePDF) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: "c-1", Name: "Norte", Status: "active"}))
	for _, k := range []entity.Kiosk{
		{ID: "k-1", CompanyID: "c-1", Code: "K-001", Status: entity.KioskStatusActive},
		{ID: "k-2", CompanyID: "c-1", Code: "K-002", Status: entity.KioskStatusActive},
		{ID: "k-3", CompanyID: "c-1", Code: "K-003", Status: entity.KioskStatusActive},
	} {
		k := k
		require.NoError(t, store.Kiosks().Create(ctx, &k))
	}
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p-1", CompanyID: "c-1", SKU: "AGUA", Name: "Agua", Unit: "bottle"}))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, tx := range []entity.Transaction{
		{TxID: "tx-a", FromKioskID: "k-1", ToKioskID: "k-2"},
		{TxID: "tx-b", FromKioskID: "k-2", ToKioskID: "k-3"},
		{TxID: "tx-c", FromKioskID: "k-3", ToKioskID: "k-1"},
	} {
		tx.ID = tx.TxID
		tx.CompanyID = "c-1"
		tx.ProductID = "p-1"
		tx.Quantity = decimal.NewFromInt(10)
		tx.Unit = "bottle"
		tx.Value = decimal.NewFromInt(100)
		tx.Status = entity.TransactionCompleted
		tx.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Transactions().Create(ctx, &tx))
	}

	gen := &capturePDF{}
	uc := ledger.NewUseCase(store.Transactions(), store.Companies(), store.Kiosks(), store.Products(), gen)
	return uc, gen
}

func TestList_AlcancePorRol(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	all, err := uc.List(ctx, admin, 20, 0)
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "tx-c", all.Items[0].TxID, "más reciente primero")

	own, err := uc.List(ctx, kiosk1, 20, 0)
	require.NoError(t, err)
	ids := []string{}
	for _, it := range own.Items {
		ids = append(ids, it.TxID)
	}
	assert.ElementsMatch(t, []string{"tx-a", "tx-c"}, ids)

	_, err = uc.List(ctx, orphan, 20, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGet_AsientoDeOtroKioscoNoSeExpone(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	got, err := uc.Get(ctx, kiosk1, "tx-a")
	require.NoError(t, err)
	assert.Equal(t, "k-2", got.ToKioskID)

	_, err = uc.Get(ctx, kiosk1, "tx-b")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, admin, "tx-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportPDF_ResuelveNombresYAlcance(t *testing.T) {
	uc, gen := setup(t)
	ctx := context.Background()

	out, err := uc.ExportPDF(ctx, admin)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "Norte", gen.report.CompanyName)
	assert.Equal(t, "Todos los kioscos", gen.report.Scope)
	assert.Len(t, gen.report.Transactions, 3)
	assert.Equal(t, "Agua", gen.report.ProductNames["p-1"])
	assert.Equal(t, "K-002", gen.report.KioskCodes["k-2"])

	_, err = uc.ExportPDF(ctx, kiosk3)
	require.NoError(t, err)
	assert.Equal(t, "K-003", gen.report.Scope)
	assert.Len(t, gen.report.Transactions, 2)

	_, err = uc.ExportPDF(ctx, orphan)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/usecase"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/infrastructure/memory"
)

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestProductUseCase_CreateYDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	out, err := uc.Create(ctx, "c-1", dto.CreateProductRequest{SKU: "AGUA", Name: "Agua", Unit: "bottle", SuggestedSellingPrice: dec("12")})
	require.NoError(t, err)
	assert.Equal(t, "medium", out.DepletionRate)
	assert.True(t, out.Quantity.IsZero())
	assert.False(t, out.AcquiredPrice.Valid, "precio no enviado queda NULL")
	assert.Equal(t, "normal", out.SupplyStatus, "sin límites la clasificación es normal")

	_, err = uc.Create(ctx, "c-1", dto.CreateProductRequest{SKU: "AGUA", Name: "Otra", Unit: "bottle"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo SKU en otra empresa es válido.
	_, err = uc.Create(ctx, "c-2", dto.CreateProductRequest{SKU: "AGUA", Name: "Agua", Unit: "bottle"})
	assert.NoError(t, err)

	_, err = uc.Create(ctx, "c-1", dto.CreateProductRequest{SKU: "X", Name: "X", Unit: "u", OverSupplyLimit: dec("10"), UnderSupplyLimit: dec("20")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "under > over")

	_, err = uc.Create(ctx, "c-1", dto.CreateProductRequest{SKU: "Y", Name: "Y", Unit: "u", DepletionRate: "extreme"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_GetDeOtraEmpresaEsNil(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()
	p, err := uc.Create(ctx, "c-1", dto.CreateProductRequest{SKU: "AGUA", Name: "Agua", Unit: "bottle"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, "c-2", p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductUseCase_AnalisisDeRedistribucion(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	p, err := uc.Create(ctx, "c-1", dto.CreateProductRequest{
		SKU: "AGUA", Name: "Agua", Unit: "bottle",
		AcquiredPrice: dec("5"), SuggestedSellingPrice: dec("12"),
		OverSupplyLimit: dec("100"), UnderSupplyLimit: dec("20"), NormalSupplyLevel: dec("60"),
	})
	require.NoError(t, err)

	// 150 unidades repartidas entre dos kioscos.
	require.NoError(t, store.Inventory().AddQuantity(ctx, "k-1", p.ID, decimal.NewFromInt(90)))
	require.NoError(t, store.Inventory().AddQuantity(ctx, "k-2", p.ID, decimal.NewFromInt(60)))
	require.NoError(t, store.Products().RefreshQuantity(ctx, p.ID))

	out, err := uc.Analyze(ctx, "c-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "oversupply", out.Product.SupplyStatus)
	assert.True(t, out.Product.ComputedSupplyLevel.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.Projection.RedistributableQty.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.Projection.ExpectedRevenue.Equal(decimal.NewFromInt(600)))
	assert.True(t, out.Projection.OriginalCost.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.Projection.RedistributionCost.Equal(decimal.NewFromInt(25)))
	assert.True(t, out.Projection.NetProfit.Equal(decimal.NewFromInt(325)))
	assert.Equal(t, "profitable", out.Projection.Outcome)
	assert.False(t, out.Recommended, "aún no es elegible")

	_, err = uc.SetEligibility(ctx, "c-1", p.ID, true)
	require.NoError(t, err)
	out, err = uc.Analyze(ctx, "c-1", p.ID)
	require.NoError(t, err)
	assert.True(t, out.Recommended)

	list, err := uc.List(ctx, "c-1", true, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()
	p, err := uc.Create(ctx, "c-1", dto.CreateProductRequest{SKU: "AGUA", Name: "Agua", Unit: "bottle", MRP: dec("15")})
	require.NoError(t, err)

	name := "Agua 600ml"
	out, err := uc.Update(ctx, "c-1", p.ID, dto.UpdateProductRequest{Name: &name, AcquiredPrice: dec("4.5")})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.True(t, out.MRP.Valid, "campos no enviados se conservan")
	assert.True(t, out.AcquiredPrice.Decimal.Equal(decimal.RequireFromString("4.5")))

	_, err = uc.Update(ctx, "c-1", p.ID, dto.UpdateProductRequest{MRP: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/usecase"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/infrastructure/memory"
)

func TestKioskUseCase_CodigoUnicoPorEmpresa(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewKioskUseCase(store.Kiosks())
	ctx := context.Background()

	k, err := uc.Create(ctx, "c-1", dto.CreateKioskRequest{Code: "K-001", Name: "Centro", Address: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "active", k.Status)

	_, err = uc.Create(ctx, "c-1", dto.CreateKioskRequest{Code: "K-001", Name: "Otro", Address: "Calle 2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "c-2", dto.CreateKioskRequest{Code: "K-001", Name: "Otro", Address: "Calle 2"})
	assert.NoError(t, err)

	_, err = uc.Create(ctx, "c-1", dto.CreateKioskRequest{Code: " ", Name: "X", Address: "Y"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKioskUseCase_ActivarDesactivarYFiltrar(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewKioskUseCase(store.Kiosks())
	ctx := context.Background()

	a, err := uc.Create(ctx, "c-1", dto.CreateKioskRequest{Code: "K-001", Name: "Centro", Address: "Calle 1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "c-1", dto.CreateKioskRequest{Code: "K-002", Name: "Terminal", Address: "Calle 2"})
	require.NoError(t, err)

	off, err := uc.SetActive(ctx, "c-1", a.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "inactive", off.Status)

	active, err := uc.List(ctx, "c-1", "active", 20, 0)
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, "K-002", active.Items[0].Code)

	all, err := uc.List(ctx, "c-1", "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	bad := "closed"
	_, err = uc.Update(ctx, "c-1", a.ID, dto.UpdateKioskRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := uc.SetActive(ctx, "c-2", a.ID, true)
	require.NoError(t, err)
	assert.Nil(t, missing, "kiosco de otra empresa")
}

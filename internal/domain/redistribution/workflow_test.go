package redistribution_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/redistribution"
)

const (
	kioskA = "kiosk-a"
	kioskB = "kiosk-b"
)

var now = time.Date(2025, 10, 11, 15, 5, 45, 0, time.UTC)

func pushRequest(t *testing.T) *entity.Redistribution {
	t.Helper()
	req, err := redistribution.NewRequest(redistribution.NewRequestInput{
		CompanyID:   "company",
		ProductID:   "almond-milk",
		Quantity:    d(20),
		Unit:        "liters",
		Reason:      "Surplus stock above threshold",
		FromKioskID: kioskA,
	}, now)
	require.NoError(t, err)
	return req
}

func TestNewRequest_ValoresPorDefecto(t *testing.T) {
	req := pushRequest(t)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, entity.RedistributionPending, req.Status)
	assert.Equal(t, entity.PriorityMedium, req.Priority)
	assert.Nil(t, req.CompletedAt)
	assert.Equal(t, redistribution.DirectionPush, redistribution.DirectionOf(req))
}

func TestNewRequest_Validaciones(t *testing.T) {
	base := redistribution.NewRequestInput{ProductID: "p", Quantity: d(5), Unit: "kg", ToKioskID: kioskA}

	_, err := redistribution.NewRequest(base, now)
	require.NoError(t, err)

	noQty := base
	noQty.Quantity = d(0)
	_, err = redistribution.NewRequest(noQty, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	both := base
	both.FromKioskID = kioskB
	_, err = redistribution.NewRequest(both, now)
	assert.ErrorIs(t, err, redistribution.ErrDirection)

	none := base
	none.ToKioskID = ""
	_, err = redistribution.NewRequest(none, now)
	assert.ErrorIs(t, err, redistribution.ErrDirection)

	noUnit := base
	noUnit.Unit = " "
	_, err = redistribution.NewRequest(noUnit, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApprove_PushAsignaDestino(t *testing.T) {
	req := pushRequest(t)

	out, eff, err := redistribution.Approve(req, kioskB, now)
	require.NoError(t, err)

	assert.Equal(t, entity.RedistributionApproved, out.Status)
	assert.Equal(t, kioskA, out.FromKioskID)
	assert.Equal(t, kioskB, out.ToKioskID)
	require.NotNil(t, out.CompletedAt)
	assert.Equal(t, now, *out.CompletedAt)

	// la entrada no se modifica
	assert.Equal(t, entity.RedistributionPending, req.Status)
	assert.Empty(t, req.ToKioskID)

	assert.Contains(t, eff.Affected, redistribution.AggregateTransactions)
	assert.Contains(t, eff.Affected, redistribution.AggregateKioskInventory)
	assert.Contains(t, eff.Affected, redistribution.KioskAggregate(kioskA))
	assert.Contains(t, eff.Affected, redistribution.KioskAggregate(kioskB))
}

func TestApprove_PullAsignaOrigen(t *testing.T) {
	req := pushRequest(t)
	req.FromKioskID, req.ToKioskID = "", kioskA

	out, _, err := redistribution.Approve(req, kioskB, now)
	require.NoError(t, err)
	assert.Equal(t, kioskB, out.FromKioskID)
	assert.Equal(t, kioskA, out.ToKioskID)
}

func TestApprove_SinContraparteEsValidacion(t *testing.T) {
	req := pushRequest(t)
	_, _, err := redistribution.Approve(req, "", now)
	assert.ErrorIs(t, err, redistribution.ErrCounterpartyRequired)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, req.IsPending())
}

func TestApprove_MismoKioscoRechazado(t *testing.T) {
	req := pushRequest(t)
	_, _, err := redistribution.Approve(req, kioskA, now)
	assert.ErrorIs(t, err, redistribution.ErrSameKiosk)
}

func TestApprove_SobreTerminalEsConflicto(t *testing.T) {
	req := pushRequest(t)
	approved, _, err := redistribution.Approve(req, kioskB, now)
	require.NoError(t, err)

	again, _, err := redistribution.Approve(approved, kioskB, now.Add(time.Hour))
	assert.Nil(t, again)
	assert.ErrorIs(t, err, redistribution.ErrIllegalTransition)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, entity.RedistributionApproved, approved.Status)
	assert.Equal(t, now, *approved.CompletedAt)

	_, _, err = redistribution.Reject(approved)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReject(t *testing.T) {
	req := pushRequest(t)
	out, eff, err := redistribution.Reject(req)
	require.NoError(t, err)
	assert.Equal(t, entity.RedistributionRejected, out.Status)
	assert.Empty(t, out.ToKioskID)
	assert.Nil(t, out.CompletedAt)
	assert.NotContains(t, eff.Affected, redistribution.AggregateTransactions)

	_, _, err = redistribution.Approve(out, kioskB, now)
	assert.ErrorIs(t, err, redistribution.ErrIllegalTransition)
}

func TestApprove_ConAmbosLadosNoRequiereContraparte(t *testing.T) {
	req := pushRequest(t)
	req.ToKioskID = kioskB
	out, _, err := redistribution.Approve(req, "", now)
	require.NoError(t, err)
	assert.Equal(t, kioskB, out.ToKioskID)
}

package redistribution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/redistribution"
)

func TestShouldAutoRequest(t *testing.T) {
	below := entity.KioskInventory{Quantity: d(10), Threshold: d(20), AutoRequestEnabled: true}
	assert.True(t, redistribution.ShouldAutoRequest(below))

	equal := below
	equal.Quantity = d(20)
	assert.False(t, redistribution.ShouldAutoRequest(equal), "en el umbral no dispara")

	above := below
	above.Quantity = d(45)
	assert.False(t, redistribution.ShouldAutoRequest(above))
}

func TestShouldAutoRequest_DeshabilitadoNuncaDispara(t *testing.T) {
	for _, q := range []float64{0, 5, 19.9, 20, 100} {
		item := entity.KioskInventory{Quantity: d(q), Threshold: d(20), AutoRequestEnabled: false}
		assert.False(t, redistribution.ShouldAutoRequest(item), "q=%v", q)
	}
}

func TestSuggest(t *testing.T) {
	s := redistribution.Suggest(entity.KioskInventory{Quantity: d(45), Threshold: d(50)})
	assert.Equal(t, redistribution.DirectionPull, s.Direction)
	assert.True(t, d(5).Equal(s.Quantity))

	s = redistribution.Suggest(entity.KioskInventory{Quantity: d(200), Threshold: d(20)})
	assert.Equal(t, redistribution.DirectionPush, s.Direction)
	assert.True(t, d(180).Equal(s.Quantity))
}

func TestSurplus(t *testing.T) {
	assert.True(t, d(40).Equal(redistribution.Surplus(entity.KioskInventory{Quantity: d(60), Threshold: d(20)})))
	assert.True(t, redistribution.Surplus(entity.KioskInventory{Quantity: d(5), Threshold: d(20)}).IsZero())
}

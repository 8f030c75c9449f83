package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIonizationRate(t *testing.T) {
	// low temperature limit ~ 1e-16 Te^2, high temperature saturates at 3e-14
	assert.InDelta(t, 1.e-16*1.e-4, IonizationRate(0.01), 1.e-22)
	assert.InDelta(t, 3.e-14, IonizationRate(1.e4), 1.e-16)
	// derivative against a central difference
	Te, h := 7.3, 1.e-5
	fd := (IonizationRate(Te+h) - IonizationRate(Te-h)) / (2 * h)
	assert.InDelta(t, fd, IonizationRateDeriv(Te), 1.e-20)
}

func TestAlignedTensor(t *testing.T) {
	// field along x: parallel on xx, perpendicular elsewhere on the diagonal
	K := AlignedTensor([3]float64{1, 0, 0}, 10, 1, 0)
	assert.InDelta(t, 10., K[0][0], 1.e-14)
	assert.InDelta(t, 1., K[1][1], 1.e-14)
	assert.InDelta(t, 1., K[2][2], 1.e-14)
	assert.InDelta(t, 0., K[0][1], 1.e-14)
	// the cross part is antisymmetric
	K = AlignedTensor([3]float64{0, 0, 1}, 10, 1, 2)
	assert.InDelta(t, -2., K[0][1], 1.e-14)
	assert.InDelta(t, 2., K[1][0], 1.e-14)
	// the scalar reduction matches the xx entry
	b := [3]float64{0.6, 0.8, 0}
	K = AlignedTensor(b, 5, 2, 0)
	assert.InDelta(t, K[0][0], AlignedScalar(0.6, 5, 2), 1.e-14)
}

func TestNeutralDiffusivity(t *testing.T) {
	p := DefaultPlasmaParams()
	vn := NeutralThermalSpeed(p.TN, p.MN)
	assert.Greater(t, vn, 1.e3)
	assert.Less(t, vn, 1.e5)
	d := NeutralDiffusivity(vn, 1.e18, 10)
	assert.Greater(t, d, 0.)
}

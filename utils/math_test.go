package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestWrapToPi(t *testing.T) {
	test.That(t, WrapToPi(3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapToPi(-3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapToPi(math.Pi), test.ShouldEqual, math.Pi)
	test.That(t, WrapToPi(-math.Pi), test.ShouldEqual, math.Pi)
	test.That(t, WrapToPi(TwoPi), test.ShouldAlmostEqual, 0)
	test.That(t, WrapToPi(-HalfPi-TwoPi), test.ShouldAlmostEqual, -HalfPi)

	t.Run("in range is exact", func(t *testing.T) {
		for _, a := range []float64{0, 0.1, -0.1, 1, -1, 3.14159, -3.14159, math.Nextafter(-math.Pi, 0)} {
			test.That(t, WrapToPi(a), test.ShouldEqual, a)
		}
	})

	t.Run("large magnitudes", func(t *testing.T) {
		for _, a := range []float64{1e6, -1e6, 12345.678, -98765.4321} {
			w := WrapToPi(a)
			test.That(t, w, test.ShouldBeGreaterThan, -math.Pi)
			test.That(t, w, test.ShouldBeLessThanOrEqualTo, math.Pi)
			// same angle modulo a full turn
			test.That(t, math.Cos(w), test.ShouldAlmostEqual, math.Cos(a), 1e-6)
			test.That(t, math.Sin(w), test.ShouldAlmostEqual, math.Sin(a), 1e-6)
		}
	})

	t.Run("huge magnitudes stay in range", func(t *testing.T) {
		for _, a := range []float64{1e17, -1e17, 1e18, -1e18, 1e300, -1e300, math.MaxFloat64, -math.MaxFloat64} {
			w := WrapToPi(a)
			test.That(t, w, test.ShouldBeGreaterThan, -math.Pi)
			test.That(t, w, test.ShouldBeLessThanOrEqualTo, math.Pi)
			test.That(t, WrapToPi(w), test.ShouldEqual, w)
		}
		// the result differs from the input by whole turns of TwoPi
		test.That(t, WrapToPi(1e18), test.ShouldEqual, math.Remainder(1e18, TwoPi))
	})
}

func TestSafeAcos(t *testing.T) {
	test.That(t, SafeAcos(1.0000001), test.ShouldEqual, 0)
	test.That(t, SafeAcos(-1.0000001), test.ShouldEqual, math.Pi)
	test.That(t, SafeAcos(1), test.ShouldEqual, 0)
	test.That(t, SafeAcos(-1), test.ShouldEqual, math.Pi)
	test.That(t, SafeAcos(0), test.ShouldAlmostEqual, HalfPi)
	test.That(t, SafeAcos(0.5), test.ShouldAlmostEqual, math.Acos(0.5))
	test.That(t, math.IsNaN(SafeAcos(2)), test.ShouldBeFalse)
}

func TestSafeAsin(t *testing.T) {
	test.That(t, SafeAsin(1.0000001), test.ShouldEqual, HalfPi)
	test.That(t, SafeAsin(-1.0000001), test.ShouldEqual, -HalfPi)
	test.That(t, SafeAsin(0.5), test.ShouldAlmostEqual, math.Asin(0.5))
}

func TestDegRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(HalfPi), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(-33.3)), test.ShouldAlmostEqual, -33.3)
	test.That(t, OneOverTwoPi*TwoPi, test.ShouldAlmostEqual, 1.0)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
	test.That(t, Square(-3), test.ShouldEqual, 9)
}

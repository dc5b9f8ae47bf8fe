package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/montanaflynn/stats"
	"go.viam.com/test"
)

func TestAxisAngleRoundTrip(t *testing.T) {
	data := []R4AA{
		{1, 1, 1, 1},
		{1, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 0, 0, 1},
	}

	// Quaternion [x, y, z, w]
	// from https://www.andre-gaschler.com/rotationconverter/
	qc := [][]float64{
		{0.2767965, 0.2767965, 0.2767965, 0.8775826},
		{0.4794255, 0, 0, 0.8775826},
		{0, 0.4794255, 0, 0.8775826},
		{0, 0, 0.4794255, 0.8775826},
	}

	for idx, d := range data {
		d.Normalize()
		q := Quaternion(d.Quaternion())

		d2 := q.AxisAngles()
		test.That(t, d2.Theta, test.ShouldAlmostEqual, d.Theta)
		test.That(t, d2.RX, test.ShouldAlmostEqual, d.RX)
		test.That(t, d2.RY, test.ShouldAlmostEqual, d.RY)
		test.That(t, d2.RZ, test.ShouldAlmostEqual, d.RZ)

		test.That(t, q.Real, test.ShouldAlmostEqual, qc[idx][3], .00001)
		test.That(t, q.Imag, test.ShouldAlmostEqual, qc[idx][0], .00001)
		test.That(t, q.Jmag, test.ShouldAlmostEqual, qc[idx][1], .00001)
		test.That(t, q.Kmag, test.ShouldAlmostEqual, qc[idx][2], .00001)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	data := []EulerAngles{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 0},
		{0.5, 0.25, -0.75},
		{-2, 1.2, 2.5},
	}

	// Quaternion [x, y, z, w]
	qc := [][]float64{
		{0, 0.4794255, 0, 0.8775826},
		{0.4794255, 0, 0, 0.8775826},
		{0, 0, -0.4794255, 0.8775826},
		{0.4207355, 0.4207355, -0.2298488, 0.7701512},
		{0.2023145, 0.1841698, 0.3234155, 0.9058436},
		{0.7552638, 0.0705239, -0.2733622, 0.5915032},
	}

	for idx, d := range data {
		q := Quaternion(d.Quaternion())
		d2 := q.EulerAngles()
		test.That(t, d2.Heading, test.ShouldAlmostEqual, d.Heading)
		test.That(t, d2.Pitch, test.ShouldAlmostEqual, d.Pitch)
		test.That(t, d2.Bank, test.ShouldAlmostEqual, d.Bank)

		test.That(t, q.Real, test.ShouldAlmostEqual, qc[idx][3], .00001)
		test.That(t, q.Imag, test.ShouldAlmostEqual, qc[idx][0], .00001)
		test.That(t, q.Jmag, test.ShouldAlmostEqual, qc[idx][1], .00001)
		test.That(t, q.Kmag, test.ShouldAlmostEqual, qc[idx][2], .00001)
	}
}

func TestRandomRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	var residuals stats.Float64Data
	for i := 0; i < 500; i++ {
		ea := &EulerAngles{
			Heading: (r.Float64()*2 - 1) * 3.1,
			Pitch:   (r.Float64()*2 - 1) * 1.5,
			Bank:    (r.Float64()*2 - 1) * 3.1,
		}

		q := NewQuaternionFromEulerAngles(ea, ObjectToInertial)
		rm := NewRotationMatrixFromQuaternion(q, ObjectToInertial)
		fromMatrix := rm.ToEulerAngles(ObjectToInertial)
		eaAlmostEqual(t, fromMatrix, ea, 1e-9)
		residuals = append(residuals,
			math.Abs(fromMatrix.Heading-ea.Heading),
			math.Abs(fromMatrix.Pitch-ea.Pitch),
			math.Abs(fromMatrix.Bank-ea.Bank),
		)

		back := Quaternion(rm.Quaternion())
		test.That(t, QuaternionAlmostEqual(back.Quaternion(), q.Quaternion(), 1e-9), test.ShouldBeTrue)
		eaAlmostEqual(t, back.ToEulerAngles(ObjectToInertial), ea, 1e-9)

		aa := q.AxisAngles()
		test.That(t, OrientationAlmostEqual(aa, ea), test.ShouldBeTrue)
	}

	worst, err := stats.Max(residuals)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, worst, test.ShouldBeLessThan, 1e-9)
	mean, err := stats.Mean(residuals)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mean, test.ShouldBeLessThan, 1e-11)
}

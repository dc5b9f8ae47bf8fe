package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func rmAlmostEqual(t *testing.T, actual, expected *RotationMatrix, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			test.That(t, actual.At(i, j), test.ShouldAlmostEqual, expected.At(i, j), tol)
		}
	}
}

func eaAlmostEqual(t *testing.T, actual, expected *EulerAngles, tol float64) {
	t.Helper()
	test.That(t, actual.Heading, test.ShouldAlmostEqual, expected.Heading, tol)
	test.That(t, actual.Pitch, test.ShouldAlmostEqual, expected.Pitch, tol)
	test.That(t, actual.Bank, test.ShouldAlmostEqual, expected.Bank, tol)
}

func TestNewRotationMatrix(t *testing.T) {
	_, err := NewRotationMatrix([]float64{1, 0, 0, 0, 1, 0})
	test.That(t, err, test.ShouldNotBeNil)

	rm, err := NewRotationMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rm.At(1, 2), test.ShouldEqual, 6.0)
	test.That(t, rm.Row(2), test.ShouldResemble, r3.Vector{X: 7, Y: 8, Z: 9})
	test.That(t, rm.Col(0), test.ShouldResemble, r3.Vector{X: 1, Y: 4, Z: 7})
	test.That(t, rm.Transpose().Data(), test.ShouldResemble, []float64{1, 4, 7, 2, 5, 8, 3, 6, 9})

	d := rm.Dense()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			test.That(t, d.At(i, j), test.ShouldEqual, rm.At(i, j))
		}
	}
}

func TestRotationMatrixIsOrthonormal(t *testing.T) {
	test.That(t, IdentityRotationMatrix().IsOrthonormal(1e-12), test.ShouldBeTrue)

	scaled, err := NewRotationMatrix([]float64{2, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scaled.IsOrthonormal(1e-6), test.ShouldBeFalse)

	reflection, err := NewRotationMatrix([]float64{-1, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, reflection.IsOrthonormal(1e-6), test.ShouldBeFalse)

	pitches := []float64{0, 0.7, -1.3, math.Pi / 2, -math.Pi / 2, math.Pi/2 - 1e-6, -math.Pi/2 + 1e-6}
	for _, p := range pitches {
		for _, ea := range sampleEulers {
			e := &EulerAngles{Heading: ea.Heading, Pitch: p, Bank: ea.Bank}
			test.That(t, NewRotationMatrixFromEulerAngles(e).IsOrthonormal(1e-9), test.ShouldBeTrue)
			for _, dir := range []Direction{ObjectToInertial, InertialToObject} {
				q := NewQuaternionFromEulerAngles(e, dir)
				test.That(t, NewRotationMatrixFromQuaternion(q, dir).IsOrthonormal(1e-9), test.ShouldBeTrue)
			}
		}
	}
}

func TestRotationMatrixFromQuaternion(t *testing.T) {
	for _, ea := range sampleEulers {
		o2i := NewQuaternionFromEulerAngles(ea, ObjectToInertial)
		i2o := NewQuaternionFromEulerAngles(ea, InertialToObject)
		fromEuler := NewRotationMatrixFromEulerAngles(ea)

		rmAlmostEqual(t, NewRotationMatrixFromQuaternion(o2i, ObjectToInertial), fromEuler, 1e-12)
		rmAlmostEqual(t, NewRotationMatrixFromQuaternion(i2o, InertialToObject), fromEuler, 1e-12)
		// reading a quaternion with the wrong direction gives the inverse rotation
		rmAlmostEqual(t, NewRotationMatrixFromQuaternion(o2i, InertialToObject), fromEuler.Transpose(), 1e-12)

		test.That(t, QuaternionAlmostEqual(fromEuler.Quaternion(), quat.Number(o2i), 1e-9), test.ShouldBeTrue)
	}
}

func TestRotationMatrixEulerRoundTrip(t *testing.T) {
	for h := -3.0; h <= 3.0; h += 0.6 {
		for p := -1.5; p <= 1.5; p += 0.3 {
			for b := -3.0; b <= 3.0; b += 0.6 {
				ea := &EulerAngles{Heading: h, Pitch: p, Bank: b}
				rm := NewRotationMatrixFromEulerAngles(ea)
				eaAlmostEqual(t, rm.ToEulerAngles(ObjectToInertial), ea, 1e-9)
				eaAlmostEqual(t, rm.Transpose().ToEulerAngles(InertialToObject), ea, 1e-9)
			}
		}
	}
}

func TestRotationMatrixGimbalLock(t *testing.T) {
	for _, pole := range []float64{math.Pi / 2, -math.Pi / 2} {
		ea := &EulerAngles{Heading: 0.3, Pitch: pole, Bank: 0.7}
		want := ea.Canonical()
		rm := NewRotationMatrixFromEulerAngles(ea)

		got := rm.ToEulerAngles(ObjectToInertial)
		eaAlmostEqual(t, got, want, 1e-9)
		test.That(t, got.Bank, test.ShouldEqual, 0.0)
		test.That(t, got.Pitch, test.ShouldEqual, pole)

		eaAlmostEqual(t, rm.Transpose().ToEulerAngles(InertialToObject), want, 1e-9)
		rmAlmostEqual(t, NewRotationMatrixFromEulerAngles(got), rm, 1e-9)
	}
}

func TestRotationMatrixRotateVector(t *testing.T) {
	v := r3.Vector{X: -1.5, Y: 0.25, Z: 2}
	for _, ea := range sampleEulers {
		rm := NewRotationMatrixFromEulerAngles(ea)
		there := rm.RotateVector(v, ObjectToInertial)
		test.That(t, there.Norm(), test.ShouldAlmostEqual, v.Norm(), 1e-12)
		vecAlmostEqual(t, rm.RotateVector(there, InertialToObject), v, 1e-12)
		vecAlmostEqual(t, rm.Transpose().RotateVector(v, ObjectToInertial), rm.RotateVector(v, InertialToObject), 1e-12)
	}
}

func TestRotationMatrixMul(t *testing.T) {
	for _, ea := range sampleEulers {
		heading := NewRotationMatrixFromEulerAngles(&EulerAngles{Heading: ea.Heading})
		pitch := NewRotationMatrixFromEulerAngles(&EulerAngles{Pitch: ea.Pitch})
		bank := NewRotationMatrixFromEulerAngles(&EulerAngles{Bank: ea.Bank})
		rmAlmostEqual(t, heading.Mul(pitch).Mul(bank), NewRotationMatrixFromEulerAngles(ea), 1e-12)

		rm := NewRotationMatrixFromEulerAngles(ea)
		rmAlmostEqual(t, rm.Mul(rm.Transpose()), IdentityRotationMatrix(), 1e-12)
	}
}

func TestRotationMatrixMat4(t *testing.T) {
	ea := sampleEulers[1]
	rm := NewRotationMatrixFromEulerAngles(ea)
	translation := r3.Vector{X: 10, Y: -2, Z: 4}

	toParent := rm.Mat4(translation, ObjectToInertial)
	toObject := rm.Mat4(translation, InertialToObject)

	point := r3.Vector{X: 1, Y: 2, Z: 3}
	moved := toParent.Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1})
	want := rm.RotateVector(point, ObjectToInertial).Add(translation)
	vecAlmostEqual(t, r3.Vector{X: moved.X(), Y: moved.Y(), Z: moved.Z()}, want, 1e-12)
	test.That(t, moved.W(), test.ShouldEqual, 1.0)

	back := toObject.Mul4x1(moved)
	vecAlmostEqual(t, r3.Vector{X: back.X(), Y: back.Y(), Z: back.Z()}, point, 1e-12)

	product := toParent.Mul4(toObject)
	ident := mgl64.Ident4()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			test.That(t, product.At(i, j), test.ShouldAlmostEqual, ident.At(i, j), 1e-12)
		}
	}
}

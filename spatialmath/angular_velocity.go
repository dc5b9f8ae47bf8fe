package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// AngularVelocity contains angular velocity in rad/s across x/y/z axes.
type AngularVelocity r3.Vector

// R3ToAngVel converts an r3 vector of rad/s rates to an AngularVelocity.
func R3ToAngVel(vec r3.Vector) AngularVelocity {
	return AngularVelocity{X: vec.X, Y: vec.Y, Z: vec.Z}
}

// QuatToAngVel calculates the constant angular velocity that rotates by diffQ over dt seconds.
// The rotation is taken the short way round.
func QuatToAngVel(diffQ quat.Number, dt float64) AngularVelocity {
	q := Quaternion(diffQ)
	if q.Real < 0 {
		q = Flip(q)
	}
	q.Normalize()
	return R3ToAngVel(q.RotationAxis().Mul(q.RotationAngle() / dt))
}

// OrientationToAngularVel calculates an angular velocity based on an orientation change over a time difference.
func OrientationToAngularVel(o Orientation, dt float64) AngularVelocity {
	return QuatToAngVel(o.Quaternion(), dt)
}

// DeltaQuaternion returns the rotation produced by holding av for dt seconds.
func DeltaQuaternion(av AngularVelocity, dt float64) Quaternion {
	rate := r3.Vector(av)
	speed := rate.Norm()
	if speed == 0 || math.IsNaN(speed) {
		return IdentityQuaternion()
	}
	return NewQuaternionFromAxisAngle(rate, speed*dt)
}

// Integrate advances the orientation o by av held for dt seconds. av is expressed in the
// inertial frame. The result is renormalized to counter drift.
func Integrate(o Orientation, av AngularVelocity, dt float64) Quaternion {
	next := Mul(DeltaQuaternion(av, dt), Quaternion(o.Quaternion()))
	next.Normalize()
	return next
}

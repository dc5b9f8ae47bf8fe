// Package spatialmath converts 3D orientations between Euler angles, unit quaternions and
// rotation matrices, and composes and interpolates them.
package spatialmath

import (
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid object relative to its parent frame. Every representation returned performs the
// ObjectToInertial mapping.
type Orientation interface {
	AxisAngles() *R4AA
	Quaternion() quat.Number
	EulerAngles() *EulerAngles
	RotationMatrix() *RotationMatrix
}

// NewZeroOrientation returns an orientatation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return IdentityQuaternion()
}

// OrientationAlmostEqual will return a bool describing whether 2 orientations are approximately the same.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// OrientationBetween returns the orientation representing the difference between the two given
// Orientations: composing o1 with the result gives o2.
func OrientationBetween(o1, o2 Orientation) Orientation {
	return Quaternion(quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion())))
}

// SlerpOrientations interpolates between two orientations of any representation.
func SlerpOrientations(o1, o2 Orientation, t float64) Orientation {
	return Slerp(Quaternion(o1.Quaternion()), Quaternion(o2.Quaternion()), t)
}

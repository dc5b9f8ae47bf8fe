package spatialmath

import (
	"github.com/pkg/errors"
)

// Direction names which of the two frame mappings a rotation value performs. An orientation relates
// an object's local frame to its inertial (parent) frame; the same orientation can be encoded as the
// rotation taking object coordinates to inertial coordinates or as its inverse.
type Direction int

const (
	// ObjectToInertial maps vectors expressed in the object frame into the inertial frame.
	ObjectToInertial Direction = iota
	// InertialToObject maps vectors expressed in the inertial frame into the object frame.
	InertialToObject
)

// String returns the flag spelling of the direction.
func (d Direction) String() string {
	switch d {
	case ObjectToInertial:
		return "object_to_inertial"
	case InertialToObject:
		return "inertial_to_object"
	default:
		return "unknown"
	}
}

// Inverse returns the opposite mapping.
func (d Direction) Inverse() Direction {
	if d == InertialToObject {
		return ObjectToInertial
	}
	return InertialToObject
}

// sign is +1 for ObjectToInertial and -1 for InertialToObject. The two encodings of a rotation
// differ only in the sign of the terms that mix the scalar and vector parts of a quaternion.
func (d Direction) sign() float64 {
	if d == InertialToObject {
		return -1
	}
	return 1
}

// ParseDirection parses the output of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case ObjectToInertial.String(), "":
		return ObjectToInertial, nil
	case InertialToObject.String():
		return InertialToObject, nil
	default:
		return ObjectToInertial, errors.Errorf("unknown direction %q", s)
	}
}

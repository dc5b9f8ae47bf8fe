package spatialmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/rigidmotion/orient/utils"
)

// Within this many radians of a pole, heading and bank turn about the same physical axis and
// Canonize folds the bank into the heading.
const gimbalLockTolerance = 1e-4

// EulerAngles are three successive rotations about the object's forward, right and up axes.
// Starting from the inertial frame, the object is rotated by Heading about up (+y), then by Pitch
// about right (+x), then by Bank about forward (-z), each following the right hand rule. Positive
// heading turns left, positive pitch raises the nose and positive bank drops the right wing.
//
// Any triple is a valid orientation, but many triples share one rotation. See Canonize.
type EulerAngles struct {
	Heading float64 `json:"heading"`
	Pitch   float64 `json:"pitch"`
	Bank    float64 `json:"bank"`
}

// NewEulerAngles returns the identity orientation.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Heading: 0, Pitch: 0, Bank: 0}
}

// Canonize rewrites ea as the unique triple for its rotation with pitch in [-pi/2, pi/2] and
// heading and bank in (-pi, pi]. In the gimbal lock zone around pitch = +-pi/2 the bank is folded
// into the heading and set to zero: added near +pi/2 and subtracted near -pi/2, which keeps the
// rotation the same at either pole.
func (ea *EulerAngles) Canonize() {
	ea.Pitch = utils.WrapToPi(ea.Pitch)

	// over the top: looking back upside down is the same as turning around
	if ea.Pitch < -utils.HalfPi {
		ea.Pitch = -math.Pi - ea.Pitch
		ea.Heading += math.Pi
		ea.Bank += math.Pi
	} else if ea.Pitch > utils.HalfPi {
		ea.Pitch = math.Pi - ea.Pitch
		ea.Heading += math.Pi
		ea.Bank += math.Pi
	}

	if math.Abs(ea.Pitch) > utils.HalfPi-gimbalLockTolerance {
		// pointing straight up, heading and bank add; straight down, they cancel
		if ea.Pitch > 0 {
			ea.Heading += ea.Bank
		} else {
			ea.Heading -= ea.Bank
		}
		ea.Bank = 0
	} else {
		ea.Bank = utils.WrapToPi(ea.Bank)
	}

	ea.Heading = utils.WrapToPi(ea.Heading)
}

// Canonical returns a canonized copy of ea.
func (ea *EulerAngles) Canonical() *EulerAngles {
	c := *ea
	c.Canonize()
	return &c
}

// IsGimbalLocked reports whether the canonical pitch of ea lies in the zone where heading and bank
// are no longer independent.
func (ea *EulerAngles) IsGimbalLocked() bool {
	return math.Abs(ea.Canonical().Pitch) > utils.HalfPi-gimbalLockTolerance
}

// Degrees returns ea in degrees.
func (ea *EulerAngles) Degrees() *EulerAnglesDegrees {
	return &EulerAnglesDegrees{
		Heading: utils.RadToDeg(ea.Heading),
		Pitch:   utils.RadToDeg(ea.Pitch),
		Bank:    utils.RadToDeg(ea.Bank),
	}
}

// String prints the angles in degrees.
func (ea *EulerAngles) String() string {
	d := ea.Degrees()
	return fmt.Sprintf("heading: %.4f°, pitch: %.4f°, bank: %.4f°", d.Heading, d.Pitch, d.Bank)
}

// EulerAngles returns orientation in Euler angle representation.
func (ea *EulerAngles) EulerAngles() *EulerAngles {
	return ea
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	return quat.Number(NewQuaternionFromEulerAngles(ea, ObjectToInertial))
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	return NewRotationMatrixFromEulerAngles(ea)
}

// AxisAngles returns the orientation in axis angle representation.
func (ea *EulerAngles) AxisAngles() *R4AA {
	return NewQuaternionFromEulerAngles(ea, ObjectToInertial).AxisAngles()
}

// EulerAnglesDegrees is EulerAngles with each angle in degrees.
type EulerAnglesDegrees struct {
	Heading float64 `json:"heading"`
	Pitch   float64 `json:"pitch"`
	Bank    float64 `json:"bank"`
}

// Radians returns the angles converted to radians.
func (ead *EulerAnglesDegrees) Radians() *EulerAngles {
	return &EulerAngles{
		Heading: utils.DegToRad(ead.Heading),
		Pitch:   utils.DegToRad(ead.Pitch),
		Bank:    utils.DegToRad(ead.Bank),
	}
}

// EulerAngles returns orientation in Euler angle representation.
func (ead *EulerAnglesDegrees) EulerAngles() *EulerAngles {
	return ead.Radians()
}

// Quaternion returns orientation in quaternion representation.
func (ead *EulerAnglesDegrees) Quaternion() quat.Number {
	return ead.Radians().Quaternion()
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ead *EulerAnglesDegrees) RotationMatrix() *RotationMatrix {
	return ead.Radians().RotationMatrix()
}

// AxisAngles returns the orientation in axis angle representation.
func (ead *EulerAnglesDegrees) AxisAngles() *R4AA {
	return ead.Radians().AxisAngles()
}

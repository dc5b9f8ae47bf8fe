package spatialmath

import (
	"encoding/json"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/rigidmotion/orient/utils"
)

const (
	// |sin(pitch)| above this is treated as gimbal lock when reading Euler angles from a quaternion.
	quatGimbalLockThreshold = 0.9999
	// Slerp falls back to linear interpolation when the cosine of the half angle exceeds this.
	slerpLinearThreshold = 0.9999
	// Pow leaves rotations with |w| above this unchanged.
	powIdentityThreshold = 0.9999
	// Below this sin^2(theta/2) a rotation has no usable axis.
	axisEpsilon = 1e-12
)

var errZeroAxis = errors.New("cannot build a rotation about a zero length axis")

// Quaternion is a rotation expressed as a unit quaternion. Real holds the scalar part w, and
// Imag, Jmag, Kmag hold the vector part x, y, z.
//
// Used as an Orientation, a Quaternion performs the ObjectToInertial mapping.
type Quaternion quat.Number

// NewQuaternion returns the quaternion w + xi + yj + zk.
func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// IdentityQuaternion returns the quaternion of the null rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{Real: 1}
}

// NewQuaternionFromAxisAngle returns the rotation of theta radians about axis.
// The axis is expected to be a unit vector; a non-unit axis is normalized, and a zero axis
// is a programming error and panics.
func NewQuaternionFromAxisAngle(axis r3.Vector, theta float64) Quaternion {
	norm := axis.Norm()
	if norm == 0 {
		panic(errZeroAxis)
	}
	axis = axis.Mul(1 / norm)
	sinHalf, cosHalf := math.Sincos(theta * 0.5)
	return Quaternion{
		Real: cosHalf,
		Imag: axis.X * sinHalf,
		Jmag: axis.Y * sinHalf,
		Kmag: axis.Z * sinHalf,
	}
}

// NewQuaternionAboutX returns the rotation of theta radians about the +x (right) axis.
func NewQuaternionAboutX(theta float64) Quaternion {
	s, c := math.Sincos(theta * 0.5)
	return Quaternion{Real: c, Imag: s}
}

// NewQuaternionAboutY returns the rotation of theta radians about the +y (up) axis.
func NewQuaternionAboutY(theta float64) Quaternion {
	s, c := math.Sincos(theta * 0.5)
	return Quaternion{Real: c, Jmag: s}
}

// NewQuaternionAboutZ returns the rotation of theta radians about the +z axis. The forward axis
// is -z, so a bank of b is NewQuaternionAboutZ(-b).
func NewQuaternionAboutZ(theta float64) Quaternion {
	s, c := math.Sincos(theta * 0.5)
	return Quaternion{Real: c, Kmag: s}
}

// NewQuaternionFromEulerAngles returns the quaternion performing the given mapping for the
// orientation ea. The ObjectToInertial result equals
// Mul(Mul(NewQuaternionAboutY(heading), NewQuaternionAboutX(pitch)), NewQuaternionAboutZ(-bank)),
// and the InertialToObject result is its conjugate.
func NewQuaternionFromEulerAngles(ea *EulerAngles, dir Direction) Quaternion {
	sh, ch := math.Sincos(ea.Heading * 0.5)
	sp, cp := math.Sincos(ea.Pitch * 0.5)
	sb, cb := math.Sincos(ea.Bank * 0.5)

	s := dir.sign()
	return Quaternion{
		Real: ch*cp*cb - sh*sp*sb,
		Imag: s * (ch*sp*cb - sh*cp*sb),
		Jmag: s * (ch*sp*sb + sh*cp*cb),
		Kmag: -s * (ch*cp*sb + sh*sp*cb),
	}
}

// ToEulerAngles reads heading, pitch and bank out of q, where dir states which mapping q performs.
// Near the poles the bank is forced to zero and the heading carries the whole rotation about the
// vertical axis.
func (q Quaternion) ToEulerAngles(dir Direction) *EulerAngles {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	s := dir.sign()

	ea := NewEulerAngles()
	sinPitch := 2 * (s*w*x - y*z)
	if math.Abs(sinPitch) > quatGimbalLockThreshold {
		ea.Pitch = math.Copysign(utils.HalfPi, sinPitch)
		ea.Heading = math.Atan2(s*w*y-x*z, 0.5-y*y-z*z)
		ea.Bank = 0
		return ea
	}
	ea.Pitch = math.Asin(sinPitch)
	ea.Heading = math.Atan2(x*z+s*w*y, 0.5-x*x-y*y)
	ea.Bank = math.Atan2(-(x*y + s*w*z), 0.5-x*x-z*z)
	return ea
}

// Quaternion returns orientation in quaternion representation.
func (q Quaternion) Quaternion() quat.Number {
	return quat.Number(q)
}

// EulerAngles returns orientation in Euler angle representation.
func (q Quaternion) EulerAngles() *EulerAngles {
	return q.ToEulerAngles(ObjectToInertial)
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (q Quaternion) RotationMatrix() *RotationMatrix {
	return NewRotationMatrixFromQuaternion(q, ObjectToInertial)
}

// AxisAngles returns the orientation in axis angle representation.
func (q Quaternion) AxisAngles() *R4AA {
	axis := q.RotationAxis()
	return &R4AA{Theta: q.RotationAngle(), RX: axis.X, RY: axis.Y, RZ: axis.Z}
}

// Normalize rescales q to unit length. A zero quaternion is left as is.
func (q *Quaternion) Normalize() {
	mag := quat.Abs(quat.Number(*q))
	if mag > 0 {
		*q = Quaternion(quat.Scale(1/mag, quat.Number(*q)))
	}
}

// Normalized returns a unit length copy of q.
func (q Quaternion) Normalized() Quaternion {
	q.Normalize()
	return q
}

// Conjugate negates the vector part. For a unit quaternion this is the inverse rotation.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion(quat.Conj(quat.Number(q)))
}

// RotationAngle returns the angle of rotation in [0, 2pi].
func (q Quaternion) RotationAngle() float64 {
	return 2 * utils.SafeAcos(q.Real)
}

// RotationAxis returns the unit axis of rotation. Rotations too close to the identity have no
// meaningful axis, and return +x.
func (q Quaternion) RotationAxis() r3.Vector {
	sinHalfSq := 1 - utils.Square(q.Real)
	if sinHalfSq <= axisEpsilon {
		return r3.Vector{X: 1, Y: 0, Z: 0}
	}
	oneOverSinHalf := 1 / math.Sqrt(sinHalfSq)
	return r3.Vector{
		X: q.Imag * oneOverSinHalf,
		Y: q.Jmag * oneOverSinHalf,
		Z: q.Kmag * oneOverSinHalf,
	}
}

// Pow returns the fraction exponent of the rotation q: the same axis, with the angle scaled.
// Rotations very close to the identity are returned unchanged.
func (q Quaternion) Pow(exponent float64) Quaternion {
	if math.Abs(q.Real) > powIdentityThreshold {
		return q
	}
	alpha := math.Acos(q.Real)
	newAlpha := alpha * exponent
	mult := math.Sin(newAlpha) / math.Sin(alpha)
	return Quaternion{
		Real: math.Cos(newAlpha),
		Imag: q.Imag * mult,
		Jmag: q.Jmag * mult,
		Kmag: q.Kmag * mult,
	}
}

// RotateVector rotates v by the orientation q. ObjectToInertial takes v from the object frame into
// the inertial frame (q v q*), InertialToObject does the reverse (q* v q).
func (q Quaternion) RotateVector(v r3.Vector, dir Direction) r3.Vector {
	qn := quat.Number(q)
	if dir == InertialToObject {
		qn = quat.Conj(qn)
	}
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(qn, p), quat.Conj(qn))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// MarshalJSON encodes the quaternion as {"w","x","y","z"}.
func (q Quaternion) MarshalJSON() ([]byte, error) {
	return json.Marshal(quaternionJSON{W: q.Real, X: q.Imag, Y: q.Jmag, Z: q.Kmag})
}

// UnmarshalJSON decodes {"w","x","y","z"}.
func (q *Quaternion) UnmarshalJSON(data []byte) error {
	var qj quaternionJSON
	if err := json.Unmarshal(data, &qj); err != nil {
		return err
	}
	*q = Quaternion{Real: qj.W, Imag: qj.X, Jmag: qj.Y, Kmag: qj.Z}
	return nil
}

type quaternionJSON struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Mul returns the Hamilton product a*b. a is the outer rotation: rotating by the product rotates
// by b first and then by a.
func Mul(a, b Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(a), quat.Number(b)))
}

// Dot returns the 4D dot product of a and b, the cosine of half the angle between the two
// rotations when both are unit length.
func Dot(a, b Quaternion) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// AngularDistance returns the angle in [0, pi] of the smallest rotation taking a to b.
func AngularDistance(a, b Quaternion) float64 {
	return 2 * utils.SafeAcos(math.Abs(Dot(a.Normalized(), b.Normalized())))
}

// Slerp interpolates along the shorter great arc from a (t = 0) to b (t = 1) at constant angular
// velocity. t is clamped to [0, 1] and the endpoints are returned exactly. When a and b are nearly
// parallel the components are interpolated linearly instead, and that result is not renormalized.
func Slerp(a, b Quaternion, t float64) Quaternion {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	cosOmega := Dot(a, b)
	// q and -q are the same rotation; take whichever of b and -b is nearer to a
	if cosOmega < 0 {
		b = Flip(b)
		cosOmega = -cosOmega
	}

	var k0, k1 float64
	if cosOmega > slerpLinearThreshold {
		k0 = 1 - t
		k1 = t
	} else {
		sinOmega := math.Sqrt(1 - cosOmega*cosOmega)
		omega := math.Atan2(sinOmega, cosOmega)
		oneOverSinOmega := 1 / sinOmega
		k0 = math.Sin((1-t)*omega) * oneOverSinOmega
		k1 = math.Sin(t*omega) * oneOverSinOmega
	}

	return Quaternion(quat.Add(quat.Scale(k0, quat.Number(a)), quat.Scale(k1, quat.Number(b))))
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation
// but in the opposing octant.
func Flip(q Quaternion) Quaternion {
	return Quaternion{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual reports whether a and b encode the same rotation to within tol,
// treating q and -q as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	same := func(a, b quat.Number) bool {
		return utils.Float64AlmostEqual(a.Real, b.Real, tol) &&
			utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
			utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
			utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol)
	}
	return same(a, b) || same(a, quat.Scale(-1, b))
}

package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/rigidmotion/orient/utils"
)

// |sin(pitch)| above this is treated as gimbal lock when reading Euler angles from a matrix.
const matrixGimbalLockThreshold = 1 - 1e-5

// RotationMatrix is a 3x3 orthonormal matrix stored in row major order. The constructors in this
// package return matrices that take object frame column vectors into the inertial frame,
// v_inertial = M * v_object. Its transpose performs the reverse mapping.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from nine row major entries. The entries are not
// checked for orthonormality; see IsOrthonormal.
func NewRotationMatrix(data []float64) (*RotationMatrix, error) {
	if len(data) != 9 {
		return nil, errors.Errorf("rotation matrix needs 9 entries, got %d", len(data))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], data)
	return rm, nil
}

// IdentityRotationMatrix returns the matrix of the null rotation.
func IdentityRotationMatrix() *RotationMatrix {
	return &RotationMatrix{mat: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewRotationMatrixFromEulerAngles returns the object to inertial matrix of ea, the product
// R_up(heading) * R_right(pitch) * R_forward(bank).
func NewRotationMatrixFromEulerAngles(ea *EulerAngles) *RotationMatrix {
	sh, ch := math.Sincos(ea.Heading)
	sp, cp := math.Sincos(ea.Pitch)
	sb, cb := math.Sincos(ea.Bank)

	return &RotationMatrix{mat: [9]float64{
		ch*cb - sh*sp*sb, ch*sb + sh*sp*cb, sh * cp,
		-cp * sb, cp * cb, -sp,
		-sh*cb - ch*sp*sb, -sh*sb + ch*sp*cb, ch * cp,
	}}
}

// NewRotationMatrixFromQuaternion returns the object to inertial matrix of the rotation q, where
// dir states which mapping q itself performs. The two cases are transposes of each other and
// differ only in the sign of the w cross terms.
func NewRotationMatrixFromQuaternion(q Quaternion, dir Direction) *RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	s := dir.sign()

	return &RotationMatrix{mat: [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - s*w*z), 2 * (x*z + s*w*y),
		2 * (x*y + s*w*z), 1 - 2*(x*x+z*z), 2 * (y*z - s*w*x),
		2 * (x*z - s*w*y), 2 * (y*z + s*w*x), 1 - 2*(x*x+y*y),
	}}
}

// At returns the entry at the given zero indexed row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the given zero indexed row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns the given zero indexed column.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[col+3], Z: rm.mat[col+6]}
}

// Data returns a copy of the row major entries.
func (rm *RotationMatrix) Data() []float64 {
	data := make([]float64, 9)
	copy(data, rm.mat[:])
	return data
}

// Transpose returns the inverse rotation.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	m := rm.mat
	return &RotationMatrix{mat: [9]float64{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}}
}

// Mul returns the product rm * other, the rotation that applies other first and then rm.
func (rm *RotationMatrix) Mul(other *RotationMatrix) *RotationMatrix {
	out := &RotationMatrix{}
	for i := 0; i < 3; i++ {
		row := rm.Row(i)
		for j := 0; j < 3; j++ {
			out.mat[i*3+j] = row.Dot(other.Col(j))
		}
	}
	return out
}

// RotateVector maps v between frames: ObjectToInertial applies the matrix, InertialToObject
// applies its transpose.
func (rm *RotationMatrix) RotateVector(v r3.Vector, dir Direction) r3.Vector {
	if dir == InertialToObject {
		return r3.Vector{X: rm.Col(0).Dot(v), Y: rm.Col(1).Dot(v), Z: rm.Col(2).Dot(v)}
	}
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// ToEulerAngles decomposes the matrix into heading, pitch and bank, where dir states which
// mapping the matrix performs. Matrices built by this package are ObjectToInertial; pass
// InertialToObject for a matrix that was transposed or came from a world to object source such
// as a view matrix.
func (rm *RotationMatrix) ToEulerAngles(dir Direction) *EulerAngles {
	// The inertial to object matrix is the transpose, so every lookup mirrors across the diagonal.
	at := rm.At
	if dir == InertialToObject {
		at = func(row, col int) float64 { return rm.At(col, row) }
	}

	ea := NewEulerAngles()
	sinPitch := -at(1, 2)
	if math.Abs(sinPitch) > matrixGimbalLockThreshold {
		ea.Pitch = math.Copysign(utils.HalfPi, sinPitch)
		ea.Heading = math.Atan2(-at(2, 0), at(0, 0))
		ea.Bank = 0
		return ea
	}
	ea.Heading = math.Atan2(at(0, 2), at(2, 2))
	ea.Pitch = utils.SafeAsin(sinPitch)
	ea.Bank = math.Atan2(-at(1, 0), at(1, 1))
	return ea
}

// Dense returns a gonum copy of the matrix.
func (rm *RotationMatrix) Dense() *mat.Dense {
	return mat.NewDense(3, 3, rm.Data())
}

// IsOrthonormal reports whether M^T * M is the identity and det(M) is +1, each to within tol.
func (rm *RotationMatrix) IsOrthonormal(tol float64) bool {
	d := rm.Dense()
	var mtm mat.Dense
	mtm.Mul(d.T(), d)
	eye := mat.NewDiagDense(3, []float64{1, 1, 1})
	if !mat.EqualApprox(&mtm, eye, tol) {
		return false
	}
	return utils.Float64AlmostEqual(mat.Det(d), 1, tol)
}

// Mat4 returns the 4x4 affine transform that rotates by the matrix and translates by
// translation. With ObjectToInertial this is the object to parent transform
// v_parent = M*v + translation; InertialToObject returns its inverse, the parent to object transform.
func (rm *RotationMatrix) Mat4(translation r3.Vector, dir Direction) mgl64.Mat4 {
	r := rm
	if dir == InertialToObject {
		r = rm.Transpose()
		translation = r.RotateVector(translation, ObjectToInertial).Mul(-1)
	}

	m := mgl64.Ident4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, r.At(i, j))
		}
	}
	m.Set(0, 3, translation.X)
	m.Set(1, 3, translation.Y)
	m.Set(2, 3, translation.Z)
	return m
}

// mgl3 returns the matrix in mathgl's column major layout.
func (rm *RotationMatrix) mgl3() mgl64.Mat3 {
	m := rm.mat
	return mgl64.Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(rm.mgl3().Mat4())
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// EulerAngles returns orientation in Euler angle representation.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	return rm.ToEulerAngles(ObjectToInertial)
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return Quaternion(rm.Quaternion()).AxisAngles()
}

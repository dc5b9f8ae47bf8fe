package spatialmath

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/rigidmotion/orient/utils"
)

// OrientationType defines what orientation representations are known.
type OrientationType string

// The set of allowed representations for orientation.
const (
	NoOrientationType      = OrientationType("")
	EulerAnglesType        = OrientationType("euler_angles")
	EulerAnglesDegreesType = OrientationType("euler_angles_degrees")
	QuaternionType         = OrientationType("quaternion")
	RotationMatrixType     = OrientationType("rotation_matrix")
	AxisAnglesType         = OrientationType("axis_angles")
)

// Entries of a configured rotation matrix must satisfy M^T*M = I to within this.
const configOrthonormalTolerance = 1e-6

// RawOrientation holds the underlying type of orientation, and the value.
type RawOrientation struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// ParseOrientation will use the Type in RawOrientation to unmarshal the Value into the correct struct
// that implements Orientation. An empty type yields the zero orientation.
func ParseOrientation(ro RawOrientation) (Orientation, error) {
	switch OrientationType(ro.Type) {
	case NoOrientationType:
		return NewZeroOrientation(), nil
	case EulerAnglesType:
		var ea EulerAngles
		if err := json.Unmarshal(ro.Value, &ea); err != nil {
			return nil, err
		}
		return &ea, nil
	case EulerAnglesDegreesType:
		var ead EulerAnglesDegrees
		if err := json.Unmarshal(ro.Value, &ead); err != nil {
			return nil, err
		}
		return &ead, nil
	case QuaternionType:
		var q Quaternion
		if err := json.Unmarshal(ro.Value, &q); err != nil {
			return nil, err
		}
		if q == (Quaternion{}) {
			return nil, errors.New("quaternion must not be zero")
		}
		q.Normalize()
		return q, nil
	case RotationMatrixType:
		var data []float64
		if err := json.Unmarshal(ro.Value, &data); err != nil {
			return nil, err
		}
		rm, err := NewRotationMatrix(data)
		if err != nil {
			return nil, err
		}
		if !rm.IsOrthonormal(configOrthonormalTolerance) {
			return nil, errors.New("rotation matrix is not orthonormal")
		}
		return rm, nil
	case AxisAnglesType:
		var r4 R4AA
		if err := json.Unmarshal(ro.Value, &r4); err != nil {
			return nil, err
		}
		if r4.Axis().Norm() == 0 {
			return nil, errZeroAxis
		}
		r4.Normalize()
		return &r4, nil
	default:
		return nil, errors.Errorf("orientation type %s not recognized", ro.Type)
	}
}

// OrientationMap encodes the orientation interface to something serializable and human readable.
func OrientationMap(o Orientation) (map[string]interface{}, error) {
	switch v := o.(type) {
	case *EulerAngles:
		return map[string]interface{}{"type": string(EulerAnglesType), "value": v}, nil
	case *EulerAnglesDegrees:
		return map[string]interface{}{"type": string(EulerAnglesDegreesType), "value": v}, nil
	case Quaternion:
		return map[string]interface{}{"type": string(QuaternionType), "value": v}, nil
	case *Quaternion:
		return map[string]interface{}{"type": string(QuaternionType), "value": *v}, nil
	case *RotationMatrix:
		return map[string]interface{}{"type": string(RotationMatrixType), "value": v.Data()}, nil
	case *R4AA:
		return map[string]interface{}{"type": string(AxisAnglesType), "value": v}, nil
	default:
		return nil, utils.NewUnimplementedInterfaceError("a serializable Orientation", o)
	}
}

// MarshalOrientation returns the RawOrientation encoding of o.
func MarshalOrientation(o Orientation) (RawOrientation, error) {
	om, err := OrientationMap(o)
	if err != nil {
		return RawOrientation{}, err
	}
	value, err := json.Marshal(om["value"])
	if err != nil {
		return RawOrientation{}, errors.Wrap(err, "cannot encode orientation value")
	}
	return RawOrientation{Type: om["type"].(string), Value: value}, nil
}

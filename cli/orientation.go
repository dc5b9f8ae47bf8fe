package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/rigidmotion/orient/spatialmath"
	"github.com/rigidmotion/orient/utils"
)

// orientationReport is every representation of one orientation.
type orientationReport struct {
	Direction          string                          `json:"direction"`
	EulerAngles        *spatialmath.EulerAngles        `json:"euler_angles"`
	EulerAnglesDegrees *spatialmath.EulerAnglesDegrees `json:"euler_angles_degrees"`
	Quaternion         spatialmath.Quaternion          `json:"quaternion"`
	RotationMatrix     []float64                       `json:"rotation_matrix"`
	AxisAngles         *spatialmath.R4AA               `json:"axis_angles"`
	GimbalLocked       bool                            `json:"gimbal_locked"`
}

// newOrientationReport describes o. The Euler angles are canonical and describe the object
// orientation; the quaternion and matrix perform the mapping dir.
func newOrientationReport(o spatialmath.Orientation, dir spatialmath.Direction) orientationReport {
	ea := o.EulerAngles().Canonical()
	q := spatialmath.Quaternion(o.Quaternion())
	rm := o.RotationMatrix()
	if dir == spatialmath.InertialToObject {
		q = q.Conjugate()
		rm = rm.Transpose()
	}
	return orientationReport{
		Direction:          dir.String(),
		EulerAngles:        ea,
		EulerAnglesDegrees: ea.Degrees(),
		Quaternion:         q,
		RotationMatrix:     rm.Data(),
		AxisAngles:         o.AxisAngles(),
		GimbalLocked:       ea.IsGimbalLocked(),
	}
}

func (r orientationReport) table() table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Representation", "Value"})
	t.AppendRow(table.Row{"euler angles (rad)", formatEuler(r.EulerAngles.Heading, r.EulerAngles.Pitch, r.EulerAngles.Bank)})
	t.AppendRow(table.Row{
		"euler angles (deg)",
		formatEuler(r.EulerAnglesDegrees.Heading, r.EulerAnglesDegrees.Pitch, r.EulerAnglesDegrees.Bank),
	})
	t.AppendRow(table.Row{"quaternion " + r.Direction, formatQuaternion(r.Quaternion)})
	rows := lo.Map(lo.Chunk(r.RotationMatrix, 3), func(row []float64, _ int) string { return formatFloats(row) })
	t.AppendRow(table.Row{"rotation matrix " + r.Direction, strings.Join(rows, "\n")})
	t.AppendRow(table.Row{
		"axis angle",
		fmt.Sprintf("theta: %s, axis: %s", formatFloat(r.AxisAngles.Theta), formatFloats([]float64{r.AxisAngles.RX, r.AxisAngles.RY, r.AxisAngles.RZ})),
	})
	t.AppendRow(table.Row{"gimbal locked", strconv.FormatBool(r.GimbalLocked)})
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloats(values []float64) string {
	return strings.Join(lo.Map(values, func(v float64, _ int) string { return formatFloat(v) }), ", ")
}

func formatEuler(heading, pitch, bank float64) string {
	return fmt.Sprintf("heading: %s, pitch: %s, bank: %s", formatFloat(heading), formatFloat(pitch), formatFloat(bank))
}

func formatQuaternion(q spatialmath.Quaternion) string {
	return fmt.Sprintf("w: %s, x: %s, y: %s, z: %s", formatFloat(q.Real), formatFloat(q.Imag), formatFloat(q.Jmag), formatFloat(q.Kmag))
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode output")
	}
	printf(w, "%s", data)
	return nil
}

func writeTable(w io.Writer, t table.Writer) {
	printf(w, "%s", t.Render())
}

// parseOrientationFlag parses an orientation config given as a type and a JSON value.
func parseOrientationFlag(orientationType, value string) (spatialmath.Orientation, error) {
	ro := spatialmath.RawOrientation{Type: orientationType}
	if value != "" {
		ro.Value = json.RawMessage(value)
	}
	o, err := spatialmath.ParseOrientation(ro)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %q orientation", orientationType)
	}
	return o, nil
}

// ConvertAction prints an orientation in every representation.
func ConvertAction(c *cli.Context) error {
	logger := commandLogger(c)
	dir, err := spatialmath.ParseDirection(c.String(flagDirection))
	if err != nil {
		return err
	}
	o, err := parseOrientationFlag(c.String(flagType), c.String(flagValue))
	if err != nil {
		return err
	}
	logger.CDebugw(c.Context, "parsed orientation", "type", c.String(flagType), "orientation", fmt.Sprintf("%T", o))

	report := newOrientationReport(o, dir)
	if report.GimbalLocked {
		warningf(c.App.ErrWriter, "orientation is gimbal locked, bank has been folded into heading")
	}
	if c.Bool(flagJSON) {
		return writeJSON(c.App.Writer, report)
	}
	writeTable(c.App.Writer, report.table())
	return nil
}

type canonizeReport struct {
	Units        string      `json:"units"`
	Input        interface{} `json:"input"`
	Canonical    interface{} `json:"canonical"`
	GimbalLocked bool        `json:"gimbal_locked"`
}

// CanonizeAction rewrites heading, pitch and bank in canonical form.
func CanonizeAction(c *cli.Context) error {
	logger := commandLogger(c)
	in := &spatialmath.EulerAngles{
		Heading: c.Float64(flagHeading),
		Pitch:   c.Float64(flagPitch),
		Bank:    c.Float64(flagBank),
	}
	degrees := c.Bool(flagDegrees)
	if degrees {
		in = (&spatialmath.EulerAnglesDegrees{Heading: in.Heading, Pitch: in.Pitch, Bank: in.Bank}).Radians()
	}
	out := in.Canonical()
	logger.CDebugw(c.Context, "canonized", "input", in, "canonical", out)

	report := canonizeReport{Units: "radians", Input: in, Canonical: out, GimbalLocked: out.IsGimbalLocked()}
	if degrees {
		report = canonizeReport{Units: "degrees", Input: in.Degrees(), Canonical: out.Degrees(), GimbalLocked: report.GimbalLocked}
	}
	if c.Bool(flagJSON) {
		return writeJSON(c.App.Writer, report)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "Heading", "Pitch", "Bank"})
	for _, row := range []struct {
		name string
		ea   *spatialmath.EulerAngles
	}{{"input", in}, {"canonical", out}} {
		h, p, b := row.ea.Heading, row.ea.Pitch, row.ea.Bank
		if degrees {
			d := row.ea.Degrees()
			h, p, b = d.Heading, d.Pitch, d.Bank
		}
		t.AppendRow(table.Row{row.name, formatFloat(h), formatFloat(p), formatFloat(b)})
	}
	t.SetCaption("units: %s, gimbal locked: %t", report.Units, report.GimbalLocked)
	writeTable(c.App.Writer, t)
	return nil
}

type slerpSample struct {
	T                  float64                         `json:"t"`
	Quaternion         spatialmath.Quaternion          `json:"quaternion"`
	EulerAnglesDegrees *spatialmath.EulerAnglesDegrees `json:"euler_angles_degrees"`
	// AngleFromStart is in degrees.
	AngleFromStart float64 `json:"angle_from_start"`
}

func slerpSamples(from, to spatialmath.Quaternion, steps int) []slerpSample {
	ts := lo.Times(steps+1, func(i int) float64 { return float64(i) / float64(steps) })
	return lo.Map(ts, func(t float64, _ int) slerpSample {
		q := spatialmath.Slerp(from, to, t)
		return slerpSample{
			T:                  t,
			Quaternion:         q,
			EulerAnglesDegrees: q.Normalized().EulerAngles().Degrees(),
			AngleFromStart:     utils.RadToDeg(spatialmath.AngularDistance(from, q)),
		}
	})
}

// SlerpAction prints evenly spaced orientations along the shortest arc between two orientations.
func SlerpAction(c *cli.Context) error {
	logger := commandLogger(c)
	steps := c.Int(flagSteps)
	if steps < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", flagSteps, steps)
	}
	from, err := parseOrientationFlag(c.String(flagType), c.String(flagFrom))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", flagFrom)
	}
	to, err := parseOrientationFlag(c.String(flagType), c.String(flagTo))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", flagTo)
	}

	qa, qb := spatialmath.Quaternion(from.Quaternion()), spatialmath.Quaternion(to.Quaternion())
	if spatialmath.Dot(qa, qb) < 0 {
		logger.CDebug(c.Context, "endpoints are in opposite hemispheres, interpolating towards the negated end")
	}
	samples := slerpSamples(qa, qb, steps)
	if c.Bool(flagJSON) {
		return writeJSON(c.App.Writer, samples)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"t", "Quaternion", "Euler angles (deg)", "Angle from start (deg)"})
	for _, s := range samples {
		d := s.EulerAnglesDegrees
		t.AppendRow(table.Row{formatFloat(s.T), formatQuaternion(s.Quaternion), formatEuler(d.Heading, d.Pitch, d.Bank), formatFloat(s.AngleFromStart)})
	}
	writeTable(c.App.Writer, t)
	return nil
}

type powReport struct {
	Input    spatialmath.Quaternion `json:"input"`
	Exponent float64                `json:"exponent"`
	Result   spatialmath.Quaternion `json:"result"`
	// Angle is the rotation angle of Result in degrees.
	Angle float64   `json:"angle"`
	Axis  []float64 `json:"axis"`
}

// PowAction scales the angle of a rotation, keeping its axis.
func PowAction(c *cli.Context) error {
	logger := commandLogger(c)
	o, err := parseOrientationFlag(string(spatialmath.QuaternionType), c.String(flagQuat))
	if err != nil {
		return err
	}
	q := spatialmath.Quaternion(o.Quaternion())
	exponent := c.Float64(flagExponent)
	result := q.Pow(exponent)
	if result == q && exponent != 1 {
		logger.CDebugw(c.Context, "rotation is too close to the identity to scale", "quaternion", q)
	}

	axis := result.RotationAxis()
	report := powReport{
		Input:    q,
		Exponent: exponent,
		Result:   result,
		Angle:    utils.RadToDeg(result.RotationAngle()),
		Axis:     []float64{axis.X, axis.Y, axis.Z},
	}
	if c.Bool(flagJSON) {
		return writeJSON(c.App.Writer, report)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "Value"})
	t.AppendRow(table.Row{"input", formatQuaternion(report.Input)})
	t.AppendRow(table.Row{"exponent", formatFloat(report.Exponent)})
	t.AppendRow(table.Row{"result", formatQuaternion(report.Result)})
	t.AppendRow(table.Row{"angle (deg)", formatFloat(report.Angle)})
	t.AppendRow(table.Row{"axis", formatFloats(report.Axis)})
	writeTable(c.App.Writer, t)
	return nil
}

type rotateReport struct {
	Direction string    `json:"direction"`
	Input     []float64 `json:"input"`
	Output    []float64 `json:"output"`
}

// rotationAgreementTolerance bounds how far the quaternion and matrix results may drift apart.
const rotationAgreementTolerance = 1e-9

// RotateAction maps a vector between an object's frame and the inertial frame.
func RotateAction(c *cli.Context) error {
	logger := commandLogger(c)
	o, err := parseOrientationFlag(c.String(flagType), c.String(flagValue))
	if err != nil {
		return err
	}
	v, err := spatialmath.ParseVector(c.String(flagVector))
	if err != nil {
		return errors.Wrapf(err, "invalid --%s", flagVector)
	}
	dir := spatialmath.ObjectToInertial
	if c.Bool(flagInverse) {
		dir = dir.Inverse()
	}

	out := spatialmath.Quaternion(o.Quaternion()).RotateVector(v, dir)
	if check := o.RotationMatrix().RotateVector(v, dir); check.Sub(out).Norm() > rotationAgreementTolerance {
		logger.Warnw("quaternion and matrix rotations disagree", "quaternion", out, "matrix", check)
	}

	logger.CDebugw(c.Context, "rotated vector", "input", v, "output", out)

	report := rotateReport{
		Direction: dir.String(),
		Input:     []float64{v.X, v.Y, v.Z},
		Output:    []float64{out.X, out.Y, out.Z},
	}
	if c.Bool(flagJSON) {
		return writeJSON(c.App.Writer, report)
	}
	infof(c.App.ErrWriter, "rotating %s", report.Direction)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "X", "Y", "Z"})
	t.AppendRow(append(table.Row{"input"}, lo.ToAnySlice(lo.Map(report.Input, func(v float64, _ int) string { return formatFloat(v) }))...))
	t.AppendRow(append(table.Row{"output"}, lo.ToAnySlice(lo.Map(report.Output, func(v float64, _ int) string { return formatFloat(v) }))...))
	writeTable(c.App.Writer, t)
	return nil
}

package spatialmath

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// delimitedStringToSlice splits fields separated by spaces or commas, such as "1 0 0" or "1,0,0",
// into floats.
func delimitedStringToSlice(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	converted := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot parse %q", field)
		}
		converted = append(converted, value)
	}
	return converted, nil
}

// ParseVector parses three space or comma delimited numbers into a vector.
func ParseVector(s string) (r3.Vector, error) {
	values, err := delimitedStringToSlice(s)
	if err != nil {
		return r3.Vector{}, err
	}
	if len(values) != 3 {
		return r3.Vector{}, errors.Errorf("vector needs 3 components, got %d", len(values))
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}

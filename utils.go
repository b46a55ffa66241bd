package pmesh

import (
	"math"
	"strconv"
	"strings"
)

// DtoR converts degrees to radians.
func DtoR(degrees float64) float64 { return degrees * math.Pi / 180 }

// FormatDimension formats a length with three decimals and strips
// trailing zeros and a trailing decimal point: 2.500 becomes "2.5"
// and 3.000 becomes "3".
func FormatDimension(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// Name joins a shape name and its key dimension the way parts are
// labelled: "{ShapeName} {KeyDimension}".
func Name(shape string, key string) string {
	if key == "" {
		return shape
	}
	return shape + " " + key
}

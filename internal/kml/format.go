package kml

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/geo"
)

// decimationStride is how many samples each kept ground-truth point stands
// for when an export is subsampled. Ground-truth logs run to hundreds of
// thousands of points; keeping every 200th keeps the artifact tractable.
const decimationStride = 200

// FormatLatLon renders parallel latitude/longitude sequences, in degrees,
// as one KML coordinate record per point: "<lon>,<lat>,1" with a fixed
// altitude of 1, newline-joined, in input order. Whole-number angles keep a
// trailing ".0" so a degree value always carries a decimal point.
func FormatLatLon(latDeg, lonDeg []float64) (string, error) {
	if len(latDeg) != len(lonDeg) {
		return "", fmt.Errorf("%w: %d latitudes, %d longitudes", geo.ErrLengthMismatch, len(latDeg), len(lonDeg))
	}

	var b strings.Builder
	for i := range latDeg {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(formatDegrees(lonDeg[i]))
		b.WriteByte(',')
		b.WriteString(formatDegrees(latDeg[i]))
		b.WriteString(",1")
	}

	return b.String(), nil
}

// formatDegrees renders the shortest exact decimal form of a degree value,
// with a ".0" suffix when that form has no fractional part.
func formatDegrees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(v, 0) && !math.IsNaN(v) {
		s += ".0"
	}
	return s
}

// Decimate keeps every 200th sample starting at index 1. Sequences shorter
// than two samples decimate to nothing.
func Decimate(v []float64) []float64 {
	out := make([]float64, 0, (len(v)+decimationStride-1)/decimationStride)
	for i := 1; i < len(v); i += decimationStride {
		out = append(out, v[i])
	}
	return out
}

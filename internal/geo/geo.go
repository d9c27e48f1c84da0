// Package geo converts geodetic coordinates to and from a locally
// linearized planar frame centered on a fixed reference point. The frame
// axes are (x, y) = (North, East) in meters.
package geo

import (
	"fmt"
	"math"
)

// Origin of the linearization, in radians.
const (
	Lat0 = 0.738167915410646
	Lon0 = -1.46098650670922
)

// Earth ellipsoid radii in meters.
const (
	EquatorialRadius = 6378135.0
	PolarRadius      = 6356750.0
)

// Tuned offsets, in meters, to adjust the inverse conversion against
// satellite imagery. They are applied on the inverse path only: a forward
// conversion followed by an inverse conversion does not return the original
// point unless the caller re-adds them.
const (
	OffsetNorth = 76.50582406697139
	OffsetEast  = 108.31373031919006
)

const rad2deg = 180 / math.Pi

// Params holds the local radii of curvature of the Earth evaluated at the
// reference latitude, together with the reference point itself.
type Params struct {
	RNS  float64 // Meridional (north-south) radius of curvature [m].
	REW  float64 // Prime-vertical (east-west) radius of curvature [m].
	Lat0 float64 // Reference latitude [rad].
	Lon0 float64 // Reference longitude [rad].
}

// DeriveParams computes the radii of Earth at the origin of linearization.
// It is a pure function of fixed constants and never fails.
func DeriveParams() Params {
	d := math.Pow(EquatorialRadius*math.Cos(Lat0), 2) + math.Pow(PolarRadius*math.Sin(Lat0), 2)
	return Params{
		RNS:  math.Pow(EquatorialRadius*PolarRadius, 2) / math.Pow(d, 1.5),
		REW:  math.Pow(EquatorialRadius, 2) / math.Sqrt(d),
		Lat0: Lat0,
		Lon0: Lon0,
	}
}

// ToDegrees converts an angle in radians to degrees.
func ToDegrees(rad float64) float64 { return rad * rad2deg }

// ToLocal converts parallel latitude/longitude sequences, in radians, to
// local frame (x, y) = (North, East) offsets in meters. The conversion is
// elementwise: output i depends only on input i. The reference point maps
// to exactly (0, 0). NaN or Inf inputs propagate to the output.
func ToLocal(lat, lon []float64) ([]float64, []float64, error) {
	if len(lat) != len(lon) {
		return nil, nil, fmt.Errorf("%w: %d latitudes, %d longitudes", ErrLengthMismatch, len(lat), len(lon))
	}

	p := DeriveParams()
	x := make([]float64, len(lat))
	y := make([]float64, len(lon))
	for i := range lat {
		x[i] = math.Sin(lat[i]-p.Lat0) * p.RNS                    // North
		y[i] = math.Sin(lon[i]-p.Lon0) * p.REW * math.Cos(p.Lat0) // East
	}

	return x, y, nil
}

// ToGeodetic converts parallel local frame (x, y) = (North, East) sequences,
// in meters, back to latitude/longitude in degrees. The tuned offsets are
// subtracted before the arcsine inversion.
//
// An offset-corrected coordinate whose ratio to the local radius exceeds 1
// in magnitude has no arcsine; such inputs fail fast with a *DomainError
// rather than producing NaN. NaN inputs are not trapped and propagate.
func ToGeodetic(x, y []float64) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: %d north offsets, %d east offsets", ErrLengthMismatch, len(x), len(y))
	}

	p := DeriveParams()
	lat := make([]float64, len(x))
	lon := make([]float64, len(y))
	for i := range x {
		rx := (x[i] - OffsetNorth) / p.RNS
		ry := (y[i] - OffsetEast) / (p.REW * math.Cos(p.Lat0))
		if math.Abs(rx) > 1 {
			return nil, nil, &DomainError{Axis: "north", Index: i, Ratio: rx}
		}
		if math.Abs(ry) > 1 {
			return nil, nil, &DomainError{Axis: "east", Index: i, Ratio: ry}
		}
		lat[i] = ToDegrees(math.Asin(rx) + p.Lat0)
		lon[i] = ToDegrees(math.Asin(ry) + p.Lon0)
	}

	return lat, lon, nil
}

package geo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the planar error between an estimated path and a
// reference path sampled on the same index grid.
type Summary struct {
	Mean float64 // Mean Euclidean error [m].
	RMSE float64 // Root-mean-square Euclidean error [m].
	Max  float64 // Largest single-sample error [m].
}

// TrackError computes the per-sample Euclidean distance between two local
// frame paths and summarizes it. Both paths must have the same length; the
// zero Summary is returned for empty input.
func TrackError(xEst, yEst, xRef, yRef []float64) (Summary, error) {
	if len(xEst) != len(yEst) {
		return Summary{}, fmt.Errorf("%w: %d north offsets, %d east offsets", ErrLengthMismatch, len(xEst), len(yEst))
	}
	if len(xRef) != len(yRef) {
		return Summary{}, fmt.Errorf("%w: %d north offsets, %d east offsets", ErrLengthMismatch, len(xRef), len(yRef))
	}
	if len(xEst) != len(xRef) {
		return Summary{}, fmt.Errorf("%w: %d estimated samples, %d reference samples", ErrLengthMismatch, len(xEst), len(xRef))
	}
	if len(xEst) == 0 {
		return Summary{}, nil
	}

	dists := make([]float64, len(xEst))
	squares := make([]float64, len(xEst))
	for i := range xEst {
		d := math.Hypot(xEst[i]-xRef[i], yEst[i]-yRef[i])
		dists[i] = d
		squares[i] = d * d
	}

	return Summary{
		Mean: stat.Mean(dists, nil),
		RMSE: math.Sqrt(stat.Mean(squares, nil)),
		Max:  floats.Max(dists),
	}, nil
}

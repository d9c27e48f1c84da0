package models

// Track is an ordered sequence of geodetic samples for one recorded path.
// Latitude and longitude are parallel slices in radians; element i of one
// pairs with element i of the other.
type Track struct {
	ID        int64     // ID is the unique identifier for the track.
	Latitude  []float64 // Latitude samples in radians.
	Longitude []float64 // Longitude samples in radians.
}

// Len returns the number of samples in the track.
func (t *Track) Len() int { return len(t.Latitude) }

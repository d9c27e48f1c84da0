package models

// Fix holds one timestamped GPS sample from a sensor log.
// Latitude and longitude are in radians.
type Fix struct {
	TimestampNs int64   `json:"timestamp_ns"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

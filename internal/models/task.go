package models

// ExportTask describes one pending comparison artifact: an estimated track
// rendered against a ground-truth track.
type ExportTask struct {
	ID             int    // ID is the unique identifier for the task.
	EstimatedTrack int64  // EstimatedTrack references the estimated path.
	TruthTrack     int64  // TruthTrack references the ground-truth path.
	EstimatedLabel string // Display label for the estimated path slot.
	TruthLabel     string // Display label for the ground-truth path slot.
	Subsample      bool   // Subsample thins the ground truth before export.
}

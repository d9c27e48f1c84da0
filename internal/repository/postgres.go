package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// FetchPendingExports retrieves export tasks awaiting processing. It returns
// tasks that are still pending and have fewer than 5 export attempts,
// ordered by creation date and limited to the specified count.
func (r *Repository) FetchPendingExports(ctx context.Context, limit int) ([]models.ExportTask, error) {
	var tasks []models.ExportTask
	query := `
		SELECT task_id, estimated_track_id, truth_track_id,
			estimated_label, truth_label, subsample
		FROM export_tasks
		WHERE
			status = 'pending'
			AND export_attempts < 5
		ORDER BY created_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending export tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var task models.ExportTask
		if errScan := rows.Scan(
			&task.ID, &task.EstimatedTrack, &task.TruthTrack,
			&task.EstimatedLabel, &task.TruthLabel, &task.Subsample,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending export task: %w", errScan)
		}
		r.log.DebugContext(ctx, "A new pending export task has been received.",
			"ID", task.ID, "estimated", task.EstimatedTrack, "truth", task.TruthTrack)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// LoadTrack retrieves the ordered geodetic samples of one track. Latitude
// and longitude are stored in radians.
func (r *Repository) LoadTrack(ctx context.Context, trackID int64) (*models.Track, error) {
	query := `
		SELECT latitude, longitude
		FROM track_points
		WHERE track_id = $1
		ORDER BY seq ASC;
	`

	rows, err := r.db.Query(ctx, query, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query track points: %w", err)
	}
	defer rows.Close()

	track := &models.Track{ID: trackID}
	for rows.Next() {
		var lat, lon float64
		if errScan := rows.Scan(&lat, &lon); errScan != nil {
			return nil, fmt.Errorf("failed to scan track point: %w", errScan)
		}
		track.Latitude = append(track.Latitude, lat)
		track.Longitude = append(track.Longitude, lon)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return track, nil
}

// MarkExportDone records a completed export task together with the path of
// the written artifact and clears any previous error.
func (r *Repository) MarkExportDone(ctx context.Context, taskID int, artifactPath string) error {
	query := `
		UPDATE export_tasks
		SET
			status = 'done',
			artifact_path = $1,
			export_error = NULL
		WHERE
			task_id = $2;
	`

	_, err := r.db.Exec(ctx, query, artifactPath, taskID)
	if err != nil {
		return fmt.Errorf("failed to mark export task as done: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the export attempt count for a specific
// task identified by taskID and updates the associated error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, taskID int, errMsg string) error {
	query := `
		UPDATE export_tasks
		SET
			export_attempts = export_attempts + 1,
			export_error = $1
		WHERE task_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, taskID)
	if err != nil {
		return fmt.Errorf("failed to update export error and number of attempts: %w", err)
	}

	return nil
}

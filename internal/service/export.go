package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/kml"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/render"
	"github.com/UnknownOlympus/meridian/internal/repository"
)

// taskLimit caps how many pending export tasks one polling tick picks up.
const taskLimit = 100

// ExportService turns pending export tasks into comparison artifacts: it
// loads both tracks, converts them to the local frame, renders a comparison
// figure, and writes the templated KML document.
type ExportService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	labeler      geocoding.Provider   // Optional reverse geocoding provider for path labels
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	exporter     *kml.Exporter        // Template-driven KML writer
	outputDir    string               // Directory receiving KML and PNG artifacts
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval for polling pending tasks
}

// NewExportService creates a new instance of ExportService. The labeler may
// be nil, in which case empty task labels fall back to defaults.
func NewExportService(
	log *slog.Logger,
	repo repository.Interface,
	labeler geocoding.Provider,
	metrics *metrics.Metrics,
	exporter *kml.Exporter,
	outputDir string,
	numWorkers int,
	pollInterval time.Duration,
) *ExportService {
	return &ExportService{
		log:          log,
		repo:         repo,
		labeler:      labeler,
		metrics:      metrics,
		exporter:     exporter,
		outputDir:    outputDir,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run starts the export service, which periodically polls for new tasks to
// process. It listens for a cancellation signal from the context to
// gracefully stop the service.
func (es *ExportService) Run(ctx context.Context) {
	ticker := time.NewTicker(es.pollInterval)
	defer ticker.Stop()

	es.log.InfoContext(ctx, "Export service started...")

	for {
		select {
		case <-ctx.Done():
			es.log.InfoContext(ctx, "Export service stopped.")
			return
		case <-ticker.C:
			es.log.InfoContext(ctx, "Polling for pending export tasks...")
			es.processBatch(ctx)
		}
	}
}

// processBatch fetches pending export tasks from the repository, starts a
// worker pool to process them, and waits for all workers to finish.
func (es *ExportService) processBatch(ctx context.Context) {
	tasks, err := es.repo.FetchPendingExports(ctx, taskLimit)
	if err != nil {
		es.log.ErrorContext(ctx, "Failed to fetch tasks", "error", err)
		return
	}
	if len(tasks) == 0 {
		es.log.InfoContext(ctx, "No tasks to process.")
		return
	}

	es.log.InfoContext(
		ctx,
		"Found tasks to process. Starting worker pool.",
		"jobs",
		len(tasks),
		"num_workers",
		es.numWorkers,
	)

	jobs := make(chan models.ExportTask, len(tasks))
	var wgr sync.WaitGroup

	for i := 1; i <= es.numWorkers; i++ {
		wgr.Add(1)
		go es.worker(ctx, i, &wgr, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wgr.Wait()
	es.log.InfoContext(ctx, "Processing batch finished")
}

// worker processes tasks from the jobs channel. A failed task has its
// failure count incremented so it is retried on a later tick until the
// attempt budget runs out; a successful task is marked done together with
// the path of its KML artifact.
func (es *ExportService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.ExportTask) {
	defer wg.Done()
	for task := range jobs {
		es.metrics.ActiveWorkers.Inc()
		es.log.DebugContext(ctx, "Processing task", "worker", idx, "task", task.ID)

		startTime := time.Now()
		artifact, err := es.processTask(ctx, task)
		es.metrics.ExportSeconds.Observe(time.Since(startTime).Seconds())

		if err != nil {
			es.log.ErrorContext(ctx, "Failed to export", "worker", idx, "task", task.ID, "error", err)
			es.metrics.TasksProcessed.WithLabelValues("failure").Inc()

			if err = es.repo.IncrementFailureCount(ctx, task.ID, err.Error()); err != nil {
				es.log.ErrorContext(
					ctx,
					"Could not update failure count for task",
					"worker", idx,
					"task", task.ID,
					"error", err,
				)
			}
			es.metrics.ActiveWorkers.Dec()
			continue
		}

		es.metrics.TasksProcessed.WithLabelValues("success").Inc()

		if err = es.repo.MarkExportDone(ctx, task.ID, artifact); err != nil {
			es.log.ErrorContext(
				ctx,
				"Failed to mark task as done",
				"worker", idx,
				"task", task.ID,
				"error", err,
			)
		} else {
			es.log.DebugContext(ctx, "Worker successfully processed the task", "worker", idx, "task", task.ID)
		}

		es.metrics.ActiveWorkers.Dec()
	}
}

// processTask runs one export end to end and returns the KML artifact path.
func (es *ExportService) processTask(ctx context.Context, task models.ExportTask) (string, error) {
	est, err := es.repo.LoadTrack(ctx, task.EstimatedTrack)
	if err != nil {
		return "", fmt.Errorf("failed to load estimated track %d: %w", task.EstimatedTrack, err)
	}
	truth, err := es.repo.LoadTrack(ctx, task.TruthTrack)
	if err != nil {
		return "", fmt.Errorf("failed to load ground-truth track %d: %w", task.TruthTrack, err)
	}

	x1, y1, err := geo.ToLocal(est.Latitude, est.Longitude)
	if err != nil {
		return "", fmt.Errorf("failed to convert estimated track: %w", err)
	}
	es.metrics.Conversions.WithLabelValues("forward").Inc()

	x2, y2, err := geo.ToLocal(truth.Latitude, truth.Longitude)
	if err != nil {
		return "", fmt.Errorf("failed to convert ground-truth track: %w", err)
	}
	es.metrics.Conversions.WithLabelValues("forward").Inc()

	// Error statistics only make sense when both paths share an index grid.
	if est.Len() == truth.Len() && est.Len() > 0 {
		if sum, errCmp := geo.TrackError(x1, y1, x2, y2); errCmp == nil {
			es.log.InfoContext(ctx, "Track comparison summary",
				"task", task.ID, "mean_m", sum.Mean, "rmse_m", sum.RMSE, "max_m", sum.Max)
		}
	}

	label1 := es.resolveLabel(ctx, task.EstimatedLabel, est, "estimated")
	label2 := es.resolveLabel(ctx, task.TruthLabel, truth, "ground truth")

	figure := filepath.Join(es.outputDir, fmt.Sprintf("task_%d.png", task.ID))
	if err = render.Comparison(x1, y1, x2, y2, label1, label2, figure); err != nil {
		return "", fmt.Errorf("failed to render comparison figure: %w", err)
	}

	artifact := filepath.Join(es.outputDir, fmt.Sprintf("task_%d.kml", task.ID))
	if err = es.exporter.Export(x1, y1, x2, y2, label1, label2, task.Subsample, artifact); err != nil {
		return "", fmt.Errorf("failed to export KML artifact: %w", err)
	}
	es.metrics.Conversions.WithLabelValues("inverse").Inc()

	return artifact, nil
}

// resolveLabel returns the task's label, or reverse geocodes the track's
// first fix when the label is empty and a provider is configured. Label
// lookup failures are non-fatal.
func (es *ExportService) resolveLabel(ctx context.Context, label string, track *models.Track, fallback string) string {
	if label != "" {
		return label
	}
	if es.labeler == nil || track.Len() == 0 {
		return fallback
	}

	coords := models.Coordinates{
		Latitude:  geo.ToDegrees(track.Latitude[0]),
		Longitude: geo.ToDegrees(track.Longitude[0]),
	}
	resolved, err := es.labeler.ReverseGeocode(ctx, coords)
	if err != nil {
		es.log.WarnContext(ctx, "Failed to resolve label, using fallback", "error", err)
		es.metrics.LabelErrors.Inc()
		return fallback
	}
	return resolved
}

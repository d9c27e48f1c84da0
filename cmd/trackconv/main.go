package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/UnknownOlympus/meridian/internal/geo"
	"github.com/UnknownOlympus/meridian/internal/kml"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/render"
)

// trackconv converts two recorded fix logs into comparison artifacts
// without going through the database-backed worker. Each input is a CSV
// of "timestamp_ns,latitude,longitude" rows with angles in radians.
func main() {
	estPath := flag.String("est", "", "CSV log of the estimated path (timestamp_ns,latitude,longitude in radians)")
	truthPath := flag.String("truth", "", "CSV log of the ground-truth path")
	estLabel := flag.String("est-label", "Estimated", "display label for the estimated path")
	truthLabel := flag.String("truth-label", "Ground truth", "display label for the ground-truth path")
	templatePath := flag.String("template", "template.kml", "KML template with name and coordinate slots")
	kmlOut := flag.String("kml", "", "output KML path (empty to skip)")
	plotOut := flag.String("plot", "", "output PNG path (empty to skip)")
	scatter := flag.Bool("scatter", false, "draw points instead of connected lines")
	subsample := flag.Bool("subsample", false, "keep every 200th ground-truth sample in the KML")
	flag.Parse()

	if *estPath == "" || *truthPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	estFixes, err := readFixLog(*estPath)
	if err != nil {
		fatal(logger, "Failed to read estimated log", err)
	}
	refFixes, err := readFixLog(*truthPath)
	if err != nil {
		fatal(logger, "Failed to read ground-truth log", err)
	}

	latEst, lonEst := splitFixes(estFixes)
	latRef, lonRef := splitFixes(refFixes)

	xEst, yEst, err := geo.ToLocal(latEst, lonEst)
	if err != nil {
		fatal(logger, "Failed to project estimated path", err)
	}
	xRef, yRef, err := geo.ToLocal(latRef, lonRef)
	if err != nil {
		fatal(logger, "Failed to project ground-truth path", err)
	}

	if summary, serr := geo.TrackError(xEst, yEst, xRef, yRef); serr == nil {
		logger.Info("Path deviation",
			"mean_m", summary.Mean, "rmse_m", summary.RMSE, "max_m", summary.Max)
	}

	if *plotOut != "" {
		draw := render.Comparison
		if *scatter {
			draw = render.ComparisonScatter
		}
		if err = draw(xEst, yEst, xRef, yRef, *estLabel, *truthLabel, *plotOut); err != nil {
			fatal(logger, "Failed to render comparison plot", err)
		}
		logger.Info("Wrote comparison plot", "path", *plotOut)
	}

	if *kmlOut != "" {
		exporter := kml.NewExporter(*templatePath, logger)
		if err = exporter.Export(xEst, yEst, xRef, yRef, *estLabel, *truthLabel, *subsample, *kmlOut); err != nil {
			fatal(logger, "Failed to export KML", err)
		}
		logger.Info("Wrote KML", "path", *kmlOut)
	}
}

// readFixLog parses a fix log into timestamped samples with angles in
// radians. A non-numeric first row is treated as a header and skipped.
func readFixLog(path string) ([]models.Fix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse log: %w", err)
	}

	fixes := make([]models.Fix, 0, len(records))
	for i, rec := range records {
		tsVal, tsErr := strconv.ParseInt(rec[0], 10, 64)
		latVal, latErr := strconv.ParseFloat(rec[1], 64)
		lonVal, lonErr := strconv.ParseFloat(rec[2], 64)
		if tsErr != nil || latErr != nil || lonErr != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("malformed row %d in %s", i+1, path)
		}
		fixes = append(fixes, models.Fix{TimestampNs: tsVal, Latitude: latVal, Longitude: lonVal})
	}

	return fixes, nil
}

func splitFixes(fixes []models.Fix) ([]float64, []float64) {
	lat := make([]float64, len(fixes))
	lon := make([]float64, len(fixes))
	for i, fix := range fixes {
		lat[i] = fix.Latitude
		lon[i] = fix.Longitude
	}

	return lat, lon
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}

package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the narrow slice of pgxpool.Pool the repository needs. It is
// satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository reads export tasks and track samples and records task
// outcomes.
//
// Expected schema:
//
//	tracks(track_id, name, created_at)
//	track_points(track_id, seq, latitude, longitude)   -- radians
//	export_tasks(task_id, estimated_track_id, truth_track_id,
//	             estimated_label, truth_label, subsample, status,
//	             export_attempts, export_error, artifact_path, created_at)
type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchPendingExports(ctx context.Context, limit int) ([]models.ExportTask, error)
	LoadTrack(ctx context.Context, trackID int64) (*models.Track, error)
	MarkExportDone(ctx context.Context, taskID int, artifactPath string) error
	IncrementFailureCount(ctx context.Context, taskID int, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// NewDatabase opens a pgx connection pool against the given PostgreSQL
// instance and verifies it with a ping.
func NewDatabase(host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/5outh/towerlog/internal/constants"
	"github.com/5outh/towerlog/internal/logging"
	"github.com/5outh/towerlog/internal/models/entities"
)

// LogRepository appends to and reads the audit log table. Rows are only
// ever added or purged wholesale, never edited.
type LogRepository struct {
	db *sqlx.DB
}

func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Append writes one audit row. Failures are logged and swallowed; the
// audit trail must never take an ingestion run down with it.
func (r *LogRepository) Append(ctx context.Context, category, message string) {
	if _, err := r.db.ExecContext(ctx, constants.InsertLogEntry, category, message); err != nil {
		logging.Warn("Failed to append audit log entry",
			"category", category,
			"error", err.Error(),
		)
	}
}

// Recent returns the newest entries, most recent first.
func (r *LogRepository) Recent(ctx context.Context, limit int) ([]entities.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []entities.LogEntry
	if err := r.db.SelectContext(ctx, &rows, constants.RecentLogEntries, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// Purge deletes every audit row. Admin-triggered only.
func (r *LogRepository) Purge(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, constants.PurgeLogEntries)
	return err
}

package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/5outh/towerlog/internal/ingest"
	"github.com/5outh/towerlog/internal/logging"
)

// EntityRepository is the upsert engine. Every extracted record lands
// here: resolved by its kind's natural key and either inserted or merged
// onto the existing row in a single INSERT ... ON CONFLICT statement, so
// concurrent ingestion of the same code cannot lose an update.
type EntityRepository struct {
	db *gormlib.DB
}

func NewEntityRepository(db *gormlib.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// numericColumns lists the columns persisted as numbers per kind. The
// extractor's unknown sentinel becomes NULL for these instead of "-".
var numericColumns = map[ingest.Kind]map[string]bool{
	ingest.KindAirport:  {"lat": true, "lon": true},
	ingest.KindCity:     {"lat": true, "lon": true},
	ingest.KindWaypoint: {"lat": true, "lon": true, "speed": true, "altitude": true},
	ingest.KindResult:   {"current_earnings": true, "proposed_earnings": true},
}

// Upsert inserts the record or merges its present fields onto the row
// with the same natural key. Fields absent from the record are left
// untouched. Returns whether a new row was created.
//
// Surrogate-keyed kinds (waypoints) are always inserted.
func (r *EntityRepository) Upsert(ctx context.Context, rec ingest.Record) (bool, error) {
	vals := sanitizeFields(rec)
	now := time.Now().UTC()

	if rec.Kind.KeyColumn() == "" {
		vals["created_at"] = now
		vals["updated_at"] = now
		err := r.db.WithContext(ctx).Table(rec.Kind.Table()).Create(map[string]any(vals)).Error
		if err != nil {
			return false, fmt.Errorf("failed to insert %s: %w", rec.Kind, err)
		}
		return true, nil
	}

	keyCol, keyVal, ok := rec.Key()
	if !ok {
		return false, fmt.Errorf("%s record has no %s value", rec.Kind, keyCol)
	}

	// The write below is atomic; this lookup only decides whether the
	// outcome counts as a creation or an update.
	var existing int64
	err := r.db.WithContext(ctx).
		Table(rec.Kind.Table()).
		Where(keyCol+" = ?", keyVal).
		Count(&existing).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up %s %q: %w", rec.Kind, keyVal, err)
	}

	assign := make([]string, 0, len(vals)+1)
	for col := range vals {
		if col != keyCol {
			assign = append(assign, col)
		}
	}
	assign = append(assign, "updated_at")
	sort.Strings(assign)

	vals["created_at"] = now
	vals["updated_at"] = now

	err = r.db.WithContext(ctx).
		Table(rec.Kind.Table()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: keyCol}},
			DoUpdates: clause.AssignmentColumns(assign),
		}).
		Create(map[string]any(vals)).Error
	if err != nil {
		return false, fmt.Errorf("failed to upsert %s %q: %w", rec.Kind, keyVal, err)
	}

	return existing == 0, nil
}

// MassUpsert feeds every record of an extracted batch through Upsert,
// in the fixed category order airports, flights, airlines, equipment,
// positions. A failed record is logged and skipped; the batch never
// aborts.
func (r *EntityRepository) MassUpsert(ctx context.Context, batch *ingest.Batch, stats *ingest.Stats) {
	groups := [][]ingest.Record{
		batch.Airports,
		batch.FlightStatuses,
		batch.Airlines,
		batch.Equipment,
		batch.Positions,
	}

	for _, records := range groups {
		for _, rec := range records {
			created, err := r.Upsert(ctx, rec)
			if err != nil {
				logging.Warn("Skipping record after upsert failure",
					"kind", rec.Kind.String(),
					"error", err.Error(),
				)
				continue
			}
			stats.Add(rec.Kind, created)
		}
	}
}

// sanitizeFields copies the record fields, mapping the unknown sentinel
// to NULL for numeric columns so the value fits the column type.
func sanitizeFields(rec ingest.Record) map[string]any {
	numeric := numericColumns[rec.Kind]
	vals := make(map[string]any, len(rec.Fields))
	for col, v := range rec.Fields {
		if numeric[col] {
			if s, isStr := v.(string); isStr && s == ingest.Unknown {
				vals[col] = nil
				continue
			}
		}
		vals[col] = v
	}
	return vals
}

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/hpungsan/satchel/internal/capsule"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/style"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.SatchelError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

const tripColumns = `
	id, name_raw, name_norm, location_id, presentation,
	activities_json, weather_json, capsule_json,
	created_at, updated_at, deleted_at, revision
`

// ListFilters narrows ListTrips results.
type ListFilters struct {
	LocationID     string // exact match; empty means any
	IncludeDeleted bool
}

// Insert stores a new trip in the database.
func Insert(ctx context.Context, db *sql.DB, t *capsule.Trip) error {
	activitiesJSON, weatherJSON, capsuleJSON, err := encodeTrip(t)
	if err != nil {
		return err
	}
	buildID, fingerprint, version := capsuleColumns(t.Capsule)

	query := `
		INSERT INTO trips (
			id, name_raw, name_norm, location_id, presentation,
			activities_json, weather_json, capsule_json,
			build_id, fingerprint, capsule_version,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = db.ExecContext(ctx, query,
		t.ID, t.NameRaw, t.NameNorm, t.LocationID, string(t.Presentation),
		activitiesJSON, weatherJSON, capsuleJSON,
		buildID, fingerprint, version,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByID retrieves a trip by its ULID.
// If includeDeleted is false, soft-deleted trips are excluded.
func GetByID(ctx context.Context, db *sql.DB, id string, includeDeleted bool) (*capsule.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	t, err := scanTrip(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return t, nil
}

// GetByName retrieves a trip by normalized name.
// If includeDeleted is false, soft-deleted trips are excluded.
func GetByName(ctx context.Context, db *sql.DB, nameNorm string, includeDeleted bool) (*capsule.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE name_norm = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	} else {
		// Prefer the active trip; otherwise the most recently updated deleted one.
		query += " ORDER BY (deleted_at IS NULL) DESC, updated_at DESC LIMIT 1"
	}

	t, err := scanTrip(db.QueryRowContext(ctx, query, nameNorm))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(nameNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return t, nil
}

// UpdateByID rewrites the mutable fields of an active trip: location,
// presentation, activities, weather and capsule. Sets updated_at and bumps
// the revision. Does NOT change: id, name, created_at
//
// The write only applies when the stored revision still equals t.Revision;
// otherwise it returns CONFLICT and the caller should re-read.
func UpdateByID(ctx context.Context, db *sql.DB, t *capsule.Trip) error {
	activitiesJSON, weatherJSON, capsuleJSON, err := encodeTrip(t)
	if err != nil {
		return err
	}
	buildID, fingerprint, version := capsuleColumns(t.Capsule)

	now := time.Now().Unix()

	query := `
		UPDATE trips
		SET location_id = ?, presentation = ?, activities_json = ?, weather_json = ?,
			capsule_json = ?, build_id = ?, fingerprint = ?, capsule_version = ?,
			updated_at = ?, revision = revision + 1
		WHERE id = ? AND deleted_at IS NULL AND revision = ?
	`

	result, err := db.ExecContext(ctx, query,
		t.LocationID, string(t.Presentation), activitiesJSON, weatherJSON,
		capsuleJSON, buildID, fingerprint, version,
		now,
		t.ID, t.Revision,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return missingOrConflict(ctx, db, t.ID)
	}

	t.UpdatedAt = now
	t.Revision++

	return nil
}

// missingOrConflict explains an update that matched no row.
func missingOrConflict(ctx context.Context, db *sql.DB, id string) error {
	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM trips WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return errors.NewNotFound(id)
	}
	if err != nil {
		return errors.NewInternal(err)
	}
	return errors.NewConflict(id)
}

// SoftDelete marks a trip as deleted by setting deleted_at.
func SoftDelete(ctx context.Context, db *sql.DB, id string) error {
	now := time.Now().Unix()

	result, err := db.ExecContext(ctx,
		`UPDATE trips SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, id,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// ListTrips returns trip summaries ordered by updated_at DESC, id DESC,
// plus the total count matching filters.
func ListTrips(ctx context.Context, db *sql.DB, filters ListFilters, limit, offset int) ([]capsule.TripSummary, int, error) {
	var (
		where []string
		args  []any
	)
	if !filters.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if filters.LocationID != "" {
		where = append(where, "location_id = ?")
		args = append(args, filters.LocationID)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`+clause, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `SELECT ` + tripColumns + ` FROM trips` + clause +
		` ORDER BY updated_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var summaries []capsule.TripSummary
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, t.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// PurgeDeleted permanently removes soft-deleted trips.
// When olderThanDays is set, only trips deleted before now minus that many days are removed.
func PurgeDeleted(ctx context.Context, db *sql.DB, olderThanDays *int) (int, error) {
	query := `DELETE FROM trips WHERE deleted_at IS NOT NULL`
	var args []any
	if olderThanDays != nil {
		cutoff := time.Now().Add(-time.Duration(*olderThanDays) * 24 * time.Hour).Unix()
		query += " AND deleted_at < ?"
		args = append(args, cutoff)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip scans a single row into a Trip struct.
func scanTrip(row scanner) (*capsule.Trip, error) {
	var (
		t              capsule.Trip
		presentation   string
		activitiesJSON sql.NullString
		weatherJSON    string
		capsuleJSON    sql.NullString
		deletedAt      sql.NullInt64
	)

	err := row.Scan(
		&t.ID, &t.NameRaw, &t.NameNorm, &t.LocationID, &presentation,
		&activitiesJSON, &weatherJSON, &capsuleJSON,
		&t.CreatedAt, &t.UpdatedAt, &deletedAt, &t.Revision,
	)
	if err != nil {
		return nil, err
	}

	t.Presentation = style.Presentation(presentation)
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.Int64
	}

	if activitiesJSON.Valid && activitiesJSON.String != "" {
		if err := json.Unmarshal([]byte(activitiesJSON.String), &t.Activities); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal([]byte(weatherJSON), &t.Weather); err != nil {
		return nil, err
	}
	if capsuleJSON.Valid && capsuleJSON.String != "" {
		t.Capsule = &capsule.TripCapsule{}
		if err := json.Unmarshal([]byte(capsuleJSON.String), t.Capsule); err != nil {
			return nil, err
		}
	}

	return &t, nil
}

// encodeTrip serializes the JSON columns of a trip.
func encodeTrip(t *capsule.Trip) (activities sql.NullString, weather string, tripCapsule sql.NullString, err error) {
	if len(t.Activities) > 0 {
		data, err := json.Marshal(t.Activities)
		if err != nil {
			return activities, "", tripCapsule, errors.NewInternal(err)
		}
		activities = sql.NullString{String: string(data), Valid: true}
	}

	data, err := json.Marshal(t.Weather)
	if err != nil {
		return activities, "", tripCapsule, errors.NewInternal(err)
	}
	weather = string(data)

	if t.Capsule != nil {
		data, err := json.Marshal(t.Capsule)
		if err != nil {
			return activities, "", tripCapsule, errors.NewInternal(err)
		}
		tripCapsule = sql.NullString{String: string(data), Valid: true}
	}

	return activities, weather, tripCapsule, nil
}

// capsuleColumns extracts the denormalized capsule columns used for inspection.
func capsuleColumns(c *capsule.TripCapsule) (buildID, fingerprint sql.NullString, version sql.NullInt64) {
	if c == nil {
		return
	}
	buildID = sql.NullString{String: c.BuildID, Valid: c.BuildID != ""}
	if c.Fingerprint != nil {
		fingerprint = sql.NullString{String: *c.Fingerprint, Valid: true}
	}
	if c.Version != nil {
		version = sql.NullInt64{Int64: int64(*c.Version), Valid: true}
	}
	return
}

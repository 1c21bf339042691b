package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/crud-suite/internal/store"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryList runs query and scans every row with scan.
// It never returns a nil slice on success.
func queryList[T any](
	ctx context.Context,
	db store.DBTX,
	scan func(rowScanner) (*T, error),
	query string,
	args ...any,
) ([]*T, error) {
	// Execute the query
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	// Empty results encode as [] rather than null
	items := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	// Check for errors from iterating over rows
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return items, nil
}

// toNullUUID converts an optional reference to a nullable column value.
func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// fromNullUUID is the inverse of toNullUUID.
func fromNullUUID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

// toNullTime converts an optional timestamp to a nullable column value in UTC.
func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-spend-keeper/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (user_id, categories_sheet_id, expenses_sheet_id, cashflows_sheet_id)
	VALUES ($1, $2, $3, $4)
	RETURNING user_id, categories_sheet_id, expenses_sheet_id, cashflows_sheet_id, created_at;`

	findUserByID = `SELECT user_id, categories_sheet_id, expenses_sheet_id, cashflows_sheet_id, created_at
	FROM users
	WHERE user_id = $1;`

	listUsers = `SELECT user_id, categories_sheet_id, expenses_sheet_id, cashflows_sheet_id, created_at
	FROM users
	ORDER BY created_at ASC;`

	// upsertCacheRecord collapses a replayed write onto the row it created
	// the first time. Only updated_at moves on conflict; the original
	// fields, sheet_ref and version_token stay untouched so a duplicate
	// can never clobber a confirmed record.
	upsertCacheRecord = `INSERT INTO cache_records (user_id, entity_kind, fields, version_token, sheet_ref, client_write_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, client_write_id) WHERE client_write_id <> ''
	DO UPDATE SET updated_at = now()
	RETURNING record_id, user_id, entity_kind, fields, version_token, sheet_ref, client_write_id, created_at, updated_at;`

	confirmCacheRecord = `UPDATE cache_records
	SET sheet_ref = $1, version_token = $2, updated_at = now()
	WHERE record_id = $3;`

	deleteAllUserRecords = `DELETE FROM cache_records
	WHERE user_id = $1;`

	insertHydratedRecord = `INSERT INTO cache_records (user_id, entity_kind, fields, version_token, sheet_ref, client_write_id)
	VALUES ($1, $2, $3, $4, $5, $6);`
)

var cacheRecordColumns = []string{
	"record_id",
	"user_id",
	"entity_kind",
	"fields",
	"version_token",
	"sheet_ref",
	"client_write_id",
	"created_at",
	"updated_at",
}

// buildListRecordsQuery dynamically builds the filtered cache read.
func buildListRecordsQuery(ctx context.Context, userID string, query models.RecordQuery) (string, []any, error) {
	builder := sq.Select(cacheRecordColumns...).
		From("cache_records").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("record_id DESC").
		PlaceholderFormat(sq.Dollar)

	if query.Kind != "" {
		builder = builder.Where(sq.Eq{"entity_kind": query.Kind})
	}
	if !query.IncludeDeleted {
		// soft deletes live inside the JSONB payload
		builder = builder.Where("(fields ->> 'deleted') IS DISTINCT FROM 'true'")
	}
	// entity dates are stored as RFC 3339 UTC strings inside the JSONB
	// payload, so lexicographic comparison matches chronological order
	if !query.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"fields ->> 'date'": query.From.UTC().Format(time.RFC3339)})
	}
	if !query.To.IsZero() {
		builder = builder.Where(sq.LtOrEq{"fields ->> 'date'": query.To.UTC().Format(time.RFC3339)})
	}
	if query.Limit > 0 {
		builder = builder.Limit(query.Limit)
	}
	if query.Offset > 0 {
		builder = builder.Offset(query.Offset)
	}

	return builder.ToSql()
}

// buildCountRecordsQuery builds the companion total count, ignoring limit
// and offset.
func buildCountRecordsQuery(ctx context.Context, userID string, query models.RecordQuery) (string, []any, error) {
	builder := sq.Select("COUNT(*)").
		From("cache_records").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar)

	if query.Kind != "" {
		builder = builder.Where(sq.Eq{"entity_kind": query.Kind})
	}
	if !query.IncludeDeleted {
		builder = builder.Where("(fields ->> 'deleted') IS DISTINCT FROM 'true'")
	}
	if !query.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"fields ->> 'date'": query.From.UTC().Format(time.RFC3339)})
	}
	if !query.To.IsZero() {
		builder = builder.Where(sq.LtOrEq{"fields ->> 'date'": query.To.UTC().Format(time.RFC3339)})
	}

	return builder.ToSql()
}

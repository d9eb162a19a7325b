// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-spend-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListRecordsQuery_SQLContainsParts(t *testing.T) {
	ctx := context.Background()

	query, args, err := buildListRecordsQuery(ctx, "user-1", models.RecordQuery{})
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 1)
	require.Equal(t, "user-1", args[0])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from cache_records")
	require.Contains(t, q, "where")
	require.Contains(t, q, "user_id")
	// newest first
	require.Contains(t, q, "order by record_id desc")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	// soft-deleted records are excluded by default
	require.Contains(t, q, "deleted")
}

func Test_buildListRecordsQuery_SelectsAllExpectedColumns(t *testing.T) {
	ctx := context.Background()

	query, _, err := buildListRecordsQuery(ctx, "user-1", models.RecordQuery{})
	require.NoError(t, err)

	q := strings.ToLower(query)

	// Check that all expected columns are present in the SELECT section.
	// This is a "contains" check; it does not enforce order but catches regressions quickly.
	for _, c := range cacheRecordColumns {
		require.Contains(t, q, c)
	}
}

func Test_buildListRecordsQuery(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		query    models.RecordQuery
		wantArgs int
		check    func(t *testing.T, sql string)
	}{
		{
			name:     "no filters",
			userID:   "user-1",
			query:    models.RecordQuery{},
			wantArgs: 1,
			check: func(t *testing.T, sql string) {
				assert.NotContains(t, strings.ToLower(sql), "limit")
				assert.NotContains(t, strings.ToLower(sql), "offset")
			},
		},
		{
			name:     "kind filter adds argument",
			userID:   "user-1",
			query:    models.RecordQuery{Kind: models.KindCategory},
			wantArgs: 2,
			check: func(t *testing.T, sql string) {
				assert.Contains(t, strings.ToLower(sql), "entity_kind")
				assert.Contains(t, sql, "$2")
			},
		},
		{
			name:     "limit and offset",
			userID:   "user-1",
			query:    models.RecordQuery{Limit: 20, Offset: 40},
			wantArgs: 1,
			check: func(t *testing.T, sql string) {
				assert.Contains(t, strings.ToUpper(sql), "LIMIT 20")
				assert.Contains(t, strings.ToUpper(sql), "OFFSET 40")
			},
		},
		{
			name:     "include deleted drops the soft-delete predicate",
			userID:   "user-1",
			query:    models.RecordQuery{IncludeDeleted: true},
			wantArgs: 1,
			check: func(t *testing.T, sql string) {
				assert.NotContains(t, strings.ToLower(sql), "deleted")
			},
		},
		{
			name:   "date range adds bound arguments",
			userID: "user-1",
			query: models.RecordQuery{
				From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC),
			},
			wantArgs: 3,
			check: func(t *testing.T, sql string) {
				assert.Contains(t, sql, "fields ->> 'date'")
				assert.Contains(t, sql, ">=")
				assert.Contains(t, sql, "<=")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildListRecordsQuery(context.Background(), tt.userID, tt.query)
			require.NoError(t, err)
			require.Len(t, args, tt.wantArgs)
			tt.check(t, sql)
		})
	}
}

func Test_buildCountRecordsQuery(t *testing.T) {
	sql, args, err := buildCountRecordsQuery(context.Background(), "user-1", models.RecordQuery{Kind: models.KindExpense, Limit: 10, Offset: 5})
	require.NoError(t, err)

	q := strings.ToLower(sql)
	require.Contains(t, q, "count(*)")
	require.Contains(t, q, "from cache_records")

	// limit and offset never apply to the total
	require.NotContains(t, q, "limit")
	require.NotContains(t, q, "offset")

	require.Len(t, args, 2)
	assert.Equal(t, "user-1", args[0])
}

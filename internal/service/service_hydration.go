// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
	"github.com/MKhiriev/go-spend-keeper/models"
)

const defaultHydrationTimeout = 2 * time.Minute

type hydrationService struct {
	cache   store.CacheRepository
	users   store.UserRepository
	sheets  adapter.SheetStore
	locks   *UserLocks
	timeout time.Duration

	logger *logger.Logger
}

// NewHydrationService constructs the cache rebuild engine. It shares the
// locks registry with the write path so a rebuild and a write for the same
// user cannot interleave.
func NewHydrationService(cache store.CacheRepository, users store.UserRepository, sheets adapter.SheetStore, locks *UserLocks, timeout time.Duration, logger *logger.Logger) HydrationService {
	if timeout <= 0 {
		timeout = defaultHydrationTimeout
	}

	return &hydrationService{
		cache:   cache,
		users:   users,
		sheets:  sheets,
		locks:   locks,
		timeout: timeout,
		logger:  logger,
	}
}

// Hydrate implements [HydrationService]. The user's sheets are read in full,
// folded into cache records, and swapped in with one atomic replace. A
// failure anywhere leaves the previous cache contents untouched.
func (s *hydrationService) Hydrate(ctx context.Context, sc models.SyncContext) error {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	unlock := s.locks.Lock(sc.UserID)
	defer unlock()

	started := time.Now()

	var records []models.CacheRecord
	seenWriteIDs := make(map[string]struct{})
	for _, sheetID := range uniqueSheets(sc) {
		rows, err := s.sheets.ReadAll(ctx, sheetID)
		if err != nil {
			return fmt.Errorf("%w: read sheet %s: %w", ErrHydrationUnreachable, sheetID, err)
		}

		for _, row := range rows {
			if !row.Kind.Valid() || len(row.Fields) == 0 {
				log.Warn().
					Str("func", "hydrationService.Hydrate").
					Str("user_id", sc.UserID).
					Str("sheet_ref", row.Ref).
					Str("kind", string(row.Kind)).
					Msg("skipping uninterpretable sheet row")
				continue
			}

			// a replayed provisional write can leave the same
			// client_write_id on two sheet rows; the cache holds one
			// record per marker, so only the first row survives
			if row.ClientWriteID != "" {
				if _, seen := seenWriteIDs[row.ClientWriteID]; seen {
					log.Warn().
						Str("func", "hydrationService.Hydrate").
						Str("user_id", sc.UserID).
						Str("sheet_ref", row.Ref).
						Str("client_write_id", row.ClientWriteID).
						Msg("skipping duplicate authoritative row")
					continue
				}
				seenWriteIDs[row.ClientWriteID] = struct{}{}
			}

			records = append(records, models.CacheRecord{
				UserID:        sc.UserID,
				EntityKind:    row.Kind,
				Fields:        row.Fields,
				VersionToken:  row.Revision,
				SheetRef:      row.Ref,
				ClientWriteID: row.ClientWriteID,
			})
		}
	}

	if err := s.cache.ReplaceAll(ctx, sc.UserID, records); err != nil {
		return fmt.Errorf("replace cache contents: %w", err)
	}

	log.Info().
		Str("func", "hydrationService.Hydrate").
		Str("user_id", sc.UserID).
		Int("records", len(records)).
		Dur("took", time.Since(started)).
		Msg("cache hydrated from authoritative store")

	return nil
}

// HydrateAll implements [HydrationService]. Every known user is rebuilt in
// turn, best effort: one user's failure is logged and the loop moves on.
// Returns an error only when the user list itself cannot be read.
func (s *hydrationService) HydrateAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users for hydration: %w", err)
	}

	failed := 0
	for _, user := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.Hydrate(ctx, user.SyncContext()); err != nil {
			failed++
			log.Err(err).
				Str("func", "hydrationService.HydrateAll").
				Str("user_id", user.UserID).
				Msg("hydration failed for user, continuing with the rest")
		}
	}

	log.Info().
		Str("func", "hydrationService.HydrateAll").
		Int("users", len(users)).
		Int("failed", failed).
		Msg("full hydration pass finished")

	return nil
}

// uniqueSheets lists the user's sheet handles without duplicates. Categories
// and subcategories share a sheet, so blind iteration over kinds would read
// it twice.
func uniqueSheets(sc models.SyncContext) []string {
	seen := make(map[string]struct{}, 3)
	var sheets []string
	for _, id := range []string{sc.CategoriesSheetID, sc.ExpensesSheetID, sc.CashflowsSheetID} {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		sheets = append(sheets, id)
	}
	return sheets
}

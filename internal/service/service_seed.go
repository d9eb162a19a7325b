package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/models"
)

// defaultTaxonomy is the starter category tree written into a fresh
// workbook. Users extend or deactivate entries through ordinary category
// writes afterwards.
var defaultTaxonomy = []struct {
	C1  string
	C2s []string
}{
	{C1: "Food", C2s: []string{"Groceries", "Eating Out", "Snacks"}},
	{C1: "Transport", C2s: []string{"Fuel", "Public Transport", "Cab"}},
	{C1: "Housing", C2s: []string{"Rent", "Maintenance"}},
	{C1: "Utilities", C2s: []string{"Electricity", "Water", "Internet", "Mobile"}},
	{C1: "Health", C2s: []string{"Medicines", "Doctor", "Fitness"}},
	{C1: "Entertainment", C2s: []string{"Streaming", "Movies", "Games"}},
	{C1: "Shopping", C2s: []string{"Clothing", "Electronics", "Home"}},
	{C1: "Education", C2s: []string{"Books", "Courses"}},
	{C1: "Travel", C2s: []string{"Flights", "Stay", "Local"}},
	{C1: "Personal", C2s: []string{"Grooming", "Gifts"}},
	{C1: "Miscellaneous", C2s: nil},
}

type seedService struct {
	sheets adapter.SheetStore
	locks  *UserLocks

	logger *logger.Logger
}

// NewSeedService constructs the default-taxonomy seeder.
func NewSeedService(sheets adapter.SheetStore, locks *UserLocks, logger *logger.Logger) SeedService {
	return &seedService{
		sheets: sheets,
		locks:  locks,
		logger: logger,
	}
}

// Seed implements [SeedService]. Seeding is idempotent at sheet granularity:
// a categories sheet that already holds any category row is left untouched,
// so a repeated call after a partial failure cannot duplicate the whole tree.
func (s *seedService) Seed(ctx context.Context, sc models.SyncContext) (int, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(sc.UserID)
	defer unlock()

	rows, err := s.sheets.ReadAll(ctx, sc.CategoriesSheetID)
	if err != nil {
		return 0, fmt.Errorf("inspect categories sheet: %w", err)
	}
	for _, row := range rows {
		if row.Kind == models.KindCategory {
			log.Debug().
				Str("func", "seedService.Seed").
				Str("user_id", sc.UserID).
				Msg("categories sheet already populated, skipping seed")
			return 0, nil
		}
	}

	written := 0
	for _, entry := range defaultTaxonomy {
		if err := s.appendCategory(ctx, sc, entry.C1); err != nil {
			return written, err
		}
		written++

		for _, c2 := range entry.C2s {
			if err := s.appendSubcategory(ctx, sc, entry.C1, c2); err != nil {
				return written, err
			}
			written++
		}
	}

	log.Info().
		Str("func", "seedService.Seed").
		Str("user_id", sc.UserID).
		Int("rows", written).
		Msg("default taxonomy seeded")

	return written, nil
}

func (s *seedService) appendCategory(ctx context.Context, sc models.SyncContext, name string) error {
	fields, err := json.Marshal(models.CategoryPayload{Name: name, Active: true})
	if err != nil {
		return fmt.Errorf("encode category %s: %w", name, err)
	}

	if _, err := s.sheets.Append(ctx, sc.CategoriesSheetID, models.SheetRow{
		Kind:   models.KindCategory,
		Fields: fields,
	}); err != nil {
		return fmt.Errorf("seed category %s: %w", name, err)
	}

	return nil
}

func (s *seedService) appendSubcategory(ctx context.Context, sc models.SyncContext, c1 string, name string) error {
	fields, err := json.Marshal(models.SubcategoryPayload{Name: name, C1Name: c1, Active: true})
	if err != nil {
		return fmt.Errorf("encode subcategory %s: %w", name, err)
	}

	if _, err := s.sheets.Append(ctx, sc.CategoriesSheetID, models.SheetRow{
		Kind:   models.KindSubcategory,
		Fields: fields,
	}); err != nil {
		return fmt.Errorf("seed subcategory %s/%s: %w", c1, name, err)
	}

	return nil
}

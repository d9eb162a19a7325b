package service

import (
	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/config"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
)

type Services struct {
	UserService      UserService
	RecordService    RecordService
	HydrationService HydrationService
	SeedService      SeedService
}

// NewServices wires the server service layer. The write path and the
// hydration engine share one [UserLocks] registry; everything that mutates a
// user's cache goes through it.
func NewServices(storages *store.Storages, sheets adapter.SheetStore, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	locks := NewUserLocks()
	seedService := NewSeedService(sheets, locks, logger)

	return &Services{
		UserService:      NewUserService(storages.UserRepository, sheets, seedService, logger),
		RecordService:    NewRecordService(storages.CacheRepository, sheets, locks, logger),
		HydrationService: NewHydrationService(storages.CacheRepository, storages.UserRepository, sheets, locks, cfg.Sheets.HydrationTimeout, logger),
		SeedService:      seedService,
	}
}

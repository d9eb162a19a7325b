package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-spend-keeper/internal/adapter"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/store"
	"github.com/MKhiriev/go-spend-keeper/models"
)

type userService struct {
	users  store.UserRepository
	sheets adapter.SheetStore
	seeder SeedService

	logger *logger.Logger
}

// NewUserService constructs the sheet-mapping resolver. seeder may be nil;
// a fresh workbook is then left empty until an explicit seed request.
func NewUserService(users store.UserRepository, sheets adapter.SheetStore, seeder SeedService, logger *logger.Logger) UserService {
	return &userService{
		users:  users,
		sheets: sheets,
		seeder: seeder,
		logger: logger,
	}
}

// EnsureUser implements [UserService]. First contact provisions a workbook
// at the sheet service and persists the mapping; a concurrent first contact
// loses the insert race and adopts the winner's mapping.
func (s *userService) EnsureUser(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	provisioned, err := s.sheets.Provision(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUserNotProvisioned, err)
	}

	created, err := s.users.CreateUser(ctx, provisioned)
	if err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			// lost the race to another first contact
			return s.users.FindUserByID(ctx, userID)
		}
		return models.User{}, fmt.Errorf("persist user mapping: %w", err)
	}

	log.Info().
		Str("func", "userService.EnsureUser").
		Str("user_id", userID).
		Msg("provisioned workbook for new user")

	// a fresh workbook gets the default taxonomy right away, best effort;
	// seeding is idempotent and can be re-requested explicitly
	if s.seeder != nil {
		if _, err := s.seeder.Seed(ctx, created.SyncContext()); err != nil {
			log.Err(err).
				Str("func", "userService.EnsureUser").
				Str("user_id", userID).
				Msg("seeding fresh workbook failed")
		}
	}

	return created, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/store"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/MKhiriev/go-tyre-shop/internal/validators"
	"github.com/MKhiriev/go-tyre-shop/models"
)

type userService struct {
	userRepository      store.UserRepository
	dashboardRepository store.DashboardRepository
	validator           validators.Validator

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, dashboard store.DashboardRepository, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository:      users,
		dashboardRepository: dashboard,
		validator:           validator,
		logger:              logger,
	}
}

func (u *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	if !utils.IsUUID(id) {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u.userRepository.FindUserByID(ctx, id)
}

// UpdateUser applies a partial update to the account. A new password is
// hashed before it reaches the store.
func (u *userService) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return models.User{}, ErrNothingToUpdate
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &email
	}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		update.Username = &username
	}

	if err := u.validator.Validate(ctx, update); err != nil {
		return models.User{}, err
	}

	if update.Password != nil {
		hash, err := hashPassword(*update.Password)
		if err != nil {
			log.Err(err).Str("func", "userService.UpdateUser").Msg("password hashing failed")
			return models.User{}, err
		}
		update.Password = &hash
	}

	updated, err := u.userRepository.UpdateUser(ctx, id, update)
	if err != nil {
		log.Err(err).Str("func", "userService.UpdateUser").Str("user_id", id).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return updated, nil
}

func (u *userService) DeleteUser(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return store.ErrNoUserWasFound
	}
	if err := u.userRepository.DeleteUser(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userService.DeleteUser").Str("user_id", id).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}
	return nil
}

func (u *userService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	return u.dashboardRepository.Dashboard(ctx)
}

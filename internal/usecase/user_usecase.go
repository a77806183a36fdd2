package usecase

import (
	"context"

	"passr/internal/domain/entity"
	"passr/internal/domain/repository"
	"passr/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// RegisterPushToken stores the device token push notifications get sent to.
// An empty token unregisters the device.
func (uc *UserUseCase) RegisterPushToken(ctx context.Context, userID, token string) error {
	if userID == "" {
		return errors.Unauthorized("Authentication required", nil)
	}
	return uc.userRepo.SetPushToken(ctx, userID, token)
}

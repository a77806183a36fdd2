package repository

import (
	"context"

	"passr/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	SetPushToken(ctx context.Context, userID, token string) error
}

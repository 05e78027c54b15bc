package repositories

import (
	"context"

	"github.com/google/uuid"
	"hackmate.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.UserProfile, error)
	Update(ctx context.Context, user *entities.User) error
}

package repositories

import (
	"context"

	"github.com/google/uuid"
	"hackmate.backend/internal/domain/entities"
)

// HackathonRepository defines hackathon data operations
type HackathonRepository interface {
	Create(ctx context.Context, hackathon *entities.Hackathon) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Hackathon, error)
	ListActive(ctx context.Context) ([]*entities.Hackathon, error)
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.HackathonSummary, error)
}

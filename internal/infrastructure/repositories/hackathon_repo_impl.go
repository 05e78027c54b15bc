package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/infrastructure/models"
	"hackmate.backend/pkg/utils"
)

type HackathonRepository struct {
	db *gorm.DB
}

func NewHackathonRepository(db *gorm.DB) *HackathonRepository {
	return &HackathonRepository{db: db}
}

func (r *HackathonRepository) Create(ctx context.Context, hackathon *entities.Hackathon) error {
	if hackathon.ID == uuid.Nil {
		hackathon.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(hackathon)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	hackathon.ID = m.ID
	hackathon.CreatedAt = m.CreatedAt
	hackathon.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *HackathonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Hackathon, error) {
	var m models.Hackathon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *HackathonRepository) ListActive(ctx context.Context) ([]*entities.Hackathon, error) {
	var ms []models.Hackathon
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("start_date ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Hackathon, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

// GetSummaries loads summaries for a set of hackathons in one query.
func (r *HackathonRepository) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.HackathonSummary, error) {
	out := make(map[uuid.UUID]*entities.HackathonSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var ms []models.Hackathon
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	for i := range ms {
		out[ms[i].ID] = r.toEntity(&ms[i]).Summary()
	}
	return out, nil
}

func (r *HackathonRepository) toEntity(m *models.Hackathon) *entities.Hackathon {
	return &entities.Hackathon{
		ID:          m.ID,
		Title:       m.Title,
		Description: null.StringFromPtr(m.Description),
		Location:    null.StringFromPtr(m.Location),
		Mode:        entities.HackathonMode(m.Mode),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		MaxTeamSize: m.MaxTeamSize,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *HackathonRepository) toModel(e *entities.Hackathon) *models.Hackathon {
	return &models.Hackathon{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description.Ptr(),
		Location:    e.Location.Ptr(),
		Mode:        string(e.Mode),
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		MaxTeamSize: e.MaxTeamSize,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

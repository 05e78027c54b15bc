package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/infrastructure/models"
	"hackmate.backend/pkg/utils"
)

type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Create(ctx context.Context, request *entities.JoinRequest) error {
	if request.ID == uuid.Nil {
		request.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(request)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	request.ID = m.ID
	request.CreatedAt = m.CreatedAt
	request.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *JoinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.JoinRequest, error) {
	var m models.JoinRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus moves a pending request to a terminal state. Requests already
// resolved are left untouched and reported as closed.
func (r *JoinRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.JoinRequestStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.JoinRequest{}).
		Where("id = ? AND status = ?", id, string(entities.JoinRequestStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).
			Model(&models.JoinRequest{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrRequestClosed
	}
	return nil
}

func (r *JoinRequestRepository) HasPending(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.JoinRequest{}).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, string(entities.JoinRequestStatusPending)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *JoinRequestRepository) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.JoinRequest, error) {
	var ms []models.JoinRequest
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, string(entities.JoinRequestStatusPending)).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.JoinRequest, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *JoinRequestRepository) PendingTeamIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.JoinRequest{}).
		Where("user_id = ? AND status = ?", userID, string(entities.JoinRequestStatusPending)).
		Pluck("team_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *JoinRequestRepository) toEntity(m *models.JoinRequest) *entities.JoinRequest {
	return &entities.JoinRequest{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Message:   null.StringFromPtr(m.Message),
		Status:    entities.JoinRequestStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *JoinRequestRepository) toModel(e *entities.JoinRequest) *models.JoinRequest {
	return &models.JoinRequest{
		ID:        e.ID,
		TeamID:    e.TeamID,
		UserID:    e.UserID,
		Message:   e.Message.Ptr(),
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/infrastructure/models"
	"hackmate.backend/pkg/utils"
)

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(member)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		// The (team_id, user_id) unique index rejects a second row for
		// the same user.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	member.ID = m.ID
	return nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, teamID, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamMemberRepository) Exists(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeamMemberRepository) CountByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *TeamMemberRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

// CountByTeams returns member counts for a set of teams in one query.
func (r *TeamMemberRepository) CountByTeams(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(teamIDs))
	if len(teamIDs) == 0 {
		return out, nil
	}

	type row struct {
		TeamID uuid.UUID
		Total  int
	}
	var rows []row
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Select("team_id, COUNT(*) AS total").
		Where("team_id IN ?", teamIDs).
		Group("team_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.TeamID] = rw.Total
	}
	return out, nil
}

func (r *TeamMemberRepository) TeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *TeamMemberRepository) toEntity(m *models.TeamMember) *entities.TeamMember {
	return &entities.TeamMember{
		ID:       m.ID,
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     entities.TeamRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

func (r *TeamMemberRepository) toModel(e *entities.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:       e.ID,
		TeamID:   e.TeamID,
		UserID:   e.UserID,
		Role:     string(e.Role),
		JoinedAt: e.JoinedAt,
	}
}

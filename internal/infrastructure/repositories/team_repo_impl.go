package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/infrastructure/models"
	"hackmate.backend/pkg/utils"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	if team.ID == uuid.Nil {
		team.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(team)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	team.ID = m.ID
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDForUpdate reads the team with SELECT ... FOR UPDATE so concurrent
// membership transactions serialize on the row. SQLite has no FOR UPDATE;
// its single-writer transactions already serialize, so the clause is only
// applied on postgres.
func (r *TeamRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	query := GetDB(ctx, r.db).WithContext(ctx)
	if query.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m models.Team
	if err := query.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByInviteCode resolves the unique active team carrying the code.
// Codes are stored upper case; callers normalize input before the lookup.
func (r *TeamRepository) GetByInviteCode(ctx context.Context, code string) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("invite_code = ? AND is_active = ?", code, true).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error) {
	var ms []models.Team
	memberTeams := r.db.Model(&models.TeamMember{}).Select("team_id").Where("user_id = ?", userID)
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", memberTeams).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *TeamRepository) ListAvailable(ctx context.Context, userID uuid.UUID, hackathonID *uuid.UUID) ([]*entities.Team, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("leader_id <> ?", userID)
	if hackathonID != nil {
		query = query.Where("hackathon_id = ?", *hackathonID)
	}

	var ms []models.Team
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	updates := map[string]interface{}{
		"name":               team.Name,
		"description":        team.Description.Ptr(),
		"tech_stack":         encodeStrings(team.TechStack),
		"looking_for_skills": encodeStrings(team.LookingForSkills),
		"max_members":        team.MaxMembers,
		"is_active":          team.IsActive,
		"updated_at":         time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", team.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) UpdateInviteCode(ctx context.Context, id uuid.UUID, code string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"invite_code": code,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// InviteCodeExists reports whether any active team already carries the code.
func (r *TeamRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("invite_code = ? AND is_active = ?", code, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeamRepository) toEntities(ms []models.Team) []*entities.Team {
	items := make([]*entities.Team, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items
}

func (r *TeamRepository) toEntity(m *models.Team) *entities.Team {
	var deletedAt null.Time
	if m.DeletedAt.Valid {
		deletedAt = null.TimeFrom(m.DeletedAt.Time)
	}
	return &entities.Team{
		ID:               m.ID,
		Name:             m.Name,
		Description:      null.StringFromPtr(m.Description),
		HackathonID:      m.HackathonID,
		LeaderID:         m.LeaderID,
		InviteCode:       null.StringFromPtr(m.InviteCode),
		TechStack:        decodeStrings(m.TechStack),
		LookingForSkills: decodeStrings(m.LookingForSkills),
		MaxMembers:       m.MaxMembers,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

func (r *TeamRepository) toModel(e *entities.Team) *models.Team {
	return &models.Team{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description.Ptr(),
		HackathonID:      e.HackathonID,
		LeaderID:         e.LeaderID,
		InviteCode:       e.InviteCode.Ptr(),
		TechStack:        encodeStrings(e.TechStack),
		LookingForSkills: encodeStrings(e.LookingForSkills),
		MaxMembers:       e.MaxMembers,
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

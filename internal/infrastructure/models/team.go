package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Name             string    `gorm:"type:varchar(120);not null"`
	Description      *string   `gorm:"type:text"`
	HackathonID      uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	InviteCode       *string   `gorm:"type:varchar(20);uniqueIndex"`
	TechStack        string    `gorm:"type:text"` // JSON-encoded []string
	LookingForSkills string    `gorm:"type:text"` // JSON-encoded []string
	MaxMembers       int       `gorm:"not null;default:4"`
	IsActive         bool      `gorm:"not null;default:true;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

type TeamMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user"`
	Role     string    `gorm:"type:varchar(20);not null;default:'member'"`
	JoinedAt time.Time `gorm:"not null"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

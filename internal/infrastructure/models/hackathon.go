package models

import (
	"time"

	"github.com/google/uuid"
)

type Hackathon struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description *string   `gorm:"type:text"`
	Location    *string   `gorm:"type:varchar(200)"`
	Mode        string    `gorm:"type:varchar(20);not null;default:'online'"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	MaxTeamSize int       `gorm:"not null;default:5"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

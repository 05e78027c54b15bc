package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type      string     `gorm:"type:varchar(40);not null"`
	Title     string     `gorm:"type:varchar(200);not null"`
	Body      string     `gorm:"type:text;not null"`
	TeamID    *uuid.UUID `gorm:"type:uuid"`
	IsRead    bool       `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}

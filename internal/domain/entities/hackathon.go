package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// HackathonMode represents how a hackathon is held
type HackathonMode string

const (
	HackathonModeOnline  HackathonMode = "online"
	HackathonModeOffline HackathonMode = "offline"
	HackathonModeHybrid  HackathonMode = "hybrid"
)

// Hackathon represents a hackathon event teams are formed for
type Hackathon struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description null.String   `json:"description,omitempty"`
	Location    null.String   `json:"location,omitempty"`
	Mode        HackathonMode `json:"mode"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	MaxTeamSize int           `json:"maxTeamSize"`
	IsActive    bool          `json:"isActive"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// HackathonSummary is the projection embedded in team views
type HackathonSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Summary returns the projection embedded in team views
func (h *Hackathon) Summary() *HackathonSummary {
	return &HackathonSummary{
		ID:        h.ID,
		Title:     h.Title,
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
	}
}

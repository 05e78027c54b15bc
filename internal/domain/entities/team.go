package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Team represents a hackathon team
type Team struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Description      null.String `json:"description,omitempty"`
	HackathonID      uuid.UUID   `json:"hackathonId"`
	LeaderID         uuid.UUID   `json:"leaderId"`
	InviteCode       null.String `json:"inviteCode,omitempty"`
	TechStack        []string    `json:"techStack"`
	LookingForSkills []string    `json:"lookingForSkills"`
	MaxMembers       int         `json:"maxMembers"`
	IsActive         bool        `json:"isActive"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	DeletedAt        null.Time   `json:"-"`
}

// TeamView is a team enriched for a specific viewer. MemberCount, IsMember,
// IsLeader and HasPendingRequest are computed per request, never stored.
type TeamView struct {
	Team
	Hackathon         *HackathonSummary `json:"hackathon,omitempty"`
	Leader            *UserProfile      `json:"leader,omitempty"`
	Members           []*TeamMember     `json:"members,omitempty"`
	MemberCount       int               `json:"memberCount"`
	IsMember          bool              `json:"isMember"`
	IsLeader          bool              `json:"isLeader"`
	HasPendingRequest bool              `json:"hasPendingRequest"`
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	Name             string   `json:"name" binding:"required,min=2,max=120"`
	Description      string   `json:"description"`
	HackathonID      string   `json:"hackathonId" binding:"required,uuid"`
	TechStack        []string `json:"techStack"`
	LookingForSkills []string `json:"lookingForSkills"`
	MaxMembers       int      `json:"maxMembers" binding:"required,min=1"`
}

// UpdateTeamInput represents a partial team update. Nil fields are left untouched.
type UpdateTeamInput struct {
	Name             *string   `json:"name,omitempty"`
	Description      *string   `json:"description,omitempty"`
	TechStack        *[]string `json:"techStack,omitempty"`
	LookingForSkills *[]string `json:"lookingForSkills,omitempty"`
	MaxMembers       *int      `json:"maxMembers,omitempty"`
	IsActive         *bool     `json:"isActive,omitempty"`
}

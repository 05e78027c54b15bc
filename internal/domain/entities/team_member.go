package entities

import (
	"time"

	"github.com/google/uuid"
)

// TeamRole represents a member's role within a team
type TeamRole string

const (
	TeamRoleLeader TeamRole = "leader"
	TeamRoleMember TeamRole = "member"
)

// TeamMember links a user to a team. Exactly one member per team carries
// the leader role and its UserID equals the team's LeaderID.
type TeamMember struct {
	ID       uuid.UUID    `json:"id"`
	TeamID   uuid.UUID    `json:"teamId"`
	UserID   uuid.UUID    `json:"userId"`
	Role     TeamRole     `json:"role"`
	JoinedAt time.Time    `json:"joinedAt"`
	User     *UserProfile `json:"user,omitempty"`
}

package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// JoinRequestStatus represents the lifecycle state of a join request
type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "pending"
	JoinRequestStatusAccepted JoinRequestStatus = "accepted"
	JoinRequestStatusRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a leader-approval-gated request to join a team.
// It is created pending and transitions exactly once to accepted or
// rejected; terminal states are never reopened.
type JoinRequest struct {
	ID        uuid.UUID         `json:"id"`
	TeamID    uuid.UUID         `json:"teamId"`
	UserID    uuid.UUID         `json:"userId"`
	Message   null.String       `json:"message,omitempty"`
	Status    JoinRequestStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	User      *UserProfile      `json:"user,omitempty"`
}

// RequestToJoinInput represents input for requesting to join a team
type RequestToJoinInput struct {
	Message string `json:"message" binding:"max=500"`
}

// JoinWithCodeInput represents input for joining a team by invite code
type JoinWithCodeInput struct {
	InviteCode string `json:"inviteCode" binding:"required,min=4,max=20"`
}

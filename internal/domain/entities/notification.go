package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// NotificationType represents the event a notification was created for
type NotificationType string

const (
	NotificationJoinRequest     NotificationType = "join_request"
	NotificationRequestAccepted NotificationType = "request_accepted"
	NotificationRequestRejected NotificationType = "request_rejected"
	NotificationMemberJoined    NotificationType = "member_joined"
	NotificationMemberLeft      NotificationType = "member_left"
)

// Notification is an in-app message produced by the membership workflow
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	TeamID    null.String      `json:"teamId,omitempty"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

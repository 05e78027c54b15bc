package repositories

import (
	"context"

	"github.com/google/uuid"
	"hackmate.backend/internal/domain/entities"
)

// TeamRepository defines team data operations
type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	// GetByIDForUpdate reads the team under a row lock so concurrent
	// transactions serialize on it. Must run inside a UnitOfWork.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	// GetByInviteCode resolves the unique active team carrying the code.
	GetByInviteCode(ctx context.Context, code string) (*entities.Team, error)
	// ListByMember returns teams where the user holds a member row.
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error)
	// ListAvailable returns active teams not led by the user, optionally
	// filtered to one hackathon.
	ListAvailable(ctx context.Context, userID uuid.UUID, hackathonID *uuid.UUID) ([]*entities.Team, error)
	Update(ctx context.Context, team *entities.Team) error
	UpdateInviteCode(ctx context.Context, id uuid.UUID, code string) error
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}

// TeamMemberRepository defines team membership data operations
type TeamMemberRepository interface {
	Create(ctx context.Context, member *entities.TeamMember) error
	Delete(ctx context.Context, teamID, userID uuid.UUID) error
	Exists(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error)
	CountByTeams(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int, error)
	// TeamIDsByUser returns the teams the user holds a member row on.
	TeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// JoinRequestRepository defines join request data operations
type JoinRequestRepository interface {
	Create(ctx context.Context, request *entities.JoinRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.JoinRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.JoinRequestStatus) error
	HasPending(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.JoinRequest, error)
	// PendingTeamIDs returns the teams the user has a pending request against.
	PendingTeamIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

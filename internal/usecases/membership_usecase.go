package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/domain/repositories"
	"hackmate.backend/pkg/logger"
)

var membershipOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hackmate",
	Subsystem: "membership",
	Name:      "operations_total",
	Help:      "Membership workflow operations by outcome",
}, []string{"operation", "outcome"})

// MembershipUsecase drives the join-request and invite-code workflow.
// Per (user, team) the states are: none -> request pending -> member or
// rejected; none -> member directly via invite code; member -> none on leave.
type MembershipUsecase struct {
	teamRepo    repositories.TeamRepository
	memberRepo  repositories.TeamMemberRepository
	requestRepo repositories.JoinRequestRepository
	userRepo    repositories.UserRepository
	notifRepo   repositories.NotificationRepository
	uow         repositories.UnitOfWork
}

// NewMembershipUsecase creates a new membership usecase
func NewMembershipUsecase(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	requestRepo repositories.JoinRequestRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	uow repositories.UnitOfWork,
) *MembershipUsecase {
	return &MembershipUsecase{
		teamRepo:    teamRepo,
		memberRepo:  memberRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
		uow:         uow,
	}
}

// JoinWithCode joins the caller to the active team carrying the invite code.
// Inside the transaction the team row is re-read under a row lock, so two
// concurrent joiners cannot both take the last seat.
func (u *MembershipUsecase) JoinWithCode(ctx context.Context, userID uuid.UUID, code string) (*entities.Team, error) {
	team, err := u.teamRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.count("join_with_code", "invalid_code")
			return nil, domainerrors.NotFound("invalid invite code")
		}
		u.count("join_with_code", "error")
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		// Lock the team row so concurrent joiners serialize on the
		// capacity check instead of both counting the same snapshot.
		locked, err := u.teamRepo.GetByIDForUpdate(txCtx, team.ID)
		if err != nil {
			return err
		}

		isMember, err := u.memberRepo.Exists(txCtx, team.ID, userID)
		if err != nil {
			return err
		}
		if isMember {
			return domainerrors.ErrAlreadyMember
		}

		count, err := u.memberRepo.CountByTeam(txCtx, team.ID)
		if err != nil {
			return err
		}
		if count >= locked.MaxMembers {
			return domainerrors.ErrTeamFull
		}

		member := &entities.TeamMember{
			TeamID:   team.ID,
			UserID:   userID,
			Role:     entities.TeamRoleMember,
			JoinedAt: time.Now(),
		}
		return u.memberRepo.Create(txCtx, member)
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyMember):
			u.count("join_with_code", "already_member")
			return nil, domainerrors.Conflict("you are already a member of this team")
		case errors.Is(err, domainerrors.ErrTeamFull):
			u.count("join_with_code", "team_full")
			return nil, domainerrors.Conflict("team is already full")
		default:
			u.count("join_with_code", "error")
			return nil, err
		}
	}

	u.count("join_with_code", "ok")
	u.notify(ctx, team.LeaderID, entities.NotificationMemberJoined, "New team member",
		fmt.Sprintf("Someone joined %q with an invite code", team.Name), team.ID)
	return team, nil
}

// RequestToJoin files a pending join request for the caller against the team.
func (u *MembershipUsecase) RequestToJoin(ctx context.Context, userID, teamID uuid.UUID, message string) (*entities.JoinRequest, error) {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.count("request_to_join", "not_found")
			return nil, domainerrors.NotFound("team not found")
		}
		u.count("request_to_join", "error")
		return nil, err
	}
	if !team.IsActive {
		u.count("request_to_join", "inactive")
		return nil, domainerrors.BadRequest("team is not accepting requests")
	}

	isMember, err := u.memberRepo.Exists(ctx, teamID, userID)
	if err != nil {
		u.count("request_to_join", "error")
		return nil, err
	}
	if isMember {
		u.count("request_to_join", "already_member")
		return nil, domainerrors.Conflict("you are already a member of this team")
	}

	pending, err := u.requestRepo.HasPending(ctx, teamID, userID)
	if err != nil {
		u.count("request_to_join", "error")
		return nil, err
	}
	if pending {
		u.count("request_to_join", "duplicate")
		return nil, domainerrors.Conflict("you already have a pending request for this team")
	}

	request := &entities.JoinRequest{
		TeamID: teamID,
		UserID: userID,
		Status: entities.JoinRequestStatusPending,
	}
	if message != "" {
		request.Message = null.StringFrom(message)
	}
	if err := u.requestRepo.Create(ctx, request); err != nil {
		u.count("request_to_join", "error")
		return nil, err
	}

	u.count("request_to_join", "ok")
	u.notify(ctx, team.LeaderID, entities.NotificationJoinRequest, "New join request",
		fmt.Sprintf("Someone asked to join %q", team.Name), team.ID)
	return request, nil
}

// AcceptRequest accepts a pending request, creating the member row and
// marking the request accepted in one transaction. Capacity is deliberately
// not re-checked here: a leader may accept into a team that filled up via
// invite codes in the meantime.
func (u *MembershipUsecase) AcceptRequest(ctx context.Context, actorID, requestID uuid.UUID) error {
	request, team, err := u.loadRequestForLeader(ctx, actorID, requestID)
	if err != nil {
		u.count("accept_request", "refused")
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		member := &entities.TeamMember{
			TeamID:   request.TeamID,
			UserID:   request.UserID,
			Role:     entities.TeamRoleMember,
			JoinedAt: time.Now(),
		}
		if err := u.memberRepo.Create(txCtx, member); err != nil {
			return err
		}
		return u.requestRepo.UpdateStatus(txCtx, requestID, entities.JoinRequestStatusAccepted)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrRequestClosed) {
			u.count("accept_request", "closed")
			return domainerrors.Conflict("request was already resolved")
		}
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			u.count("accept_request", "already_member")
			return domainerrors.Conflict("user is already a member of this team")
		}
		u.count("accept_request", "error")
		return err
	}

	u.count("accept_request", "ok")
	u.notify(ctx, request.UserID, entities.NotificationRequestAccepted, "Request accepted",
		fmt.Sprintf("Your request to join %q was accepted", team.Name), team.ID)
	return nil
}

// RejectRequest rejects a pending request. No side effects beyond the
// status change.
func (u *MembershipUsecase) RejectRequest(ctx context.Context, actorID, requestID uuid.UUID) error {
	request, team, err := u.loadRequestForLeader(ctx, actorID, requestID)
	if err != nil {
		u.count("reject_request", "refused")
		return err
	}

	if err := u.requestRepo.UpdateStatus(ctx, requestID, entities.JoinRequestStatusRejected); err != nil {
		if errors.Is(err, domainerrors.ErrRequestClosed) {
			u.count("reject_request", "closed")
			return domainerrors.Conflict("request was already resolved")
		}
		u.count("reject_request", "error")
		return err
	}

	u.count("reject_request", "ok")
	u.notify(ctx, request.UserID, entities.NotificationRequestRejected, "Request rejected",
		fmt.Sprintf("Your request to join %q was rejected", team.Name), team.ID)
	return nil
}

// Leave removes the caller's member row. A leader leaving keeps the team
// alive with no leader-role member; leadership transfer is not performed.
func (u *MembershipUsecase) Leave(ctx context.Context, userID, teamID uuid.UUID) error {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.count("leave", "not_found")
			return domainerrors.NotFound("team not found")
		}
		u.count("leave", "error")
		return err
	}

	if err := u.memberRepo.Delete(ctx, teamID, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.count("leave", "not_member")
			return domainerrors.NotFound("you are not a member of this team")
		}
		u.count("leave", "error")
		return err
	}

	if team.LeaderID == userID {
		logger.Warn(ctx, "team leader left without transferring leadership",
			zap.String("team_id", teamID.String()),
			zap.String("user_id", userID.String()),
		)
	}

	u.count("leave", "ok")
	if team.LeaderID != userID {
		u.notify(ctx, team.LeaderID, entities.NotificationMemberLeft, "Member left",
			fmt.Sprintf("A member left %q", team.Name), team.ID)
	}
	return nil
}

// ListPendingRequests returns the team's pending requests with requester
// profiles; only the leader may list them.
func (u *MembershipUsecase) ListPendingRequests(ctx context.Context, actorID, teamID uuid.UUID) ([]*entities.JoinRequest, error) {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("team not found")
		}
		return nil, err
	}
	if team.LeaderID != actorID {
		return nil, domainerrors.Forbidden("only the team leader can view join requests")
	}

	requests, err := u.requestRepo.ListPendingByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		userIDs = append(userIDs, r.UserID)
	}
	profiles, err := u.userRepo.GetProfiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, r := range requests {
		r.User = profiles[r.UserID]
	}
	return requests, nil
}

func (u *MembershipUsecase) loadRequestForLeader(ctx context.Context, actorID, requestID uuid.UUID) (*entities.JoinRequest, *entities.Team, error) {
	request, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("join request not found")
		}
		return nil, nil, err
	}

	team, err := u.teamRepo.GetByID(ctx, request.TeamID)
	if err != nil {
		return nil, nil, err
	}
	if team.LeaderID != actorID {
		return nil, nil, domainerrors.Forbidden("only the team leader can resolve join requests")
	}
	if request.Status != entities.JoinRequestStatusPending {
		return nil, nil, domainerrors.Conflict("request was already resolved")
	}
	return request, team, nil
}

// notify records an in-app notification. Notification failures never fail
// the workflow operation that produced them.
func (u *MembershipUsecase) notify(ctx context.Context, userID uuid.UUID, typ entities.NotificationType, title, body string, teamID uuid.UUID) {
	n := &entities.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
		TeamID: null.StringFrom(teamID.String()),
	}
	if err := u.notifRepo.Create(ctx, n); err != nil {
		logger.Warn(ctx, "failed to record notification",
			zap.String("type", string(typ)),
			zap.Error(err),
		)
	}
}

func (u *MembershipUsecase) count(operation, outcome string) {
	membershipOps.WithLabelValues(operation, outcome).Inc()
}

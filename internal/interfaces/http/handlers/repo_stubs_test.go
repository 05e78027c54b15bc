package handlers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/interfaces/http/middleware"
	"hackmate.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

// authAs injects the authenticated user the way the auth middleware does.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

type teamRepoStub struct {
	createFn           func(ctx context.Context, team *entities.Team) error
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	getByIDForUpdateFn func(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	getByInviteCodeFn  func(ctx context.Context, code string) (*entities.Team, error)
	listByMemberFn     func(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error)
	listAvailableFn    func(ctx context.Context, userID uuid.UUID, hackathonID *uuid.UUID) ([]*entities.Team, error)
	updateFn           func(ctx context.Context, team *entities.Team) error
	updateInviteCodeFn func(ctx context.Context, id uuid.UUID, code string) error
}

func (s *teamRepoStub) Create(ctx context.Context, team *entities.Team) error {
	if s.createFn != nil {
		return s.createFn(ctx, team)
	}
	team.ID = uuid.New()
	return nil
}

func (s *teamRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *teamRepoStub) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	if s.getByIDForUpdateFn != nil {
		return s.getByIDForUpdateFn(ctx, id)
	}
	return s.GetByID(ctx, id)
}

func (s *teamRepoStub) GetByInviteCode(ctx context.Context, code string) (*entities.Team, error) {
	if s.getByInviteCodeFn != nil {
		return s.getByInviteCodeFn(ctx, code)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *teamRepoStub) ListByMember(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error) {
	if s.listByMemberFn != nil {
		return s.listByMemberFn(ctx, userID)
	}
	return []*entities.Team{}, nil
}

func (s *teamRepoStub) ListAvailable(ctx context.Context, userID uuid.UUID, hackathonID *uuid.UUID) ([]*entities.Team, error) {
	if s.listAvailableFn != nil {
		return s.listAvailableFn(ctx, userID, hackathonID)
	}
	return []*entities.Team{}, nil
}

func (s *teamRepoStub) Update(ctx context.Context, team *entities.Team) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, team)
	}
	return nil
}

func (s *teamRepoStub) UpdateInviteCode(ctx context.Context, id uuid.UUID, code string) error {
	if s.updateInviteCodeFn != nil {
		return s.updateInviteCodeFn(ctx, id, code)
	}
	return nil
}

func (s *teamRepoStub) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

type memberRepoStub struct {
	createFn        func(ctx context.Context, member *entities.TeamMember) error
	deleteFn        func(ctx context.Context, teamID, userID uuid.UUID) error
	existsFn        func(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	countByTeamFn   func(ctx context.Context, teamID uuid.UUID) (int, error)
	listByTeamFn    func(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error)
	teamIDsByUserFn func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (s *memberRepoStub) Create(ctx context.Context, member *entities.TeamMember) error {
	if s.createFn != nil {
		return s.createFn(ctx, member)
	}
	return nil
}

func (s *memberRepoStub) Delete(ctx context.Context, teamID, userID uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, teamID, userID)
	}
	return nil
}

func (s *memberRepoStub) Exists(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, teamID, userID)
	}
	return false, nil
}

func (s *memberRepoStub) CountByTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	if s.countByTeamFn != nil {
		return s.countByTeamFn(ctx, teamID)
	}
	return 1, nil
}

func (s *memberRepoStub) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	if s.listByTeamFn != nil {
		return s.listByTeamFn(ctx, teamID)
	}
	return []*entities.TeamMember{}, nil
}

func (s *memberRepoStub) CountByTeams(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(teamIDs))
	for _, id := range teamIDs {
		counts[id] = 1
	}
	return counts, nil
}

func (s *memberRepoStub) TeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if s.teamIDsByUserFn != nil {
		return s.teamIDsByUserFn(ctx, userID)
	}
	return []uuid.UUID{}, nil
}

type requestRepoStub struct {
	createFn            func(ctx context.Context, request *entities.JoinRequest) error
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*entities.JoinRequest, error)
	updateStatusFn      func(ctx context.Context, id uuid.UUID, status entities.JoinRequestStatus) error
	hasPendingFn        func(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	listPendingByTeamFn func(ctx context.Context, teamID uuid.UUID) ([]*entities.JoinRequest, error)
}

func (s *requestRepoStub) Create(ctx context.Context, request *entities.JoinRequest) error {
	if s.createFn != nil {
		return s.createFn(ctx, request)
	}
	request.ID = uuid.New()
	return nil
}

func (s *requestRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.JoinRequest, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *requestRepoStub) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.JoinRequestStatus) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (s *requestRepoStub) HasPending(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	if s.hasPendingFn != nil {
		return s.hasPendingFn(ctx, teamID, userID)
	}
	return false, nil
}

func (s *requestRepoStub) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.JoinRequest, error) {
	if s.listPendingByTeamFn != nil {
		return s.listPendingByTeamFn(ctx, teamID)
	}
	return []*entities.JoinRequest{}, nil
}

func (s *requestRepoStub) PendingTeamIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return []uuid.UUID{}, nil
}

type userRepoStub struct {
	createFn      func(ctx context.Context, user *entities.User) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn  func(ctx context.Context, email string) (*entities.User, error)
	getProfilesFn func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.UserProfile, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	user.ID = uuid.New()
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.UserProfile, error) {
	if s.getProfilesFn != nil {
		return s.getProfilesFn(ctx, ids)
	}
	profiles := make(map[uuid.UUID]*entities.UserProfile, len(ids))
	for _, id := range ids {
		profiles[id] = &entities.UserProfile{ID: id, Name: "Stub"}
	}
	return profiles, nil
}

func (s *userRepoStub) Update(ctx context.Context, user *entities.User) error {
	return nil
}

type hackathonRepoStub struct {
	createFn     func(ctx context.Context, hackathon *entities.Hackathon) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.Hackathon, error)
	listActiveFn func(ctx context.Context) ([]*entities.Hackathon, error)
}

func (s *hackathonRepoStub) Create(ctx context.Context, hackathon *entities.Hackathon) error {
	if s.createFn != nil {
		return s.createFn(ctx, hackathon)
	}
	hackathon.ID = uuid.New()
	return nil
}

func (s *hackathonRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Hackathon, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *hackathonRepoStub) ListActive(ctx context.Context) ([]*entities.Hackathon, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx)
	}
	return []*entities.Hackathon{}, nil
}

func (s *hackathonRepoStub) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.HackathonSummary, error) {
	summaries := make(map[uuid.UUID]*entities.HackathonSummary, len(ids))
	for _, id := range ids {
		summaries[id] = &entities.HackathonSummary{ID: id, Title: "Stub Hackathon"}
	}
	return summaries, nil
}

type notifRepoStub struct {
	createFn      func(ctx context.Context, notification *entities.Notification) error
	listByUserFn  func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int, error)
	countUnreadFn func(ctx context.Context, userID uuid.UUID) (int, error)
	markReadFn    func(ctx context.Context, id, userID uuid.UUID) error
	markAllReadFn func(ctx context.Context, userID uuid.UUID) error
}

func (s *notifRepoStub) Create(ctx context.Context, notification *entities.Notification) error {
	if s.createFn != nil {
		return s.createFn(ctx, notification)
	}
	return nil
}

func (s *notifRepoStub) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Notification, int, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID, limit, offset)
	}
	return []*entities.Notification{}, 0, nil
}

func (s *notifRepoStub) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if s.countUnreadFn != nil {
		return s.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (s *notifRepoStub) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, id, userID)
	}
	return nil
}

func (s *notifRepoStub) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, userID)
	}
	return nil
}

func (s *notifRepoStub) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

// uowStub runs the unit inline without a real transaction.
type uowStub struct{}

func (u *uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

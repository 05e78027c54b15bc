package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/domain/repositories"
	"hackmate.backend/pkg/crypto"
)

const inviteCodeAttempts = 5

// TeamUsecase handles team lifecycle and the per-user team directory.
type TeamUsecase struct {
	teamRepo      repositories.TeamRepository
	memberRepo    repositories.TeamMemberRepository
	requestRepo   repositories.JoinRequestRepository
	hackathonRepo repositories.HackathonRepository
	userRepo      repositories.UserRepository
	uow           repositories.UnitOfWork
}

// NewTeamUsecase creates a new team usecase
func NewTeamUsecase(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	requestRepo repositories.JoinRequestRepository,
	hackathonRepo repositories.HackathonRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *TeamUsecase {
	return &TeamUsecase{
		teamRepo:      teamRepo,
		memberRepo:    memberRepo,
		requestRepo:   requestRepo,
		hackathonRepo: hackathonRepo,
		userRepo:      userRepo,
		uow:           uow,
	}
}

// CreateTeam creates a team and its leader membership as one unit.
func (u *TeamUsecase) CreateTeam(ctx context.Context, leaderID uuid.UUID, input *entities.CreateTeamInput) (*entities.TeamView, error) {
	hackathonID, err := uuid.Parse(input.HackathonID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid hackathon ID")
	}

	hackathon, err := u.hackathonRepo.GetByID(ctx, hackathonID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("hackathon not found")
		}
		return nil, err
	}
	if !hackathon.IsActive {
		return nil, domainerrors.BadRequest("hackathon is not accepting teams")
	}
	if input.MaxMembers < 1 {
		return nil, domainerrors.BadRequest("maxMembers must be at least 1")
	}
	if hackathon.MaxTeamSize > 0 && input.MaxMembers > hackathon.MaxTeamSize {
		return nil, domainerrors.BadRequest(fmt.Sprintf("maxMembers exceeds hackathon team size limit of %d", hackathon.MaxTeamSize))
	}

	code, err := u.newInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	team := &entities.Team{
		Name:             strings.TrimSpace(input.Name),
		HackathonID:      hackathonID,
		LeaderID:         leaderID,
		InviteCode:       null.StringFrom(code),
		TechStack:        input.TechStack,
		LookingForSkills: input.LookingForSkills,
		MaxMembers:       input.MaxMembers,
		IsActive:         true,
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		team.Description = null.StringFrom(desc)
	}
	if team.TechStack == nil {
		team.TechStack = []string{}
	}
	if team.LookingForSkills == nil {
		team.LookingForSkills = []string{}
	}

	// Team row and leader member row commit or roll back together; a
	// failure between the two inserts cannot leave an orphaned team.
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.teamRepo.Create(txCtx, team); err != nil {
			return err
		}
		leader := &entities.TeamMember{
			TeamID:   team.ID,
			UserID:   leaderID,
			Role:     entities.TeamRoleLeader,
			JoinedAt: time.Now(),
		}
		return u.memberRepo.Create(txCtx, leader)
	})
	if err != nil {
		return nil, err
	}

	return u.GetTeam(ctx, leaderID, team.ID)
}

// UpdateTeam applies a partial update; only the leader may update a team.
func (u *TeamUsecase) UpdateTeam(ctx context.Context, actorID, teamID uuid.UUID, input *entities.UpdateTeamInput) (*entities.TeamView, error) {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("team not found")
		}
		return nil, err
	}
	if team.LeaderID != actorID {
		return nil, domainerrors.Forbidden("only the team leader can update the team")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerrors.BadRequest("name cannot be empty")
		}
		team.Name = name
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if desc == "" {
			team.Description = null.String{}
		} else {
			team.Description = null.StringFrom(desc)
		}
	}
	if input.TechStack != nil {
		team.TechStack = *input.TechStack
	}
	if input.LookingForSkills != nil {
		team.LookingForSkills = *input.LookingForSkills
	}
	if input.MaxMembers != nil {
		if *input.MaxMembers < 1 {
			return nil, domainerrors.BadRequest("maxMembers must be at least 1")
		}
		team.MaxMembers = *input.MaxMembers
	}
	if input.IsActive != nil {
		team.IsActive = *input.IsActive
	}

	if err := u.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return u.GetTeam(ctx, actorID, teamID)
}

// RegenerateInviteCode replaces the team's invite code with a fresh unique one.
func (u *TeamUsecase) RegenerateInviteCode(ctx context.Context, actorID, teamID uuid.UUID) (string, error) {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return "", domainerrors.NotFound("team not found")
		}
		return "", err
	}
	if team.LeaderID != actorID {
		return "", domainerrors.Forbidden("only the team leader can regenerate the invite code")
	}

	code, err := u.newInviteCode(ctx)
	if err != nil {
		return "", err
	}
	if err := u.teamRepo.UpdateInviteCode(ctx, teamID, code); err != nil {
		return "", err
	}
	return code, nil
}

// ListUserTeams returns all teams the user belongs to, enriched with
// hackathon summary, leader profile and full member list.
func (u *TeamUsecase) ListUserTeams(ctx context.Context, userID uuid.UUID) ([]*entities.TeamView, error) {
	teams, err := u.teamRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.buildViews(ctx, userID, teams, true)
}

// ListAvailableTeams returns active teams the user does not lead, optionally
// filtered to one hackathon, annotated with membership and pending-request flags.
func (u *TeamUsecase) ListAvailableTeams(ctx context.Context, userID uuid.UUID, hackathonID *uuid.UUID) ([]*entities.TeamView, error) {
	teams, err := u.teamRepo.ListAvailable(ctx, userID, hackathonID)
	if err != nil {
		return nil, err
	}
	return u.buildViews(ctx, userID, teams, false)
}

// GetTeam returns one team enriched for the viewer.
func (u *TeamUsecase) GetTeam(ctx context.Context, viewerID, teamID uuid.UUID) (*entities.TeamView, error) {
	team, err := u.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("team not found")
		}
		return nil, err
	}
	views, err := u.buildViews(ctx, viewerID, []*entities.Team{team}, true)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// buildViews computes the per-viewer derived fields for a set of teams.
// withMembers additionally loads each team's member list with profiles.
func (u *TeamUsecase) buildViews(ctx context.Context, viewerID uuid.UUID, teams []*entities.Team, withMembers bool) ([]*entities.TeamView, error) {
	views := make([]*entities.TeamView, 0, len(teams))
	if len(teams) == 0 {
		return views, nil
	}

	teamIDs := make([]uuid.UUID, 0, len(teams))
	leaderIDs := make([]uuid.UUID, 0, len(teams))
	hackathonIDs := make([]uuid.UUID, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
		leaderIDs = append(leaderIDs, t.LeaderID)
		hackathonIDs = append(hackathonIDs, t.HackathonID)
	}

	counts, err := u.memberRepo.CountByTeams(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	summaries, err := u.hackathonRepo.GetSummaries(ctx, hackathonIDs)
	if err != nil {
		return nil, err
	}
	leaders, err := u.userRepo.GetProfiles(ctx, leaderIDs)
	if err != nil {
		return nil, err
	}

	memberTeams, err := u.memberRepo.TeamIDsByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	memberOf := make(map[uuid.UUID]bool, len(memberTeams))
	for _, id := range memberTeams {
		memberOf[id] = true
	}

	pendingTeams, err := u.requestRepo.PendingTeamIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	pendingOn := make(map[uuid.UUID]bool, len(pendingTeams))
	for _, id := range pendingTeams {
		pendingOn[id] = true
	}

	for _, t := range teams {
		view := &entities.TeamView{
			Team:              *t,
			Hackathon:         summaries[t.HackathonID],
			Leader:            leaders[t.LeaderID],
			MemberCount:       counts[t.ID],
			IsMember:          memberOf[t.ID],
			IsLeader:          t.LeaderID == viewerID,
			HasPendingRequest: pendingOn[t.ID],
		}
		// The invite code is only for people already on the team.
		if !view.IsLeader && !view.IsMember {
			view.InviteCode = null.String{}
		}
		if withMembers {
			members, err := u.loadMembers(ctx, t.ID)
			if err != nil {
				return nil, err
			}
			view.Members = members
		}
		views = append(views, view)
	}
	return views, nil
}

func (u *TeamUsecase) loadMembers(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	members, err := u.memberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	userIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	profiles, err := u.userRepo.GetProfiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		m.User = profiles[m.UserID]
	}
	return members, nil
}

func (u *TeamUsecase) newInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := crypto.GenerateInviteCode()
		if err != nil {
			return "", err
		}
		exists, err := u.teamRepo.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique invite code after %d attempts", inviteCodeAttempts)
}

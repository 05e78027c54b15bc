package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/interfaces/http/middleware"
	"hackmate.backend/internal/interfaces/http/response"
	"hackmate.backend/internal/usecases"
)

// MembershipHandler handles the join-request and invite-code endpoints
type MembershipHandler struct {
	membershipUsecase *usecases.MembershipUsecase
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipUsecase *usecases.MembershipUsecase) *MembershipHandler {
	return &MembershipHandler{membershipUsecase: membershipUsecase}
}

// JoinWithCode joins the caller to a team by invite code
// POST /api/v1/teams/join
func (h *MembershipHandler) JoinWithCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.JoinWithCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	// Codes are stored uppercase; accept any casing from clients
	code := strings.ToUpper(strings.TrimSpace(input.InviteCode))

	team, err := h.membershipUsecase.JoinWithCode(c.Request.Context(), userID, code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"team": team})
}

// RequestToJoin files a join request against a team
// POST /api/v1/teams/:id/requests
func (h *MembershipHandler) RequestToJoin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid team ID"))
		return
	}

	var input entities.RequestToJoinInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	request, err := h.membershipUsecase.RequestToJoin(c.Request.Context(), userID, teamID, input.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": request})
}

// ListPendingRequests returns the team's pending join requests
// GET /api/v1/teams/:id/requests
func (h *MembershipHandler) ListPendingRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid team ID"))
		return
	}

	requests, err := h.membershipUsecase.ListPendingRequests(c.Request.Context(), userID, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// AcceptRequest accepts a pending join request
// POST /api/v1/requests/:id/accept
func (h *MembershipHandler) AcceptRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request ID"))
		return
	}

	if err := h.membershipUsecase.AcceptRequest(c.Request.Context(), userID, requestID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": string(entities.JoinRequestStatusAccepted)})
}

// RejectRequest rejects a pending join request
// POST /api/v1/requests/:id/reject
func (h *MembershipHandler) RejectRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request ID"))
		return
	}

	if err := h.membershipUsecase.RejectRequest(c.Request.Context(), userID, requestID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": string(entities.JoinRequestStatusRejected)})
}

// LeaveTeam removes the caller from a team
// DELETE /api/v1/teams/:id/members/me
func (h *MembershipHandler) LeaveTeam(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid team ID"))
		return
	}

	if err := h.membershipUsecase.Leave(c.Request.Context(), userID, teamID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Left team"})
}

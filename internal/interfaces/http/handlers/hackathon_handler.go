package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/domain/repositories"
	"hackmate.backend/internal/interfaces/http/response"
)

// HackathonHandler handles hackathon directory endpoints.
// Thin enough that it talks to the repository directly.
type HackathonHandler struct {
	hackathonRepo repositories.HackathonRepository
}

// NewHackathonHandler creates a new hackathon handler
func NewHackathonHandler(hackathonRepo repositories.HackathonRepository) *HackathonHandler {
	return &HackathonHandler{hackathonRepo: hackathonRepo}
}

// ListHackathons lists active hackathons ordered by start date
// GET /api/v1/hackathons
func (h *HackathonHandler) ListHackathons(c *gin.Context) {
	hackathons, err := h.hackathonRepo.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if hackathons == nil {
		hackathons = []*entities.Hackathon{}
	}
	response.Success(c, http.StatusOK, gin.H{"hackathons": hackathons})
}

// GetHackathon returns a single hackathon
// GET /api/v1/hackathons/:id
func (h *HackathonHandler) GetHackathon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid hackathon ID"))
		return
	}

	hackathon, err := h.hackathonRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Hackathon not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hackathon": hackathon})
}

// CreateHackathon creates a hackathon
// POST /api/v1/hackathons
func (h *HackathonHandler) CreateHackathon(c *gin.Context) {
	var input struct {
		Title       string    `json:"title" binding:"required,min=2,max=200"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		Mode        string    `json:"mode" binding:"required,oneof=online offline hybrid"`
		StartDate   time.Time `json:"startDate" binding:"required"`
		EndDate     time.Time `json:"endDate" binding:"required"`
		MaxTeamSize int       `json:"maxTeamSize" binding:"required,min=1,max=50"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if !input.EndDate.After(input.StartDate) {
		response.Error(c, domainerrors.BadRequest("endDate must be after startDate"))
		return
	}

	hackathon := &entities.Hackathon{
		Title:       input.Title,
		Mode:        entities.HackathonMode(input.Mode),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		MaxTeamSize: input.MaxTeamSize,
		IsActive:    true,
	}
	if input.Description != "" {
		hackathon.Description = null.StringFrom(input.Description)
	}
	if input.Location != "" {
		hackathon.Location = null.StringFrom(input.Location)
	}

	if err := h.hackathonRepo.Create(c.Request.Context(), hackathon); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"hackathon": hackathon})
}

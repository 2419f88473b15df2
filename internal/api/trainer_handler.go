package api

import (
	"errors"
	"net/http"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler exposes trainer administration and roster management.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request/Response Structs ---

type CreateTrainerRequest struct {
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=8"`
	FirstName      string   `json:"firstName" binding:"required"`
	LastName       string   `json:"lastName" binding:"required"`
	Phone          string   `json:"phone"`
	Specialization []string `json:"specialization"`
	Experience     int      `json:"experience" binding:"omitempty,min=0"`
}

type AssignMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// --- Admin Handlers ---

// List returns all trainers with their user identities.
func (h *TrainerHandler) List(c *gin.Context) {
	trainers, err := h.trainerService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainers")
		return
	}
	if trainers == nil {
		trainers = []service.TrainerDetails{}
	}
	c.JSON(http.StatusOK, trainers)
}

// Get returns one trainer by id.
func (h *TrainerHandler) Get(c *gin.Context) {
	trainerID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	trainer, err := h.trainerService.GetByID(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainer")
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// Create provisions a trainer account plus its trainer document.
func (h *TrainerHandler) Create(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile := domain.Profile{FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone}
	trainer, err := h.trainerService.Create(c.Request.Context(), req.Email, req.Password, profile, req.Specialization, req.Experience)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create trainer")
		return
	}

	c.JSON(http.StatusCreated, trainer)
}

// AssignMember puts a member on this trainer's roster, detaching them from
// any previous trainer.
func (h *TrainerHandler) AssignMember(c *gin.Context) {
	trainerID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req AssignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	memberID, ok := parseObjectID(c, req.MemberID, "memberId")
	if !ok {
		return
	}

	if err := h.trainerService.AssignMember(c.Request.Context(), trainerID, memberID); err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to assign member")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member assigned successfully"})
}

// UnassignMember removes a member from whichever roster they are on.
func (h *TrainerHandler) UnassignMember(c *gin.Context) {
	memberID, ok := pathObjectID(c, "memberId")
	if !ok {
		return
	}

	if err := h.trainerService.UnassignMember(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to unassign member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member unassigned successfully"})
}

// --- Trainer Self-Service Handlers ---

// MyRoster returns the members assigned to the calling trainer.
func (h *TrainerHandler) MyRoster(c *gin.Context) {
	trainer, ok := h.actingTrainer(c)
	if !ok {
		return
	}

	members, err := h.trainerService.RosterMembers(c.Request.Context(), trainer.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve roster")
		return
	}
	if members == nil {
		members = []domain.Member{}
	}
	c.JSON(http.StatusOK, members)
}

func (h *TrainerHandler) actingTrainer(c *gin.Context) (*domain.Trainer, bool) {
	userID, err := actingUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return nil, false
	}

	trainer, err := h.trainerService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, "Trainer profile not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve trainer profile")
		}
		return nil, false
	}
	return trainer, true
}

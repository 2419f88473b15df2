package api

import (
	"errors"
	"net/http"
	"time"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes workout schedule management for trainers and
// schedule reads for members.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
	trainerService  service.TrainerService
	memberService   service.MemberService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(
	scheduleService service.ScheduleService,
	trainerService service.TrainerService,
	memberService service.MemberService,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		trainerService:  trainerService,
		memberService:   memberService,
	}
}

// --- Request/Response Structs ---

type ScheduleRequest struct {
	MemberID  string           `json:"memberId" binding:"required"`
	StartDate time.Time        `json:"startDate" binding:"required"`
	EndDate   time.Time        `json:"endDate" binding:"required"`
	Routines  []domain.Routine `json:"routines" binding:"required,dive"`
}

type UpdateScheduleRequest struct {
	StartDate time.Time        `json:"startDate" binding:"required"`
	EndDate   time.Time        `json:"endDate" binding:"required"`
	Routines  []domain.Routine `json:"routines" binding:"required,dive"`
}

// --- Trainer Handlers ---

// Create adds a schedule for a member on the calling trainer's roster.
func (h *ScheduleHandler) Create(c *gin.Context) {
	trainer, ok := h.actingTrainer(c)
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	memberID, ok := parseObjectID(c, req.MemberID, "memberId")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.Create(c.Request.Context(), trainer.ID, memberID, req.StartDate, req.EndDate, req.Routines)
	if err != nil {
		h.mapScheduleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// Update modifies a schedule owned by the calling trainer.
func (h *ScheduleHandler) Update(c *gin.Context) {
	trainer, ok := h.actingTrainer(c)
	if !ok {
		return
	}

	scheduleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	schedule, err := h.scheduleService.Update(c.Request.Context(), trainer.ID, scheduleID, req.StartDate, req.EndDate, req.Routines)
	if err != nil {
		h.mapScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// ListForTrainer returns all schedules authored by the calling trainer.
func (h *ScheduleHandler) ListForTrainer(c *gin.Context) {
	trainer, ok := h.actingTrainer(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleService.ListForTrainer(c.Request.Context(), trainer.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	c.JSON(http.StatusOK, schedules)
}

// Delete removes a schedule (administrative).
func (h *ScheduleHandler) Delete(c *gin.Context) {
	scheduleID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), scheduleID); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}

// --- Member Handlers ---

// ListMine returns schedules written for the calling member.
func (h *ScheduleHandler) ListMine(c *gin.Context) {
	userID, err := actingUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	member, err := h.memberService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Member profile not found")
		return
	}

	schedules, err := h.scheduleService.ListForMember(c.Request.Context(), member.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *ScheduleHandler) mapScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidScheduleDates):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrScheduleNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMemberNotOnRoster), errors.Is(err, service.ErrNotScheduleOwner):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to save schedule")
	}
}

func (h *ScheduleHandler) actingTrainer(c *gin.Context) (*domain.Trainer, bool) {
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

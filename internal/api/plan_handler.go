package api

import (
	"errors"
	"net/http"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes the plan catalog and tier table over HTTP.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type PlanRequest struct {
	Name     string `json:"name" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1"`
	Price    int64  `json:"price" binding:"required,gt=0"`
}

// --- Handler Methods ---

// List returns every catalog plan. Open to any authenticated user.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans")
		return
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

// Tiers returns the fixed symbolic tier table (monthly/quarterly/yearly).
func (h *PlanHandler) Tiers(c *gin.Context) {
	c.JSON(http.StatusOK, h.planService.Tiers())
}

// Create adds a plan to the catalog (administrative).
func (h *PlanHandler) Create(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req.Name, req.Duration, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlan) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// Update replaces a catalog plan's terms (administrative). Existing
// subscriptions keep their snapshot and are unaffected.
func (h *PlanHandler) Update(c *gin.Context) {
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), planID, req.Name, req.Duration, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Delete removes a catalog plan (administrative).
func (h *PlanHandler) Delete(c *gin.Context) {
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully"})
}

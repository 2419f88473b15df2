package api

import (
	"context"
	"errors"
	"net/http"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionHandler exposes the subscription lifecycle over HTTP.
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	memberService       service.MemberService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionService service.SubscriptionService, memberService service.MemberService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		memberService:       memberService,
	}
}

// --- Request/Response Structs ---

type PurchaseRequest struct {
	MemberID      string               `json:"memberId" binding:"required"`
	PlanID        string               `json:"planId"`
	PlanType      string               `json:"planType"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
}

type PurchaseMeRequest struct {
	PlanID        string               `json:"planId"`
	PlanType      string               `json:"planType"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required"`
}

type SweepResponse struct {
	ExpiredCount int64 `json:"expiredCount"`
}

// --- Admin Handlers ---

// Purchase establishes a subscription for an arbitrary member.
func (h *SubscriptionHandler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid memberId format")
		return
	}

	result, err := h.subscriptionService.Purchase(c.Request.Context(), memberID, req.PlanID, req.PlanType, req.PaymentMethod)
	if err != nil {
		h.mapPurchaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// PurchaseMe establishes a subscription for the calling member.
func (h *SubscriptionHandler) PurchaseMe(c *gin.Context) {
	var req PurchaseMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	member, ok := h.actingMember(c)
	if !ok {
		return
	}

	result, err := h.subscriptionService.Purchase(c.Request.Context(), member.ID, req.PlanID, req.PlanType, req.PaymentMethod)
	if err != nil {
		h.mapPurchaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *SubscriptionHandler) mapPurchaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPlan), errors.Is(err, service.ErrInvalidPaymentMethod):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMemberNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to complete the subscription purchase")
	}
}

// List returns every subscription in the ledger.
func (h *SubscriptionHandler) List(c *gin.Context) {
	subs, err := h.subscriptionService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}
	if subs == nil {
		subs = []domain.Subscription{}
	}
	c.JSON(http.StatusOK, subs)
}

// ListByMember returns all subscriptions held by one member.
func (h *SubscriptionHandler) ListByMember(c *gin.Context) {
	memberID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	subs, err := h.subscriptionService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}
	if subs == nil {
		subs = []domain.Subscription{}
	}
	c.JSON(http.StatusOK, subs)
}

// Pause pauses any subscription (administrative).
func (h *SubscriptionHandler) Pause(c *gin.Context) {
	h.adminTransition(c, h.subscriptionService.Pause)
}

// Resume resumes any subscription (administrative).
func (h *SubscriptionHandler) Resume(c *gin.Context) {
	h.adminTransition(c, h.subscriptionService.Resume)
}

// Cancel cancels any subscription (administrative).
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	h.adminTransition(c, h.subscriptionService.Cancel)
}

// transitionFunc matches the service's pause/resume/cancel signatures.
type transitionFunc func(ctx context.Context, subID primitive.ObjectID, actingMember *primitive.ObjectID) (*domain.Subscription, error)

func (h *SubscriptionHandler) adminTransition(c *gin.Context, op transitionFunc) {
	subID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	sub, err := op(c.Request.Context(), subID, nil)
	if err != nil {
		h.mapTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) memberTransition(c *gin.Context, op transitionFunc) {
	subID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	member, ok := h.actingMember(c)
	if !ok {
		return
	}

	memberID := member.ID
	sub, err := op(c.Request.Context(), subID, &memberID)
	if err != nil {
		h.mapTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) mapTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubscriptionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotSubscriptionOwner):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to update subscription")
	}
}

// Delete removes a subscription with its payment and member-pointer cascade.
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	subID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.subscriptionService.Delete(c.Request.Context(), subID); err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete subscription")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}

// Sweep runs an immediate expiration sweep. Idempotent.
func (h *SubscriptionHandler) Sweep(c *gin.Context) {
	count, err := h.subscriptionService.SweepExpired(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Sweep failed")
		return
	}
	c.JSON(http.StatusOK, SweepResponse{ExpiredCount: count})
}

// --- Member Self-Service Handlers ---

// ListMine returns the calling member's subscriptions.
func (h *SubscriptionHandler) ListMine(c *gin.Context) {
	member, ok := h.actingMember(c)
	if !ok {
		return
	}

	subs, err := h.subscriptionService.ListByMember(c.Request.Context(), member.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}
	if subs == nil {
		subs = []domain.Subscription{}
	}
	c.JSON(http.StatusOK, subs)
}

// CurrentMine returns the calling member's current subscription, or null.
func (h *SubscriptionHandler) CurrentMine(c *gin.Context) {
	member, ok := h.actingMember(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.CurrentForMember(c.Request.Context(), member.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve current subscription")
		return
	}
	c.JSON(http.StatusOK, sub)
}

// PauseMine pauses one of the calling member's own subscriptions.
func (h *SubscriptionHandler) PauseMine(c *gin.Context) {
	h.memberTransition(c, h.subscriptionService.Pause)
}

// ResumeMine resumes one of the calling member's own subscriptions.
func (h *SubscriptionHandler) ResumeMine(c *gin.Context) {
	h.memberTransition(c, h.subscriptionService.Resume)
}

// CancelMine cancels one of the calling member's own subscriptions.
func (h *SubscriptionHandler) CancelMine(c *gin.Context) {
	h.memberTransition(c, h.subscriptionService.Cancel)
}

// actingMember resolves the calling user's member profile.
func (h *SubscriptionHandler) actingMember(c *gin.Context) (*domain.Member, bool) {
	userID, err := actingUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return nil, false
	}

	member, err := h.memberService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, "Member profile not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to resolve member profile")
		}
		return nil, false
	}
	return member, true
}

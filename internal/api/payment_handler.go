package api

import (
	"net/http"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes the read-only payment ledger.
type PaymentHandler struct {
	paymentService service.PaymentService
	memberService  service.MemberService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService, memberService service.MemberService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		memberService:  memberService,
	}
}

// List returns every payment record (administrative).
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

// ListByMember returns all payments made by one member (administrative).
func (h *PaymentHandler) ListByMember(c *gin.Context) {
	memberID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

// ListMine returns the calling member's own payment history.
func (h *PaymentHandler) ListMine(c *gin.Context) {
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

	payments, err := h.paymentService.ListByMember(c.Request.Context(), member.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

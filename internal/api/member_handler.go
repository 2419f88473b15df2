package api

import (
	"errors"
	"net/http"

	"gym-management-api/internal/domain"
	"gym-management-api/internal/service"

	"github.com/gin-gonic/gin"
)

// MemberHandler exposes member administration and member self-service.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- Request/Response Structs ---

type UpdatePersonalInfoRequest struct {
	Height            *float64      `json:"height" binding:"omitempty,gt=0"`
	Weight            *float64      `json:"weight" binding:"omitempty,gt=0"`
	Age               *int          `json:"age" binding:"omitempty,gt=0"`
	Gender            domain.Gender `json:"gender" binding:"omitempty,oneof=male female other"`
	Goal              string        `json:"goal"`
	MedicalConditions string        `json:"medicalConditions"`
}

func (r UpdatePersonalInfoRequest) toDomain() domain.PersonalInfo {
	return domain.PersonalInfo{
		Height:            r.Height,
		Weight:            r.Weight,
		Age:               r.Age,
		Gender:            r.Gender,
		Goal:              r.Goal,
		MedicalConditions: r.MedicalConditions,
	}
}

// --- Admin Handlers ---

// List returns all members with their user identities.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}
	if members == nil {
		members = []service.MemberDetails{}
	}
	c.JSON(http.StatusOK, members)
}

// Get returns one member by id.
func (h *MemberHandler) Get(c *gin.Context) {
	memberID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// Update replaces a member's personal info (administrative).
func (h *MemberHandler) Update(c *gin.Context) {
	memberID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req UpdatePersonalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	member, err := h.memberService.UpdatePersonalInfo(c.Request.Context(), memberID, req.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// Delete removes a member with its user identity and roster cascade.
func (h *MemberHandler) Delete(c *gin.Context) {
	memberID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

// --- Member Self-Service Handlers ---

// GetMine returns the calling member's own profile document.
func (h *MemberHandler) GetMine(c *gin.Context) {
	member, ok := h.actingMember(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMine updates the calling member's own personal info.
func (h *MemberHandler) UpdateMine(c *gin.Context) {
	member, ok := h.actingMember(c)
	if !ok {
		return
	}

	var req UpdatePersonalInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	updated, err := h.memberService.UpdatePersonalInfo(c.Request.Context(), member.ID, req.toDomain())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MemberHandler) actingMember(c *gin.Context) (*domain.Member, bool) {
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

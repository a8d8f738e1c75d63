package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Create adds a member to the tenant
func (h *MemberHandler) Create(c *gin.Context) {
	tenantID := c.Param("tenantId")

	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		respondError(c, "member.create", err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// Get returns one member of the tenant
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberService.Get(c.Request.Context(), c.Param("tenantId"), c.Param("loginId"))
	if err != nil {
		respondError(c, "member.get", err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// List returns one page of the tenant's members
func (h *MemberHandler) List(c *gin.Context) {
	page, pageSize, ok := bindPage(c)
	if !ok {
		return
	}

	resp, err := h.memberService.List(c.Request.Context(), c.Param("tenantId"), page, pageSize)
	if err != nil {
		respondError(c, "member.list", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update changes a member's profile
func (h *MemberHandler) Update(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), c.Param("tenantId"), c.Param("loginId"), &req)
	if err != nil {
		respondError(c, "member.update", err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// Delete removes a member from the tenant
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("tenantId"), c.Param("loginId")); err != nil {
		respondError(c, "member.delete", err)
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	memberService service.MemberService
}

func NewUserHandler(memberService service.MemberService) *UserHandler {
	return &UserHandler{memberService: memberService}
}

// GetByID looks a user up regardless of tenant
func (h *UserHandler) GetByID(c *gin.Context) {
	info, err := h.memberService.GetUserByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, "user.get", err)
		return
	}

	c.JSON(http.StatusOK, info)
}

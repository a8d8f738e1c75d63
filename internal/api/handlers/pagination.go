package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/gin-gonic/gin"
)

// bindPage reads ?page=&pageSize=, writing a 400 and returning false when
// either is not an integer. Range checks belong to the service.
func bindPage(c *gin.Context) (int, int, bool) {
	var q models.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWith(c, http.StatusBadRequest, "Invalid request", "page and pageSize must be integers")
		return 0, 0, false
	}
	return q.Page, q.PageSize, true
}

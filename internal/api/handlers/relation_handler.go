package handlers

import (
	"fmt"
	"net/http"

	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	relationService service.RelationService
}

func NewRelationHandler(relationService service.RelationService) *RelationHandler {
	return &RelationHandler{relationService: relationService}
}

// Create writes every tuple in the body
func (h *RelationHandler) Create(c *gin.Context) {
	var req models.RelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.relationService.Create(c.Request.Context(), req.Relations); err != nil {
		respondError(c, "relation.create", err)
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{
		Message: fmt.Sprintf("Created %d relation tuple(s)", len(req.Relations)),
	})
}

// Delete removes every tuple in the body
func (h *RelationHandler) Delete(c *gin.Context) {
	var req models.RelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.relationService.Delete(c.Request.Context(), req.Relations); err != nil {
		respondError(c, "relation.delete", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// WhoCanAccess lists the targets holding a relation on a resource
func (h *RelationHandler) WhoCanAccess(c *gin.Context) {
	var q models.WhoCanAccessQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	targets, err := h.relationService.WhoCanAccess(c.Request.Context(), q.Resource, q.RelationDefinition, q.Namespace)
	if err != nil {
		respondError(c, "relation.who_can_access", err)
		return
	}

	c.JSON(http.StatusOK, models.TargetsResponse{Targets: targets})
}

// ResourceRelations lists every tuple whose resource matches the path
func (h *RelationHandler) ResourceRelations(c *gin.Context) {
	relations, err := h.relationService.ResourceRelations(c.Request.Context(), c.Param("resourceId"))
	if err != nil {
		respondError(c, "relation.resource", err)
		return
	}

	c.JSON(http.StatusOK, models.RelationsResponse{Relations: relations})
}

// TargetAccess lists every tuple granted to the target in the path
func (h *RelationHandler) TargetAccess(c *gin.Context) {
	relations, err := h.relationService.TargetAccess(c.Request.Context(), c.Param("targetId"))
	if err != nil {
		respondError(c, "relation.target", err)
		return
	}

	c.JSON(http.StatusOK, models.RelationsResponse{Relations: relations})
}

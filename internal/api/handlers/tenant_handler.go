package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/Marga-Ghale/ora-identity-services/internal/service"
	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	tenantService service.TenantService
}

func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

func (h *TenantHandler) Create(c *gin.Context) {
	var req models.TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "tenant.create", err)
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.tenantService.Get(c.Request.Context(), c.Param("tenantId"))
	if err != nil {
		respondError(c, "tenant.get", err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) List(c *gin.Context) {
	page, pageSize, ok := bindPage(c)
	if !ok {
		return
	}

	resp, err := h.tenantService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, "tenant.list", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TenantHandler) Update(c *gin.Context) {
	var req models.TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), c.Param("tenantId"), &req)
	if err != nil {
		respondError(c, "tenant.update", err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) Delete(c *gin.Context) {
	if err := h.tenantService.Delete(c.Request.Context(), c.Param("tenantId")); err != nil {
		respondError(c, "tenant.delete", err)
		return
	}

	c.Status(http.StatusNoContent)
}

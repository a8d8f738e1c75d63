package models

// ============================================
// Tenant DTOs
// ============================================

type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TenantRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

package models

// ============================================
// Member DTOs
// ============================================

// Member is a user as seen from inside one tenant.
type Member struct {
	LoginID  string `json:"loginId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	TenantID string `json:"tenantId"`
}

// MemberRequest creates or updates a member. LoginID is ignored on update;
// the path identifies the member.
type MemberRequest struct {
	LoginID string `json:"loginId"`
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
}

// UserInfo is the tenant-independent view returned by GET /users/{userId}.
type UserInfo struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

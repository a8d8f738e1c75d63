package management

// UserTenant is a user's association with one tenant.
type UserTenant struct {
	TenantID   string   `json:"tenantId"`
	TenantName string   `json:"tenantName,omitempty"`
	RoleNames  []string `json:"roleNames,omitempty"`
}

// UserRequest is the writable part of a user record.
type UserRequest struct {
	Name        string       `json:"name,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	UserTenants []UserTenant `json:"userTenants,omitempty"`
}

// User is a user record as returned by the platform.
type User struct {
	UserID      string       `json:"userId"`
	LoginIDs    []string     `json:"loginIds"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Status      string       `json:"status,omitempty"`
	UserTenants []UserTenant `json:"userTenants"`
}

// PrimaryLoginID returns the first login id, falling back to the user id.
func (u *User) PrimaryLoginID() string {
	if len(u.LoginIDs) > 0 && u.LoginIDs[0] != "" {
		return u.LoginIDs[0]
	}
	return u.UserID
}

// InTenant reports whether the user is associated with tenantID.
func (u *User) InTenant(tenantID string) bool {
	for _, t := range u.UserTenants {
		if t.TenantID == tenantID {
			return true
		}
	}
	return false
}

// TenantIDs lists the tenants the user is associated with.
func (u *User) TenantIDs() []string {
	ids := make([]string, 0, len(u.UserTenants))
	for _, t := range u.UserTenants {
		ids = append(ids, t.TenantID)
	}
	return ids
}

// Tenant is a tenant record as returned by the platform.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Relation is a ReBAC relation tuple on the wire.
type Relation struct {
	Resource           string `json:"resource"`
	RelationDefinition string `json:"relationDefinition"`
	Namespace          string `json:"namespace"`
	Target             string `json:"target"`
}

package service

import (
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/management"
)

// ============================================
// Services Container
// ============================================

// Services holds one implementation per enabled service. Disabled services
// are nil.
type Services struct {
	Member   MemberService
	Tenant   TenantService
	Relation RelationService
	Image    ImageService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Management management.Client
	Presigner  Presigner
	ImageIndex KeyIndex

	EnableMember   bool
	EnableTenant   bool
	EnableRelation bool
	EnableImage    bool
	PresignExpiry  time.Duration
	ImageKeyTTL    time.Duration
}

func NewServices(deps *ServiceDeps) *Services {
	s := &Services{}
	if deps.EnableMember {
		s.Member = NewMemberService(deps.Management)
	}
	if deps.EnableTenant {
		s.Tenant = NewTenantService(deps.Management)
	}
	if deps.EnableRelation {
		s.Relation = NewRelationService(deps.Management)
	}
	if deps.EnableImage {
		s.Image = NewImageService(deps.Presigner, deps.ImageIndex, deps.PresignExpiry, deps.ImageKeyTTL)
	}
	return s
}

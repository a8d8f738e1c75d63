package service

import (
	"context"
	"strings"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/management"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
)

// ============================================
// Member Service
// ============================================

// MemberService manages users scoped to a tenant. Every read or write of a
// single member first verifies the user is associated with the tenant.
type MemberService interface {
	Create(ctx context.Context, tenantID string, req *models.MemberRequest) (*models.Member, error)
	Get(ctx context.Context, tenantID, loginID string) (*models.Member, error)
	List(ctx context.Context, tenantID string, page, pageSize int) (*models.PaginatedResponse[models.Member], error)
	Update(ctx context.Context, tenantID, loginID string, req *models.MemberRequest) (*models.Member, error)
	Delete(ctx context.Context, tenantID, loginID string) error
	GetUserByID(ctx context.Context, userID string) (*models.UserInfo, error)
}

type memberService struct {
	client management.Client
}

func NewMemberService(client management.Client) MemberService {
	return &memberService{client: client}
}

func (s *memberService) Create(ctx context.Context, tenantID string, req *models.MemberRequest) (*models.Member, error) {
	if strings.TrimSpace(req.LoginID) == "" {
		return nil, invalidf("loginId is required")
	}
	logger.L().Infof("Creating member with loginId: %s in tenant: %s", req.LoginID, tenantID)

	userReq := &management.UserRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		UserTenants: []management.UserTenant{{TenantID: tenantID}},
	}
	if _, err := s.client.CreateUser(ctx, req.LoginID, userReq); err != nil {
		return nil, remote("create member", err)
	}

	logger.L().Infof("Member created successfully: %s in tenant: %s", req.LoginID, tenantID)
	return &models.Member{
		LoginID:  req.LoginID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		TenantID: tenantID,
	}, nil
}

func (s *memberService) Get(ctx context.Context, tenantID, loginID string) (*models.Member, error) {
	logger.L().Infof("Retrieving member with loginId: %s from tenant: %s", loginID, tenantID)

	user, err := s.loadTenantMember(ctx, tenantID, loginID)
	if err != nil {
		return nil, err
	}
	return toMember(user, tenantID), nil
}

func (s *memberService) List(ctx context.Context, tenantID string, page, pageSize int) (*models.PaginatedResponse[models.Member], error) {
	if err := ValidatePage(page, pageSize); err != nil {
		return nil, err
	}
	logger.L().Infof("Retrieving all members for tenant: %s - page: %d, pageSize: %d", tenantID, page, pageSize)

	users, err := s.client.SearchUsers(ctx, []string{tenantID})
	if err != nil {
		return nil, remote("list members", err)
	}

	members := make([]models.Member, 0, len(users))
	for _, u := range users {
		if u == nil || !u.InTenant(tenantID) {
			continue
		}
		members = append(members, *toMember(u, tenantID))
	}

	resp, err := Paginate(members, page, pageSize)
	if err != nil {
		return nil, err
	}
	logger.L().Infof("Retrieved %d members out of %d total for tenant: %s", len(resp.Items), resp.TotalItems, tenantID)
	return resp, nil
}

func (s *memberService) Update(ctx context.Context, tenantID, loginID string, req *models.MemberRequest) (*models.Member, error) {
	logger.L().Infof("Updating member %s in tenant: %s", loginID, tenantID)

	user, err := s.loadTenantMember(ctx, tenantID, loginID)
	if err != nil {
		return nil, err
	}

	// The platform replaces the association list wholesale, so send back
	// everything the user already has.
	userReq := &management.UserRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		UserTenants: append([]management.UserTenant(nil), user.UserTenants...),
	}
	if _, err := s.client.UpdateUser(ctx, loginID, userReq); err != nil {
		return nil, remote("update member", err)
	}

	logger.L().Infof("Member %s updated successfully in tenant: %s", loginID, tenantID)
	return &models.Member{
		LoginID:  loginID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		TenantID: tenantID,
	}, nil
}

// Delete detaches the member from tenantID. The user itself is deleted only
// when tenantID was its last tenant.
func (s *memberService) Delete(ctx context.Context, tenantID, loginID string) error {
	logger.L().Infof("Deleting member %s from tenant: %s", loginID, tenantID)

	user, err := s.loadTenantMember(ctx, tenantID, loginID)
	if err != nil {
		return err
	}

	if len(user.UserTenants) > 1 {
		if err := s.client.RemoveUserTenant(ctx, loginID, tenantID); err != nil {
			return remote("remove member from tenant", err)
		}
		logger.L().Infof("Member %s removed from tenant: %s (still in %d other tenants)", loginID, tenantID, len(user.UserTenants)-1)
		return nil
	}

	if err := s.client.DeleteUser(ctx, loginID); err != nil {
		return remote("delete member", err)
	}
	logger.L().Infof("Member %s deleted successfully from tenant: %s", loginID, tenantID)
	return nil
}

func (s *memberService) GetUserByID(ctx context.Context, userID string) (*models.UserInfo, error) {
	logger.L().Infof("Retrieving user info for userId: %s", userID)

	user, err := s.client.LoadUserByUserID(ctx, userID)
	if err != nil {
		if management.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "User", ID: userID, Message: "User " + userID + " not found"}
		}
		return nil, remote("load user", err)
	}

	return &models.UserInfo{UserID: user.UserID, Name: user.Name, Email: user.Email}, nil
}

// loadTenantMember loads the full user record and checks it is associated
// with tenantID. Unknown users and users outside the tenant are reported the
// same way.
func (s *memberService) loadTenantMember(ctx context.Context, tenantID, loginID string) (*management.User, error) {
	user, err := s.client.LoadUser(ctx, loginID)
	if err != nil {
		if management.IsNotFound(err) {
			return nil, MemberNotFound(tenantID, loginID)
		}
		return nil, remote("load member", err)
	}

	if len(user.UserTenants) == 0 {
		logger.L().Warnf("User %s has no tenant associations", loginID)
		return nil, MemberNotFound(tenantID, loginID)
	}
	logger.L().Debugf("User %s has %d tenant associations: %s", loginID, len(user.UserTenants), strings.Join(user.TenantIDs(), ", "))

	if !user.InTenant(tenantID) {
		return nil, MemberNotFound(tenantID, loginID)
	}
	return user, nil
}

func toMember(u *management.User, tenantID string) *models.Member {
	return &models.Member{
		LoginID:  u.PrimaryLoginID(),
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		TenantID: tenantID,
	}
}

package service

import (
	"context"
	"strings"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/Marga-Ghale/ora-identity-services/internal/management"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
)

// ============================================
// Tenant Service
// ============================================

type TenantService interface {
	Create(ctx context.Context, req *models.TenantRequest) (*models.Tenant, error)
	Get(ctx context.Context, id string) (*models.Tenant, error)
	List(ctx context.Context, page, pageSize int) (*models.PaginatedResponse[models.Tenant], error)
	Update(ctx context.Context, id string, req *models.TenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id string) error
}

type tenantService struct {
	client management.Client
}

func NewTenantService(client management.Client) TenantService {
	return &tenantService{client: client}
}

func (s *tenantService) Create(ctx context.Context, req *models.TenantRequest) (*models.Tenant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidf("name is required")
	}
	logger.L().Infof("Creating tenant with name: %s", req.Name)

	id, err := s.client.CreateTenant(ctx, req.Name)
	if err != nil {
		return nil, remote("create tenant", err)
	}

	logger.L().Infof("Tenant created successfully with ID: %s", id)
	return &models.Tenant{ID: id, Name: req.Name}, nil
}

func (s *tenantService) Get(ctx context.Context, id string) (*models.Tenant, error) {
	logger.L().Infof("Retrieving tenant with ID: %s", id)

	t, err := s.client.LoadTenant(ctx, id)
	if err != nil {
		if management.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "Tenant", ID: id, Message: "Tenant " + id + " not found"}
		}
		return nil, remote("load tenant", err)
	}
	return &models.Tenant{ID: t.ID, Name: t.Name}, nil
}

func (s *tenantService) List(ctx context.Context, page, pageSize int) (*models.PaginatedResponse[models.Tenant], error) {
	if err := ValidatePage(page, pageSize); err != nil {
		return nil, err
	}
	logger.L().Infof("Retrieving all tenants - page: %d, pageSize: %d", page, pageSize)

	all, err := s.client.LoadAllTenants(ctx)
	if err != nil {
		return nil, remote("list tenants", err)
	}

	tenants := make([]models.Tenant, 0, len(all))
	for _, t := range all {
		if t != nil {
			tenants = append(tenants, models.Tenant{ID: t.ID, Name: t.Name})
		}
	}

	resp, err := Paginate(tenants, page, pageSize)
	if err != nil {
		return nil, err
	}
	logger.L().Infof("Retrieved %d tenants out of %d total", len(resp.Items), resp.TotalItems)
	return resp, nil
}

func (s *tenantService) Update(ctx context.Context, id string, req *models.TenantRequest) (*models.Tenant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidf("name is required")
	}
	logger.L().Infof("Updating tenant %s with name: %s", id, req.Name)

	if err := s.client.UpdateTenant(ctx, id, req.Name); err != nil {
		return nil, remote("update tenant", err)
	}

	logger.L().Infof("Tenant %s updated successfully", id)
	return &models.Tenant{ID: id, Name: req.Name}, nil
}

func (s *tenantService) Delete(ctx context.Context, id string) error {
	logger.L().Infof("Deleting tenant with ID: %s", id)

	if err := s.client.DeleteTenant(ctx, id); err != nil {
		return remote("delete tenant", err)
	}

	logger.L().Infof("Tenant %s deleted successfully", id)
	return nil
}

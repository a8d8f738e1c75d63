package management

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/metrics"
	"github.com/go-resty/resty/v2"
)

// Client is the narrow surface of the identity platform's management API used
// by the member, org and ReBAC services. Implementations must be safe for
// concurrent use.
type Client interface {
	// Users
	CreateUser(ctx context.Context, loginID string, req *UserRequest) (*User, error)
	LoadUser(ctx context.Context, loginID string) (*User, error)
	LoadUserByUserID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, loginID string, req *UserRequest) (*User, error)
	DeleteUser(ctx context.Context, loginID string) error
	RemoveUserTenant(ctx context.Context, loginID, tenantID string) error
	SearchUsers(ctx context.Context, tenantIDs []string) ([]*User, error)

	// Tenants
	CreateTenant(ctx context.Context, name string) (string, error)
	LoadTenant(ctx context.Context, id string) (*Tenant, error)
	LoadAllTenants(ctx context.Context) ([]*Tenant, error)
	UpdateTenant(ctx context.Context, id, name string) error
	DeleteTenant(ctx context.Context, id string) error

	// ReBAC
	CreateRelations(ctx context.Context, relations []*Relation) error
	DeleteRelations(ctx context.Context, relations []*Relation) error
	WhoCanAccess(ctx context.Context, resource, relationDefinition, namespace string) ([]string, error)
	ResourceRelations(ctx context.Context, resource string) ([]*Relation, error)
	WhatCanTargetAccess(ctx context.Context, target string) ([]*Relation, error)
}

const searchPageSize = 100

// Config holds what is needed to authenticate against the management API.
type Config struct {
	ProjectID     string
	ManagementKey string
	BaseURL       string
	Timeout       time.Duration
}

// RESTClient talks to the management API over HTTPS.
type RESTClient struct {
	http *resty.Client
}

var _ Client = (*RESTClient)(nil)

// NewClient validates cfg and builds a client. It performs no network I/O.
func NewClient(cfg Config) (*RESTClient, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("management client: project id is required")
	}
	if strings.TrimSpace(cfg.ManagementKey) == "" {
		return nil, errors.New("management client: management key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.descope.com"
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.ProjectID+":"+cfg.ManagementKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}

	return &RESTClient{http: httpClient}, nil
}

// ============================================
// Users
// ============================================

type userEnvelope struct {
	User *User `json:"user"`
}

type createUserBody struct {
	LoginID string `json:"loginId"`
	*UserRequest
}

func (c *RESTClient) CreateUser(ctx context.Context, loginID string, req *UserRequest) (*User, error) {
	var out userEnvelope
	body := createUserBody{LoginID: loginID, UserRequest: req}
	if err := c.do(ctx, "user.create", http.MethodPost, "/v1/mgmt/user/create", nil, body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *RESTClient) LoadUser(ctx context.Context, loginID string) (*User, error) {
	var out userEnvelope
	query := map[string]string{"loginId": loginID}
	if err := c.do(ctx, "user.load", http.MethodGet, "/v1/mgmt/user", query, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &Error{Operation: "user.load", StatusCode: http.StatusNotFound, Description: "user not found"}
	}
	return out.User, nil
}

func (c *RESTClient) LoadUserByUserID(ctx context.Context, userID string) (*User, error) {
	var out userEnvelope
	query := map[string]string{"userId": userID}
	if err := c.do(ctx, "user.load_by_id", http.MethodGet, "/v1/mgmt/user/userid", query, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &Error{Operation: "user.load_by_id", StatusCode: http.StatusNotFound, Description: "user not found"}
	}
	return out.User, nil
}

func (c *RESTClient) UpdateUser(ctx context.Context, loginID string, req *UserRequest) (*User, error) {
	var out userEnvelope
	body := createUserBody{LoginID: loginID, UserRequest: req}
	if err := c.do(ctx, "user.update", http.MethodPost, "/v1/mgmt/user/update", nil, body, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *RESTClient) DeleteUser(ctx context.Context, loginID string) error {
	body := map[string]string{"loginId": loginID}
	return c.do(ctx, "user.delete", http.MethodPost, "/v1/mgmt/user/delete", nil, body, nil)
}

func (c *RESTClient) RemoveUserTenant(ctx context.Context, loginID, tenantID string) error {
	body := map[string]string{"loginId": loginID, "tenantId": tenantID}
	return c.do(ctx, "user.remove_tenant", http.MethodPost, "/v1/mgmt/user/update/tenant/remove", nil, body, nil)
}

type searchUsersBody struct {
	TenantIDs []string `json:"tenantIds"`
	Limit     int      `json:"limit"`
	Page      int      `json:"page"`
}

type searchUsersResult struct {
	Users []*User `json:"users"`
	Total int     `json:"total"`
}

// SearchUsers returns every user associated with any of tenantIDs, walking
// the remote pages until they are exhausted.
func (c *RESTClient) SearchUsers(ctx context.Context, tenantIDs []string) ([]*User, error) {
	var all []*User
	for page := 0; ; page++ {
		var out searchUsersResult
		body := searchUsersBody{TenantIDs: tenantIDs, Limit: searchPageSize, Page: page}
		if err := c.do(ctx, "user.search", http.MethodPost, "/v2/mgmt/user/search", nil, body, &out); err != nil {
			return nil, err
		}
		all = append(all, out.Users...)
		if len(out.Users) < searchPageSize || (out.Total > 0 && len(all) >= out.Total) {
			return all, nil
		}
	}
}

// ============================================
// Tenants
// ============================================

func (c *RESTClient) CreateTenant(ctx context.Context, name string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	body := map[string]interface{}{
		"name":                    name,
		"selfProvisioningDomains": []string{},
		"customAttributes":        map[string]interface{}{},
	}
	if err := c.do(ctx, "tenant.create", http.MethodPost, "/v1/mgmt/tenant/create", nil, body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *RESTClient) LoadTenant(ctx context.Context, id string) (*Tenant, error) {
	var out Tenant
	query := map[string]string{"id": id}
	if err := c.do(ctx, "tenant.load", http.MethodGet, "/v1/mgmt/tenant", query, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, &Error{Operation: "tenant.load", StatusCode: http.StatusNotFound, Description: "tenant not found"}
	}
	return &out, nil
}

func (c *RESTClient) LoadAllTenants(ctx context.Context) ([]*Tenant, error) {
	var out struct {
		Tenants []*Tenant `json:"tenants"`
	}
	if err := c.do(ctx, "tenant.load_all", http.MethodGet, "/v1/mgmt/tenant/all", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Tenants, nil
}

func (c *RESTClient) UpdateTenant(ctx context.Context, id, name string) error {
	body := map[string]interface{}{
		"id":                      id,
		"name":                    name,
		"selfProvisioningDomains": []string{},
		"customAttributes":        map[string]interface{}{},
	}
	return c.do(ctx, "tenant.update", http.MethodPost, "/v1/mgmt/tenant/update", nil, body, nil)
}

func (c *RESTClient) DeleteTenant(ctx context.Context, id string) error {
	body := map[string]string{"id": id}
	return c.do(ctx, "tenant.delete", http.MethodPost, "/v1/mgmt/tenant/delete", nil, body, nil)
}

// ============================================
// ReBAC
// ============================================

type relationsEnvelope struct {
	Relations []*Relation `json:"relations"`
}

func (c *RESTClient) CreateRelations(ctx context.Context, relations []*Relation) error {
	body := relationsEnvelope{Relations: relations}
	return c.do(ctx, "authz.create_relations", http.MethodPost, "/v1/mgmt/authz/re/create", nil, body, nil)
}

func (c *RESTClient) DeleteRelations(ctx context.Context, relations []*Relation) error {
	body := relationsEnvelope{Relations: relations}
	return c.do(ctx, "authz.delete_relations", http.MethodPost, "/v1/mgmt/authz/re/delete", nil, body, nil)
}

func (c *RESTClient) WhoCanAccess(ctx context.Context, resource, relationDefinition, namespace string) ([]string, error) {
	var out struct {
		Targets []string `json:"targets"`
	}
	body := map[string]string{
		"resource":           resource,
		"relationDefinition": relationDefinition,
		"namespace":          namespace,
	}
	if err := c.do(ctx, "authz.who_can_access", http.MethodPost, "/v1/mgmt/authz/re/who", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Targets, nil
}

func (c *RESTClient) ResourceRelations(ctx context.Context, resource string) ([]*Relation, error) {
	var out relationsEnvelope
	body := map[string]string{"resource": resource}
	if err := c.do(ctx, "authz.resource_relations", http.MethodPost, "/v1/mgmt/authz/re/resource", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Relations, nil
}

func (c *RESTClient) WhatCanTargetAccess(ctx context.Context, target string) ([]*Relation, error) {
	var out relationsEnvelope
	body := map[string]string{"target": target}
	if err := c.do(ctx, "authz.what_can_target_access", http.MethodPost, "/v1/mgmt/authz/re/targetall", nil, body, &out); err != nil {
		return nil, err
	}
	return out.Relations, nil
}

// ============================================
// Transport
// ============================================

func (c *RESTClient) do(ctx context.Context, op, method, path string, query map[string]string, body, out interface{}) error {
	start := time.Now()
	err := c.send(ctx, op, method, path, query, body, out)

	outcome := "success"
	switch {
	case err == nil:
	case IsNotFound(err):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	metrics.ManagementCallsTotal.WithLabelValues(op, outcome).Inc()
	metrics.ManagementCallDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())

	return err
}

func (c *RESTClient) send(ctx context.Context, op, method, path string, query map[string]string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &Error{Operation: op, Err: err}
	}

	// Responses are not guaranteed to carry a JSON content type.
	if resp.IsError() {
		apiErr := &Error{}
		if raw := resp.Body(); len(raw) > 0 {
			_ = json.Unmarshal(raw, apiErr)
		}
		apiErr.Operation = op
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	if out != nil {
		if raw := resp.Body(); len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return &Error{Operation: op, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
			}
		}
	}
	return nil
}

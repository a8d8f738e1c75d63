// Package mocks provides a testify mock of management.Client.
package mocks

import (
	"context"

	"github.com/Marga-Ghale/ora-identity-services/internal/management"
	"github.com/stretchr/testify/mock"
)

type ManagementClient struct {
	mock.Mock
}

var _ management.Client = (*ManagementClient)(nil)

func NewManagementClient() *ManagementClient {
	return &ManagementClient{}
}

func (m *ManagementClient) CreateUser(ctx context.Context, loginID string, req *management.UserRequest) (*management.User, error) {
	args := m.Called(ctx, loginID, req)
	return userArg(args, 0), args.Error(1)
}

func (m *ManagementClient) LoadUser(ctx context.Context, loginID string) (*management.User, error) {
	args := m.Called(ctx, loginID)
	return userArg(args, 0), args.Error(1)
}

func (m *ManagementClient) LoadUserByUserID(ctx context.Context, userID string) (*management.User, error) {
	args := m.Called(ctx, userID)
	return userArg(args, 0), args.Error(1)
}

func (m *ManagementClient) UpdateUser(ctx context.Context, loginID string, req *management.UserRequest) (*management.User, error) {
	args := m.Called(ctx, loginID, req)
	return userArg(args, 0), args.Error(1)
}

func (m *ManagementClient) DeleteUser(ctx context.Context, loginID string) error {
	return m.Called(ctx, loginID).Error(0)
}

func (m *ManagementClient) RemoveUserTenant(ctx context.Context, loginID, tenantID string) error {
	return m.Called(ctx, loginID, tenantID).Error(0)
}

func (m *ManagementClient) SearchUsers(ctx context.Context, tenantIDs []string) ([]*management.User, error) {
	args := m.Called(ctx, tenantIDs)
	users, _ := args.Get(0).([]*management.User)
	return users, args.Error(1)
}

func (m *ManagementClient) CreateTenant(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *ManagementClient) LoadTenant(ctx context.Context, id string) (*management.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*management.Tenant)
	return tenant, args.Error(1)
}

func (m *ManagementClient) LoadAllTenants(ctx context.Context) ([]*management.Tenant, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]*management.Tenant)
	return tenants, args.Error(1)
}

func (m *ManagementClient) UpdateTenant(ctx context.Context, id, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *ManagementClient) DeleteTenant(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ManagementClient) CreateRelations(ctx context.Context, relations []*management.Relation) error {
	return m.Called(ctx, relations).Error(0)
}

func (m *ManagementClient) DeleteRelations(ctx context.Context, relations []*management.Relation) error {
	return m.Called(ctx, relations).Error(0)
}

func (m *ManagementClient) WhoCanAccess(ctx context.Context, resource, relationDefinition, namespace string) ([]string, error) {
	args := m.Called(ctx, resource, relationDefinition, namespace)
	targets, _ := args.Get(0).([]string)
	return targets, args.Error(1)
}

func (m *ManagementClient) ResourceRelations(ctx context.Context, resource string) ([]*management.Relation, error) {
	args := m.Called(ctx, resource)
	relations, _ := args.Get(0).([]*management.Relation)
	return relations, args.Error(1)
}

func (m *ManagementClient) WhatCanTargetAccess(ctx context.Context, target string) ([]*management.Relation, error) {
	args := m.Called(ctx, target)
	relations, _ := args.Get(0).([]*management.Relation)
	return relations, args.Error(1)
}

func userArg(args mock.Arguments, i int) *management.User {
	user, _ := args.Get(i).(*management.User)
	return user
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Marga-Ghale/ora-identity-services/internal/management"
	"github.com/Marga-Ghale/ora-identity-services/internal/management/mocks"
	"github.com/Marga-Ghale/ora-identity-services/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func remoteNotFound() error {
	return &management.Error{Operation: "user.load", StatusCode: 404, Description: "User not found"}
}

func remoteFailure() error {
	return &management.Error{Operation: "test", StatusCode: 500, Description: "boom"}
}

func userIn(loginID string, tenants ...string) *management.User {
	u := &management.User{UserID: "U-" + loginID, LoginIDs: []string{loginID}, Name: loginID, Email: loginID + "@example.com"}
	for _, t := range tenants {
		u.UserTenants = append(u.UserTenants, management.UserTenant{TenantID: t, RoleNames: []string{"member"}})
	}
	return u
}

func TestMemberService_Create(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)

	client.On("CreateUser", ctx, "alice", mock.MatchedBy(func(req *management.UserRequest) bool {
		return req.Email == "alice@example.com" &&
			len(req.UserTenants) == 1 && req.UserTenants[0].TenantID == "T1"
	})).Return(userIn("alice", "T1"), nil)

	member, err := svc.Create(ctx, "T1", &models.MemberRequest{LoginID: "alice", Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, &models.Member{LoginID: "alice", Name: "Alice", Email: "alice@example.com", TenantID: "T1"}, member)
	client.AssertExpectations(t)
}

func TestMemberService_Create_RequiresLoginID(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)

	_, err := svc.Create(ctx, "T1", &models.MemberRequest{LoginID: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	client.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberService_Create_RemoteFailure(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)
	client.On("CreateUser", ctx, "alice", mock.Anything).Return(nil, remoteFailure())

	_, err := svc.Create(ctx, "T1", &models.MemberRequest{LoginID: "alice"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemote))
}

func TestMemberService_Get(t *testing.T) {
	tests := []struct {
		name     string
		user     *management.User
		loadErr  error
		wantErr  error
		wantName string
	}{
		{name: "member of tenant", user: userIn("alice", "T1", "T2"), wantName: "alice"},
		{name: "member of another tenant", user: userIn("alice", "T2"), wantErr: ErrNotFound},
		{name: "no tenants", user: userIn("alice"), wantErr: ErrNotFound},
		{name: "unknown user", loadErr: remoteNotFound(), wantErr: ErrNotFound},
		{name: "remote failure", loadErr: remoteFailure(), wantErr: ErrRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewManagementClient()
			svc := NewMemberService(client)
			client.On("LoadUser", ctx, "alice").Return(tt.user, tt.loadErr)

			member, err := svc.Get(ctx, "T1", "alice")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, member.LoginID)
			assert.Equal(t, "T1", member.TenantID)
		})
	}
}

func TestMemberService_Get_NotFoundMessage(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)
	client.On("LoadUser", ctx, "alice").Return(userIn("alice", "T2"), nil)

	_, err := svc.Get(ctx, "T1", "alice")
	assert.EqualError(t, err, "Member alice not found in tenant T1")
}

func TestMemberService_List(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)

	noLogin := userIn("", "T1")
	noLogin.LoginIDs = nil
	noLogin.UserID = "U-raw"

	client.On("SearchUsers", ctx, []string{"T1"}).Return([]*management.User{
		userIn("alice", "T1"),
		userIn("mallory", "T2"),
		userIn("bob", "T1", "T3"),
		noLogin,
	}, nil)

	resp, err := svc.List(ctx, "T1", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalItems)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "alice", resp.Items[0].LoginID)
	assert.Equal(t, "bob", resp.Items[1].LoginID)

	resp, err = svc.List(ctx, "T1", 1, 2)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "U-raw", resp.Items[0].LoginID)
}

func TestMemberService_List_InvalidPageSkipsRemote(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)

	_, err := svc.List(ctx, "T1", 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	client.AssertNotCalled(t, "SearchUsers", mock.Anything, mock.Anything)
}

func TestMemberService_Update_PreservesTenants(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)

	existing := userIn("alice", "T1", "T2")
	client.On("LoadUser", ctx, "alice").Return(existing, nil)
	client.On("UpdateUser", ctx, "alice", mock.MatchedBy(func(req *management.UserRequest) bool {
		return req.Name == "Alice B" && len(req.UserTenants) == 2 &&
			req.UserTenants[1].TenantID == "T2" && req.UserTenants[1].RoleNames[0] == "member"
	})).Return(existing, nil)

	member, err := svc.Update(ctx, "T1", "alice", &models.MemberRequest{Name: "Alice B"})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", member.Name)
	assert.Equal(t, "alice", member.LoginID)
	client.AssertExpectations(t)
}

func TestMemberService_Update_OutsideTenant(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)
	client.On("LoadUser", ctx, "alice").Return(userIn("alice", "T2"), nil)

	_, err := svc.Update(ctx, "T1", "alice", &models.MemberRequest{Name: "x"})
	assert.True(t, errors.Is(err, ErrNotFound))
	client.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberService_Delete(t *testing.T) {
	t.Run("last tenant deletes user", func(t *testing.T) {
		client := mocks.NewManagementClient()
		svc := NewMemberService(client)
		client.On("LoadUser", ctx, "alice").Return(userIn("alice", "T1"), nil)
		client.On("DeleteUser", ctx, "alice").Return(nil)

		require.NoError(t, svc.Delete(ctx, "T1", "alice"))
		client.AssertExpectations(t)
		client.AssertNotCalled(t, "RemoveUserTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other tenants keep user", func(t *testing.T) {
		client := mocks.NewManagementClient()
		svc := NewMemberService(client)
		client.On("LoadUser", ctx, "alice").Return(userIn("alice", "T1", "T2"), nil)
		client.On("RemoveUserTenant", ctx, "alice", "T1").Return(nil)

		require.NoError(t, svc.Delete(ctx, "T1", "alice"))
		client.AssertExpectations(t)
		client.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("outside tenant", func(t *testing.T) {
		client := mocks.NewManagementClient()
		svc := NewMemberService(client)
		client.On("LoadUser", ctx, "alice").Return(userIn("alice", "T2"), nil)

		err := svc.Delete(ctx, "T1", "alice")
		assert.True(t, errors.Is(err, ErrNotFound))
		client.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("remote failure", func(t *testing.T) {
		client := mocks.NewManagementClient()
		svc := NewMemberService(client)
		client.On("LoadUser", ctx, "alice").Return(userIn("alice", "T1"), nil)
		client.On("DeleteUser", ctx, "alice").Return(remoteFailure())

		err := svc.Delete(ctx, "T1", "alice")
		assert.True(t, errors.Is(err, ErrRemote))
	})
}

func TestMemberService_GetUserByID(t *testing.T) {
	client := mocks.NewManagementClient()
	svc := NewMemberService(client)
	client.On("LoadUserByUserID", ctx, "U1").Return(&management.User{UserID: "U1", Name: "Alice", Email: "a@example.com"}, nil)
	client.On("LoadUserByUserID", ctx, "U404").Return(nil, remoteNotFound())

	info, err := svc.GetUserByID(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, &models.UserInfo{UserID: "U1", Name: "Alice", Email: "a@example.com"}, info)

	_, err = svc.GetUserByID(ctx, "U404")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.EqualError(t, err, "User U404 not found")
}

package accountservice

import (
	"context"
	"errors"
	"testing"

	"shipline/contexts/identity-access/account-service/application/queries"
	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	httptransport "shipline/contexts/identity-access/account-service/transport/http"
)

func listAllQuery() queries.ListUsersQuery {
	return queries.ListUsersQuery{Page: 1, Limit: 50}
}

func newTestModule(t *testing.T) Module {
	t.Helper()
	return NewInMemoryModule(nil, nil)
}

func register(t *testing.T, module Module, name string, email string) httptransport.AuthResponse {
	t.Helper()
	resp, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "swordfish123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return resp
}

func elevate(t *testing.T, module Module, userID string, role entities.Role) {
	t.Helper()
	ctx := context.Background()
	user, err := module.Store.GetUser(ctx, userID)
	if err != nil {
		t.Fatalf("load user for elevation: %v", err)
	}
	user.Role = role
	if err := module.Store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("elevate user: %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	module := newTestModule(t)
	registered := register(t, module, "Ada Lovelace", "ada@example.com")

	if registered.User.Role != string(entities.RoleUser) {
		t.Fatalf("new accounts must get the default role, got %s", registered.User.Role)
	}
	if !registered.User.Active {
		t.Fatal("new accounts must start active")
	}
	if registered.Token == "" {
		t.Fatal("registration must return a token")
	}

	login, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "ADA@example.com",
		Password: "swordfish123",
	})
	if err != nil {
		t.Fatalf("login with differently cased email: %v", err)
	}
	if login.User.LastLoginAt == "" {
		t.Fatal("login must record last login time")
	}

	identity, err := module.Handler.AuthenticateTokenHandler(context.Background(), login.Token)
	if err != nil {
		t.Fatalf("authenticate token: %v", err)
	}
	if identity.UserID != registered.User.UserID {
		t.Fatalf("token resolved to %s, want %s", identity.UserID, registered.User.UserID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	module := newTestModule(t)
	register(t, module, "Ada Lovelace", "ada@example.com")

	_, err := module.Handler.RegisterHandler(context.Background(), httptransport.RegisterRequest{
		Name:     "Impostor",
		Email:    "ADA@Example.com",
		Password: "hunter2hunter2",
	})
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for case-insensitive duplicate, got %v", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	module := newTestModule(t)
	cases := []struct {
		name string
		req  httptransport.RegisterRequest
	}{
		{name: "short password", req: httptransport.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"}},
		{name: "bad email", req: httptransport.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "swordfish123"}},
		{name: "blank name", req: httptransport.RegisterRequest{Name: " ", Email: "ada@example.com", Password: "swordfish123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := module.Handler.RegisterHandler(context.Background(), tc.req); !errors.Is(err, domainerrors.ErrInvalidUserInput) {
				t.Fatalf("expected ErrInvalidUserInput, got %v", err)
			}
		})
	}
}

func TestLoginFailures(t *testing.T) {
	module := newTestModule(t)
	registered := register(t, module, "Ada Lovelace", "ada@example.com")

	_, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}

	// Unknown email must be indistinguishable from a wrong password.
	_, err = module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Email:    "nobody@example.com",
		Password: "swordfish123",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	ctx := context.Background()
	user, err := module.Store.GetUser(ctx, registered.User.UserID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	user.Active = false
	if err := module.Store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	_, err = module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "ada@example.com",
		Password: "swordfish123",
	})
	if !errors.Is(err, domainerrors.ErrAccountInactive) {
		t.Fatalf("deactivated login: expected ErrAccountInactive, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	module := newTestModule(t)
	registered := register(t, module, "Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	_, err := module.Handler.ChangePasswordHandler(ctx, registered.User.UserID, httptransport.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-pass",
	})
	if !errors.Is(err, domainerrors.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	changed, err := module.Handler.ChangePasswordHandler(ctx, registered.User.UserID, httptransport.ChangePasswordRequest{
		CurrentPassword: "swordfish123",
		NewPassword:     "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if changed.Token == "" {
		t.Fatal("password change must return a fresh token")
	}

	if _, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "ada@example.com",
		Password: "swordfish123",
	}); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Email:    "ada@example.com",
		Password: "brand-new-pass",
	}); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}

func TestTokenReflectsFreshAccountState(t *testing.T) {
	module := newTestModule(t)
	registered := register(t, module, "Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	// Role changes apply to already issued tokens.
	elevate(t, module, registered.User.UserID, entities.RoleManager)
	identity, err := module.Handler.AuthenticateTokenHandler(ctx, registered.Token)
	if err != nil {
		t.Fatalf("authenticate after role change: %v", err)
	}
	if identity.Role != string(entities.RoleManager) {
		t.Fatalf("expected fresh role manager, got %s", identity.Role)
	}

	user, err := module.Store.GetUser(ctx, registered.User.UserID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	user.Active = false
	if err := module.Store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := module.Handler.AuthenticateTokenHandler(ctx, registered.Token); !errors.Is(err, domainerrors.ErrAccountInactive) {
		t.Fatalf("deactivated token use: expected ErrAccountInactive, got %v", err)
	}

	if err := module.Store.DeleteUser(ctx, registered.User.UserID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := module.Handler.AuthenticateTokenHandler(ctx, registered.Token); !errors.Is(err, domainerrors.ErrInvalidToken) {
		t.Fatalf("token for deleted user: expected ErrInvalidToken, got %v", err)
	}
}

func TestAdminOnlyOperations(t *testing.T) {
	module := newTestModule(t)
	admin := register(t, module, "Root Admin", "admin@example.com")
	other := register(t, module, "Plain User", "user@example.com")
	elevate(t, module, admin.User.UserID, entities.RoleAdmin)
	ctx := context.Background()

	if _, err := module.Handler.ListUsersHandler(ctx, string(entities.RoleUser), listAllQuery()); !errors.Is(err, domainerrors.ErrAdminRequired) {
		t.Fatalf("non-admin listing: expected ErrAdminRequired, got %v", err)
	}
	listed, err := module.Handler.ListUsersHandler(ctx, string(entities.RoleAdmin), listAllQuery())
	if err != nil {
		t.Fatalf("admin listing: %v", err)
	}
	if listed.Total != 2 {
		t.Fatalf("expected 2 users, got %d", listed.Total)
	}

	if _, err := module.Handler.ChangeRoleHandler(ctx, string(entities.RoleUser), other.User.UserID, httptransport.ChangeRoleRequest{Role: "manager"}); !errors.Is(err, domainerrors.ErrAdminRequired) {
		t.Fatalf("non-admin role change: expected ErrAdminRequired, got %v", err)
	}
	changed, err := module.Handler.ChangeRoleHandler(ctx, string(entities.RoleAdmin), other.User.UserID, httptransport.ChangeRoleRequest{Role: "manager"})
	if err != nil {
		t.Fatalf("admin role change: %v", err)
	}
	if changed.Role != string(entities.RoleManager) {
		t.Fatalf("expected manager role, got %s", changed.Role)
	}

	if _, err := module.Handler.SetActiveHandler(ctx, string(entities.RoleAdmin), other.User.UserID, false); err != nil {
		t.Fatalf("admin deactivation: %v", err)
	}
	if err := module.Handler.DeleteUserHandler(ctx, string(entities.RoleUser), other.User.UserID); !errors.Is(err, domainerrors.ErrAdminRequired) {
		t.Fatalf("non-admin delete: expected ErrAdminRequired, got %v", err)
	}
	if err := module.Handler.DeleteUserHandler(ctx, string(entities.RoleAdmin), other.User.UserID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestGetUserAdminOnly(t *testing.T) {
	module := newTestModule(t)
	first := register(t, module, "Ada Lovelace", "ada@example.com")
	second := register(t, module, "Grace Hopper", "grace@example.com")
	ctx := context.Background()

	// Lookup by id has no ownership carve-out, not even for the actor's
	// own record. Self-service reads go through the profile path.
	if _, err := module.Handler.GetUserHandler(ctx, first.User.Role, first.User.UserID); !errors.Is(err, domainerrors.ErrAdminRequired) {
		t.Fatalf("non-admin self lookup by id: expected ErrAdminRequired, got %v", err)
	}
	if _, err := module.Handler.GetUserHandler(ctx, first.User.Role, second.User.UserID); !errors.Is(err, domainerrors.ErrAdminRequired) {
		t.Fatalf("non-admin cross-user lookup: expected ErrAdminRequired, got %v", err)
	}

	profile, err := module.Handler.GetProfileHandler(ctx, first.User.UserID)
	if err != nil {
		t.Fatalf("profile lookup: %v", err)
	}
	if profile.UserID != first.User.UserID {
		t.Fatalf("profile resolved to %s, want %s", profile.UserID, first.User.UserID)
	}

	elevate(t, module, first.User.UserID, entities.RoleAdmin)
	if _, err := module.Handler.GetUserHandler(ctx, string(entities.RoleAdmin), second.User.UserID); err != nil {
		t.Fatalf("admin lookup: %v", err)
	}
}

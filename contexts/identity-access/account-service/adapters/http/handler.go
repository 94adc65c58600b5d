package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"shipline/contexts/identity-access/account-service/application/commands"
	"shipline/contexts/identity-access/account-service/application/queries"
	"shipline/contexts/identity-access/account-service/domain/entities"
	httptransport "shipline/contexts/identity-access/account-service/transport/http"
)

type Handler struct {
	RegisterUser      commands.RegisterUserUseCase
	Login             commands.LoginUseCase
	ChangePassword    commands.ChangePasswordUseCase
	UpdateProfile     commands.UpdateProfileUseCase
	ChangeRole        commands.ChangeRoleUseCase
	SetActive         commands.SetActiveUseCase
	DeleteUser        commands.DeleteUserUseCase
	GetUser           queries.GetUserUseCase
	GetProfile        queries.GetProfileUseCase
	ListUsers         queries.ListUsersUseCase
	AuthenticateToken queries.AuthenticateTokenUseCase
	Logger            *slog.Logger
}

// RegisterHandler godoc
// @Summary Register a new account
// @Description Creates a user with the default role and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterRequest true "Registration payload"
// @Success 201 {object} httptransport.AuthResponse
// @Failure 409 {string} string "email already registered"
// @Failure 422 {string} string "validation failed"
// @Router /auth/register [post]
func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.AuthResponse, error) {
	result, err := h.RegisterUser.Execute(ctx, commands.RegisterUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		User:           mapUser(result.User),
		Token:          result.Token,
		TokenExpiresAt: result.TokenExpiresAt.Format(time.RFC3339),
	}, nil
}

// LoginHandler godoc
// @Summary Log in
// @Description Verifies credentials and returns a session token. Deactivated accounts are rejected with 403.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body httptransport.LoginRequest true "Credentials"
// @Success 200 {object} httptransport.AuthResponse
// @Failure 401 {string} string "bad credentials"
// @Failure 403 {string} string "account deactivated"
// @Router /auth/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.AuthResponse, error) {
	result, err := h.Login.Execute(ctx, commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		User:           mapUser(result.User),
		Token:          result.Token,
		TokenExpiresAt: result.TokenExpiresAt.Format(time.RFC3339),
	}, nil
}

// ChangePasswordHandler godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} httptransport.TokenResponse
// @Failure 400 {string} string "wrong current password"
// @Router /auth/password [put]
func (h Handler) ChangePasswordHandler(ctx context.Context, userID string, req httptransport.ChangePasswordRequest) (httptransport.TokenResponse, error) {
	result, err := h.ChangePassword.Execute(ctx, commands.ChangePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return httptransport.TokenResponse{}, err
	}
	return httptransport.TokenResponse{
		Token:          result.Token,
		TokenExpiresAt: result.TokenExpiresAt.Format(time.RFC3339),
	}, nil
}

// UpdateProfileHandler godoc
// @Summary Update own profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} httptransport.UserDTO
// @Router /auth/profile [put]
func (h Handler) UpdateProfileHandler(ctx context.Context, userID string, req httptransport.UpdateProfileRequest) (httptransport.UserDTO, error) {
	user, err := h.UpdateProfile.Execute(ctx, commands.UpdateProfileCommand{
		UserID:    userID,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return mapUser(user), nil
}

func (h Handler) AuthenticateTokenHandler(ctx context.Context, token string) (httptransport.IdentityDTO, error) {
	identity, err := h.AuthenticateToken.Execute(ctx, token)
	if err != nil {
		return httptransport.IdentityDTO{}, err
	}
	return httptransport.IdentityDTO{
		UserID: identity.UserID,
		Email:  identity.Email,
		Role:   string(identity.Role),
	}, nil
}

// GetUserHandler godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.UserDTO
// @Failure 403 {string} string "admin required"
// @Failure 404 {string} string "not found"
// @Router /users/{id} [get]
func (h Handler) GetUserHandler(ctx context.Context, actorRole string, userID string) (httptransport.UserDTO, error) {
	user, err := h.GetUser.Execute(ctx, queries.GetUserQuery{
		ActorRole: entities.Role(actorRole),
		UserID:    userID,
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return mapUser(user), nil
}

// GetProfileHandler godoc
// @Summary Get own account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.UserDTO
// @Router /auth/me [get]
func (h Handler) GetProfileHandler(ctx context.Context, userID string) (httptransport.UserDTO, error) {
	user, err := h.GetProfile.Execute(ctx, userID)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return mapUser(user), nil
}

// ListUsersHandler godoc
// @Summary List users
// @Description Admin-only listing with role/active filters, search and pagination.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param active query bool false "Active filter"
// @Param search query string false "Name/email search"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httptransport.ListUsersResponse
// @Failure 403 {string} string "admin required"
// @Router /users [get]
func (h Handler) ListUsersHandler(ctx context.Context, actorRole string, query queries.ListUsersQuery) (httptransport.ListUsersResponse, error) {
	query.ActorRole = entities.Role(actorRole)
	page, err := h.ListUsers.Execute(ctx, query)
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}
	items := make([]httptransport.UserDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapUser(item))
	}
	return httptransport.ListUsersResponse{
		Items: items,
		Total: page.Total,
		Page:  query.Page,
		Limit: query.Limit,
	}, nil
}

// ChangeRoleHandler godoc
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Param request body httptransport.ChangeRoleRequest true "New role"
// @Success 200 {object} httptransport.UserDTO
// @Failure 403 {string} string "admin required"
// @Router /users/{id}/role [patch]
func (h Handler) ChangeRoleHandler(ctx context.Context, actorRole string, userID string, req httptransport.ChangeRoleRequest) (httptransport.UserDTO, error) {
	user, err := h.ChangeRole.Execute(ctx, commands.ChangeRoleCommand{
		ActorRole: entities.Role(actorRole),
		UserID:    userID,
		Role:      entities.Role(req.Role),
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return mapUser(user), nil
}

// SetActiveHandler godoc
// @Summary Activate or deactivate a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.UserDTO
// @Failure 403 {string} string "admin required"
// @Router /users/{id}/activate [patch]
func (h Handler) SetActiveHandler(ctx context.Context, actorRole string, userID string, active bool) (httptransport.UserDTO, error) {
	user, err := h.SetActive.Execute(ctx, commands.SetActiveCommand{
		ActorRole: entities.Role(actorRole),
		UserID:    userID,
		Active:    active,
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return mapUser(user), nil
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {string} string "deleted"
// @Failure 403 {string} string "admin required"
// @Router /users/{id} [delete]
func (h Handler) DeleteUserHandler(ctx context.Context, actorRole string, userID string) error {
	return h.DeleteUser.Execute(ctx, commands.DeleteUserCommand{
		ActorRole: entities.Role(actorRole),
		UserID:    userID,
	})
}

func mapUser(item entities.User) httptransport.UserDTO {
	dto := httptransport.UserDTO{
		UserID:    item.UserID,
		Name:      item.Name,
		Email:     item.Email,
		Role:      string(item.Role),
		Active:    item.Active,
		AvatarURL: item.AvatarURL,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
	if item.LastLoginAt != nil {
		dto.LastLoginAt = item.LastLoginAt.Format(time.RFC3339)
	}
	return dto
}

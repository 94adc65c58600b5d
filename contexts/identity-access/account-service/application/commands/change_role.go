package commands

import (
	"context"
	"log/slog"

	application "shipline/contexts/identity-access/account-service/application"
	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/domain/services"
	"shipline/contexts/identity-access/account-service/ports"
)

type ChangeRoleCommand struct {
	ActorRole entities.Role
	UserID    string
	Role      entities.Role
}

type ChangeRoleUseCase struct {
	Users  ports.UserRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc ChangeRoleUseCase) Execute(ctx context.Context, cmd ChangeRoleCommand) (entities.User, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !services.IsAdmin(cmd.ActorRole) {
		return entities.User{}, domainerrors.ErrAdminRequired
	}
	if !entities.IsSupportedRole(cmd.Role) {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	user, err := uc.Users.GetUser(ctx, cmd.UserID)
	if err != nil {
		return entities.User{}, err
	}

	user.Role = cmd.Role
	user.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	logger.Info("user role changed",
		"event", "user_role_changed",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
		"role", string(user.Role),
	)
	return user, nil
}

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

type DeleteUserCommand struct {
	ActorRole entities.Role
	UserID    string
}

// DeleteUserUseCase removes a user record. Shipments created by the user
// keep their creator id as a weak reference and are not touched.
type DeleteUserUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	if !services.IsAdmin(cmd.ActorRole) {
		return domainerrors.ErrAdminRequired
	}
	if err := uc.Users.DeleteUser(ctx, cmd.UserID); err != nil {
		return err
	}

	logger.Info("user deleted",
		"event", "user_deleted",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", cmd.UserID,
	)
	return nil
}

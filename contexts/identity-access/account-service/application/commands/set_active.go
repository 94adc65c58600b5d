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

type SetActiveCommand struct {
	ActorRole entities.Role
	UserID    string
	Active    bool
}

// SetActiveUseCase flips the account activation flag. Any state to any
// state is allowed, including a no-op.
type SetActiveUseCase struct {
	Users  ports.UserRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc SetActiveUseCase) Execute(ctx context.Context, cmd SetActiveCommand) (entities.User, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !services.IsAdmin(cmd.ActorRole) {
		return entities.User{}, domainerrors.ErrAdminRequired
	}
	user, err := uc.Users.GetUser(ctx, cmd.UserID)
	if err != nil {
		return entities.User{}, err
	}

	user.Active = cmd.Active
	user.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	logger.Info("user activation changed",
		"event", "user_activation_changed",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
		"active", user.Active,
	)
	return user, nil
}

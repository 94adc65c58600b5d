package commands

import (
	"context"
	"log/slog"
	"strings"

	application "shipline/contexts/identity-access/account-service/application"
	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/ports"
)

type UpdateProfileCommand struct {
	UserID    string
	Name      string
	AvatarURL string
}

type UpdateProfileUseCase struct {
	Users  ports.UserRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (entities.User, error) {
	logger := application.ResolveLogger(uc.Logger)

	name := strings.TrimSpace(cmd.Name)
	if name == "" || len(name) < 2 || len(name) > 100 {
		return entities.User{}, domainerrors.ErrInvalidUserInput
	}
	user, err := uc.Users.GetUser(ctx, cmd.UserID)
	if err != nil {
		return entities.User{}, err
	}

	user.Name = name
	user.AvatarURL = strings.TrimSpace(cmd.AvatarURL)
	user.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	logger.Info("profile updated",
		"event", "profile_updated",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return user, nil
}

package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "shipline/contexts/identity-access/account-service/application"
	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/ports"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User           entities.User
	Token          string
	TokenExpiresAt time.Time
}

type LoginUseCase struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenSigner
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	user, err := uc.Users.GetUserByEmail(ctx, entities.NormalizeEmail(cmd.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return LoginResult{}, domainerrors.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !uc.Hasher.Verify(ctx, user.PasswordHash, cmd.Password) {
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}
	// Deactivated accounts fail with Forbidden even on a correct password,
	// distinct from the Unauthorized bad-credentials path.
	if !user.Active {
		return LoginResult{}, domainerrors.ErrAccountInactive
	}

	now := uc.Clock.Now().UTC()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := uc.Tokens.Sign(ctx, ports.Identity{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return LoginResult{}, err
	}

	logger.Info("user logged in",
		"event", "user_logged_in",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return LoginResult{User: user, Token: token, TokenExpiresAt: expiresAt}, nil
}

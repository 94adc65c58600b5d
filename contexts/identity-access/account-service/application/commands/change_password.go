package commands

import (
	"context"
	"log/slog"
	"time"

	application "shipline/contexts/identity-access/account-service/application"
	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/ports"
)

type ChangePasswordCommand struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordResult struct {
	Token          string
	TokenExpiresAt time.Time
}

type ChangePasswordUseCase struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenSigner
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) (ChangePasswordResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !entities.IsValidPassword(cmd.NewPassword) {
		return ChangePasswordResult{}, domainerrors.ErrInvalidUserInput
	}
	user, err := uc.Users.GetUser(ctx, cmd.UserID)
	if err != nil {
		return ChangePasswordResult{}, err
	}
	if !uc.Hasher.Verify(ctx, user.PasswordHash, cmd.CurrentPassword) {
		return ChangePasswordResult{}, domainerrors.ErrWrongPassword
	}

	hash, err := uc.Hasher.Hash(ctx, cmd.NewPassword)
	if err != nil {
		return ChangePasswordResult{}, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		return ChangePasswordResult{}, err
	}

	token, expiresAt, err := uc.Tokens.Sign(ctx, ports.Identity{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return ChangePasswordResult{}, err
	}

	logger.Info("password changed",
		"event", "password_changed",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return ChangePasswordResult{Token: token, TokenExpiresAt: expiresAt}, nil
}

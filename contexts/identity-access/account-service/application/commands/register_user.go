package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "shipline/contexts/identity-access/account-service/application"
	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/ports"
)

type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

type RegisterUserResult struct {
	User           entities.User
	Token          string
	TokenExpiresAt time.Time
}

type RegisterUserUseCase struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenSigner
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (RegisterUserResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	name := strings.TrimSpace(cmd.Name)
	email := entities.NormalizeEmail(cmd.Email)
	if name == "" || len(name) < 2 || len(name) > 100 ||
		!entities.IsValidEmail(email) ||
		!entities.IsValidPassword(cmd.Password) {
		return RegisterUserResult{}, domainerrors.ErrInvalidUserInput
	}

	hash, err := uc.Hasher.Hash(ctx, cmd.Password)
	if err != nil {
		return RegisterUserResult{}, err
	}
	userID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return RegisterUserResult{}, err
	}

	now := uc.Clock.Now().UTC()
	user := entities.User{
		UserID:       userID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entities.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Users.CreateUser(ctx, user); err != nil {
		return RegisterUserResult{}, err
	}

	token, expiresAt, err := uc.Tokens.Sign(ctx, ports.Identity{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return RegisterUserResult{}, err
	}

	logger.Info("user registered",
		"event", "user_registered",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return RegisterUserResult{User: user, Token: token, TokenExpiresAt: expiresAt}, nil
}

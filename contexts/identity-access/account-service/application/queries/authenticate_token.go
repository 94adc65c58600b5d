package queries

import (
	"context"
	"errors"
	"log/slog"

	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/ports"
)

type AuthenticateTokenUseCase struct {
	Users  ports.UserRepository
	Tokens ports.TokenSigner
	Logger *slog.Logger
}

// Execute verifies a bearer token and resolves the current account state.
// A token minted before deactivation must stop working, so the user record
// is re-checked on every call rather than trusting the claims alone.
func (uc AuthenticateTokenUseCase) Execute(ctx context.Context, token string) (ports.Identity, error) {
	identity, err := uc.Tokens.Verify(ctx, token)
	if err != nil {
		return ports.Identity{}, err
	}

	user, err := uc.Users.GetUser(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return ports.Identity{}, domainerrors.ErrInvalidToken
		}
		return ports.Identity{}, err
	}
	if !user.Active {
		return ports.Identity{}, domainerrors.ErrAccountInactive
	}

	// Role changes since issuance win over the token claims.
	return ports.Identity{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

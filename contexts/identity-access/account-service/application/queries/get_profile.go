package queries

import (
	"context"
	"log/slog"

	"shipline/contexts/identity-access/account-service/domain/entities"
	"shipline/contexts/identity-access/account-service/ports"
)

// GetProfileUseCase returns the authenticated user's own record.
type GetProfileUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc GetProfileUseCase) Execute(ctx context.Context, userID string) (entities.User, error) {
	return uc.Users.GetUser(ctx, userID)
}

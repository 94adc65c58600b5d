package queries

import (
	"context"
	"log/slog"

	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/domain/services"
	"shipline/contexts/identity-access/account-service/ports"
)

type GetUserQuery struct {
	ActorRole entities.Role
	UserID    string
}

// GetUserUseCase backs the admin user-management lookup. Self-service reads
// go through GetProfileUseCase instead.
type GetUserUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (entities.User, error) {
	if !services.IsAdmin(query.ActorRole) {
		return entities.User{}, domainerrors.ErrAdminRequired
	}
	return uc.Users.GetUser(ctx, query.UserID)
}

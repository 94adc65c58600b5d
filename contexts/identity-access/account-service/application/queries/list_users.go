package queries

import (
	"context"
	"log/slog"
	"strings"

	application "shipline/contexts/identity-access/account-service/application"
	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/domain/services"
	"shipline/contexts/identity-access/account-service/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ListUsersQuery struct {
	ActorRole entities.Role
	Role      string
	Active    *bool
	Search    string
	Page      int
	Limit     int
}

type ListUsersUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

func (uc ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (ports.UserPage, error) {
	logger := application.ResolveLogger(uc.Logger)

	if !services.IsAdmin(query.ActorRole) {
		return ports.UserPage{}, domainerrors.ErrAdminRequired
	}

	filter := ports.UserFilter{
		Active: query.Active,
		Search: strings.TrimSpace(query.Search),
		Page:   query.Page,
		Limit:  query.Limit,
	}
	if role := strings.TrimSpace(query.Role); role != "" {
		if !entities.IsSupportedRole(entities.Role(role)) {
			return ports.UserPage{}, domainerrors.ErrInvalidUserInput
		}
		filter.Role = entities.Role(role)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	page, err := uc.Users.ListUsers(ctx, filter)
	if err != nil {
		return ports.UserPage{}, err
	}

	logger.Info("users listed",
		"event", "users_listed",
		"module", "identity-access/account-service",
		"layer", "application",
		"count", len(page.Items),
	)
	return page, nil
}

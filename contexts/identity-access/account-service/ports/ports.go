package ports

import (
	"context"
	"time"

	"shipline/contexts/identity-access/account-service/domain/entities"
)

type UserFilter struct {
	Role   entities.Role
	Active *bool
	Search string
	Page   int
	Limit  int
}

type UserPage struct {
	Items []entities.User
	Total int64
}

type UserRepository interface {
	CreateUser(ctx context.Context, user entities.User) error
	UpdateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	ListUsers(ctx context.Context, filter UserFilter) (UserPage, error)
	DeleteUser(ctx context.Context, userID string) error
}

// Identity is the authenticated subject carried by a session token.
type Identity struct {
	UserID string
	Email  string
	Role   entities.Role
}

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, hash string, password string) bool
}

type TokenSigner interface {
	Sign(ctx context.Context, identity Identity) (token string, expiresAt time.Time, err error)
	Verify(ctx context.Context, token string) (Identity, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

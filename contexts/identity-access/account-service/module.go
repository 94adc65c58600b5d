package accountservice

import (
	"log/slog"
	"time"

	cryptoadapter "shipline/contexts/identity-access/account-service/adapters/crypto"
	httpadapter "shipline/contexts/identity-access/account-service/adapters/http"
	"shipline/contexts/identity-access/account-service/adapters/memory"
	"shipline/contexts/identity-access/account-service/application/commands"
	"shipline/contexts/identity-access/account-service/application/queries"
	"shipline/contexts/identity-access/account-service/domain/entities"
	"shipline/contexts/identity-access/account-service/ports"

	"golang.org/x/crypto/bcrypt"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenSigner
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	registerUser := commands.RegisterUserUseCase{
		Users:  deps.Users,
		Hasher: deps.Hasher,
		Tokens: deps.Tokens,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	login := commands.LoginUseCase{
		Users:  deps.Users,
		Hasher: deps.Hasher,
		Tokens: deps.Tokens,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	changePassword := commands.ChangePasswordUseCase{
		Users:  deps.Users,
		Hasher: deps.Hasher,
		Tokens: deps.Tokens,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	updateProfile := commands.UpdateProfileUseCase{
		Users:  deps.Users,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	changeRole := commands.ChangeRoleUseCase{
		Users:  deps.Users,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	setActive := commands.SetActiveUseCase{
		Users:  deps.Users,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	deleteUser := commands.DeleteUserUseCase{
		Users:  deps.Users,
		Logger: deps.Logger,
	}

	getUser := queries.GetUserUseCase{
		Users:  deps.Users,
		Logger: deps.Logger,
	}
	getProfile := queries.GetProfileUseCase{
		Users:  deps.Users,
		Logger: deps.Logger,
	}
	listUsers := queries.ListUsersUseCase{
		Users:  deps.Users,
		Logger: deps.Logger,
	}
	authenticateToken := queries.AuthenticateTokenUseCase{
		Users:  deps.Users,
		Tokens: deps.Tokens,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			RegisterUser:      registerUser,
			Login:             login,
			ChangePassword:    changePassword,
			UpdateProfile:     updateProfile,
			ChangeRole:        changeRole,
			SetActive:         setActive,
			DeleteUser:        deleteUser,
			GetUser:           getUser,
			GetProfile:        getProfile,
			ListUsers:         listUsers,
			AuthenticateToken: authenticateToken,
			Logger:            deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory store with real
// crypto adapters (minimum bcrypt cost keeps tests fast).
func NewInMemoryModule(seed []entities.User, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Users:  store,
		Hasher: cryptoadapter.NewBcryptHasher(bcrypt.MinCost),
		Tokens: cryptoadapter.NewJWTSigner("in-memory-secret", time.Hour),
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}

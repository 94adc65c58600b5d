package httptransport

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// UserDTO never carries the password hash.
type UserDTO struct {
	UserID      string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	LastLoginAt string `json:"lastLoginAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type AuthResponse struct {
	User           UserDTO `json:"user"`
	Token          string  `json:"token"`
	TokenExpiresAt string  `json:"tokenExpiresAt"`
}

type TokenResponse struct {
	Token          string `json:"token"`
	TokenExpiresAt string `json:"tokenExpiresAt"`
}

type IdentityDTO struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ListUsersResponse struct {
	Items []UserDTO `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

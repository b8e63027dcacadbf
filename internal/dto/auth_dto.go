package dto

// ─── Auth ────────────────────────────────────────────────────────────────────

type LoginRequest struct {
	// Username accepts either the username or the registered email.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username"         validate:"required,min=3,max=64"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// ─── Password reset ──────────────────────────────────────────────────────────

type ResetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetConfirmRequest struct {
	Token           string `json:"token"            validate:"required"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ─── Users ───────────────────────────────────────────────────────────────────

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin staff"`
}

// CreateUserRequest is the admin-side user create: the role is chosen up
// front and there is no confirm_password round trip.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin staff"`
}

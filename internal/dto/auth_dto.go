package dto

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed token alongside the user.
type LoginResponse struct {
	Data  UserResponse `json:"data"`
	Token string       `json:"token"`
}

// StartPasswordResetRequest asks for a reset link to be mailed.
type StartPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// AcceptInviteRequest activates an invited account.
type AcceptInviteRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// SeedResult summarises a bootstrap run.
type SeedResult struct {
	Permissions int    `json:"permissions"`
	RoleID      string `json:"roleId"`
	AdminUserID string `json:"adminUserId,omitempty"`
}

package authController

// SignupRequest is the signup payload, validated before the handler runs
type SignupRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Mobile       string `json:"mobile" validate:"omitempty,len=10,numeric"`
	Password     string `json:"password" validate:"required,min=6"`
	ReferralCode string `json:"referralCode" validate:"omitempty,alphanum,max=20"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ConnectSocialRequest links a social account to the profile
type ConnectSocialRequest struct {
	Platform string `json:"platform" validate:"required,oneof=instagram youtube facebook"`
	Handle   string `json:"handle" validate:"required,min=2,max=100"`
}

package dto

// AuthenticateRequest payload for login.
type AuthenticateRequest struct {
	Username string `json:"userName" validate:"required"`
	Password string `json:"userPassword" validate:"required"`
}

// RegisterUserRequest payload for new accounts. The password policy matches
// the one enforced on the stored credentials: minimum length plus at least
// one digit, one lower, one upper and one special character.
type RegisterUserRequest struct {
	Username  string `json:"userName" validate:"required"`
	FirstName string `json:"userFirstName" validate:"required"`
	LastName  string `json:"userLastName" validate:"required"`
	Password  string `json:"userPassword" validate:"required,min=8,password"`
}

// CreateRoleRequest payload for new roles.
type CreateRoleRequest struct {
	Name        string `json:"roleName" validate:"required"`
	Description string `json:"roleDescription" validate:"required"`
}

// UserResponse echoes account data without credentials.
type UserResponse struct {
	Username  string   `json:"userName"`
	FirstName string   `json:"userFirstName"`
	LastName  string   `json:"userLastName"`
	Roles     []string `json:"roles"`
}

// AuthenticateResponse returns the user and the bearer token.
type AuthenticateResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

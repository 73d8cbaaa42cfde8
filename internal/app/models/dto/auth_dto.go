package dto

// LoginRequest represents the login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@coursehub.app"`
	Password string `json:"password" binding:"required,min=8" example:"Student123!"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
	UserID      int64  `json:"userId"`
	RoleType    string `json:"roleType"`
}

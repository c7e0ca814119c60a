package response

import (
	"time"

	"cinefellas/internal/data/entity"
)

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserProfile is the public projection of an account.
type UserProfile struct {
	Username    string   `json:"username"`
	Preferences []string `json:"preferences"`
	Language    string   `json:"language"`
}

type UserResponse struct {
	Success bool         `json:"success"`
	User    *UserProfile `json:"user"`
}

func UserToProfile(user *entity.User) *UserProfile {
	preferences := user.Preferences
	if preferences == nil {
		preferences = []string{}
	}
	return &UserProfile{
		Username:    user.Username,
		Preferences: preferences,
		Language:    user.Language,
	}
}

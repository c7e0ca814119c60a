package wire

import (
	"cinefellas/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth mounts the public account routes: OTP issue, registration, login
// and password reset.
func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	passwordHandler *adaptor.PasswordHandler,
) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-otp", authHandler.GenerateOTP)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Post("/request-password-reset", passwordHandler.RequestReset)
		r.Post("/reset-password", passwordHandler.ResetPassword)
	})
}

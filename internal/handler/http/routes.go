package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init wires all HTTP routes and returns the configured router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signupStepOne)
		r.Post("/api/auth/signup/{userID}/profile", h.signupStepTwo)
		r.Post("/api/auth/signin", h.signIn)
		r.Post("/api/auth/verify-email", h.verifyEmail)
		r.Post("/api/auth/resend-code", h.resendCode)
		r.Post("/api/auth/forgot-password", h.forgotPassword)
		r.Post("/api/auth/reset-password", h.resetPassword)

		r.Post("/api/admin/auth/signin", h.adminSignIn)

		r.Get("/api/version/", h.getServerVersion)
	})

	// routes for authenticated end users
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user/profile", h.profile)
		r.Post("/api/user/verify-email/request", h.requestEmailVerification)
	})

	// routes for authenticated administrators
	router.Group(func(r chi.Router) {
		r.Use(h.adminAuth)

		r.Post("/api/admin/admins", h.createAdmin)
		r.Get("/api/admin/admins", h.listAdmins)

		r.Get("/api/admin/users", h.listUsers)
		r.Get("/api/admin/users/{userID}", h.getUser)
		r.Post("/api/admin/users/{userID}/deactivate", h.deactivateUser)
		r.Post("/api/admin/users/{userID}/reactivate", h.reactivateUser)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

package http

import (
	"net/http"

	"github.com/lolocuentaps32/fanscopa/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the portal
// API. It applies JSON content-type enforcement and request logging, and
// mounts the login, registration and assistant endpoints under /api.
//
// Parameters:
//
//	authHandler         - handler for login/logout endpoints
//	registrationHandler - handler for registration CRUD endpoints
//	assistantHandler    - handler for chat/voice/analysis endpoints
//	sessions            - live session store backing the auth middleware
//	logger              - structured logger for request logging middleware
//
// Routes:
//
//	POST   /api/login                       → authHandler.Login
//	POST   /api/registrations               → registrationHandler.Create (public request form)
//	POST   /api/logout                      → authHandler.Logout          (session)
//	GET    /api/registrations               → registrationHandler.List    (admin)
//	GET    /api/registrations/me            → registrationHandler.Me      (session)
//	PATCH  /api/registrations/{dni}         → registrationHandler.Update  (admin or owner)
//	PUT    /api/registrations/{dni}/status  → registrationHandler.SetStatus (admin)
//	DELETE /api/registrations/{dni}         → registrationHandler.Delete  (admin or owner)
//	POST   /api/assistant/chat              → assistantHandler.Chat       (session)
//	POST   /api/assistant/analyze           → assistantHandler.Analyze    (admin)
//	POST   /api/assistant/transcribe        → assistantHandler.Transcribe (session)
//	POST   /api/assistant/speech            → assistantHandler.Speak      (session)
func NewRouter(
	authHandler *AuthHandler,
	registrationHandler *RegistrationHandler,
	assistantHandler *AssistantHandler,
	sessions middleware.SessionStore,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", authHandler.Login)

		r.Route("/registrations", func(r chi.Router) {
			// The request form is public: no session is required to submit.
			r.Post("/", registrationHandler.Create)

			// Everything else requires a valid session token.
			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionAuth(sessions))

				r.Get("/", registrationHandler.List)
				r.Get("/me", registrationHandler.Me)
				r.Patch("/{dni}", registrationHandler.Update)
				r.Put("/{dni}/status", registrationHandler.SetStatus)
				r.Delete("/{dni}", registrationHandler.Delete)
			})
		})

		// Protected group: requires a valid session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(sessions))

			r.Post("/logout", authHandler.Logout)

			r.Route("/assistant", func(r chi.Router) {
				r.Post("/chat", assistantHandler.Chat)
				r.Post("/analyze", assistantHandler.Analyze)
				r.Post("/transcribe", assistantHandler.Transcribe)
				r.Post("/speech", assistantHandler.Speak)
			})
		})
	})

	return r
}

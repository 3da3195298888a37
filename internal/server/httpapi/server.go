// Package httpapi exposes the platform over a JSON REST surface. Every error
// response carries a machine-readable kind so clients branch on it instead of
// parsing message text.
package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/stujob/stujob/internal/logging"
	"github.com/stujob/stujob/internal/server/accounts"
	"github.com/stujob/stujob/internal/server/students"
	"github.com/stujob/stujob/internal/server/vacancies"
)

// Presigner issues short-lived object-store URLs for resume files.
// Implemented by resumes.Service.
type Presigner interface {
	GetPresignedPutURL(ctx context.Context, accountID string) (string, string, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	address   string
	accounts  *accounts.Service
	students  *students.Service
	vacancies *vacancies.Service
	resumes   Presigner
	logger    logging.Logger
	app       *fiber.App
}

func NewServer(address string, l logging.Logger, as *accounts.Service, ss *students.Service, vs *vacancies.Service, rs Presigner) *Server {
	s := &Server{
		address:   address,
		accounts:  as,
		students:  ss,
		vacancies: vs,
		resumes:   rs,
		logger:    l.With("module", "httpapi"),
	}
	s.app = s.buildApp()
	return s
}

func (s *Server) buildApp() *fiber.App {
	app := fiber.New()

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", s.handleSignUp)
	auth.Post("/signin", s.handleSignIn)
	auth.Post("/confirm", s.handleConfirmEmail)
	auth.Get("/session", s.requireAccount, s.handleSession)
	auth.Post("/signout", s.requireAccount, s.handleSignOut)

	// Lookup by email stays public: the unconfirmed-login fallback runs
	// before the client holds any token.
	api.Get("/students", s.handleFindStudent)

	st := api.Group("/students", s.requireAccount)
	st.Post("/", s.handleCreateStudent)
	st.Get("/me", s.handleMyStudent)
	st.Patch("/me", s.handleUpdateStudent)

	api.Get("/vacancies", s.handleListVacancies)
	api.Get("/vacancies/:id", s.handleGetVacancy)

	rs := api.Group("/resumes", s.requireAccount)
	rs.Post("/upload-url", s.handleResumeUploadURL)
	rs.Get("/download-url", s.handleResumeDownloadURL)

	return app
}

// Run serves until ctx is cancelled, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	return s.app.Listen(s.address, fiber.ListenConfig{DisableStartupMessage: true})
}

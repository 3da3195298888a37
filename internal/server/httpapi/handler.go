package httpapi

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/stujob/stujob/internal/common"
	"github.com/stujob/stujob/internal/server/accounts"
	"github.com/stujob/stujob/internal/server/students"
	"github.com/stujob/stujob/internal/server/vacancies"
)

// accountPayload is the wire shape of an account. The password hash never
// leaves the accounts package boundary.
type accountPayload struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	University     string `json:"university"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

func toAccountPayload(a *accounts.Account) *accountPayload {
	return &accountPayload{
		ID:             a.ID,
		Email:          a.Email,
		Name:           a.Name,
		University:     a.University,
		EmailConfirmed: a.EmailConfirmed,
	}
}

type signUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	University string `json:"university"`
}

func (s *Server) handleSignUp(c fiber.Ctx) error {
	var req signUpRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	account, token, err := s.accounts.SignUp(c.Context(), req.Email, req.Password, req.Name, req.University)
	if err != nil {
		return s.fail(c, err)
	}

	s.logger.Info(c.Context(), "account registered", "email", account.Email)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"token": token, "account": toAccountPayload(account)})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignIn(c fiber.Ctx) error {
	var req signInRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	account, token, err := s.accounts.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(fiber.Map{"token": token, "account": toAccountPayload(account)})
}

type confirmEmailRequest struct {
	AccountID string `json:"account_id"`
}

func (s *Server) handleConfirmEmail(c fiber.Ctx) error {
	var req confirmEmailRequest
	if err := c.Bind().Body(&req); err != nil || req.AccountID == "" {
		return badRequest(c, "invalid request body")
	}

	if err := s.accounts.ConfirmEmail(c.Context(), req.AccountID); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) handleSession(c fiber.Ctx) error {
	account := currentAccount(c)
	return c.JSON(fiber.Map{"account": toAccountPayload(account)})
}

// handleSignOut exists for wire symmetry: access tokens are stateless, so the
// server has nothing to revoke and the client discards its copy.
func (s *Server) handleSignOut(c fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) handleCreateStudent(c fiber.Ctx) error {
	var req students.Student
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	account := currentAccount(c)
	req.AccountID = account.ID
	if req.Email == "" {
		req.Email = account.Email
	}

	student, created, err := s.students.InsertIfAbsent(c.Context(), &req)
	if err != nil {
		return s.fail(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(student)
}

func (s *Server) handleMyStudent(c fiber.Ctx) error {
	student, err := s.students.GetByAccountID(c.Context(), currentAccount(c).ID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(student)
}

func (s *Server) handleFindStudent(c fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return badRequest(c, "email query parameter is required")
	}

	student, err := s.students.GetByEmail(c.Context(), email)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(student)
}

func (s *Server) handleUpdateStudent(c fiber.Ctx) error {
	var upd students.Update
	if err := c.Bind().Body(&upd); err != nil {
		return badRequest(c, "invalid request body")
	}

	student, err := s.students.Update(c.Context(), currentAccount(c).ID, &upd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(student)
}

func (s *Server) handleListVacancies(c fiber.Ctx) error {
	filter := vacancies.Filter{
		University: c.Query("university"),
		MajorCode:  c.Query("major"),
	}

	list, err := s.vacancies.List(c.Context(), filter)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(list)
}

func (s *Server) handleGetVacancy(c fiber.Ctx) error {
	vacancy, err := s.vacancies.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(vacancy)
}

func (s *Server) handleResumeUploadURL(c fiber.Ctx) error {
	key, url, err := s.resumes.GetPresignedPutURL(c.Context(), currentAccount(c).ID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"upload_url": url, "key": key})
}

func (s *Server) handleResumeDownloadURL(c fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return badRequest(c, "key query parameter is required")
	}

	url, err := s.resumes.GetPresignedGetURL(c.Context(), key)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"download_url": url})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(errorBody{Error: msg, Kind: common.KindBadRequest})
}

// fail renders err as a JSON error body with its mapped status and kind.
func (s *Server) fail(c fiber.Ctx, err error) error {
	status, kind := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Context(), err.Error())
	}
	return c.Status(status).JSON(errorBody{Error: err.Error(), Kind: kind})
}

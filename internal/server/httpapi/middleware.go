package httpapi

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/stujob/stujob/internal/common"
	"github.com/stujob/stujob/internal/server/accounts"
)

const accountLocalKey = "account"

// requireAccount validates the bearer token and stores the resolved account
// in the request context for downstream handlers.
func (s *Server) requireAccount(c fiber.Ctx) error {
	token := extractBearerToken(c)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(errorBody{
			Error: "missing access token",
			Kind:  common.KindUnauthorized,
		})
	}

	account, err := s.accounts.Authenticate(c.Context(), token)
	if err != nil {
		return s.fail(c, err)
	}

	c.Locals(accountLocalKey, account)
	return c.Next()
}

func extractBearerToken(c fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// currentAccount returns the account placed by requireAccount. Calling it
// from an unprotected route is a programming error.
func currentAccount(c fiber.Ctx) *accounts.Account {
	return c.Locals(accountLocalKey).(*accounts.Account)
}

package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/stujob/stujob/internal/client/session"
	"github.com/stujob/stujob/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in through the session manager.
// An unconfirmed email is, when configured, downgraded to a successful login
// with an advisory message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.manager.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	if res.Advisory != "" {
		log.Printf("Warning: %s", res.Advisory)
	}
	log.Printf("Logged in as %s", res.User.Email)
	return nil
}

// Register collects the registration form and creates the account plus its
// profile row.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	courseText, err := getSimpleText(a.reader, "Enter course (1-5, empty for 1)", os.Stdout)
	if err != nil {
		return err
	}
	course := 0
	if courseText != "" {
		course, err = strconv.Atoi(courseText)
		if err != nil {
			fmt.Println("Course must be a number between 1 and 5")
			return err
		}
	}

	skillsText, err := getSimpleText(a.reader, "Enter skills, comma-separated (optional)", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.manager.Register(ctx, session.Draft{
		Email:    email,
		Password: string(password),
		Name:     name,
		Course:   course,
		Skills:   splitSkills(skillsText),
	})
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Registered %s (profile completion %d%%)", user.Email, user.ProfileCompletion)
	return nil
}

// Migrate links the locally stored profile to a remote account.
func (a *App) Migrate(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email (empty to use the local profile's email)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.manager.MigrateAccount(ctx, email, string(password))
	if err != nil {
		log.Printf("Migration unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Migrated: local profile now keyed by account %s", user.ID)
	return nil
}

// Confirm marks an account's email as confirmed. It stands in for the
// confirmation-link callback during development; real deployments confirm
// through the emailed link.
func (a *App) Confirm(ctx context.Context) error {
	id := ""
	if user, _ := a.manager.CurrentUser(); user != nil && user.IsRegistered {
		id = user.ID
	}
	if id == "" {
		entered, err := getSimpleText(a.reader, "Enter account id", os.Stdout)
		if err != nil {
			return err
		}
		if entered == "" {
			fmt.Println("Nothing to confirm: no registered profile and no account id")
			return nil
		}
		id = entered
	}

	if err := a.api.ConfirmEmail(ctx, id); err != nil {
		log.Printf("Confirmation unsuccessful: %s", err.Error())
		return err
	}

	log.Println("Email confirmed; use `login` to start a full session")
	return nil
}

// Logout terminates the session and removes the local snapshots.
func (a *App) Logout(ctx context.Context) error {
	if err := a.manager.Logout(ctx); err != nil {
		return err
	}
	log.Println("Logged out")
	return nil
}

func splitSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := strings.Split(text, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

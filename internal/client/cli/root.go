package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if user, _ := a.manager.CurrentUser(); user != nil {
		s = user.Email
		if s == "" {
			s = user.Name
		}
	}
	if state := a.manager.State(); state != "" {
		if s != "" {
			s += " "
		}
		s += string(state)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to stujob CLI (type 'help' for commands)")

	res := a.manager.ResolveCurrentUser(ctx)
	if res.User != nil {
		log.Printf("Resuming as %s", res.User.Email)
	}

	for {
		fmt.Printf("stujob %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("error reading command: %s", err.Error())
			}
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLinked() {
				fmt.Println("Available commands: status, profile, update, resume, vacancies, show <id>, logout, exit")
			} else {
				fmt.Println("Available commands: status, login, register, confirm, migrate, profile, vacancies, show <id>, exit")
			}

		case "status":
			a.Status(ctx)
		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "confirm":
			a.Confirm(ctx)
		case "migrate":
			a.Migrate(ctx)
		case "profile":
			a.Profile(ctx)
		case "update":
			a.UpdateProfile(ctx)
		case "resume":
			a.Resume(ctx)
		case "vacancies":
			a.Vacancies(ctx)
		case "show":
			if len(args) != 1 {
				fmt.Println("Usage: show <vacancy-id>")
				continue
			}
			a.ShowVacancy(ctx, args[0])
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

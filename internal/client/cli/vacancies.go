package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Vacancies lists published vacancies, filtered to the current user's
// university and major when a profile is available.
func (a *App) Vacancies(ctx context.Context) error {
	var university, majorCode string
	if user, _ := a.manager.CurrentUser(); user != nil {
		university = user.University
		majorCode = user.MajorCode
	}

	list, err := a.api.Vacancies(ctx, university, majorCode)
	if err != nil {
		log.Printf("error listing vacancies: %s", err.Error())
		return err
	}

	if len(list) == 0 {
		fmt.Println("No vacancies match your university and major yet.")
		return nil
	}

	for _, v := range list {
		fmt.Printf("%s  %s — %s (%s, %s)\n", v.ID, v.Title, v.Company, v.Format, v.Salary)
	}
	return nil
}

// ShowVacancy prints the full description of a single vacancy.
func (a *App) ShowVacancy(ctx context.Context, id string) error {
	v, err := a.api.Vacancy(ctx, id)
	if err != nil {
		log.Printf("error fetching vacancy: %s", err.Error())
		return err
	}

	fmt.Printf("%s — %s\n", v.Title, v.Company)
	fmt.Printf("Salary:   %s\n", v.Salary)
	fmt.Printf("Format:   %s\n", v.Format)
	fmt.Printf("Location: %s\n", v.Location)
	if len(v.Requirements) > 0 {
		fmt.Printf("Requires: %s\n", strings.Join(v.Requirements, ", "))
	}
	fmt.Println()
	fmt.Println(v.Description)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Profile refreshes and prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	user, _ := a.manager.CurrentUser()
	if user == nil {
		fmt.Println("No profile yet. Use `login`, `register` or `migrate` first.")
		return nil
	}

	if a.isLinked() {
		refreshed, err := a.manager.RefreshUser(ctx)
		if err != nil {
			log.Printf("error refreshing profile, showing the cached copy: %s", err.Error())
		} else {
			user = refreshed
		}
	}

	fmt.Printf("ID:         %s\n", user.ID)
	fmt.Printf("Name:       %s\n", user.Name)
	fmt.Printf("Email:      %s\n", user.Email)
	fmt.Printf("University: %s\n", user.University)
	fmt.Printf("Major:      %s\n", user.MajorCode)
	fmt.Printf("Course:     %d\n", user.Course)
	fmt.Printf("Skills:     %s\n", strings.Join(user.Skills, ", "))
	if user.Telegram != "" {
		fmt.Printf("Telegram:   %s\n", user.Telegram)
	}
	if user.About != "" {
		fmt.Printf("About:      %s\n", user.About)
	}
	if user.ResumeURL != "" {
		fmt.Printf("Resume:     %s\n", user.ResumeURL)
	}
	fmt.Printf("Completion: %d%%\n", user.ProfileCompletion)
	fmt.Printf("Registered: %t\n", user.IsRegistered)
	return nil
}

// Status prints the session state and, when online, the link state between
// the local profile and the remote account.
func (a *App) Status(ctx context.Context) error {
	fmt.Printf("State: %s\n", a.manager.State())

	link, err := a.manager.CheckStatus(ctx)
	if err != nil {
		log.Printf("error checking link state: %s", err.Error())
		return err
	}
	fmt.Printf("Link:  %s\n", link)
	return nil
}

// UpdateProfile prompts for the editable fields and patches the remote
// profile. Empty answers leave the corresponding field unchanged.
func (a *App) UpdateProfile(ctx context.Context) error {
	patch := map[string]any{}

	fields := []struct {
		prompt string
		key    string
	}{
		{"Name (empty to keep)", "name"},
		{"University (empty to keep)", "university"},
		{"Major code (empty to keep)", "major_code"},
		{"Telegram (empty to keep)", "telegram"},
		{"About (empty to keep)", "about"},
	}
	for _, f := range fields {
		value, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if value != "" {
			patch[f.key] = value
		}
	}

	courseText, err := getSimpleText(a.reader, "Course (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if courseText != "" {
		course, err := strconv.Atoi(courseText)
		if err != nil {
			fmt.Println("Course must be a number between 1 and 5")
			return err
		}
		patch["course"] = course
	}

	skillsText, err := getSimpleText(a.reader, "Skills, comma-separated (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if skillsText != "" {
		patch["skills"] = splitSkills(skillsText)
	}

	if len(patch) == 0 {
		fmt.Println("Nothing to update")
		return nil
	}

	user, err := a.manager.UpdateProfile(ctx, patch)
	if err != nil {
		log.Printf("Update unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Profile updated (completion %d%%)", user.ProfileCompletion)
	return nil
}

// Resume requests a presigned upload URL for a new resume file and prints
// it together with a curl hint, then attaches the resulting object URL to
// the profile.
func (a *App) Resume(ctx context.Context) error {
	if !a.isLinked() {
		fmt.Println("Sign in first: resumes belong to registered profiles.")
		return nil
	}

	uploadURL, key, err := a.api.ResumeUploadURL(ctx)
	if err != nil {
		log.Printf("error requesting upload URL: %s", err.Error())
		return err
	}

	fmt.Println("Upload your resume with:")
	fmt.Printf("  curl -X PUT --upload-file resume.pdf '%s'\n", uploadURL)

	downloadURL, err := a.api.ResumeDownloadURL(ctx, key)
	if err != nil {
		log.Printf("error requesting download URL: %s", err.Error())
		return err
	}

	if _, err := a.manager.UpdateProfile(ctx, map[string]any{"resume_url": downloadURL}); err != nil {
		log.Printf("error attaching resume to profile: %s", err.Error())
		return err
	}

	log.Println("Resume link saved to profile")
	return nil
}

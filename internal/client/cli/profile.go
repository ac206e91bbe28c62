package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pdstore/internal/client/client"
	"github.com/dmitrijs2005/pdstore/internal/client/models"
)

// Profile prints the dashboard: profile fields and selected challenges.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.profileService.Profile(ctx)
	if err != nil {
		return a.guarded(ctx, err)
	}
	printProfile(a.out, p)
	return nil
}

// Challenges prints the challenge catalog.
func (a *App) Challenges(ctx context.Context) error {
	list, err := a.profileService.Challenges(ctx)
	if err != nil {
		return a.guarded(ctx, err)
	}
	printChallenges(a.out, list)
	return nil
}

// Survey asks for each profile field (empty keeps the current value) and
// the challenge ids, then replaces the profile on the server.
func (a *App) Survey(ctx context.Context) error {
	catalog, err := a.profileService.Challenges(ctx)
	if err != nil {
		return a.guarded(ctx, err)
	}

	var s models.Survey
	prompts := []struct {
		prompt string
		dst    **string
	}{
		{"Name (empty to keep)", &s.Name},
		{"Location (empty to keep)", &s.Location},
		{"Age range, e.g. 25-34 (empty to keep)", &s.AgeRange},
		{"Interaction preference (empty to keep)", &s.InteractionPreference},
		{"Other interaction preference (empty to keep)", &s.OtherInteractionPreference},
	}
	for _, p := range prompts {
		answer, err := getSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = optional(answer)
	}

	printChallenges(a.out, catalog)
	answer, err := getSimpleText(a.reader, "Challenge ids, comma separated", a.out)
	if err != nil {
		return err
	}
	if s.Challenges, err = parseIDs(answer); err != nil {
		return err
	}

	p, err := a.profileService.SubmitSurvey(ctx, s)
	if err != nil {
		return a.guarded(ctx, err)
	}
	if p.Message != "" {
		fmt.Fprintln(a.out, p.Message)
	}
	printProfile(a.out, p)
	return nil
}

// guarded drops the local session when the server no longer accepts the
// token.
func (a *App) guarded(ctx context.Context, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if logoutErr := a.authService.Logout(ctx); logoutErr != nil {
		return errors.Join(err, logoutErr)
	}
	a.setEmail("")
	return fmt.Errorf("session is no longer valid, please login again: %w", err)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func printProfile(w io.Writer, p *models.Profile) {
	fmt.Fprintf(w, "Name:                   %s\n", orDash(p.Name))
	fmt.Fprintf(w, "Location:               %s\n", orDash(p.Location))
	fmt.Fprintf(w, "Age range:              %s\n", orDash(p.AgeRange))
	fmt.Fprintf(w, "Interaction preference: %s\n", orDash(p.InteractionPreference))
	fmt.Fprintf(w, "Other preference:       %s\n", orDash(p.OtherInteractionPreference))

	names := make([]string, len(p.Challenges))
	for i, c := range p.Challenges {
		names[i] = c.Name
	}
	if len(names) == 0 {
		names = append(names, "-")
	}
	fmt.Fprintf(w, "Challenges:             %s\n", strings.Join(names, ", "))
}

func printChallenges(w io.Writer, list []models.Challenge) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No challenges available")
		return
	}
	for _, c := range list {
		fmt.Fprintf(w, "%4d  %s\n", c.ID, c.Name)
	}
}

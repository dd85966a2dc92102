package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gymmi-app/gymmi/internal/client/models"
	"github.com/gymmi-app/gymmi/internal/client/validation"
	"github.com/gymmi-app/gymmi/internal/common"
	"github.com/gymmi-app/gymmi/internal/jwtx"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in")

// Register prompts for credentials and the optional profile, then creates
// the account. Email and password are checked locally first.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	// Checked before the profile questions so typos are reported early.
	if err := validation.ValidateCredentials(email, string(password)); err != nil {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			a.printFieldErrors(map[string]string{ve.Field: ve.Reason})
		}
		return err
	}

	profile, err := a.askProfile()
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, email, string(password), profile); err != nil {
		a.printFieldErrors(a.authService.State().FieldErrors)
		return err
	}

	fmt.Fprintln(a.out, "Registration successful!")
	return nil
}

func (a *App) askProfile() (models.Profile, error) {
	var (
		p   models.Profile
		err error
	)

	if p.Name, err = GetOptionalText(a.reader, "Name", a.out); err != nil {
		return p, err
	}
	if p.Gender, err = ChooseOption(a.reader, "Gender", models.Genders(), models.Gender.Label, a.out); err != nil {
		return p, err
	}
	if p.Height, err = GetOptionalFloat(a.reader, "Height (cm)", a.out); err != nil {
		return p, err
	}
	if p.Weight, err = GetOptionalFloat(a.reader, "Weight (kg)", a.out); err != nil {
		return p, err
	}
	if p.Goal, err = ChooseOption(a.reader, "Goal", models.Goals(), models.Goal.Label, a.out); err != nil {
		return p, err
	}
	if p.TargetWeight, err = GetOptionalFloat(a.reader, "Target weight (kg)", a.out); err != nil {
		return p, err
	}
	if p.Diet, err = ChooseOption(a.reader, "Diet", models.Diets(), models.Diet.Label, a.out); err != nil {
		return p, err
	}
	if p.Experience, err = ChooseOption(a.reader, "Training experience", models.Experiences(), models.Experience.Label, a.out); err != nil {
		return p, err
	}
	if p.WorkoutFrequency, err = ChooseOption(a.reader, "Workouts per week", models.WorkoutFrequencies(), models.WorkoutFrequency.Label, a.out); err != nil {
		return p, err
	}
	return p, nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, string(password)); err != nil {
		a.printFieldErrors(a.authService.State().FieldErrors)
		return err
	}

	if u := a.authService.State().CurrentUser; u != nil {
		fmt.Fprintf(a.out, "Welcome, %s!\n", u.DisplayName())
	}
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Me prints the cached profile.
func (a *App) Me(ctx context.Context) error {
	u := a.authService.State().CurrentUser
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return errNotLoggedIn
	}
	printUser(a.out, u)
	return nil
}

// Refresh reloads the profile and prints it.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.RefreshProfile(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not refresh profile: %v\n", err)
		if !a.isLoggedIn() {
			fmt.Fprintln(a.out, "Session expired, please log in again")
		}
		return err
	}
	return a.Me(ctx)
}

// Status prints the session, token and connectivity state.
func (a *App) Status(ctx context.Context) error {
	sn := a.authService.State()

	fmt.Fprintf(a.out, "Authenticated: %t\n", sn.IsAuthenticated)
	if sn.CurrentUser != nil {
		fmt.Fprintf(a.out, "User: %s\n", sn.CurrentUser.Email)
	}
	if a.monitor != nil {
		fmt.Fprintf(a.out, "Server: %s\n", a.monitor.Status())
	}
	if sn.Token == "" {
		return nil
	}

	fmt.Fprintf(a.out, "Token: %s\n", common.MaskToken(sn.Token))
	if claims, err := jwtx.Inspect(sn.Token); err == nil && !claims.ExpiresAt.IsZero() {
		now := time.Now()
		if claims.Expired(now) {
			fmt.Fprintf(a.out, "Token expired at %s\n", claims.ExpiresAt.Format(time.RFC3339))
		} else {
			fmt.Fprintf(a.out, "Token expires in %s\n", claims.TTL(now).Round(time.Second))
		}
	}
	return nil
}

// CheckEmail asks the server whether an account exists for email.
func (a *App) CheckEmail(ctx context.Context, email string) error {
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	exists, err := a.authService.CheckEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return err
	}
	if exists {
		fmt.Fprintf(a.out, "%s is registered\n", email)
	} else {
		fmt.Fprintf(a.out, "%s is not registered\n", email)
	}
	return nil
}

// Ping checks that the API answers.
func (a *App) Ping(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Server unavailable: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Server is up")
	return nil
}

// Stats prints the request counters collected by the HTTP transport.
func (a *App) Stats(ctx context.Context) error {
	if a.metrics == nil {
		return nil
	}
	families, err := a.metrics.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		if !strings.HasSuffix(mf.GetName(), "_total") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}

	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No requests yet")
		return nil
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	return nil
}

func (a *App) printFieldErrors(fe map[string]string) {
	for _, f := range []string{validation.FieldEmail, validation.FieldPassword, validation.FieldGeneral} {
		if msg, ok := fe[f]; ok {
			fmt.Fprintf(a.out, "%s: %s\n", f, msg)
		}
	}
}

// Package services contains the application services of the Gymmi client.
// This file defines the auth service: login, registration, session restore,
// profile refresh and logout on top of the API client and the credential
// store, publishing every change through session.State.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymmi-app/gymmi/internal/client/client"
	"github.com/gymmi-app/gymmi/internal/client/credentials"
	"github.com/gymmi-app/gymmi/internal/client/models"
	"github.com/gymmi-app/gymmi/internal/client/session"
	"github.com/gymmi-app/gymmi/internal/client/validation"
	"github.com/gymmi-app/gymmi/internal/common"
	"github.com/gymmi-app/gymmi/internal/jwtx"
	"github.com/gymmi-app/gymmi/internal/logging"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultLoginTimeout = 30 * time.Second

	MsgInvalidCredentials = "Неверный email или пароль"
	MsgGeneric            = "Произошла ошибка. Пожалуйста, попробуйте снова."
)

// AuthService defines the session operations used by the front-end.
//
// Contract:
//   - Login, Register, RestoreSession and RefreshProfile run one at a time;
//     an overlapping call waits for the previous one or returns ctx.Err().
//   - Login and Register start from an unauthenticated session; a failed
//     attempt never leaves the previous user in place.
//   - IsAuthenticated implies a token is held.
//   - Logout is local only and never fails.
//   - State and Subscribe expose read-only snapshots.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string, profile models.Profile) error
	RestoreSession(ctx context.Context) error
	RefreshProfile(ctx context.Context) error
	Logout(ctx context.Context)
	CheckEmail(ctx context.Context, email string) (bool, error)
	Ping(ctx context.Context) error
	State() session.Snapshot
	Subscribe() (<-chan session.Snapshot, func())
}

type authService struct {
	client       client.Client
	store        credentials.Store
	state        *session.State
	sem          *semaphore.Weighted
	loginTimeout time.Duration
	log          logging.Logger
}

// NewAuthService wires the service. A zero loginTimeout means
// DefaultLoginTimeout; a nil log discards output.
func NewAuthService(c client.Client, store credentials.Store, loginTimeout time.Duration, log logging.Logger) AuthService {
	if loginTimeout <= 0 {
		loginTimeout = DefaultLoginTimeout
	}
	if log == nil {
		log = logging.Nop()
	}
	return &authService{
		client:       c,
		store:        store,
		state:        session.NewState(),
		sem:          semaphore.NewWeighted(1),
		loginTimeout: loginTimeout,
		log:          log.With("component", "auth"),
	}
}

func (a *authService) State() session.Snapshot {
	return a.state.Snapshot()
}

func (a *authService) Subscribe() (<-chan session.Snapshot, func()) {
	return a.state.Subscribe()
}

// Login posts the credentials, stores the returned token and loads the
// profile. The session is authenticated only once the profile is loaded.
func (a *authService) Login(ctx context.Context, email, password string) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer a.sem.Release(1)

	a.begin()
	err := a.login(ctx, email, password)
	a.finish(err)

	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return err
	}
	a.log.Info(ctx, "logged in", "email", email)
	return nil
}

func (a *authService) login(ctx context.Context, email, password string) error {
	a.dropSession()

	lctx, cancel := context.WithTimeout(ctx, a.loginTimeout)
	tr, err := a.client.Login(lctx, email, password)
	cancel()
	if err != nil {
		return err
	}

	if err := a.store.Set(ctx, tr.AccessToken); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	a.state.Update(func(s *session.Snapshot) { s.Token = tr.AccessToken })

	if err := a.fetchUserProfile(ctx); err != nil {
		return err
	}

	a.state.Update(func(s *session.Snapshot) { s.IsAuthenticated = true })
	return nil
}

// Register validates email and password locally, then creates the account.
// When the response carries a token the returned user is taken as is;
// otherwise the login flow runs with the same credentials.
func (a *authService) Register(ctx context.Context, email, password string, profile models.Profile) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer a.sem.Release(1)

	a.begin()
	err := a.register(ctx, email, password, profile)
	a.finish(err)

	if err != nil {
		a.log.Warn(ctx, "registration failed", "email", email, "error", err)
		return err
	}
	a.log.Info(ctx, "registered", "email", email)
	return nil
}

func (a *authService) register(ctx context.Context, email, password string, profile models.Profile) error {
	if err := validation.ValidateCredentials(email, password); err != nil {
		return err
	}

	a.dropSession()

	rr, err := a.client.Register(ctx, models.NewRegisterRequest(email, password, profile))
	if err != nil {
		return err
	}

	// The backend answers with the user only; sign in to get a token.
	if rr.AccessToken == "" {
		if err := a.login(ctx, email, password); err != nil {
			return fmt.Errorf("sign in after registration: %w", err)
		}
		return nil
	}

	if err := a.store.Set(ctx, rr.AccessToken); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	user := rr.User
	a.state.Update(func(s *session.Snapshot) {
		s.Token = rr.AccessToken
		s.CurrentUser = &user
		s.IsAuthenticated = true
	})
	return nil
}

// RestoreSession is called once at start. Without a stored token it makes
// no network call. Any failure while restoring drops the stored token.
func (a *authService) RestoreSession(ctx context.Context) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer a.sem.Release(1)

	token, err := a.store.Get(ctx)
	if err != nil {
		a.log.Warn(ctx, "stored token unreadable, dropping it", "error", err)
		a.invalidate(ctx)
		return fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		a.log.Debug(ctx, "no stored token")
		a.state.Update(func(s *session.Snapshot) {
			s.IsAuthenticated = false
			s.IsLoading = false
		})
		return nil
	}

	a.logTokenInfo(ctx, token)

	a.state.Update(func(s *session.Snapshot) {
		s.Token = token
		s.IsLoading = true
	})

	if err := a.fetchUserProfile(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		a.invalidate(ctx)
		return err
	}

	a.state.Update(func(s *session.Snapshot) {
		s.IsAuthenticated = true
		s.IsLoading = false
	})
	a.log.Info(ctx, "session restored", "email", a.state.Snapshot().CurrentUser.Email)
	return nil
}

// RefreshProfile reloads the current user.
func (a *authService) RefreshProfile(ctx context.Context) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer a.sem.Release(1)

	return a.fetchUserProfile(ctx)
}

// Logout forgets the token and the user locally.
func (a *authService) Logout(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear stored token", "error", err)
	}
	a.dropSession()
	a.state.Reset()
	a.log.Info(ctx, "logged out")
}

func (a *authService) CheckEmail(ctx context.Context, email string) (bool, error) {
	return a.client.CheckEmail(ctx, email)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// fetchUserProfile loads /auth/me with the stored token. 401 and 404 drop
// the token and the session; other failures keep the token.
func (a *authService) fetchUserProfile(ctx context.Context) error {
	token, err := a.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return fmt.Errorf("%w: no stored token", client.ErrInvalidURL)
	}

	user, err := a.client.Me(ctx, token)
	switch {
	case err == nil:
		a.state.Update(func(s *session.Snapshot) {
			s.Token = token
			s.CurrentUser = user
		})
		return nil
	case errors.Is(err, client.ErrUnauthorized), errors.Is(err, client.ErrProfileNotFound):
		a.log.Info(ctx, "token rejected, clearing session", "token", common.MaskToken(token), "error", err)
		a.invalidate(ctx)
		return err
	default:
		return err
	}
}

// dropSession forgets the in-memory session but keeps the stored token.
func (a *authService) dropSession() {
	a.state.Update(func(s *session.Snapshot) {
		s.Token = ""
		s.CurrentUser = nil
		s.IsAuthenticated = false
	})
}

// invalidate clears the stored token and the session.
func (a *authService) invalidate(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear stored token", "error", err)
	}
	a.state.Update(func(s *session.Snapshot) {
		s.Token = ""
		s.CurrentUser = nil
		s.IsAuthenticated = false
		s.IsLoading = false
	})
}

func (a *authService) begin() {
	a.state.Update(func(s *session.Snapshot) {
		s.IsLoading = true
		s.FieldErrors = map[string]string{}
	})
}

func (a *authService) finish(err error) {
	fe := map[string]string{}
	if err != nil {
		fe = FieldErrors(err)
	}
	a.state.Update(func(s *session.Snapshot) {
		s.IsLoading = false
		s.FieldErrors = fe
	})
}

func (a *authService) logTokenInfo(ctx context.Context, token string) {
	args := []any{"token", common.MaskToken(token)}

	claims, err := jwtx.Inspect(token)
	if err == nil {
		args = append(args, "subject", claims.Subject)
		if !claims.ExpiresAt.IsZero() {
			args = append(args, "expires_at", claims.ExpiresAt.Format(time.RFC3339))
		}
		if claims.Expired(time.Now()) {
			a.log.Warn(ctx, "stored token looks expired, asking the server anyway", args...)
			return
		}
	}
	a.log.Debug(ctx, "restoring session", args...)
}

// FieldErrors maps an operation error to the form fields it belongs to.
func FieldErrors(err error) map[string]string {
	var ve *validation.ValidationError
	var se *client.ServerError

	switch {
	case errors.As(err, &ve):
		return map[string]string{ve.Field: ve.Reason}
	case errors.Is(err, client.ErrInvalidCredentials):
		return map[string]string{validation.FieldPassword: MsgInvalidCredentials}
	case errors.As(err, &se):
		return map[string]string{validation.FieldGeneral: se.Message}
	default:
		return map[string]string{validation.FieldGeneral: MsgGeneric}
	}
}

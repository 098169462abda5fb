package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/yallashop/storefront/internal/api"
	"github.com/yallashop/storefront/internal/app/state"
	apperrors "github.com/yallashop/storefront/internal/errors"
	"github.com/yallashop/storefront/pkg/logger"
	"github.com/yallashop/storefront/pkg/token"
)

var (
	ErrMissingFields    = errors.New("required fields missing")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
	Register(ctx context.Context, input RegisterInput) error
	Logout(ctx context.Context) error
	VerifyEmail(ctx context.Context, verifyToken string) error
	FetchCurrentUser(ctx context.Context) error
	Bootstrap(ctx context.Context) error
}

type authService struct {
	client      *api.Client
	auth        *state.Auth
	cart        CartService
	events      *state.Bus
	sessionPath string
}

func NewAuthService(
	client *api.Client,
	auth *state.Auth,
	cart CartService,
	events *state.Bus,
	sessionPath string,
) AuthService {
	return &authService{
		client:      client,
		auth:        auth,
		cart:        cart,
		events:      events,
		sessionPath: sessionPath,
	}
}

// Login authenticates the session. On success it persists the session
// token and runs the guest cart migration; a migration failure is
// reflected in cart state but does not undo the login.
func (s *authService) Login(ctx context.Context, input LoginInput) error {
	if input.Email == "" || input.Password == "" {
		return fmt.Errorf("%w: email and password", ErrMissingFields)
	}

	logger.Info("Login attempt", map[string]interface{}{
		"email": input.Email,
	})

	s.auth.Begin()

	user, sessionToken, err := s.client.Login(ctx, api.LoginRequest{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		logger.Warn("Login failed", map[string]interface{}{
			"email": input.Email,
			"error": err.Error(),
		})
		s.auth.Fail(apperrors.Parse(err))
		return err
	}

	role, err := user.PrimaryRole()
	if err != nil {
		logger.Error("Login response carried no roles", err, map[string]interface{}{
			"user_id": user.ID,
		})
		s.auth.Fail(apperrors.Parse(err))
		return err
	}

	s.client.SetToken(sessionToken)
	s.saveSession(sessionToken)
	s.auth.ResolveLogin(user, role)

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"role":    role,
	})

	// The one-time guest cart migration fires here and only here.
	if err := s.cart.MergeGuestCart(ctx); err != nil {
		logger.Warn("Guest cart migration failed after login", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	return nil
}

// Register creates an account. A successful registration does not
// authenticate the session and never triggers cart migration.
func (s *authService) Register(ctx context.Context, input RegisterInput) error {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return fmt.Errorf("%w: name, email and password", ErrMissingFields)
	}
	if input.Password != input.PasswordConfirm {
		return ErrPasswordMismatch
	}

	logger.Info("Registering account", map[string]interface{}{
		"email": input.Email,
	})

	s.auth.Begin()

	err := s.client.Register(ctx, api.RegisterRequest{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		logger.Warn("Registration failed", map[string]interface{}{
			"email": input.Email,
			"error": err.Error(),
		})
		s.auth.Fail(apperrors.Parse(err))
		return err
	}

	s.auth.ResolveRegister()
	return nil
}

// Logout ends the session. On success the auth container resets and a
// session-ended event resets the cart container; a fresh empty guest
// cart begins.
func (s *authService) Logout(ctx context.Context) error {
	s.auth.Begin()

	if err := s.client.Logout(ctx); err != nil {
		logger.Warn("Logout failed", map[string]interface{}{
			"error": err.Error(),
		})
		s.auth.Fail(apperrors.Parse(err))
		return err
	}

	s.client.ClearToken()
	s.clearSession()
	s.auth.ResolveLogout()
	s.events.Publish(state.SessionEnded)

	logger.Info("User logged out")
	return nil
}

// VerifyEmail confirms a registration token.
func (s *authService) VerifyEmail(ctx context.Context, verifyToken string) error {
	if verifyToken == "" {
		return fmt.Errorf("%w: verification token", ErrMissingFields)
	}
	if err := s.client.VerifyEmail(ctx, verifyToken); err != nil {
		logger.Warn("Email verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// FetchCurrentUser refreshes the session user. A rejection means "not
// logged in": authentication is cleared silently and no error is
// returned to the caller.
func (s *authService) FetchCurrentUser(ctx context.Context) error {
	s.auth.Begin()

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		logger.Debug("No active session", map[string]interface{}{
			"error": err.Error(),
		})
		s.auth.RejectCurrentUser(apperrors.Parse(err))
		return nil
	}

	role, err := user.PrimaryRole()
	if err != nil {
		logger.Error("Session user carries no roles", err, map[string]interface{}{
			"user_id": user.ID,
		})
		s.auth.RejectCurrentUser(apperrors.Parse(err))
		return nil
	}

	s.auth.ResolveCurrentUser(user, role)
	return nil
}

// Bootstrap restores a saved session at client start. A missing or
// expired token falls back to guest mode without touching auth state.
func (s *authService) Bootstrap(ctx context.Context) error {
	data, err := os.ReadFile(s.sessionPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Saved session unreadable", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil
	}

	sessionToken := string(data)
	claims, err := token.Decode(sessionToken)
	if err != nil || claims.Expired(time.Now()) {
		logger.Debug("Discarding stale session token")
		s.clearSession()
		return nil
	}

	s.client.SetToken(sessionToken)
	return s.FetchCurrentUser(ctx)
}

func (s *authService) saveSession(sessionToken string) {
	if err := os.MkdirAll(filepath.Dir(s.sessionPath), 0o755); err != nil {
		logger.Warn("Failed to create session directory", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := os.WriteFile(s.sessionPath, []byte(sessionToken), 0o600); err != nil {
		logger.Warn("Failed to persist session token", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *authService) clearSession() {
	if err := os.Remove(s.sessionPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to delete session token", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

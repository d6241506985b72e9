package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookmanager/catalog-api/internal/api/metrics"
	"github.com/bookmanager/catalog-api/internal/core/domain"
	"github.com/bookmanager/catalog-api/internal/core/ports"
	"github.com/bookmanager/catalog-api/internal/pkg/password"
)

// LoginLimiter abstracts the failed-login throttle (Redis).
type LoginLimiter interface {
	Throttled(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// NoLimit is a LoginLimiter that never throttles, used when Redis is not
// configured.
type NoLimit struct{}

func (NoLimit) Throttled(context.Context, string) (bool, error) { return false, nil }
func (NoLimit) RecordFailure(context.Context, string) error     { return nil }
func (NoLimit) Reset(context.Context, string) error             { return nil }

// AuditSink receives authentication audit events for asynchronous persistence.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// AuthService implements registration, login, profile lookup, and
// self-service password change.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenService
	hasher  password.Hasher
	limiter LoginLimiter
	audit   AuditSink
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenService,
	hasher password.Hasher,
	limiter LoginLimiter,
	audit AuditSink,
	log zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = NoLimit{}
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// Register creates an account with the regular user role and returns a fresh
// token alongside the stored record. Uniqueness of username and email is
// enforced by the repository's unique indexes, not by a pre-check.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.FullName == "" {
		return "", nil, domain.ErrMissingFields
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(ports.TokenClaims{ID: created.ID, Username: created.Username, Role: created.Role})
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.record(created.Username, domain.AuditActionRegister, domain.AuditOutcomeSuccess)
	s.log.Info().Str("username", created.Username).Msg("user registered")

	return token, created, nil
}

// Login verifies credentials and issues a token. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *domain.User, error) {
	if username == "" || pass == "" {
		return "", nil, domain.ErrMissingFields
	}

	throttled, err := s.limiter.Throttled(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, proceeding")
	} else if throttled {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		s.record(username, domain.AuditActionLogin, domain.AuditOutcomeThrottled)
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, s.loginFailed(ctx, username)
		}
		return "", nil, err
	}

	ok, err := s.hasher.Verify(pass, user.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, s.loginFailed(ctx, username)
	}

	token, err := s.tokens.Issue(ports.TokenClaims{ID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		return "", nil, err
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login counter")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(username, domain.AuditActionLogin, domain.AuditOutcomeSuccess)

	return token, user, nil
}

func (s *AuthService) loginFailed(ctx context.Context, username string) error {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.record(username, domain.AuditActionLogin, domain.AuditOutcomeFailure)
	return domain.ErrInvalidCredentials
}

// Profile returns the account behind a verified token's id claim.
func (s *AuthService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ChangePassword verifies the current password and re-hashes the new one.
// Outstanding tokens for this account remain valid until natural expiry.
func (s *AuthService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(currentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		s.record(user.Username, domain.AuditActionChangePassword, domain.AuditOutcomeFailure)
		return domain.ErrWrongPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.record(user.Username, domain.AuditActionChangePassword, domain.AuditOutcomeSuccess)
	s.log.Info().Str("username", user.Username).Msg("password changed")
	return nil
}

func (s *AuthService) record(username, action, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Username:  username,
		Action:    action,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	})
}

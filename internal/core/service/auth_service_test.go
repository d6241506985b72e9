package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookmanager/catalog-api/internal/core/domain"
	"github.com/bookmanager/catalog-api/internal/core/ports"
	"github.com/bookmanager/catalog-api/internal/pkg/password"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "id-" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := cloneUser(u)
		c.PasswordHash = ""
		out = append(out, c)
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubLimiter struct {
	throttled bool
	failures  int
	resets    int
}

func (l *stubLimiter) Throttled(context.Context, string) (bool, error) { return l.throttled, nil }
func (l *stubLimiter) RecordFailure(context.Context, string) error {
	l.failures++
	return nil
}
func (l *stubLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

type stubAudit struct {
	events []domain.AuthEvent
}

func (a *stubAudit) Record(e domain.AuthEvent) { a.events = append(a.events, e) }

func newAuthService(repo *stubUserRepo, limiter LoginLimiter, audit AuditSink) *AuthService {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, password.NewHasher(4), limiter, audit, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := newAuthService(repo, nil, audit)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "Abc123!", FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("registration must force the user role, got %s", user.Role)
	}
	if user.PasswordHash == "Abc123!" {
		t.Fatalf("expected password to be hashed")
	}

	stored, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	ok, err := password.NewHasher(4).Verify("Abc123!", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}

	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditActionRegister {
		t.Fatalf("expected a register audit event, got %+v", audit.events)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil, nil)
	_, _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice"})
	if err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil, nil)

	in := ports.RegisterInput{Username: "bob", Email: "b@x.com", Password: "Abc123!", FullName: "Bob"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same email, different username is still a duplicate.
	in.Username = "bobby"
	if _, _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if n, _ := repo.Count(context.Background()); n != 1 {
		t.Fatalf("duplicate register must not write, count=%d", n)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{}
	svc := newAuthService(repo, limiter, nil)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Email: "c@x.com", Password: "S3cret!", FullName: "Carol",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "S3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || user.Username != "carol" {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected the failure counter to be reset once, got %d", limiter.resets)
	}

	claims, err := NewTokenService("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Username != "carol" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{}
	svc := newAuthService(repo, limiter, nil)

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Email: "d@x.com", Password: "G00dpass!", FullName: "Dave",
	})

	// Wrong password and unknown username must be indistinguishable.
	_, _, errWrongPass := svc.Login(context.Background(), "dave", "badpass")
	_, _, errNoUser := svc.Login(context.Background(), "ghost", "whatever")

	if errWrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPass)
	}
	if errNoUser != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", errNoUser)
	}
	if limiter.failures != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", limiter.failures)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{throttled: true}, nil)

	if _, _, err := svc.Login(context.Background(), "anyone", "pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil, nil)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "erin", Email: "e@x.com", Password: "Abc123!", FullName: "Erin",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	got, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if got.Username != "erin" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := svc.Profile(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{}, nil)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "frank", Email: "f@x.com", Password: "Old123!", FullName: "Frank",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "New123!"); err != domain.ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "Old123!", "New123!"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	// Old password no longer works, new one does.
	if _, _, err := svc.Login(context.Background(), "frank", "Old123!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "frank", "New123!"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookmanager/catalog-api/internal/core/domain"
	"github.com/bookmanager/catalog-api/internal/core/ports"
	"github.com/bookmanager/catalog-api/internal/pkg/password"
)

// AdminService implements operator account management. Unlike the HTTP-facing
// AuthService it can assign roles and enforces the password strength rule.
type AdminService struct {
	users  ports.UserRepository
	hasher password.Hasher
	log    zerolog.Logger
}

func NewAdminService(users ports.UserRepository, hasher password.Hasher, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, hasher: hasher, log: log}
}

func (s *AdminService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, domain.ErrMissingFields
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if !password.Strong(in.Password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) ChangeRole(ctx context.Context, username, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.UpdateRole(ctx, user.ID, role); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Str("role", role).Msg("role changed")
	return nil
}

func (s *AdminService) SetPassword(ctx context.Context, username, newPassword string) error {
	if !password.Strong(newPassword) {
		return domain.ErrWeakPassword
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("user deleted")
	return nil
}

// Seed creates the given accounts only when the store holds no users at all,
// so a restart never duplicates or resets existing accounts.
func (s *AdminService) Seed(ctx context.Context, users []ports.SeedUser) ([]*domain.User, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, nil
	}

	created := make([]*domain.User, 0, len(users))
	for _, u := range users {
		user, err := s.CreateUser(ctx, ports.CreateUserInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			FullName: u.FullName,
			Role:     u.Role,
		})
		if err != nil {
			return created, err
		}
		created = append(created, user)
	}
	return created, nil
}

package service

import (
	"context"
	"time"

	"github.com/picklewheel/picklewheel/internal/cache"
	"github.com/picklewheel/picklewheel/internal/config"
	"github.com/picklewheel/picklewheel/internal/domain"
	"github.com/picklewheel/picklewheel/internal/identity"
	"github.com/picklewheel/picklewheel/internal/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	verifier identity.Verifier
	counters *cache.Counters
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, verifier identity.Verifier, counters *cache.Counters, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
		counters: counters,
		cfg:      cfg,
	}
}

// Authenticate verifies the bearer token and records the identity it
// carries. Returns identity.ErrInvalidToken when verification fails.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.ObserveIdentity(ctx, id)
}

// ObserveIdentity upserts the user row for a verified identity: created on
// first sight, profile fields refreshed on every call (last write wins).
// The role is derived from the configured administrator list each time, so
// promoting or demoting an admin only requires a config change.
func (s *AuthService) ObserveIdentity(ctx context.Context, id *identity.Identity) (*domain.User, error) {
	user := &domain.User{
		ID:        id.Subject,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
	}
	if id.Email != "" {
		email := id.Email
		user.Email = &email
	}
	if id.Name != "" {
		name := id.Name
		user.Name = &name
	}
	if s.cfg.IsAdminEmail(id.Email) {
		user.Role = domain.RoleAdmin
	}

	created, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		return nil, err
	}
	if created {
		s.counters.IncrRegistrations(ctx)
	}

	return user, nil
}

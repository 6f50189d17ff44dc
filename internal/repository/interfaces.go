package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/picklewheel/picklewheel/internal/domain"
)

type UserRepository interface {
	// Upsert creates the user on first sight or refreshes its profile
	// fields. It reports whether a new row was created.
	Upsert(ctx context.Context, user *domain.User) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type WheelRepository interface {
	Create(ctx context.Context, wheel *domain.Wheel) error
	GetByOwnerAndID(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Wheel, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*domain.Wheel, error)
	// NameExists checks the per-owner name uniqueness invariant, excluding
	// the given wheel ID (uuid.Nil excludes nothing).
	NameExists(ctx context.Context, ownerID, name string, exclude uuid.UUID) (bool, error)
	Update(ctx context.Context, wheel *domain.Wheel) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	// RecordSpin atomically increments the spin counter and refreshes
	// last_used, returning the updated wheel.
	RecordSpin(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Wheel, error)
	Count(ctx context.Context) (int64, error)
}

type Repositories struct {
	User  UserRepository
	Wheel WheelRepository
}

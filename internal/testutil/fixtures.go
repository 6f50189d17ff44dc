package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/picklewheel/picklewheel/internal/domain"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	id    string
	email string
	name  string
	role  domain.UserRole
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		id:    fmt.Sprintf("google-sub-%s", suffix),
		email: fmt.Sprintf("user_%s@example.com", suffix),
		name:  "Test User",
		role:  domain.RoleUser,
	}
}

// WithID sets the external subject identifier
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.id = id
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:        b.id,
		Email:     &b.email,
		Name:      &b.name,
		Role:      b.role,
		CreatedAt: time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// WheelBuilder creates test wheels with a builder pattern
type WheelBuilder struct {
	ownerID string
	name    string
	options []string
	public  bool
	spins   int
}

// NewWheelBuilder creates a new WheelBuilder with default values
func NewWheelBuilder(ownerID string) *WheelBuilder {
	return &WheelBuilder{
		ownerID: ownerID,
		name:    fmt.Sprintf("wheel_%s", uuid.New().String()[:8]),
		options: []string{"Option A", "Option B", "Option C"},
	}
}

// WithName sets the wheel name
func (b *WheelBuilder) WithName(name string) *WheelBuilder {
	b.name = name
	return b
}

// WithOptions sets the option list
func (b *WheelBuilder) WithOptions(options ...string) *WheelBuilder {
	b.options = options
	return b
}

// WithPublic marks the wheel public
func (b *WheelBuilder) WithPublic() *WheelBuilder {
	b.public = true
	return b
}

// WithSpins pre-sets the spin counter
func (b *WheelBuilder) WithSpins(spins int) *WheelBuilder {
	b.spins = spins
	return b
}

// Build creates the wheel in the database
func (b *WheelBuilder) Build(t *testing.T, db *gorm.DB) *domain.Wheel {
	t.Helper()

	now := time.Now()
	wheel := &domain.Wheel{
		ID:        uuid.New(),
		UserID:    b.ownerID,
		Name:      b.name,
		IsPublic:  b.public,
		CreatedAt: now,
		Spins:     b.spins,
		LastUsed:  now,
	}
	if err := wheel.SetOptions(b.options); err != nil {
		t.Fatalf("failed to encode options: %v", err)
	}

	if err := db.Create(wheel).Error; err != nil {
		t.Fatalf("failed to create wheel: %v", err)
	}

	return wheel
}

package domain

import "time"

// UserRole gates access to the administrative surface.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User mirrors a verified external identity. The ID is the identity
// provider's stable subject claim, not something this service allocates,
// so rows are created and refreshed as a side effect of authentication.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     *string   `json:"email"`
	Name      *string   `json:"name"`
	Role      UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Wheels []Wheel `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

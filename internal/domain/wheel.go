package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Wheel is a named, ordered list of options owned by a single user.
// Names are unique per owner; every read and write is ownership-scoped.
type Wheel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    string         `json:"userId" gorm:"uniqueIndex:idx_wheels_owner_name;not null"`
	Name      string         `json:"name" gorm:"uniqueIndex:idx_wheels_owner_name;not null"`
	Options   datatypes.JSON `json:"options" gorm:"type:jsonb;not null"` // ordered string array
	IsPublic  bool           `json:"isPublic" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"createdAt"`
	Spins     int            `json:"spins" gorm:"not null;default:0"`
	LastUsed  time.Time      `json:"lastUsed" gorm:"not null"`

	// Relations
	Owner *User `json:"-" gorm:"foreignKey:UserID"`
}

// OptionList decodes the stored options, preserving their order.
func (w *Wheel) OptionList() ([]string, error) {
	var options []string
	if err := json.Unmarshal(w.Options, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// SetOptions encodes options into the stored column.
func (w *Wheel) SetOptions(options []string) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return err
	}
	w.Options = datatypes.JSON(raw)
	return nil
}

package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/picklewheel/picklewheel/internal/domain"
	"github.com/picklewheel/picklewheel/internal/repository"
	"gorm.io/gorm"
)

type WheelService struct {
	wheelRepo repository.WheelRepository
}

func NewWheelService(wheelRepo repository.WheelRepository) *WheelService {
	return &WheelService{wheelRepo: wheelRepo}
}

type CreateWheelInput struct {
	Name     string
	Options  []string
	IsPublic bool
}

type UpdateWheelInput struct {
	Name     *string
	Options  []string
	IsPublic *bool
}

// SpinResult carries the updated wheel and the server-chosen option.
type SpinResult struct {
	Wheel       *domain.Wheel
	Result      string
	ResultIndex int
}

func (s *WheelService) Create(ctx context.Context, ownerID string, input CreateWheelInput) (*domain.Wheel, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	if err := validateOptions(input.Options); err != nil {
		return nil, err
	}

	taken, err := s.wheelRepo.NameExists(ctx, ownerID, input.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrWheelNameTaken
	}

	now := time.Now()
	wheel := &domain.Wheel{
		ID:        uuid.New(),
		UserID:    ownerID,
		Name:      input.Name,
		IsPublic:  input.IsPublic,
		CreatedAt: now,
		Spins:     0,
		LastUsed:  now,
	}
	if err := wheel.SetOptions(input.Options); err != nil {
		return nil, err
	}

	if err := s.wheelRepo.Create(ctx, wheel); err != nil {
		// The unique index backs up the pre-check under concurrent creates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrWheelNameTaken
		}
		return nil, err
	}

	return wheel, nil
}

func (s *WheelService) List(ctx context.Context, ownerID string) ([]*domain.Wheel, error) {
	return s.wheelRepo.GetByOwner(ctx, ownerID)
}

// Get returns the wheel only if it is owned by ownerID. A wheel owned by
// someone else reads the same as one that does not exist.
func (s *WheelService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Wheel, error) {
	wheel, err := s.wheelRepo.GetByOwnerAndID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWheelNotFound
		}
		return nil, err
	}
	return wheel, nil
}

func (s *WheelService) Update(ctx context.Context, ownerID string, id uuid.UUID, input UpdateWheelInput) (*domain.Wheel, error) {
	wheel, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != wheel.Name {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domain.ErrNameRequired
		}
		taken, err := s.wheelRepo.NameExists(ctx, ownerID, *input.Name, wheel.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrWheelNameTaken
		}
		wheel.Name = *input.Name
	}
	if input.Options != nil {
		if err := validateOptions(input.Options); err != nil {
			return nil, err
		}
		if err := wheel.SetOptions(input.Options); err != nil {
			return nil, err
		}
	}
	if input.IsPublic != nil {
		wheel.IsPublic = *input.IsPublic
	}

	if err := s.wheelRepo.Update(ctx, wheel); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrWheelNameTaken
		}
		return nil, err
	}

	return wheel, nil
}

func (s *WheelService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	err := s.wheelRepo.Delete(ctx, ownerID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrWheelNotFound
	}
	return err
}

// Spin bumps the wheel's counters and picks the winning option. Selection
// is server-authoritative: clients animate toward the returned index rather
// than choosing their own. math/rand is enough here, the pick is a parlor
// game fairness concern, not a security control.
func (s *WheelService) Spin(ctx context.Context, ownerID string, id uuid.UUID) (*SpinResult, error) {
	wheel, err := s.wheelRepo.RecordSpin(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWheelNotFound
		}
		return nil, err
	}

	options, err := wheel.OptionList()
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, domain.ErrOptionsRequired
	}

	idx := rand.IntN(len(options))
	return &SpinResult{
		Wheel:       wheel,
		Result:      options[idx],
		ResultIndex: idx,
	}, nil
}

func validateOptions(options []string) error {
	if len(options) == 0 {
		return domain.ErrOptionsRequired
	}
	for _, option := range options {
		if strings.TrimSpace(option) == "" {
			return domain.ErrBlankOption
		}
	}
	return nil
}

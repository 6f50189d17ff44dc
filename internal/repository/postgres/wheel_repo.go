package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/picklewheel/picklewheel/internal/domain"
	"gorm.io/gorm"
)

type wheelRepository struct {
	db *gorm.DB
}

func NewWheelRepository(db *gorm.DB) *wheelRepository {
	return &wheelRepository{db: db}
}

func (r *wheelRepository) Create(ctx context.Context, wheel *domain.Wheel) error {
	return r.db.WithContext(ctx).Create(wheel).Error
}

func (r *wheelRepository) GetByOwnerAndID(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Wheel, error) {
	var wheel domain.Wheel
	err := r.db.WithContext(ctx).
		First(&wheel, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &wheel, nil
}

func (r *wheelRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.Wheel, error) {
	var wheels []*domain.Wheel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&wheels).Error
	if err != nil {
		return nil, err
	}
	return wheels, nil
}

func (r *wheelRepository) NameExists(ctx context.Context, ownerID, name string, exclude uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&domain.Wheel{}).
		Where("user_id = ? AND name = ?", ownerID, name)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *wheelRepository) Update(ctx context.Context, wheel *domain.Wheel) error {
	return r.db.WithContext(ctx).Save(wheel).Error
}

func (r *wheelRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&domain.Wheel{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *wheelRepository) RecordSpin(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Wheel, error) {
	// Single UPDATE expression so concurrent spins never lose an increment.
	res := r.db.WithContext(ctx).Model(&domain.Wheel{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"spins":     gorm.Expr("spins + 1"),
			"last_used": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByOwnerAndID(ctx, ownerID, id)
}

func (r *wheelRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Wheel{}).Count(&count).Error
	return count, err
}

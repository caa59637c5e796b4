package repository

import (
	"context"

	"gorm.io/gorm"

	"infinity-realms-shop/internal/model"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	FindByID(ctx context.Context, id string) (*model.Purchase, error)
	MarkVerified(ctx context.Context, id string) (*model.Purchase, error)
	List(ctx context.Context) ([]*model.Purchase, error)
	ListByUsername(ctx context.Context, username string) ([]*model.Purchase, error)
	DeleteAll(ctx context.Context) error
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) Create(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepoImpl) FindByID(ctx context.Context, id string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&purchase).Error

	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

// MarkVerified flips both status fields in one logical update. Verifying an
// already-verified purchase is a no-op, not an error.
func (r *purchaseRepoImpl) MarkVerified(ctx context.Context, id string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&purchase).Error; err != nil {
			return err
		}

		if purchase.Status == model.StatusVerified && purchase.VerificationStatus == model.StatusVerified {
			return nil
		}

		if err := tx.Model(&model.Purchase{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":              model.StatusVerified,
				"verification_status": model.StatusVerified,
			}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&purchase).Error
	})

	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) List(ctx context.Context) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&purchases).Error

	if err != nil {
		return nil, err
	}

	return purchases, nil
}

func (r *purchaseRepoImpl) ListByUsername(ctx context.Context, username string) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&purchases).Error

	if err != nil {
		return nil, err
	}

	return purchases, nil
}

func (r *purchaseRepoImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Purchase{}).Error
}

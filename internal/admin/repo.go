package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
)

// Repository exposes back-office persistence: operator accounts and the
// aggregate counts behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admin repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUsername retrieves the operator account matching the username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// CountUsers counts registered accounts, optionally restricted to verified
// ones.
func (r *Repository) CountUsers(ctx context.Context, verifiedOnly bool) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.User{})
	if verifiedOnly {
		tx = tx.Where("is_verified = ?", true)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

// CountVerificationPending counts active accounts still awaiting
// verification.
func (r *Repository) CountVerificationPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("is_verified = ? AND is_active = ?", false, true).
		Count(&count).
		Error
	return count, err
}

// CountProducts counts listings, optionally restricted to active ones.
func (r *Repository) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

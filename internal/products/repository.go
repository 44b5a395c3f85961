package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/pagination"
)

// Repository wires together product and product image persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists all fields of an existing product row.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID; images cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindByID loads the product with its images ordered by upload time.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDForSeller loads the product only when it belongs to the seller.
// Foreign products surface as gorm.ErrRecordNotFound, indistinguishable from
// absent ones.
func (r *Repository) FindByIDForSeller(ctx context.Context, id, sellerID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND seller_id = ?", id, sellerID).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// IncrementViews bumps the view counter without loading the row.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).
		Error
}

// ListBySeller lists the products owned by a seller, newest first.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// Search applies every optional predicate of the criteria on top of the
// is_active base filter and returns one page of matches.
func (r *Repository) Search(ctx context.Context, criteria SearchCriteria) ([]models.Product, error) {
	orderClause, err := criteria.OrderClause()
	if err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)

	if query := criteria.Query; query != "" {
		like := "%" + query + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if criteria.CategoryID != nil {
		tx = tx.Where("category_id = ?", *criteria.CategoryID)
	}
	if criteria.MaterialID != nil {
		tx = tx.Where("material_id = ?", *criteria.MaterialID)
	}
	if criteria.City != "" {
		tx = tx.Where("location_city ILIKE ?", "%"+criteria.City+"%")
	}
	if criteria.State != "" {
		tx = tx.Where("location_state ILIKE ?", "%"+criteria.State+"%")
	}
	if criteria.MinPrice != nil {
		tx = tx.Where("price >= ?", *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		tx = tx.Where("price <= ?", *criteria.MaxPrice)
	}
	if criteria.Condition != nil {
		tx = tx.Where("condition = ?", *criteria.Condition)
	}

	params := pagination.Normalize(pagination.Params{Skip: criteria.Skip, Limit: criteria.Limit})

	var rows []models.Product
	err = tx.
		Order(orderClause).
		Offset(params.Skip).
		Limit(params.Limit).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Find(&rows).
		Error
	return rows, err
}

// CreateImage inserts a product image row.
func (r *Repository) CreateImage(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// ClearPrimary drops the primary flag from every image of the product. Run
// inside the same transaction that sets the new primary.
func (r *Repository) ClearPrimary(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("product_id = ? AND is_primary", productID).
		UpdateColumn("is_primary", false).
		Error
}

// ListImages returns the product's images ordered by upload time.
func (r *Repository) ListImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var rows []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

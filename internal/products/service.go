package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/images"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/pagination"
)

// Service exposes product listing management and discovery.
type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, sellerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, sellerID, productID uuid.UUID) error
	GetDetail(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error)
	ListMine(ctx context.Context, sellerID uuid.UUID) ([]ProductDTO, error)
	UploadImages(ctx context.Context, sellerID, productID uuid.UUID, files []UploadFile, makePrimary bool) (*UploadResult, error)
}

// CreateProductInput holds the validated payload to create a listing.
type CreateProductInput struct {
	Title             string
	Description       string
	CategoryID        uuid.UUID
	MaterialID        *uuid.UUID
	Quantity          int
	Unit              *string
	Price             *decimal.Decimal
	PriceNegotiable   bool
	Condition         enums.ProductCondition
	ManufacturingDate *time.Time
	LocationCity      *string
	LocationState     *string
	Pincode           *string
	Specifications    map[string]any
}

// UpdateProductInput holds optional mutation values for a listing.
type UpdateProductInput struct {
	Title             *string
	Description       *string
	CategoryID        *uuid.UUID
	MaterialID        *uuid.UUID
	Quantity          *int
	Unit              *string
	Price             *decimal.Decimal
	PriceNegotiable   *bool
	Condition         *enums.ProductCondition
	ManufacturingDate *time.Time
	LocationCity      *string
	LocationState     *string
	Pincode           *string
	Specifications    map[string]any
	IsActive          *bool
	Status            *enums.ProductStatus
}

// UploadFile carries one multipart file through the upload flow.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// allowedUploadTypes is the content-type allow-list for product images.
// Files outside it are skipped rather than failing the batch.
var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type imagePipeline interface {
	Process(ctx context.Context, raw []byte, filename string, productID uuid.UUID) (*images.Meta, error)
}

// service implements the product service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	users    userLoader
	pipeline imagePipeline
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, users userLoader, pipeline imagePipeline) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if pipeline == nil {
		return nil, fmt.Errorf("image pipeline required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		users:    users,
		pipeline: pipeline,
	}, nil
}

// Create validates the payload, ensures the caller is a verified seller, and
// inserts the listing.
func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureVerifiedSeller(ctx, sellerID); err != nil {
		return nil, err
	}

	row := &models.Product{
		SellerID:          sellerID,
		Title:             input.Title,
		Description:       input.Description,
		CategoryID:        input.CategoryID,
		MaterialID:        input.MaterialID,
		Quantity:          input.Quantity,
		Unit:              input.Unit,
		Price:             input.Price,
		PriceNegotiable:   input.PriceNegotiable,
		Condition:         input.Condition,
		ManufacturingDate: input.ManufacturingDate,
		LocationCity:      input.LocationCity,
		LocationState:     input.LocationState,
		Pincode:           input.Pincode,
		Specifications:    input.Specifications,
		IsActive:          true,
		Status:            enums.ProductStatusActive,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return NewProductDTO(created), nil
}

// Update applies the provided fields to a listing owned by the caller.
// Listings that exist but belong to someone else read as not found.
func (s *service) Update(ctx context.Context, sellerID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	row, err := s.findOwned(ctx, productID, sellerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		row.Title = *input.Title
	}
	if input.Description != nil {
		row.Description = *input.Description
	}
	if input.CategoryID != nil {
		row.CategoryID = *input.CategoryID
	}
	if input.MaterialID != nil {
		row.MaterialID = input.MaterialID
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		row.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		row.Unit = input.Unit
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		row.Price = input.Price
	}
	if input.PriceNegotiable != nil {
		row.PriceNegotiable = *input.PriceNegotiable
	}
	if input.Condition != nil {
		if !input.Condition.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid condition %q", *input.Condition))
		}
		row.Condition = *input.Condition
	}
	if input.ManufacturingDate != nil {
		row.ManufacturingDate = input.ManufacturingDate
	}
	if input.LocationCity != nil {
		row.LocationCity = input.LocationCity
	}
	if input.LocationState != nil {
		row.LocationState = input.LocationState
	}
	if input.Pincode != nil {
		row.Pincode = input.Pincode
	}
	if input.Specifications != nil {
		row.Specifications = input.Specifications
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *input.Status))
		}
		row.Status = *input.Status
	}

	saved, err := s.repo.Save(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	saved.Images, err = s.repo.ListImages(ctx, saved.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product images")
	}
	return NewProductDTO(saved), nil
}

// Delete removes a listing owned by the caller. Image rows cascade; files on
// disk are left for out-of-band cleanup.
func (s *service) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	if _, err := s.findOwned(ctx, productID, sellerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

// GetDetail returns the full listing and records the view.
func (s *service) GetDetail(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if err := s.repo.IncrementViews(ctx, productID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: increment views")
	}
	row.ViewsCount++

	return NewProductDTO(row), nil
}

// Search runs the public listing search over active products.
func (s *service) Search(ctx context.Context, criteria SearchCriteria) (*SearchResult, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.Search(ctx, criteria)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search products")
	}

	params := pagination.Normalize(pagination.Params{Skip: criteria.Skip, Limit: criteria.Limit})
	result := &SearchResult{
		Items: make([]ListItemDTO, 0, len(rows)),
		Skip:  params.Skip,
		Limit: params.Limit,
	}
	for i := range rows {
		result.Items = append(result.Items, NewListItemDTO(&rows[i]))
	}
	return result, nil
}

// ListMine lists the caller's own products, newest first.
func (s *service) ListMine(ctx context.Context, sellerID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list seller products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out, nil
}

// UploadImages runs each accepted file through the rendition pipeline and
// persists the resulting rows in one transaction. Files with disallowed
// content types are skipped silently. When makePrimary is set, or the product
// has no images yet, the first surviving file becomes the primary image.
func (s *service) UploadImages(ctx context.Context, sellerID, productID uuid.UUID, files []UploadFile, makePrimary bool) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no files provided")
	}

	if _, err := s.findOwned(ctx, productID, sellerID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListImages(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product images")
	}

	plans := planUploads(files, makePrimary, len(existing) > 0)
	if len(plans) == 0 {
		return &UploadResult{Images: []ProductImageDTO{}}, nil
	}

	type processed struct {
		plan uploadPlan
		meta *images.Meta
	}
	batch := make([]processed, 0, len(plans))
	for _, plan := range plans {
		meta, err := s.pipeline.Process(ctx, plan.file.Data, plan.file.Filename, productID)
		if err != nil {
			return nil, err
		}
		batch = append(batch, processed{plan: plan, meta: meta})
	}

	created := make([]models.ProductImage, 0, len(batch))
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, item := range batch {
			if item.plan.isPrimary {
				if err := txRepo.ClearPrimary(ctx, productID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear primary image")
				}
			}
			row := &models.ProductImage{
				ProductID: productID,
				ImageName: item.meta.ImageName,
				ImagePath: item.meta.RelativePath,
				IsPrimary: item.plan.isPrimary,
				FileSize:  item.meta.Size,
				MimeType:  item.plan.file.ContentType,
			}
			inserted, err := txRepo.CreateImage(ctx, row)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product image")
			}
			created = append(created, *inserted)
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload images")
	}

	result := &UploadResult{
		UploadedCount: len(created),
		Images:        make([]ProductImageDTO, 0, len(created)),
	}
	for i := range created {
		result.Images = append(result.Images, NewProductImageDTO(&created[i]))
	}
	return result, nil
}

// uploadPlan pairs an accepted file with its primary designation.
type uploadPlan struct {
	file      UploadFile
	isPrimary bool
}

// planUploads filters the batch down to allowed content types and decides
// which file, if any, becomes the primary image.
func planUploads(files []UploadFile, makePrimary, hasExisting bool) []uploadPlan {
	plans := make([]uploadPlan, 0, len(files))
	for _, file := range files {
		if _, ok := allowedUploadTypes[file.ContentType]; !ok {
			continue
		}
		plan := uploadPlan{file: file}
		if len(plans) == 0 && (makePrimary || !hasExisting) {
			plan.isPrimary = true
		}
		plans = append(plans, plan)
	}
	return plans
}

func (s *service) findOwned(ctx context.Context, productID, sellerID uuid.UUID) (*models.Product, error) {
	row, err := s.repo.FindByIDForSeller(ctx, productID, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return row, nil
}

func (s *service) ensureVerifiedSeller(ctx context.Context, sellerID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if !user.IsActive {
		return pkgerrors.New(pkgerrors.CodeForbidden, "account is deactivated")
	}
	if !user.IsVerified {
		return pkgerrors.New(pkgerrors.CodeForbidden, "seller verification required")
	}
	if !user.UserType.CanSell() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "account cannot list products")
	}
	return nil
}

func validateCreateInput(input CreateProductInput) error {
	if input.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Description == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category_id is required")
	}
	if input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if !input.Condition.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid condition %q", input.Condition))
	}
	return nil
}

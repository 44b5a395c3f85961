package product

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
)

// ProductDTO represents the full product payload returned to clients.
type ProductDTO struct {
	ID                uuid.UUID         `json:"id"`
	SellerID          uuid.UUID         `json:"seller_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	CategoryID        uuid.UUID         `json:"category_id"`
	MaterialID        *uuid.UUID        `json:"material_id,omitempty"`
	Quantity          int               `json:"quantity"`
	Unit              *string           `json:"unit,omitempty"`
	Price             *decimal.Decimal  `json:"price,omitempty"`
	PriceNegotiable   bool              `json:"price_negotiable"`
	Condition         string            `json:"condition"`
	ManufacturingDate *time.Time        `json:"manufacturing_date,omitempty"`
	LocationCity      *string           `json:"location_city,omitempty"`
	LocationState     *string           `json:"location_state,omitempty"`
	Pincode           *string           `json:"pincode,omitempty"`
	Specifications    map[string]any    `json:"specifications,omitempty"`
	IsActive          bool              `json:"is_active"`
	IsFeatured        bool              `json:"is_featured"`
	ViewsCount        int               `json:"views_count"`
	Status            string            `json:"status"`
	Images            []ProductImageDTO `json:"images"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ProductImageDTO captures one stored image rendition set.
type ProductImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ImageName string    `json:"image_name"`
	ImageURL  string    `json:"image_url"`
	IsPrimary bool      `json:"is_primary"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ListItemDTO is the trimmed search/listing projection.
type ListItemDTO struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Condition     string           `json:"condition"`
	LocationCity  *string          `json:"location_city,omitempty"`
	LocationState *string          `json:"location_state,omitempty"`
	ViewsCount    int              `json:"views_count"`
	Status        string           `json:"status"`
	PrimaryImage  *ProductImageDTO `json:"primary_image,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// SearchResult is one page of listing projections.
type SearchResult struct {
	Items []ListItemDTO `json:"items"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// UploadResult reports the outcome of an image upload batch.
type UploadResult struct {
	UploadedCount int               `json:"uploaded_count"`
	Images        []ProductImageDTO `json:"images"`
}

// NewProductDTO projects the model into its API payload.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                product.ID,
		SellerID:          product.SellerID,
		Title:             product.Title,
		Description:       product.Description,
		CategoryID:        product.CategoryID,
		MaterialID:        product.MaterialID,
		Quantity:          product.Quantity,
		Unit:              product.Unit,
		Price:             product.Price,
		PriceNegotiable:   product.PriceNegotiable,
		Condition:         string(product.Condition),
		ManufacturingDate: product.ManufacturingDate,
		LocationCity:      product.LocationCity,
		LocationState:     product.LocationState,
		Pincode:           product.Pincode,
		Specifications:    product.Specifications,
		IsActive:          product.IsActive,
		IsFeatured:        product.IsFeatured,
		ViewsCount:        product.ViewsCount,
		Status:            string(product.Status),
		Images:            make([]ProductImageDTO, 0, len(product.Images)),
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
	for _, image := range product.Images {
		dto.Images = append(dto.Images, NewProductImageDTO(&image))
	}
	return dto
}

// NewProductImageDTO projects an image row. ImagePath is stored relative to
// the upload root, so prefixing the static mount yields a servable URL no
// matter where the root lives on disk.
func NewProductImageDTO(image *models.ProductImage) ProductImageDTO {
	return ProductImageDTO{
		ID:        image.ID,
		ImageName: image.ImageName,
		ImageURL:  "/uploads/" + filepath.ToSlash(image.ImagePath),
		IsPrimary: image.IsPrimary,
		FileSize:  image.FileSize,
		MimeType:  image.MimeType,
		CreatedAt: image.CreatedAt,
	}
}

// NewListItemDTO reduces a product row to its listing projection.
func NewListItemDTO(product *models.Product) ListItemDTO {
	item := ListItemDTO{
		ID:            product.ID,
		Title:         product.Title,
		Price:         product.Price,
		Condition:     string(product.Condition),
		LocationCity:  product.LocationCity,
		LocationState: product.LocationState,
		ViewsCount:    product.ViewsCount,
		Status:        string(product.Status),
		CreatedAt:     product.CreatedAt,
	}
	if primary := selectPrimaryImage(product.Images); primary != nil {
		dto := NewProductImageDTO(primary)
		item.PrimaryImage = &dto
	}
	return item
}

// selectPrimaryImage picks the flagged primary, falling back to the earliest
// upload, or nil when the product has no images.
func selectPrimaryImage(images []models.ProductImage) *models.ProductImage {
	if len(images) == 0 {
		return nil
	}
	var earliest *models.ProductImage
	for i := range images {
		image := &images[i]
		if image.IsPrimary {
			return image
		}
		if earliest == nil || image.CreatedAt.Before(earliest.CreatedAt) {
			earliest = image
		}
	}
	return earliest
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage tracks one uploaded image and its stored renditions.
// ImagePath points at the original rendition; the medium and thumbnail
// renditions share the same file name under sibling directories.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	ImageName string    `gorm:"column:image_name;not null"`
	ImagePath string    `gorm:"column:image_path;not null"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	FileSize  int64     `gorm:"column:file_size;not null"`
	MimeType  string    `gorm:"column:mime_type;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/types"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

// Product represents a seller listing of surplus manufacturing goods.
type Product struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID          uuid.UUID              `gorm:"column:seller_id;type:uuid;not null;index"`
	Title             string                 `gorm:"column:title;not null"`
	Description       string                 `gorm:"column:description;not null"`
	CategoryID        uuid.UUID              `gorm:"column:category_id;type:uuid;not null;index"`
	MaterialID        *uuid.UUID             `gorm:"column:material_id;type:uuid;index"`
	Quantity          int                    `gorm:"column:quantity;not null;default:1"`
	Unit              *string                `gorm:"column:unit"`
	Price             *decimal.Decimal       `gorm:"column:price;type:numeric(10,2)"`
	PriceNegotiable   bool                   `gorm:"column:price_negotiable;not null;default:false"`
	Condition         enums.ProductCondition `gorm:"column:condition;type:product_condition;not null"`
	ManufacturingDate *time.Time             `gorm:"column:manufacturing_date"`
	LocationCity      *string                `gorm:"column:location_city"`
	LocationState     *string                `gorm:"column:location_state"`
	Pincode           *string                `gorm:"column:pincode"`
	Specifications    dbtypes.JSONMap        `gorm:"column:specifications;type:jsonb"`
	IsActive          bool                   `gorm:"column:is_active;not null;default:true"`
	IsFeatured        bool                   `gorm:"column:is_featured;not null;default:false"`
	ViewsCount        int                    `gorm:"column:views_count;not null;default:0"`
	Status            enums.ProductStatus    `gorm:"column:status;type:product_status;not null;default:'active'"`
	Images            []ProductImage         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

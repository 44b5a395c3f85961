package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

// Conversation is the per-product message thread between one buyer and the
// product's seller. One row per (product, buyer, seller).
type Conversation struct {
	ID        uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID                `gorm:"column:product_id;type:uuid;not null;index"`
	BuyerID   uuid.UUID                `gorm:"column:buyer_id;type:uuid;not null;index"`
	SellerID  uuid.UUID                `gorm:"column:seller_id;type:uuid;not null;index"`
	Status    enums.ConversationStatus `gorm:"column:status;type:conversation_status;not null;default:'active'"`
	Messages  []Message                `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

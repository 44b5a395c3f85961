package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
)

// Message is one entry in a conversation thread.
type Message struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID         `gorm:"column:conversation_id;type:uuid;not null;index"`
	SenderID       uuid.UUID         `gorm:"column:sender_id;type:uuid;not null"`
	Body           string            `gorm:"column:body;not null"`
	MessageType    enums.MessageType `gorm:"column:message_type;type:message_type;not null;default:'text'"`
	OfferPrice     *decimal.Decimal  `gorm:"column:offer_price;type:numeric(10,2)"`
	IsRead         bool              `gorm:"column:is_read;not null;default:false"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
}

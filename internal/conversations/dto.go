package conversations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
)

// ConversationDTO is the transport shape for one thread.
type ConversationDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	BuyerID     uuid.UUID `json:"buyer_id"`
	SellerID    uuid.UUID `json:"seller_id"`
	Status      string    `json:"status"`
	UnreadCount int64     `json:"unread_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessageDTO is the transport shape for one thread entry.
type MessageDTO struct {
	ID             uuid.UUID        `json:"id"`
	ConversationID uuid.UUID        `json:"conversation_id"`
	SenderID       uuid.UUID        `json:"sender_id"`
	Body           string           `json:"body"`
	MessageType    string           `json:"message_type"`
	OfferPrice     *decimal.Decimal `json:"offer_price,omitempty"`
	IsRead         bool             `json:"is_read"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ThreadDTO bundles a conversation with its full message history.
type ThreadDTO struct {
	Conversation ConversationDTO `json:"conversation"`
	Messages     []MessageDTO    `json:"messages"`
}

// NewConversationDTO projects a conversation row; unreadCount is computed
// per reader.
func NewConversationDTO(conversation *models.Conversation, unreadCount int64) ConversationDTO {
	return ConversationDTO{
		ID:          conversation.ID,
		ProductID:   conversation.ProductID,
		BuyerID:     conversation.BuyerID,
		SellerID:    conversation.SellerID,
		Status:      string(conversation.Status),
		UnreadCount: unreadCount,
		CreatedAt:   conversation.CreatedAt,
		UpdatedAt:   conversation.UpdatedAt,
	}
}

// NewMessageDTO projects a message row.
func NewMessageDTO(message *models.Message) MessageDTO {
	return MessageDTO{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Body:           message.Body,
		MessageType:    string(message.MessageType),
		OfferPrice:     message.OfferPrice,
		IsRead:         message.IsRead,
		CreatedAt:      message.CreatedAt,
	}
}

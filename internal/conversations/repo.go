package conversations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
)

// Repository exposes conversation and message persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a conversations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new conversation row.
func (r *Repository) Create(ctx context.Context, conversation *models.Conversation) (*models.Conversation, error) {
	if err := r.db.WithContext(ctx).Create(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}

// FindByID loads a conversation without its messages.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByProductAndBuyer returns the existing thread for the (product, buyer)
// pair, if any.
func (r *Repository) FindByProductAndBuyer(ctx context.Context, productID, buyerID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		First(&conversation, "product_id = ? AND buyer_id = ?", productID, buyerID).
		Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListForUser returns every conversation the user participates in, most
// recently touched first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	var rows []models.Conversation
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListMessages returns the thread's messages oldest first.
func (r *Repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateMessage inserts a message and touches the parent's updated_at.
func (r *Repository) CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", message.ConversationID).
		UpdateColumn("updated_at", gorm.Expr("now()")).
		Error
	if err != nil {
		return nil, err
	}
	return message, nil
}

// MarkReceivedRead flags every unread message sent by the other participant.
func (r *Repository) MarkReceivedRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		UpdateColumn("is_read", true).
		Error
}

// CountUnread counts messages addressed to the reader that are still unread.
func (r *Repository) CountUnread(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Count(&count).
		Error
	return count, err
}

package conversations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

// Service exposes buyer-seller messaging around product listings.
type Service interface {
	Start(ctx context.Context, buyerID, productID uuid.UUID) (*ConversationDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error)
	GetThread(ctx context.Context, userID, conversationID uuid.UUID) (*ThreadDTO, error)
	SendMessage(ctx context.Context, userID, conversationID uuid.UUID, input SendMessageInput) (*MessageDTO, error)
}

// SendMessageInput holds the validated payload for one outgoing message.
type SendMessageInput struct {
	Body        string
	MessageType enums.MessageType
	OfferPrice  *decimal.Decimal
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// service implements the messaging service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	products productLoader
}

// NewService constructs a messaging service instance.
func NewService(repo *Repository, dbClient *db.Client, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("conversations repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, dbClient: dbClient, products: products}, nil
}

// Start opens the buyer's thread on a product. A second start on the same
// product returns the existing thread instead of erroring.
func (s *service) Start(ctx context.Context, buyerID, productID uuid.UUID) (*ConversationDTO, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if product.SellerID == buyerID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot start a conversation on your own product")
	}

	existing, err := s.repo.FindByProductAndBuyer(ctx, productID, buyerID)
	if err == nil {
		dto := NewConversationDTO(existing, 0)
		return &dto, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load conversation")
	}

	created, err := s.repo.Create(ctx, &models.Conversation{
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
		Status:    enums.ConversationStatusActive,
	})
	if err != nil {
		// Lost race with a concurrent start; the unique index holds the row.
		if db.IsUniqueViolation(err, "idx_conversations_product_buyer_seller") {
			existing, findErr := s.repo.FindByProductAndBuyer(ctx, productID, buyerID)
			if findErr == nil {
				dto := NewConversationDTO(existing, 0)
				return &dto, nil
			}
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert conversation")
	}

	dto := NewConversationDTO(created, 0)
	return &dto, nil
}

// ListMine lists the caller's threads with per-thread unread counts.
func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list conversations")
	}

	out := make([]ConversationDTO, 0, len(rows))
	for i := range rows {
		unread, err := s.repo.CountUnread(ctx, rows[i].ID, userID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count unread messages")
		}
		out = append(out, NewConversationDTO(&rows[i], unread))
	}
	return out, nil
}

// GetThread returns the full thread and marks the caller's received messages
// as read.
func (s *service) GetThread(ctx context.Context, userID, conversationID uuid.UUID) (*ThreadDTO, error) {
	conversation, err := s.findParticipating(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkReceivedRead(ctx, conversationID, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark messages read")
	}

	messages, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list messages")
	}

	thread := &ThreadDTO{
		Conversation: NewConversationDTO(conversation, 0),
		Messages:     make([]MessageDTO, 0, len(messages)),
	}
	for i := range messages {
		message := messages[i]
		if message.SenderID != userID {
			message.IsRead = true
		}
		thread.Messages = append(thread.Messages, NewMessageDTO(&message))
	}
	return thread, nil
}

// SendMessage appends a message to an active thread the caller participates
// in.
func (s *service) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, input SendMessageInput) (*MessageDTO, error) {
	if err := validateMessageInput(input); err != nil {
		return nil, err
	}

	conversation, err := s.findParticipating(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if conversation.Status != enums.ConversationStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "conversation is closed")
	}

	messageType := input.MessageType
	if messageType == "" {
		messageType = enums.MessageTypeText
	}

	var created *models.Message
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		created, err = s.repo.WithTx(tx).CreateMessage(ctx, &models.Message{
			ConversationID: conversationID,
			SenderID:       userID,
			Body:           input.Body,
			MessageType:    messageType,
			OfferPrice:     input.OfferPrice,
		})
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert message")
	}

	dto := NewMessageDTO(created)
	return &dto, nil
}

// findParticipating loads the thread when the caller is one of its two
// participants. Foreign threads read as not found.
func (s *service) findParticipating(ctx context.Context, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "conversation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load conversation")
	}
	if conversation.BuyerID != userID && conversation.SellerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "conversation not found")
	}
	return conversation, nil
}

func validateMessageInput(input SendMessageInput) error {
	messageType := input.MessageType
	if messageType == "" {
		messageType = enums.MessageTypeText
	}
	if !messageType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid message type %q", input.MessageType))
	}

	switch messageType {
	case enums.MessageTypeOffer:
		if input.OfferPrice == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "offer_price is required for offers")
		}
		if !input.OfferPrice.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "offer_price must be positive")
		}
	default:
		if input.OfferPrice != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "offer_price is only valid for offers")
		}
	}

	if input.Body == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "body is required")
	}
	return nil
}

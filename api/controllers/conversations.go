package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/responses"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/validators"
	convsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/conversations"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
)

type startConversationRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// ConversationsStart opens (or returns) the buyer's thread for a product.
func ConversationsStart(svc convsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "conversation service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload startConversationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_id"))
			return
		}

		conversation, err := svc.Start(r.Context(), uid, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, conversation)
	}
}

// ConversationsMine lists the caller's threads, most recently active first.
func ConversationsMine(svc convsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "conversation service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		conversations, err := svc.ListMine(r.Context(), uid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, conversations)
	}
}

// ConversationsThread returns one thread and marks received messages read.
func ConversationsThread(svc convsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "conversation service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		conversationID, err := pathUUID(r, "conversationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		thread, err := svc.GetThread(r.Context(), uid, conversationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, thread)
	}
}

type sendMessageRequest struct {
	Body        string           `json:"body" validate:"required"`
	MessageType string           `json:"message_type,omitempty"`
	OfferPrice  *decimal.Decimal `json:"offer_price,omitempty"`
}

func (req sendMessageRequest) toInput() (convsvc.SendMessageInput, error) {
	input := convsvc.SendMessageInput{
		Body:       req.Body,
		OfferPrice: req.OfferPrice,
	}

	if raw := strings.TrimSpace(req.MessageType); raw != "" {
		messageType, err := enums.ParseMessageType(raw)
		if err != nil {
			return convsvc.SendMessageInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid message_type")
		}
		input.MessageType = messageType
	}

	return input, nil
}

// ConversationsSend appends a message to a thread the caller belongs to.
func ConversationsSend(svc convsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "conversation service unavailable"))
			return
		}

		uid, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		conversationID, err := pathUUID(r, "conversationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sendMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message, err := svc.SendMessage(r.Context(), uid, conversationID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}

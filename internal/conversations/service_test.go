package conversations

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

func TestValidateMessageInput(t *testing.T) {
	price := decimal.NewFromInt(1500)
	zero := decimal.Zero

	t.Run("plainText", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{Body: "Is this still available?"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("defaultsEmptyTypeToText", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{Body: "hello", MessageType: ""})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("offerWithPrice", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{
			Body:        "Would you take 1500 per unit?",
			MessageType: enums.MessageTypeOffer,
			OfferPrice:  &price,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("offerWithoutPrice", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{
			Body:        "offer",
			MessageType: enums.MessageTypeOffer,
		})
		assertValidationError(t, err)
	})

	t.Run("offerWithZeroPrice", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{
			Body:        "offer",
			MessageType: enums.MessageTypeOffer,
			OfferPrice:  &zero,
		})
		assertValidationError(t, err)
	})

	t.Run("priceOnTextMessage", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{
			Body:        "hello",
			MessageType: enums.MessageTypeText,
			OfferPrice:  &price,
		})
		assertValidationError(t, err)
	})

	t.Run("unknownType", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{
			Body:        "hello",
			MessageType: enums.MessageType("voice"),
		})
		assertValidationError(t, err)
	})

	t.Run("emptyBody", func(t *testing.T) {
		err := validateMessageInput(SendMessageInput{MessageType: enums.MessageTypeText})
		assertValidationError(t, err)
	})
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

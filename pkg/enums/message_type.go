package enums

import "fmt"

// MessageType describes the allowed values for the `message_type` column in messages.
type MessageType string

const (
	MessageTypeText         MessageType = "text"
	MessageTypeContactShare MessageType = "contact_share"
	MessageTypeOffer        MessageType = "offer"
)

var validMessageTypes = []MessageType{
	MessageTypeText,
	MessageTypeContactShare,
	MessageTypeOffer,
}

// IsValid reports whether the value matches the canonical message type enum.
func (m MessageType) IsValid() bool {
	for _, candidate := range validMessageTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMessageType converts the raw string to MessageType.
func ParseMessageType(value string) (MessageType, error) {
	for _, candidate := range validMessageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid message type %q", value)
}

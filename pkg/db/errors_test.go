package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolationSQLState(t *testing.T) {
	pgDuplicate := errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)
	conversationRace := errors.New(`ERROR: duplicate key value violates unique constraint "idx_conversations_product_buyer_seller" (SQLSTATE 23505)`)

	if !IsUniqueViolation(pgDuplicate, "") {
		t.Fatal("expected generic duplicate key error to be detected")
	}
	if !IsUniqueViolation(conversationRace, "idx_conversations_product_buyer_seller") {
		t.Fatal("expected named constraint to be detected")
	}
	if IsUniqueViolation(pgDuplicate, "idx_conversations_product_buyer_seller") {
		t.Fatal("expected mismatched constraint name to be rejected")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("expected unrelated error to be rejected")
	}
	if IsUniqueViolation(nil, "idx_users_email") {
		t.Fatal("expected nil error to be rejected")
	}
}

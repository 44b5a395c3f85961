package enums

import "testing"

func TestParseProductCondition(t *testing.T) {
	got, err := ParseProductCondition("like_new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ProductConditionLikeNew {
		t.Fatalf("unexpected condition %q", got)
	}

	if _, err := ParseProductCondition("mint"); err == nil {
		t.Fatal("expected error for unknown condition")
	}
}

func TestUserTypeCanSell(t *testing.T) {
	cases := map[UserType]bool{
		UserTypeSeller: true,
		UserTypeBoth:   true,
		UserTypeBuyer:  false,
	}
	for userType, want := range cases {
		if got := userType.CanSell(); got != want {
			t.Fatalf("CanSell(%q) = %v, want %v", userType, got, want)
		}
	}
}

func TestIsValidRejectsEmpty(t *testing.T) {
	if ProductStatus("").IsValid() {
		t.Fatal("empty product status should be invalid")
	}
	if TokenType("bearer").IsValid() {
		t.Fatal("unexpected token type should be invalid")
	}
	if !ConversationStatusActive.IsValid() {
		t.Fatal("active conversation status should be valid")
	}
	if !MessageTypeOffer.IsValid() {
		t.Fatal("offer message type should be valid")
	}
	if !AdminRoleModerator.IsValid() {
		t.Fatal("moderator admin role should be valid")
	}
}

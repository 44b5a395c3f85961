package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/db/models"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

type stubDirectory struct {
	users       map[uuid.UUID]*models.User
	verified    []uuid.UUID
	deactivated []uuid.UUID
}

func (s *stubDirectory) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubDirectory) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	s.verified = append(s.verified, id)
	return nil
}

func (s *stubDirectory) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

func (s *stubDirectory) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	return nil, nil
}

func newTestService(t *testing.T, directory *stubDirectory) Service {
	t.Helper()
	svc, err := NewService(&Repository{}, directory, config.JWTConfig{
		Secret:            "secret",
		Issuer:            "issuer",
		ExpirationMinutes: 15,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s got %s", want, typed.Code())
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newTestService(t, &stubDirectory{})

	_, err := svc.Login(context.Background(), "", "hunter2")
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Login(context.Background(), "ops", "")
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestVerifyUser(t *testing.T) {
	target := uuid.New()
	directory := &stubDirectory{users: map[uuid.UUID]*models.User{
		target: {ID: target, IsActive: true},
	}}
	svc := newTestService(t, directory)

	if err := svc.VerifyUser(context.Background(), target); err != nil {
		t.Fatalf("verify user: %v", err)
	}
	if len(directory.verified) != 1 || directory.verified[0] != target {
		t.Fatalf("expected verification write for %s, got %v", target, directory.verified)
	}
}

func TestVerifyUserAlreadyVerified(t *testing.T) {
	target := uuid.New()
	directory := &stubDirectory{users: map[uuid.UUID]*models.User{
		target: {ID: target, IsActive: true, IsVerified: true},
	}}
	svc := newTestService(t, directory)

	err := svc.VerifyUser(context.Background(), target)
	assertCode(t, err, pkgerrors.CodeConflict)
	if len(directory.verified) != 0 {
		t.Fatalf("expected no write, got %v", directory.verified)
	}
}

func TestVerifyUserNotFound(t *testing.T) {
	svc := newTestService(t, &stubDirectory{})

	err := svc.VerifyUser(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeactivateUser(t *testing.T) {
	target := uuid.New()
	directory := &stubDirectory{users: map[uuid.UUID]*models.User{
		target: {ID: target, IsActive: true},
	}}
	svc := newTestService(t, directory)

	if err := svc.DeactivateUser(context.Background(), target); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}
	if len(directory.deactivated) != 1 {
		t.Fatalf("expected deactivation write, got %v", directory.deactivated)
	}
}

func TestDeactivateUserAlreadyInactive(t *testing.T) {
	target := uuid.New()
	directory := &stubDirectory{users: map[uuid.UUID]*models.User{
		target: {ID: target, IsActive: false},
	}}
	svc := newTestService(t, directory)

	err := svc.DeactivateUser(context.Background(), target)
	assertCode(t, err, pkgerrors.CodeConflict)
}

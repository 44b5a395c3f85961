package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	authsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/auth"
	usersvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
)

type stubLoginService struct {
	resp *authsvc.LoginResponse
	err  error
}

func (s stubLoginService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return s.resp, s.err
}

func (s stubLoginService) Refresh(ctx context.Context, refreshToken string) (*authsvc.TokenPair, error) {
	return nil, s.err
}

func (s stubLoginService) Logout(ctx context.Context, accessID string) error {
	return s.err
}

func (s stubLoginService) VerifyGST(ctx context.Context, gstin string) (*authsvc.GSTVerificationResponse, error) {
	return &authsvc.GSTVerificationResponse{GSTNumber: gstin, Valid: true}, s.err
}

func (s stubLoginService) IssueTokens(ctx context.Context, userID uuid.UUID, userType enums.UserType) (authsvc.TokenPair, error) {
	return authsvc.TokenPair{}, s.err
}

type stubSignupService struct {
	resp *authsvc.RegisterResponse
	err  error
	got  *authsvc.RegisterRequest
}

func (s *stubSignupService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.RegisterResponse, error) {
	s.got = &req
	return s.resp, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	user := &usersvc.UserDTO{ID: uuid.New(), Email: "ops@alloyworks.in"}
	handler := AuthLogin(stubLoginService{resp: &authsvc.LoginResponse{
		Tokens: authsvc.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"},
		User:   user,
	}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"ops@alloyworks.in","password":"Secret#1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Tokens authsvc.TokenPair `json:"tokens"`
			User   *usersvc.UserDTO  `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Tokens.AccessToken != "access-token" {
		t.Fatalf("expected access token in payload got %+v", envelope.Data.Tokens)
	}
	if envelope.Data.User == nil || envelope.Data.User.Email != user.Email {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	handler := AuthLogin(stubLoginService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body got %d", resp.Code)
	}
}

func TestAuthLoginRejectsMissingFields(t *testing.T) {
	handler := AuthLogin(stubLoginService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"ops@alloyworks.in"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password got %d", resp.Code)
	}
}

func TestAuthLoginMapsServiceError(t *testing.T) {
	handler := AuthLogin(stubLoginService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"ops@alloyworks.in","password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRegisterSuccess(t *testing.T) {
	svc := &stubSignupService{resp: &authsvc.RegisterResponse{
		Tokens: authsvc.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"},
		User:   &usersvc.UserDTO{ID: uuid.New(), Email: "sales@meridianforge.in"},
	}}
	handler := AuthRegister(svc, nil)

	body := `{
		"email": "sales@meridianforge.in",
		"phone": "+919812345678",
		"gst_number": "27AAPFU0939F1ZV",
		"password": "Secret#123",
		"company_name": "Meridian Forge",
		"contact_person": "S. Rao",
		"user_type": "seller"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.got == nil || svc.got.CompanyName != "Meridian Forge" {
		t.Fatalf("expected register payload to reach service, got %+v", svc.got)
	}
}

func TestAuthRegisterRejectsBadUserType(t *testing.T) {
	handler := AuthRegister(&stubSignupService{}, nil)

	body := `{
		"email": "sales@meridianforge.in",
		"phone": "+919812345678",
		"gst_number": "27AAPFU0939F1ZV",
		"password": "Secret#123",
		"company_name": "Meridian Forge",
		"contact_person": "S. Rao",
		"user_type": "wholesaler"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad user_type got %d", resp.Code)
	}
}

func TestAuthVerifyGST(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/v1/auth/verify-gst/{gst}", AuthVerifyGST(stubLoginService{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify-gst/27AAPFU0939F1ZV", nil)
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data authsvc.GSTVerificationResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Valid {
		t.Fatalf("expected valid gst in payload got %+v", envelope.Data)
	}
	if envelope.Data.GSTNumber != "27AAPFU0939F1ZV" {
		t.Fatalf("expected echoed gst number got %+v", envelope.Data)
	}
}

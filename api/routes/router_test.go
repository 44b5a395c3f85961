package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	adminsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/admin"
	authsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/auth"
	convsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/conversations"
	productsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/products"
	usersvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
	pkgauth "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth/session"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, refreshToken string) (*authsvc.TokenPair, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) VerifyGST(ctx context.Context, gstin string) (*authsvc.GSTVerificationResponse, error) {
	return &authsvc.GSTVerificationResponse{}, nil
}

func (stubAuthService) IssueTokens(ctx context.Context, userID uuid.UUID, userType enums.UserType) (authsvc.TokenPair, error) {
	return authsvc.TokenPair{}, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req authsvc.RegisterRequest) (*authsvc.RegisterResponse, error) {
	return &authsvc.RegisterResponse{}, nil
}

type stubUsersService struct{}

func (stubUsersService) GetMe(ctx context.Context, userID uuid.UUID) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: userID}, nil
}

func (stubUsersService) UpdateMe(ctx context.Context, userID uuid.UUID, input usersvc.UpdateProfileInput) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: userID}, nil
}

func (stubUsersService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*usersvc.PublicProfileDTO, error) {
	return &usersvc.PublicProfileDTO{ID: userID}, nil
}

type stubProductsService struct{}

func (stubProductsService) Create(ctx context.Context, sellerID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductsService) Update(ctx context.Context, sellerID, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProductsService) Delete(ctx context.Context, sellerID, productID uuid.UUID) error {
	return nil
}

func (stubProductsService) GetDetail(ctx context.Context, productID uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID}, nil
}

func (stubProductsService) Search(ctx context.Context, criteria productsvc.SearchCriteria) (*productsvc.SearchResult, error) {
	return &productsvc.SearchResult{Skip: criteria.Skip, Limit: criteria.Limit}, nil
}

func (stubProductsService) ListMine(ctx context.Context, sellerID uuid.UUID) ([]productsvc.ProductDTO, error) {
	return nil, nil
}

func (stubProductsService) UploadImages(ctx context.Context, sellerID, productID uuid.UUID, files []productsvc.UploadFile, makePrimary bool) (*productsvc.UploadResult, error) {
	return &productsvc.UploadResult{}, nil
}

type stubConversationsService struct{}

func (stubConversationsService) Start(ctx context.Context, buyerID, productID uuid.UUID) (*convsvc.ConversationDTO, error) {
	return &convsvc.ConversationDTO{}, nil
}

func (stubConversationsService) ListMine(ctx context.Context, userID uuid.UUID) ([]convsvc.ConversationDTO, error) {
	return nil, nil
}

func (stubConversationsService) GetThread(ctx context.Context, userID, conversationID uuid.UUID) (*convsvc.ThreadDTO, error) {
	return &convsvc.ThreadDTO{}, nil
}

func (stubConversationsService) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, input convsvc.SendMessageInput) (*convsvc.MessageDTO, error) {
	return &convsvc.MessageDTO{}, nil
}

type stubAdminService struct{}

func (stubAdminService) Login(ctx context.Context, username, password string) (*adminsvc.LoginResult, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAdminService) Dashboard(ctx context.Context) (*adminsvc.DashboardDTO, error) {
	return &adminsvc.DashboardDTO{}, nil
}

func (stubAdminService) ListUsers(ctx context.Context, skip, limit int) ([]usersvc.UserDTO, error) {
	return nil, nil
}

func (stubAdminService) VerifyUser(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (stubAdminService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
		Uploads: config.UploadsConfig{Dir: "uploads", MaxUploadMB: 5},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            stubPinger{},
		Redis:         (*redis.Client)(nil),
		Sessions:      stubSessionChecker{},
		Auth:          stubAuthService{},
		Register:      stubRegisterService{},
		Users:         stubUsersService{},
		Products:      stubProductsService{},
		Conversations: stubConversationsService{},
		Admin:         stubAdminService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, adminRole *enums.AdminRole) string {
	t.Helper()
	token, err := pkgauth.MintToken(cfg.JWT, time.Now(), pkgauth.TokenPayload{
		UserID:    uuid.New(),
		UserType:  enums.UserTypeBoth,
		AdminRole: adminRole,
		TokenType: enums.TokenTypeAccess,
		JTI:       session.NewSessionID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAuthedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for profile got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	regular := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	regular.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, regular)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	role := enums.AdminRoleSuperAdmin
	admin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, &role))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestAdminDeactivateRequiresSuperAdmin(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := "/api/v1/admin/users/" + uuid.NewString() + "/deactivate"

	moderator := enums.AdminRoleModerator
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, &moderator))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator got %d", resp.Code)
	}

	super := enums.AdminRoleSuperAdmin
	req = httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, &super))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin got %d", resp.Code)
	}
}

func TestPublicSearchNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=10", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public search got %d", resp.Code)
	}
}

func TestPublicProfileNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+uuid.NewString()+"/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public profile got %d", resp.Code)
	}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/controllers"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/middleware"
	adminsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/admin"
	authsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/auth"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/catalog"
	convsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/conversations"
	productsvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/products"
	usersvc "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/internal/users"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth/session"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/metrics"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            controllers.Pinger
	Redis         *redis.Client
	Sessions      session.AccessSessionChecker
	HTTPMetrics   *metrics.HTTPMetrics
	Gatherer      prometheus.Gatherer
	Auth          authsvc.Service
	Register      authsvc.RegisterService
	Users         usersvc.Service
	Products      productsvc.Service
	Catalog       *catalog.Repository
	Conversations convsvc.Service
	Admin         adminsvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	authed := middleware.Auth(cfg.JWT, d.Sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, d.DB, d.Redis, logg))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// Derivatives are written under the upload dir and served as static files.
	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
	r.Get("/uploads/*", uploadsFS.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.Register, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
			r.Get("/verify-gst/{gst}", controllers.AuthVerifyGST(d.Auth, logg))
			r.With(authed).Post("/logout", controllers.AuthLogout(d.Auth, logg))
		})

		r.Get("/categories", controllers.CatalogCategories(d.Catalog, logg))
		r.Get("/materials", controllers.CatalogMaterials(d.Catalog, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsSearch(d.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", controllers.ProductsCreate(d.Products, logg))
				r.Get("/mine", controllers.ProductsMine(d.Products, logg))
				r.Put("/{productId}", controllers.ProductsUpdate(d.Products, logg))
				r.Delete("/{productId}", controllers.ProductsDelete(d.Products, logg))
				r.Post("/{productId}/images", controllers.ProductsUploadImages(d.Products, cfg.Uploads, logg))
			})

			r.Get("/{productId}", controllers.ProductsDetail(d.Products, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/me", controllers.UsersMe(d.Users, logg))
				r.Put("/me", controllers.UsersUpdateMe(d.Users, logg))
			})
			r.Get("/{userId}/profile", controllers.UsersPublicProfile(d.Users, logg))
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Use(authed)
			r.Post("/", controllers.ConversationsStart(d.Conversations, logg))
			r.Get("/", controllers.ConversationsMine(d.Conversations, logg))
			r.Get("/{conversationId}", controllers.ConversationsThread(d.Conversations, logg))
			r.Post("/{conversationId}/messages", controllers.ConversationsSend(d.Conversations, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AdminLogin(d.Admin, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed, middleware.RequireAdmin(logg))
				r.Get("/dashboard", controllers.AdminDashboard(d.Admin, logg))
				r.Get("/users", controllers.AdminListUsers(d.Admin, logg))
				r.Post("/users/{userId}/verify", controllers.AdminVerifyUser(d.Admin, logg))
				r.With(middleware.RequireRole(enums.AdminRoleSuperAdmin, logg)).Post("/users/{userId}/deactivate", controllers.AdminDeactivateUser(d.Admin, logg))
			})
		})
	})

	return r
}

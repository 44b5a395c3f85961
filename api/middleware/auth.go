package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/api/responses"
	pkgAuth "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/auth/session"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/config"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/enums"
	pkgerrors "github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/errors"
	"github.com/VarunVijay1912/Inventory-Exchange-Backend-Code/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseToken(cfg, token, enums.TokenTypeAccess)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			// Admin tokens carry no Redis session; user tokens must still
			// have theirs.
			if verifier != nil && claims.AdminRole == nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxUserType, string(claims.UserType))
			ctx = context.WithValue(ctx, ctxAccessID, claims.ID)
			if claims.AdminRole != nil {
				ctx = context.WithValue(ctx, ctxAdminRole, string(*claims.AdminRole))
			}

			if logg != nil {
				fields := map[string]any{
					"user_id":   claims.UserID.String(),
					"user_type": string(claims.UserType),
				}
				if claims.AdminRole != nil {
					fields["actor_role"] = string(*claims.AdminRole)
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

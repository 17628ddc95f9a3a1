package middleware

import (
	"net/http"

	"event-seating/internal/data/entity"
	"event-seating/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Requester resolves the caller's identity for the reservation core. A
// request carrying X-Admin-Token that matches the configured bcrypt hash is
// elevated; everything else is an ordinary requester. This middleware is
// the boundary stand-in for the identity collaborator - the core only ever
// sees the resolved entity.Requester value.
func Requester(adminTokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester := entity.Requester{}

			token := r.Header.Get("X-Admin-Token")
			if token != "" && adminTokenHash != "" {
				err := bcrypt.CompareHashAndPassword([]byte(adminTokenHash), []byte(token))
				if err == nil {
					requester.IsAdmin = true
				} else {
					logger.Warn("Rejected admin token",
						zap.String("path", r.URL.Path),
						zap.String("ip", r.RemoteAddr),
					)
				}
			}

			ctx := utils.SetRequesterContext(r.Context(), requester)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin gates a route on the resolved requester being elevated.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester := utils.GetRequesterFromContext(r.Context())
			if !requester.IsAdmin {
				logger.Warn("Non-admin access attempt",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/auth"
	"skin-diagnosis-api/internal/models"
)

type contextKey string

// ClaimsKey is the request-context key holding the verified token claims.
const ClaimsKey contextKey = "claims"

// DoctorResolver confirms the token subject still exists.
type DoctorResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
}

// publicRoutes never require authentication.
var publicRoutes = map[string]bool{
	"/":                      true,
	"/ready":                 true,
	"/users/register-doctor": true,
	"/users/login":           true,
	"/metrics":               true,
	"/docs":                  true,
	"/openapi.json":          true,
	"/redoc":                 true,
}

// AuthGate returns the global authentication middleware. Requests to public
// routes pass through untouched; everything else requires a valid
// `Authorization: Bearer <token>` header. The token is verified once here
// and the claims are attached to the request context, so handlers never
// re-parse the header. When a resolver is given, the gate also confirms the
// token's doctor still exists. When bypass is set (test profile) the gate is
// disabled entirely.
func AuthGate(tokens *auth.TokenService, doctors DoctorResolver, bypass bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass || publicRoutes[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn().Str("path", r.URL.Path).Msg("Missing or invalid Authorization header")
				writeAuthError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := tokens.Verify(token)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token verification failed")
				if errors.Is(err, auth.ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, "Token has expired")
				} else {
					writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}

			if doctors != nil {
				doctorID, err := uuid.Parse(claims.DoctorID)
				if err != nil {
					writeAuthError(w, http.StatusUnauthorized, "Invalid token")
					return
				}
				if _, err := doctors.GetByID(r.Context(), doctorID); err != nil {
					if apperrors.KindOf(err) == apperrors.KindNotFound {
						log.Warn().Str("doctor_id", claims.DoctorID).Msg("Token subject no longer exists")
						writeAuthError(w, http.StatusUnauthorized, "Doctor not found.")
						return
					}
					log.Error().Err(err).Msg("Failed to resolve token subject")
					writeAuthError(w, http.StatusInternalServerError, "Internal server error during authentication.")
					return
				}
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims extracts the verified token claims from the request context.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

func writeAuthError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

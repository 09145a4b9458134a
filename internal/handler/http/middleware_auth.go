package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/utils"
)

// auth guards end-user routes. It extracts the bearer token from the
// `Authorization` header, verifies it against the auth service, and stores the
// authenticated subject ID and account kind in the request context.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerTokenFromRequest(r)
		if err != nil {
			log.Warn().Err(err).Str("func", "Handler.auth").Msg("missing or malformed Authorization header")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.VerifyToken(r.Context(), tokenString)
		if err != nil {
			log.Warn().Err(err).Str("func", "Handler.auth").Msg("token verification failed")
			http.Error(w, "invalid or expired token", statusFromError(err))
			return
		}

		ctx := context.WithValue(r.Context(), utils.SubjectIDCtxKey, token.SubjectID())
		ctx = context.WithValue(ctx, utils.AccountKindCtxKey, token.Claims.Kind)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminAuth guards administrator routes. Tokens issued to end users are
// rejected even when otherwise valid.
func (h *Handler) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerTokenFromRequest(r)
		if err != nil {
			log.Warn().Err(err).Str("func", "Handler.adminAuth").Msg("missing or malformed Authorization header")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AdminService.VerifyAdminToken(r.Context(), tokenString)
		if err != nil {
			log.Warn().Err(err).Str("func", "Handler.adminAuth").Msg("admin token verification failed")
			http.Error(w, "invalid or expired token", statusFromError(err))
			return
		}

		ctx := context.WithValue(r.Context(), utils.SubjectIDCtxKey, token.SubjectID())
		ctx = context.WithValue(ctx, utils.AccountKindCtxKey, token.Claims.Kind)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerTokenFromRequest extracts the token value from the `Authorization`
// header of the request.
//
// Returns:
//   - [ErrEmptyAuthorizationHeader] if the header is absent;
//   - [ErrInvalidAuthorizationHeader] if the header has no token part;
//   - [ErrEmptyToken] if the token part is an empty string.
func bearerTokenFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(header)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

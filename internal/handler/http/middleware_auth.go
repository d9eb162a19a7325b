// Package http implements the HTTP transport layer of the server.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, and tracing concerns are all
// handled at this layer before requests are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/service"
	"github.com/MKhiriev/go-spend-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces identity-token authentication and
// resolves the caller's sheet mapping.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// with [utils.ValidateAndParseJWTToken], and asks the user service to ensure
// the authenticated user has a provisioned workbook. On success the user's
// [models.SyncContext] is stored in the request context under
// [utils.SyncContextCtxKey] before delegating to the next handler.
//
// Requests are rejected with:
//   - 401 Unauthorized when the header is absent, malformed, or the token
//     does not verify
//   - 502 Bad Gateway when a first-contact workbook provision fails
//     ([service.ErrUserNotProvisioned])
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.authConfig.TokenSignKey, h.authConfig.TokenIssuer)
		if err != nil {
			log.Err(err).Msg("token verification failed")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := h.services.UserService.EnsureUser(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotProvisioned) {
				log.Err(err).Str("user_id", token.UserID).Msg("workbook provision failed")
				http.Error(w, service.ErrUserNotProvisioned.Error(), http.StatusBadGateway)
				return
			}
			log.Err(err).Str("user_id", token.UserID).Msg("user lookup failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		// Store the caller's sync context so downstream handlers never
		// re-resolve the sheet mapping.
		ctx = context.WithValue(ctx, utils.SyncContextCtxKey, user.SyncContext())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mailmahee/nifty/internal/logger"
	"github.com/mailmahee/nifty/internal/utils"
)

// auth is an HTTP middleware that enforces admin JWT authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// against the configured sign key and issuer and, on success, stores the
// token subject in the request context under [utils.OperatorCtxKey].
//
// Rejections are answered with 401 and a JSON error body:
//   - missing header ([ErrEmptyAuthorizationHeader])
//   - malformed header ([ErrInvalidAuthorizationHeader])
//   - expired token ([ErrTokenExpired])
//   - any other validation failure ([ErrInvalidToken])
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader, http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.opts.TokenSignKey, h.opts.TokenIssuer)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				log.Err(err).Msg("token expired")
				utils.WriteError(w, ErrTokenExpired, http.StatusUnauthorized)
			default:
				log.Err(err).Msg("error occurred during parsing token")
				utils.WriteError(w, ErrInvalidToken, http.StatusUnauthorized)
			}
			return
		}

		ctx := context.WithValue(r.Context(), utils.OperatorCtxKey, token.Operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

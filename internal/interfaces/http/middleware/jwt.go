package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/infrastructure/logger"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator validates a bearer token
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// JWTConfig holds configuration for JWTAuth
type JWTConfig struct {
	Validator TokenValidator
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuth requires a valid admin bearer token and stores the claims in the
// gin context and the token subject in the request context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, log, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		token := strings.TrimPrefix(header, BearerPrefix)
		if token == header || token == "" {
			abortUnauthorized(c, log, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}

		claims, err := cfg.Validator.Validate(token)
		if err != nil {
			abortUnauthorized(c, log, err, "Token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Request = c.Request.WithContext(logger.WithSubject(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error, message string) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", message),
		zap.String("path", c.Request.URL.Path),
	)

	code := dto.ErrCodeUnauthorized
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrTokenNotYetValid):
		code = dto.ErrCodeTokenInvalid
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(code, "Authentication required", message+": "+err.Error()).
			WithRequestID(GetRequestID(c)))
}

// GetJWTClaims returns the claims stored by JWTAuth, or nil
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
	"github.com/sangkips/stockroom-api/internal/presentation/http/handler"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/sangkips/stockroom-api/pkg/logger"
	"github.com/sangkips/stockroom-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. Tokens revoked by
// logout are refused until they expire.
func AuthMiddleware(jwtManager *utils.JWTManager, revoked repository.TokenRevocationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.TokenID())
		if err != nil {
			response.Error(c, apperror.NewUpstreamError(err))
			return
		}
		if isRevoked {
			response.Unauthorized(c, "Token has been revoked")
			return
		}

		role := enum.Role(claims.Role)
		c.Set(handler.CtxUserID, claims.UserID)
		c.Set(handler.CtxUsername, claims.Username)
		c.Set(handler.CtxRole, role)
		c.Set(handler.CtxClaims, claims)
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(),
			logger.FromContext(c.Request.Context()).With("user_id", claims.UserID, "role", role)))

		c.Next()
	}
}

// RequireRole creates a middleware that admits only the given roles
func RequireRole(roles ...enum.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := handler.GetUserRole(c)
		if role == "" {
			response.Forbidden(c, "Access denied")
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
	}
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/internal/domain/enum"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/request"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/sangkips/stockroom-api/pkg/utils"
)

// Context keys set by the auth middleware
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxClaims   = "claims"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(CtxUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	role, _ := c.Get(CtxRole)
	r, _ := role.(enum.Role)
	return r
}

// GetClaims extracts the validated token claims from the Gin context
func GetClaims(c *gin.Context) *utils.JWTClaims {
	claims, exists := c.Get(CtxClaims)
	if !exists {
		return nil
	}
	jc, _ := claims.(*utils.JWTClaims)
	return jc
}

// bindJSON binds the body into req and writes the error response on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, request.BindingError(err))
		return false
	}
	return true
}

// bindQuery binds query parameters into req and writes the error response on failure
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, request.BindingError(err))
		return false
	}
	return true
}

// parseID reads a UUID path parameter
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// optionalID parses a UUID that already passed binding validation
func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := utils.ParseUUID(s)
	if err != nil {
		return nil
	}
	return &id
}

// parseDate parses a date that already passed binding validation
func parseDate(c *gin.Context, field, value string) (*time.Time, bool) {
	t, err := request.ParseDate(value)
	if err != nil {
		response.Error(c, apperror.NewFieldError(field, field+" must be a date formatted as 2006-01-02"))
		return nil, false
	}
	return t, true
}

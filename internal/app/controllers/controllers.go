package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/middleware"
)

// bindJSON binds the request body into obj, writing a 400 with per-field
// validation details on failure.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: middleware.BindingErrorDetail(err),
		})
		return false
	}
	return true
}

// parseIDParam parses a positive integer ID parameter from the request path.
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+paramName+" parameter"),
		})
		return 0, false
	}
	return id, true
}

// principalFromContext rebuilds the authenticated principal from the context
// values set by the auth middleware.
func principalFromContext(ctx *gin.Context) (models.Principal, bool) {
	userID, ok := ctx.Get("userID")
	if !ok {
		abortUnauthenticated(ctx)
		return models.Principal{}, false
	}
	id, ok := userID.(int64)
	if !ok || id <= 0 {
		abortUnauthenticated(ctx)
		return models.Principal{}, false
	}

	role, ok := ctx.Get("roleType")
	if !ok {
		abortUnauthenticated(ctx)
		return models.Principal{}, false
	}
	roleStr, ok := role.(string)
	if !ok {
		abortUnauthenticated(ctx)
		return models.Principal{}, false
	}

	return models.Principal{ID: id, Role: models.RoleType(roleStr)}, true
}

func abortUnauthenticated(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
		Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
	})
}

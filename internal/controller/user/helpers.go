package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/service"
)

// userIDHeader carries the trusted identity attached by the upstream auth
// layer. The engine never authenticates; it only authorizes by ownership.
const userIDHeader = "X-User-ID"

func currentUserID(ctx *gin.Context) (uint, bool) {
	raw := ctx.GetHeader(userIDHeader)
	if raw == "" {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing " + userIDHeader + " header"})
		return 0, false
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid " + userIDHeader + " header"})
		return 0, false
	}
	return uint(val), true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// respondError maps the service error taxonomy onto HTTP statuses. Unknown
// errors become opaque 500s.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrIncompleteProfile):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidSession):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrSessionExpired):
		ctx.JSON(http.StatusGone, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrQuestionNotInSession):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrPoolExhausted):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNoAnswers):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotSubmitted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrUpstreamGeneration):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

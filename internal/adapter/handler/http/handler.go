package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:      http.StatusInternalServerError,
	domain.ErrDataNotFound:  http.StatusNotFound,
	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,

	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrEmptyCart:           http.StatusBadRequest,
	domain.ErrInvalidCartItem:     http.StatusBadRequest,
	domain.ErrProductNotFound:     http.StatusBadRequest,
	domain.ErrCatalogUnavailable:  http.StatusInternalServerError,
	domain.ErrInvalidOrderStatus:  http.StatusBadRequest,
	domain.ErrInvalidProductName:  http.StatusBadRequest,
	domain.ErrInvalidProductPrice: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for sentinel, status := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest,
		errorResponse{Code: "bad_request", Message: domain.ErrBadRequest.Error()})
}

// handleError maps a domain error to its status. Internal detail is
// logged, never sent to the client.
func (h *Handler) handleError(ctx *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("error processing request", zap.Error(err))
		ctx.AbortWithStatusJSON(status,
			errorResponse{Code: codeFromStatus(status), Message: domain.ErrInternal.Error()})
		return
	}
	ctx.AbortWithStatusJSON(status,
		errorResponse{Code: codeFromStatus(status), Message: err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sklep-internetowy/backend/internal/core/domain"
	"github.com/sklep-internetowy/backend/internal/core/port"
	"go.uber.org/zap"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const authPayloadKey = "auth_payload"
const requestIDHeader = "X-Request-Id"

func handleAbort(ctx *gin.Context, err error) {
	status := statusFromError(err)
	ctx.AbortWithStatusJSON(status,
		errorResponse{Code: codeFromStatus(status), Message: err.Error()})
}

// authCheck verifies the bearer token and stores the verified payload
// in the request context. The subject in the payload is the only
// trusted actor identity; client-supplied user ids are never used.
func authCheck(verifier port.TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Split(header, " ")
		if len(words) != 2 {
			handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		payload, err := verifier.VerifyToken(words[1])
		if err != nil {
			handleAbort(ctx, err)
			return
		}

		ctx.Set(authPayloadKey, payload)

		ctx.Next()
	}
}

// roleCheck gates a route on the elevated realm role. Must run after
// authCheck.
func roleCheck(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !getAuthPayload(ctx).HasRole(role) {
			handleAbort(ctx, domain.ErrForbidden)
			return
		}
		ctx.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.Request.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header(requestIDHeader, requestID)

		ctx.Next()

		log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(authPayloadKey).(*port.TokenPayload)
}

func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "UP"})
}

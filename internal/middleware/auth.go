package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brixium/brixium-bank/pkg/tokenpkg"
	"github.com/brixium/brixium-bank/pkg/web"
)

// Authorization header constants.
const (
	AuthHeaderKey     = "authorization"
	AuthTypeBearer    = "bearer"
	AuthPayloadKey    = "authorization_payload"
	errAdminsOnlyText = "admin privileges required"
)

// AuthMiddleware verifies the bearer token and stores its payload under
// AuthPayloadKey for downstream handlers.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authType)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		ctx.Set(AuthPayloadKey, payload)
		ctx.Next()
	}
}

// AdminOnly rejects requests whose token was not issued to an admin.
// It must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload := ctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)

		if !payload.IsAdmin {
			err := errors.New(errAdminsOnlyText)
			ctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(err))

			return
		}

		ctx.Next()
	}
}

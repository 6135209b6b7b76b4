package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/internal/dto"
	"github.com/lshigami/mockinterview/internal/model"
	"github.com/lshigami/mockinterview/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	userIDKey = "userID"
	userKey   = "user"
)

// RequireAuth verifies the bearer token and loads the user it names.
// Tokens for users that no longer exist are rejected.
func RequireAuth(tokens service.TokenService, auth service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := bearerToken(ctx.GetHeader("Authorization"))
		if tokenStr == "" {
			abortUnauthorized(ctx, "Not authenticated")
			return
		}
		userID, err := tokens.Parse(tokenStr)
		if err != nil {
			abortUnauthorized(ctx, "Invalid or expired token")
			return
		}
		user, err := auth.CurrentUser(userID)
		if err != nil {
			if !errors.Is(err, service.ErrUserNotFound) {
				log.Error().Err(err).Uint("userID", userID).Msg("Failed to load authenticated user")
			}
			abortUnauthorized(ctx, "Invalid or expired token")
			return
		}
		ctx.Set(userIDKey, user.ID)
		ctx.Set(userKey, user)
		ctx.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortUnauthorized(ctx *gin.Context, msg string) {
	ctx.Header("WWW-Authenticate", "Bearer")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: msg})
}

// CurrentUserID returns the id stored by RequireAuth.
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func CurrentUser(ctx *gin.Context) (*model.User, bool) {
	v, ok := ctx.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}

package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
)

const userKey = "auth_user"

// TokenResolver turns a bearer token into the current user record. The
// implementation re-reads the user from storage on every request, so a
// deleted account is locked out even with a still-valid token.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// Authenticate extracts the bearer token, resolves it and stashes the
// user in the request's user values for handlers to pick up.
func Authenticate(resolver TokenResolver, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			user, err := resolver.ResolveToken(stdCtx, tokenString)
			if err != nil {
				logger.Warn("token rejected", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.SetUserValue(userKey, user)
			next(ctx)
		}
	}
}

// UserFromRequest returns the user stored by Authenticate, or nil.
func UserFromRequest(ctx *fasthttp.RequestCtx) *domain.User {
	user, _ := ctx.UserValue(userKey).(*domain.User)
	return user
}

// extractToken accepts only the Bearer scheme; any other Authorization
// header is treated as absent.
func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskvault/backend/api/transport"
	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/pkg/httpcontext"
	authUC "github.com/taskvault/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register a new user
// @Tags auth
// @Router /register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Login == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Register(stdCtx, req.Login, req.Password, req.Role)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.UserResponse{
		ID:             user.ID,
		Login:          user.Login,
		HashedPassword: user.HashedPassword,
	})
}

// @Summary Issue an access token
// @Tags auth
// @Router /token [post]
func (h *AuthHandler) Token(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseTokenRequest(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	token, err := h.uc.Login(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// parseTokenRequest accepts a JSON body and falls back to the
// form-encoded password grant shape (username/password fields).
func (h *AuthHandler) parseTokenRequest(ctx *fasthttp.RequestCtx) (transport.TokenRequest, bool) {
	var req transport.TokenRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err == nil && req.Username != "" {
		return req, true
	}

	args := ctx.PostArgs()
	req.Username = string(args.Peek("username"))
	req.Password = string(args.Peek("password"))
	return req, req.Username != ""
}

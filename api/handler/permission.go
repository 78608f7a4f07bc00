package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskvault/backend/api/transport"
	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/pkg/httpcontext"
	permissionUC "github.com/taskvault/backend/usecase/permission"
)

type PermissionHandler struct {
	baseHandler
	uc *permissionUC.UseCase
}

func NewPermissionHandler(uc *permissionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PermissionHandler {
	return &PermissionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Grant task access to another user
// @Tags permissions
// @Router /tasks/{id}/permissions/create [post]
func (h *PermissionHandler) CreateGrant(ctx *fasthttp.RequestCtx) {
	user := h.currentUser(ctx)
	if user == nil {
		return
	}

	taskID, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}

	var req transport.GrantCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.UserID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	grant, err := h.uc.CreateGrant(stdCtx, user, taskID, req.UserID, req.CanRead, req.CanUpdate)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, grant)
}

// @Summary Update grant flags
// @Tags permissions
// @Router /tasks/{id}/permissions/update/{gid} [patch]
func (h *PermissionHandler) UpdateGrant(ctx *fasthttp.RequestCtx) {
	user := h.currentUser(ctx)
	if user == nil {
		return
	}

	taskID, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}
	grantID, ok := h.pathID(ctx, "gid")
	if !ok {
		return
	}

	var req transport.GrantUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	grant, err := h.uc.UpdateGrant(stdCtx, user, taskID, grantID, req.CanRead, req.CanUpdate)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, grant)
}

// @Summary Revoke a grant
// @Tags permissions
// @Router /tasks/{id}/permissions/delete/{gid} [delete]
func (h *PermissionHandler) DeleteGrant(ctx *fasthttp.RequestCtx) {
	user := h.currentUser(ctx)
	if user == nil {
		return
	}

	taskID, ok := h.pathID(ctx, "id")
	if !ok {
		return
	}
	grantID, ok := h.pathID(ctx, "gid")
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteGrant(stdCtx, user, taskID, grantID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.DetailResponse{Detail: "Permission deleted"})
}

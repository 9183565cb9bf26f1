package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appuser "github.com/readieg/library/internal/application/user"
	"github.com/readieg/library/internal/interface/http/dto"
	"github.com/readieg/library/internal/interface/http/middleware"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/response"
)

// UserHandler 管理端用户接口
// 所有路由都挂在RequireAdmin之后
type UserHandler struct {
	listUsers *appuser.ListUsersUseCase
	setRole   *appuser.SetRoleUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(listUsers *appuser.ListUsersUseCase, setRole *appuser.SetRoleUseCase) *UserHandler {
	return &UserHandler{listUsers: listUsers, setRole: setRole}
}

// ListUsers 用户列表
// @Summary      用户列表
// @Description  按创建时间倒序，最多200条，不含密码哈希
// @Tags         管理
// @Produce      json
// @Security     SessionCookie
// @Success      200 {array}  user.View
// @Failure      401 {object} response.ErrorBody "未登录"
// @Failure      403 {object} response.ErrorBody "不是管理员"
// @Failure      500 {object} response.ErrorBody "Server error"
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	views, err := h.listUsers.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, serverError(err))
		return
	}
	response.Success(c, views)
}

// SetRole 修改用户角色
// @Summary      修改用户角色
// @Tags         管理
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id       path  string              true  "用户ID"
// @Param        request  body  dto.SetRoleRequest  true  "角色"
// @Success      200 {object} response.OKBody
// @Failure      400 {object} response.ErrorBody "Invalid user id / Invalid role"
// @Failure      404 {object} response.ErrorBody "User not found"
// @Router       /api/admin/users/{id}/role [put]
func (h *UserHandler) SetRole(c *gin.Context) {
	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	actor := middleware.GetSession(c).UserID
	err := h.setRole.Execute(c.Request.Context(), actor, c.Param("id"), appuser.SetRoleRequest{Role: req.Role})
	if err != nil {
		response.Error(c, serverError(err))
		return
	}
	response.OK(c)
}

// serverError 管理接口的5xx统一对外显示"Server error"
func serverError(err error) error {
	appErr := apperrors.GetAppError(err)
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		return apperrors.Wrap(err, apperrors.ErrInternal.Message)
	}
	return err
}

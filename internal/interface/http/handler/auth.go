package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/readieg/library/internal/interface/http/dto"
	"github.com/readieg/library/internal/interface/http/middleware"
	"github.com/readieg/library/pkg/response"
)

// AuthHandler 会话相关接口（不含登录注册）
type AuthHandler struct {
	sessions *middleware.SessionMiddleware
}

// NewAuthHandler 创建会话处理器
func NewAuthHandler(sessions *middleware.SessionMiddleware) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Me 当前会话
// @Summary      当前会话
// @Description  匿名或会话失效时 authenticated=false，user=null
// @Tags         会话
// @Produce      json
// @Success      200 {object} dto.MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp := dto.MeResponse{}
	if u := middleware.GetUser(c); u != nil {
		view := u.View()
		resp.Authenticated = true
		resp.User = &view
	}
	response.Success(c, resp)
}

// Logout 退出登录
// @Summary      退出登录
// @Description  销毁服务端会话并清除Cookie，重复调用无副作用
// @Tags         会话
// @Produce      json
// @Success      200 {object} response.OKBody
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c)
}

package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/service"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 用户注册
// POST /api?endpoint=auth&action=register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrNotUniEmail),
			errors.Is(err, service.ErrPasswordShort):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, "User with this email already exists")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Login 用户登录
// POST /api?endpoint=auth&action=login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing email or password")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			response.BadRequest(c, "Missing email or password")
		case errors.Is(err, service.ErrInvalidCredentials):
			// 邮箱不存在与密码错误必须返回完全相同的信息
			response.Unauthorized(c, "Invalid credentials")
		case errors.Is(err, service.ErrNotVerified):
			response.Forbidden(c, "Please verify your email first")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Verify 邮箱验证
// POST /api?endpoint=auth&action=verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid verification token")
		return
	}

	if err := h.authSvc.Verify(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, service.ErrInvalidVerifyToken) {
			response.BadRequest(c, "Invalid verification token")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "Email verified successfully"})
}

// Resend 重发验证邮件（重新签发 Token，旧 Token 失效）
// POST /api?endpoint=auth&action=resend
func (h *AuthHandler) Resend(c *gin.Context) {
	var req dto.ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing email")
		return
	}

	result, err := h.authSvc.Resend(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			response.BadRequest(c, "Missing email")
		case errors.Is(err, service.ErrUserNotFound):
			response.BadRequest(c, "No account with this email")
		case errors.Is(err, service.ErrAlreadyVerified):
			response.BadRequest(c, "Email already verified")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout 用户登出（当前 Token 加入黑名单）
// POST /api?endpoint=auth&action=logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "Logged out"})
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 所有成功响应直接返回领域负载，所有错误响应统一为 {"error": <message>}，
// 与前端约定一致。存储层错误文本不允许出现在 message 中。

// ErrorBody 错误响应体
type ErrorBody struct {
	Error string `json:"error"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created 201 创建成功
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500，屏蔽内部细节
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

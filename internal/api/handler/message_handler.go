package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/service"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/response"
)

// MessageHandler 私信模块 HTTP 处理器
type MessageHandler struct {
	msgSvc service.MessageService
}

// NewMessageHandler 创建 MessageHandler
func NewMessageHandler(msgSvc service.MessageService) *MessageHandler {
	return &MessageHandler{msgSvc: msgSvc}
}

// Get 拉取与某用户的会话
// 注意：读取会把对方发来的消息标记为已读（契约内的写副作用）
// GET /api?endpoint=messages&action=get
func (h *MessageHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	otherUserID, err := strconv.ParseInt(c.Query("other_user_id"), 10, 64)
	if err != nil || otherUserID <= 0 {
		response.BadRequest(c, "Invalid user IDs")
		return
	}

	result, err := h.msgSvc.GetConversation(c.Request.Context(), userID, otherUserID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUserID) {
			response.BadRequest(c, "Invalid user IDs")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Send 发送私信（sender 取自认证身份）
// POST /api?endpoint=messages&action=send
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	result, err := h.msgSvc.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUserID),
			errors.Is(err, service.ErrSelfMessage),
			errors.Is(err, service.ErrEmptyMessage):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrReceiverAbsent),
			errors.Is(err, service.ErrItemNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// UnreadCount 当前用户未读消息数
// GET /api?endpoint=messages&action=unread_count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.msgSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

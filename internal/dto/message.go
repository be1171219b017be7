package dto

import "github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"

// ── 私信模块 DTO ──

// ConversationResponse 会话消息列表响应
type ConversationResponse struct {
	Messages []model.DirectMessage `json:"messages"`
}

// SendMessageRequest 发送私信请求
// sender 取自认证身份
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	Message    string `json:"message"`
	ItemID     *int64 `json:"item_id,omitempty"`
}

// SendMessageResponse 发送私信响应
type SendMessageResponse struct {
	Message   string `json:"message"`
	MessageID int64  `json:"message_id"`
}

// UnreadCountResponse 未读消息数响应
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/repository"
)

var (
	ErrInvalidUserID  = errors.New("invalid user IDs")
	ErrEmptyMessage   = errors.New("message content must not be empty")
	ErrSelfMessage    = errors.New("cannot message yourself")
	ErrReceiverAbsent = errors.New("receiver not found")
)

// 会话窗口最多返回 100 条消息
const conversationLimit = 100

// MessageService 私信业务接口
type MessageService interface {
	// GetConversation 返回两人会话并将对方发来的消息标记为已读。
	// 读取附带可观察的写副作用，调用方（及其测试）依赖这一点。
	GetConversation(ctx context.Context, userID, otherUserID int64) (*dto.ConversationResponse, error)
	SendMessage(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	UnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error)
}

type messageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, logger *zap.Logger) MessageService {
	return &messageService{repo: repo, logger: logger}
}

func (s *messageService) GetConversation(ctx context.Context, userID, otherUserID int64) (*dto.ConversationResponse, error) {
	if userID <= 0 || otherUserID <= 0 || userID == otherUserID {
		return nil, ErrInvalidUserID
	}

	messages, err := s.repo.Message.ListConversation(ctx, userID, otherUserID, conversationLimit)
	if err != nil {
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Message.MarkRead(ctx, userID, otherUserID, time.Now()); err != nil {
		s.logger.Error("标记已读失败",
			zap.Int64("receiver_id", userID),
			zap.Int64("sender_id", otherUserID),
			zap.Error(err),
		)
		return nil, err
	}

	if messages == nil {
		messages = []model.DirectMessage{}
	}
	return &dto.ConversationResponse{Messages: messages}, nil
}

func (s *messageService) SendMessage(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if senderID <= 0 || req.ReceiverID <= 0 {
		return nil, ErrInvalidUserID
	}
	if req.ReceiverID == senderID {
		return nil, ErrSelfMessage
	}
	if req.Message == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.repo.User.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverAbsent
		}
		s.logger.Error("查询收件人失败", zap.Error(err))
		return nil, err
	}

	// 商品引用可选，给定时必须存在
	var itemID *int64
	if req.ItemID != nil && *req.ItemID > 0 {
		if _, err := s.repo.Item.GetByID(ctx, *req.ItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrItemNotFound
			}
			s.logger.Error("查询商品失败", zap.Error(err))
			return nil, err
		}
		itemID = req.ItemID
	}

	msg := &model.DirectMessage{
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		ItemID:         itemID,
		MessageContent: req.Message,
	}

	if err := s.repo.Message.Create(ctx, msg); err != nil {
		s.logger.Error("发送私信失败", zap.Error(err))
		return nil, err
	}

	return &dto.SendMessageResponse{
		Message:   "Message sent",
		MessageID: msg.MessageID,
	}, nil
}

func (s *messageService) UnreadCount(ctx context.Context, userID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.repo.Message.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("查询未读数失败", zap.Error(err))
		return nil, err
	}
	return &dto.UnreadCountResponse{Unread: count}, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
)

// DirectMessageRepository 私信数据访问接口
type DirectMessageRepository interface {
	Create(ctx context.Context, msg *model.DirectMessage) error
	// ListConversation 返回两人之间的消息，按时间正序，最多 limit 条
	ListConversation(ctx context.Context, userID, otherUserID int64, limit int) ([]model.DirectMessage, error)
	// MarkRead 将 senderID 发给 receiverID 的所有未读消息标记为已读
	MarkRead(ctx context.Context, receiverID, senderID int64, readAt time.Time) error
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
}

// directMessageRepo DirectMessageRepository 的 GORM 实现
type directMessageRepo struct {
	db *gorm.DB
}

// NewDirectMessageRepo 创建 DirectMessageRepository 实例
func NewDirectMessageRepo(db *gorm.DB) DirectMessageRepository {
	return &directMessageRepo{db: db}
}

func (r *directMessageRepo) Create(ctx context.Context, msg *model.DirectMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *directMessageRepo) ListConversation(ctx context.Context, userID, otherUserID int64, limit int) ([]model.DirectMessage, error) {
	var messages []model.DirectMessage
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *directMessageRepo) MarkRead(ctx context.Context, receiverID, senderID int64, readAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.DirectMessage{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", receiverID, senderID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		}).Error
}

func (r *directMessageRepo) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DirectMessage{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

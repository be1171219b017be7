package model

import "time"

// DirectMessage 私信表 — 对应 direct_messages
// item_id 可空：消息可以不关联任何商品
type DirectMessage struct {
	MessageID      int64      `gorm:"primaryKey;autoIncrement"           json:"message_id"`
	SenderID       int64      `gorm:"not null;index"                     json:"sender_id"`
	ReceiverID     int64      `gorm:"not null;index"                     json:"receiver_id"`
	ItemID         *int64     `json:"item_id,omitempty"`
	MessageContent string     `gorm:"type:text;not null"                 json:"message_content"`
	IsRead         bool       `gorm:"not null;default:false"             json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (DirectMessage) TableName() string { return "direct_messages" }

package model

import "time"

// User 用户表 — 对应 users
// personal_email 与 uni_email 均有数据库唯一约束，注册竞争以约束为准
type User struct {
	UserID            int64      `gorm:"primaryKey;autoIncrement"                    json:"user_id"`
	Name              string     `gorm:"type:varchar(100);not null"                  json:"name"`
	PersonalEmail     string     `gorm:"type:varchar(255);not null;uniqueIndex"      json:"email"`
	UniEmail          string     `gorm:"type:varchar(255);not null;uniqueIndex"      json:"uni_email"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"                  json:"-"`
	IsVerified        bool       `gorm:"not null;default:false"                      json:"is_verified"`
	VerificationToken *string    `gorm:"type:varchar(64)"                            json:"-"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	Role              string     `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	AvatarColor       string     `gorm:"type:varchar(7);not null"                    json:"avatar_color"`
	CreatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

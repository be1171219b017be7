package model

import "time"

// Rental 租借表 — 对应 rentals
type Rental struct {
	RentalID            int64      `gorm:"primaryKey;autoIncrement"           json:"rental_id"`
	ItemID              int64      `gorm:"not null;index"                     json:"item_id"`
	BorrowerID          int64      `gorm:"not null"                           json:"borrower_id"`
	RentalDueDate       time.Time  `gorm:"not null"                           json:"rental_due_date"`
	ReminderSent        bool       `gorm:"not null;default:false"             json:"reminder_sent"`
	ReminderAttemptedAt *time.Time `json:"reminder_attempted_at,omitempty"`
	CreatedAt           time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Rental) TableName() string { return "rentals" }

// UpcomingReminder 到期提醒视图行 — 对应 upcoming_reminders_view
// 视图只暴露 reminder_sent = FALSE 且 24 小时内到期的记录，
// 因此重复扫描天然跳过已确认发送的行
type UpcomingReminder struct {
	RentalID            int64      `json:"rental_id"`
	RentalDueDate       time.Time  `json:"rental_due_date"`
	ReminderAttemptedAt *time.Time `json:"reminder_attempted_at,omitempty"`
	BorrowerID          int64      `json:"borrower_id"`
	BorrowerName        string     `json:"borrower_name"`
	UniEmail            string     `json:"uni_email"`
	ItemID              int64      `json:"item_id"`
	Title               string     `json:"title"`
}

// TableName 指定视图名
func (UpcomingReminder) TableName() string { return "upcoming_reminders_view" }

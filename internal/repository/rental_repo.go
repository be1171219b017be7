package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/model"
)

// RentalRepository 租借数据访问接口
type RentalRepository interface {
	Create(ctx context.Context, rental *model.Rental) error
	// ListUpcomingReminders 读取到期提醒视图（仅含未确认发送的记录）
	ListUpcomingReminders(ctx context.Context) ([]model.UpcomingReminder, error)
	// MarkAttempted 发信前落盘尝试时间，便于区分"已尝试未确认"的记录
	MarkAttempted(ctx context.Context, rentalID int64, at time.Time) error
	// MarkSent 仅在邮件成功发出后调用
	MarkSent(ctx context.Context, rentalID int64) error
}

// rentalRepo RentalRepository 的 GORM 实现
type rentalRepo struct {
	db *gorm.DB
}

// NewRentalRepo 创建 RentalRepository 实例
func NewRentalRepo(db *gorm.DB) RentalRepository {
	return &rentalRepo{db: db}
}

func (r *rentalRepo) Create(ctx context.Context, rental *model.Rental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

func (r *rentalRepo) ListUpcomingReminders(ctx context.Context) ([]model.UpcomingReminder, error) {
	var reminders []model.UpcomingReminder
	err := r.db.WithContext(ctx).
		Order("rental_due_date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *rentalRepo) MarkAttempted(ctx context.Context, rentalID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Rental{}).
		Where("rental_id = ?", rentalID).
		Update("reminder_attempted_at", at).Error
}

func (r *rentalRepo) MarkSent(ctx context.Context, rentalID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Rental{}).
		Where("rental_id = ?", rentalID).
		Update("reminder_sent", true).Error
}

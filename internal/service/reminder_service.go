package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/dto"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/repository"
)

// ReminderService 租借到期提醒扫描
type ReminderService interface {
	SendReminders(ctx context.Context) (*dto.SendRemindersResponse, error)
}

// ReminderMailer 提醒邮件发送依赖（*mailer.Mailer 满足此接口）
type ReminderMailer interface {
	SendRentalReminder(to, title, dueDate string) error
}

type reminderService struct {
	repo   *repository.Repository
	mail   ReminderMailer
	logger *zap.Logger
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(repo *repository.Repository, mail ReminderMailer, logger *zap.Logger) ReminderService {
	return &reminderService{repo: repo, mail: mail, logger: logger}
}

// SendReminders 扫描到期提醒视图并逐条发信。
// 每条记录的顺序固定为：落盘尝试时间 → 发信 → 确认 reminder_sent。
// 中途崩溃只会留下"已尝试未确认"的记录，下次扫描会重试；
// 已确认的记录被视图过滤，重复扫描不会重复发信。
func (s *reminderService) SendReminders(ctx context.Context) (*dto.SendRemindersResponse, error) {
	reminders, err := s.repo.Rental.ListUpcomingReminders(ctx)
	if err != nil {
		s.logger.Error("查询到期提醒失败", zap.Error(err))
		return nil, err
	}

	sent := 0
	for _, rem := range reminders {
		if err := s.repo.Rental.MarkAttempted(ctx, rem.RentalID, time.Now()); err != nil {
			s.logger.Error("落盘提醒尝试时间失败",
				zap.Int64("rental_id", rem.RentalID),
				zap.Error(err),
			)
			continue // 未落盘不发信，避免无痕发送
		}

		dueDate := rem.RentalDueDate.Format("2006-01-02")
		if err := s.mail.SendRentalReminder(rem.UniEmail, rem.Title, dueDate); err != nil {
			s.logger.Warn("发送提醒邮件失败，留待下次扫描重试",
				zap.Int64("rental_id", rem.RentalID),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.Rental.MarkSent(ctx, rem.RentalID); err != nil {
			// 邮件已出但标记失败：下次扫描会重复发送，必须留下明确日志
			s.logger.Error("标记 reminder_sent 失败",
				zap.Int64("rental_id", rem.RentalID),
				zap.Error(err),
			)
			continue
		}

		sent++
	}

	s.logger.Info("提醒扫描完成",
		zap.Int("due", len(reminders)),
		zap.Int("sent", sent),
	)

	return &dto.SendRemindersResponse{
		Message:   "Reminders sent",
		SentCount: sent,
	}, nil
}

package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/config"
)

// Mailer SMTP 邮件发送封装
// smtp_host 未配置时进入降级模式：只记录日志不真正发信（本地开发）
type Mailer struct {
	cfg    *config.MailConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewMailer 创建 Mailer 实例
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger}

	if cfg.SMTPHost != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	} else {
		logger.Warn("SMTP 未配置，邮件发送进入降级模式（仅记录日志）")
	}

	return m
}

// Send 发送一封纯文本邮件
func (m *Mailer) Send(to, subject, body string) error {
	if m.dialer == nil {
		m.logger.Info("邮件降级输出",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// SendVerification 发送注册验证邮件
func (m *Mailer) SendVerification(to, name, verifyURL string) error {
	subject := "Verify your Avocado account"
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to Avocado! Please verify your university email by opening the link below:\n\n%s\n\nIf you did not sign up, you can ignore this email.",
		name, verifyURL,
	)
	return m.Send(to, subject, body)
}

// SendRentalReminder 发送租借到期提醒邮件
func (m *Mailer) SendRentalReminder(to, title, dueDate string) error {
	subject := "Rental Due Reminder - " + title
	body := fmt.Sprintf(
		"Your rental of '%s' is due on %s. Please return it on time.",
		title, dueDate,
	)
	return m.Send(to, subject, body)
}

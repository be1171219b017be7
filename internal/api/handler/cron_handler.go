package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/config"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/service"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/response"
)

// CronHandler 定时任务 HTTP 处理器
// 外部调度器（crontab 等）携带共享密钥触发
type CronHandler struct {
	cfg         *config.Config
	reminderSvc service.ReminderService
}

// NewCronHandler 创建 CronHandler
func NewCronHandler(cfg *config.Config, reminderSvc service.ReminderService) *CronHandler {
	return &CronHandler{cfg: cfg, reminderSvc: reminderSvc}
}

// SendReminders 扫描到期租借并发送提醒
// GET /api?endpoint=cron&action=send_reminders&api_key=<secret>
func (h *CronHandler) SendReminders(c *gin.Context) {
	apiKey := c.Query("api_key")
	// 共享密钥必须常数时间比较
	if apiKey == "" ||
		subtle.ConstantTimeCompare([]byte(apiKey), []byte(h.cfg.Cron.APIKey)) != 1 {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	result, err := h.reminderSvc.SendReminders(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

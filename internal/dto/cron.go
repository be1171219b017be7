package dto

// ── 定时任务 DTO ──

// SendRemindersResponse 提醒扫描结果
type SendRemindersResponse struct {
	Message   string `json:"message"`
	SentCount int    `json:"sent_count"`
}

package handler

import (
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/config"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Marketplace *MarketplaceHandler
	Message     *MessageHandler
	Cron        *CronHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Marketplace: NewMarketplaceHandler(svc.Marketplace),
		Message:     NewMessageHandler(svc.Message),
		Cron:        NewCronHandler(cfg, svc.Reminder),
	}
}

package service

import (
	"go.uber.org/zap"

	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/config"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/internal/repository"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/jwt"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/mailer"
	"github.com/ishrakemon/Avocado-Uni-Market-Place-WebDev/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Marketplace MarketplaceService
	Message     MessageService
	Reminder    ReminderService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	mail *mailer.Mailer,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, mail, rdb, logger),
		Marketplace: NewMarketplaceService(repo, logger),
		Message:     NewMessageService(repo, logger),
		Reminder:    NewReminderService(repo, mail, logger),
	}
}

package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 迁移脚本随二进制一起发布，部署时不依赖外部文件
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 启动时把库结构推进到最新版本。
// 唯一邮箱约束、分类 CHECK 与 upcoming_reminders_view 都由迁移脚本维护，
// 跳过迁移的实例不能对外提供服务。
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("初始化 postgres 迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("构建迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("应用迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		// dirty 意味着某个迁移中途失败，需要人工修复后重启
		logger.Warn("存在未完成的迁移", zap.Uint("version", version))
		return nil
	}

	logger.Info("数据库结构就绪", zap.Uint("version", version))
	return nil
}

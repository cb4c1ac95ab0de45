package database

import (
	"context"
	"fmt"
	"log"

	"suito/config"
	"suito/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store 服务端规范数据集的持久化
// Load 读取完整数据集，Save 整体覆盖写入（不做增量追加）
type Store interface {
	Load(ctx context.Context) (models.Ledger, error)
	Save(ctx context.Context, ledger models.Ledger) error
}

// OpenStore 按配置创建服务端存储
func OpenStore(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "", "json":
		return NewJSONStore(cfg.Storage.Path), nil
	case "mysql":
		db, err := OpenMySQL(cfg.Storage.MySQL, cfg.Server.Mode != "release")
		if err != nil {
			return nil, err
		}
		return NewMySQLStore(db), nil
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", cfg.Storage.Driver)
	}
}

// OpenMySQL 初始化 MySQL 连接并迁移账本表
func OpenMySQL(cfg config.MySQLConfig, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	if err := db.AutoMigrate(&models.DailyRecord{}, &models.Transaction{}); err != nil {
		return nil, fmt.Errorf("迁移数据表失败: %w", err)
	}

	log.Println("数据库初始化成功")
	return db, nil
}

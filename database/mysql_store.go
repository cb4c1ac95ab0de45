package database

import (
	"context"
	"fmt"

	"suito/models"

	"gorm.io/gorm"
)

const insertBatchSize = 100

// MySQLStore 以两张表保存规范数据集，Save 在单个事务内整体替换
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore 创建 MySQL 存储
func NewMySQLStore(db *gorm.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// Load 读取完整数据集
func (s *MySQLStore) Load(ctx context.Context) (models.Ledger, error) {
	ledger := models.EmptyLedger()
	db := s.db.WithContext(ctx)
	if err := db.Order("date DESC").Find(&ledger.DailyRecords).Error; err != nil {
		return models.Ledger{}, fmt.Errorf("查询每日记录失败: %w", err)
	}
	if err := db.Order("created_at DESC").Find(&ledger.Transactions).Error; err != nil {
		return models.Ledger{}, fmt.Errorf("查询交易记录失败: %w", err)
	}
	return ledger, nil
}

// Save 在事务中清空并重新写入两张表
func (s *MySQLStore) Save(ctx context.Context, ledger models.Ledger) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DailyRecord{}).Error; err != nil {
			return fmt.Errorf("清空每日记录失败: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("清空交易记录失败: %w", err)
		}
		if len(ledger.DailyRecords) > 0 {
			if err := tx.CreateInBatches(ledger.DailyRecords, insertBatchSize).Error; err != nil {
				return fmt.Errorf("写入每日记录失败: %w", err)
			}
		}
		if len(ledger.Transactions) > 0 {
			if err := tx.CreateInBatches(ledger.Transactions, insertBatchSize).Error; err != nil {
				return fmt.Errorf("写入交易记录失败: %w", err)
			}
		}
		return nil
	})
}

// Close 关闭底层连接池
func (s *MySQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"suito/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Setting 客户端键值设置（服务器地址、最后同步时间等）
type Setting struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"type:text"`
}

// TableName 设置表名
func (Setting) TableName() string {
	return "settings"
}

// LocalStore 客户端本地嵌入式存储：每日记录、交易与设置
type LocalStore struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenLocal 打开（或创建）本地 SQLite 数据库
func OpenLocal(path string) (*LocalStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开本地数据库失败: %w", err)
	}
	if err := db.AutoMigrate(&models.DailyRecord{}, &models.Transaction{}, &Setting{}); err != nil {
		return nil, fmt.Errorf("迁移本地数据表失败: %w", err)
	}
	return &LocalStore{db: db, now: time.Now}, nil
}

// Close 关闭数据库
func (s *LocalStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDailyRecord 按日期获取每日记录，不存在时返回 nil
func (s *LocalStore) GetDailyRecord(ctx context.Context, date string) (*models.DailyRecord, error) {
	var r models.DailyRecord
	err := s.db.WithContext(ctx).Where("date = ?", date).Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询每日记录失败: %w", err)
	}
	return &r, nil
}

// SaveDailyRecord 写入每日记录（存在则覆盖）
func (s *LocalStore) SaveDailyRecord(ctx context.Context, r *models.DailyRecord) error {
	if err := models.Validate(r); err != nil {
		return fmt.Errorf("每日记录无效: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		return fmt.Errorf("保存每日记录失败: %w", err)
	}
	return nil
}

// AllDailyRecords 全部每日记录，按日期倒序
func (s *LocalStore) AllDailyRecords(ctx context.Context) ([]models.DailyRecord, error) {
	records := []models.DailyRecord{}
	if err := s.db.WithContext(ctx).Order("date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询每日记录失败: %w", err)
	}
	return records, nil
}

// GetTransaction 按 ID 获取交易，不存在时返回 nil
func (s *LocalStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询交易记录失败: %w", err)
	}
	return &tx, nil
}

// AddTransaction 新增交易，ID 已存在时报错
func (s *LocalStore) AddTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := models.Validate(tx); err != nil {
		return fmt.Errorf("交易记录无效: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("新增交易记录失败: %w", err)
	}
	return nil
}

// SaveTransaction 写入交易（存在则覆盖）
func (s *LocalStore) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := models.Validate(tx); err != nil {
		return fmt.Errorf("交易记录无效: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(tx).Error; err != nil {
		return fmt.Errorf("保存交易记录失败: %w", err)
	}
	return nil
}

// AllTransactions 全部交易，按创建时间倒序
func (s *LocalStore) AllTransactions(ctx context.Context) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("查询交易记录失败: %w", err)
	}
	// 文本列按字典序排序不识别时区偏移，这里按时间值再排一次
	models.SortTransactions(txs)
	return txs, nil
}

// TransactionsByDate 某日的交易，按创建时间倒序
func (s *LocalStore) TransactionsByDate(ctx context.Context, date string) ([]models.Transaction, error) {
	txs := []models.Transaction{}
	if err := s.db.WithContext(ctx).Where("date = ?", date).Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("查询交易记录失败: %w", err)
	}
	// 文本列按字典序排序不识别时区偏移，这里按时间值再排一次
	models.SortTransactions(txs)
	return txs, nil
}

// Export 导出全部数据
func (s *LocalStore) Export(ctx context.Context) (*models.ExportData, error) {
	records, err := s.AllDailyRecords(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.AllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ExportData{
		ExportDate:   s.now().UTC(),
		DailyRecords: records,
		Transactions: txs,
	}, nil
}

// GetSetting 读取设置，不存在时返回空字符串
func (s *LocalStore) GetSetting(ctx context.Context, key string) (string, error) {
	var st Setting
	err := s.db.WithContext(ctx).Where("`key` = ?", key).Take(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("读取设置失败: %w", err)
	}
	return st.Value, nil
}

// SetSetting 写入设置
func (s *LocalStore) SetSetting(ctx context.Context, key, value string) error {
	if err := s.db.WithContext(ctx).Save(&Setting{Key: key, Value: value}).Error; err != nil {
		return fmt.Errorf("保存设置失败: %w", err)
	}
	return nil
}

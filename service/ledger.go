package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"suito/config"
	"suito/database"
	"suito/models"

	"github.com/sirupsen/logrus"
)

// ErrValidation 推送数据格式错误（缺少集合、字段类型或取值非法），不会写入任何数据
var ErrValidation = errors.New("数据格式错误")

// SyncOutcome 一次合并往返的结果
type SyncOutcome struct {
	MergeResult
	ServerTime time.Time
}

// Response 转换为 /api/sync 响应体
func (o *SyncOutcome) Response() models.SyncResponse {
	return models.SyncResponse{
		Success:             true,
		RecordsUpdated:      o.RecordsUpdated(),
		TransactionsUpdated: o.TransactionsUpdated(),
		DailyRecords:        o.Ledger.DailyRecords,
		Transactions:        o.Ledger.Transactions,
		ServerTime:          o.ServerTime,
	}
}

// LedgerService 服务端规范数据集的唯一写入口
// 所有读-合并-写都在同一把锁内完成，并发的同步请求不会互相覆盖
type LedgerService struct {
	mu     sync.Mutex
	store  database.Store
	logger *logrus.Logger
	now    func() time.Time
}

// NewLedgerService 创建账本服务
func NewLedgerService(store database.Store, logger *logrus.Logger) *LedgerService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LedgerService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Snapshot 读取当前完整数据集
func (s *LedgerService) Snapshot(ctx context.Context) (models.Ledger, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.store.Load(ctx)
	if err != nil {
		return models.Ledger{}, time.Time{}, err
	}
	ledger.Normalize()
	return ledger, s.now().UTC(), nil
}

// Sync 合并客户端推送的完整数据集并持久化，返回合并后的完整数据集
func (s *LedgerService) Sync(ctx context.Context, incoming models.Ledger) (*SyncOutcome, error) {
	if err := models.Validate(&incoming); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx)
	if err != nil {
		config.LogError(s.logger, "service", "Sync", "load", nil, err)
		return nil, err
	}

	now := s.now().UTC()
	res := Merge(current, incoming, now)
	if err := s.store.Save(ctx, res.Ledger); err != nil {
		config.LogError(s.logger, "service", "Sync", "save", nil, err)
		return nil, err
	}

	entry := s.logger.WithFields(logrus.Fields{
		"recordsAdded":         res.RecordsAdded,
		"recordsReplaced":      res.RecordsReplaced,
		"transactionsAdded":    res.TransactionsAdded,
		"transactionsReplaced": res.TransactionsReplaced,
		"records":              len(res.Ledger.DailyRecords),
		"transactions":         len(res.Ledger.Transactions),
	})
	if res.Changed() {
		entry.Info("同步合并完成")
	} else {
		entry.Debug("同步完成，无变化")
	}

	return &SyncOutcome{MergeResult: res, ServerTime: now}, nil
}

// Import 用快照整体覆盖服务端数据集（不做比较），所有实体打上 updatedAt
func (s *LedgerService) Import(ctx context.Context, snapshot models.Ledger) (models.ImportResponse, error) {
	snapshot.Normalize()
	if err := models.Validate(&snapshot); err != nil {
		return models.ImportResponse{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := Stamp(snapshot, s.now())
	models.SortLedger(&data)
	if err := s.store.Save(ctx, data); err != nil {
		config.LogError(s.logger, "service", "Import", "save", nil, err)
		return models.ImportResponse{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"records":      len(data.DailyRecords),
		"transactions": len(data.Transactions),
	}).Info("导入完成")

	return models.ImportResponse{
		Success:              true,
		RecordsImported:      len(data.DailyRecords),
		TransactionsImported: len(data.Transactions),
	}, nil
}

// AdminSave 管理端直接保存：只排序，不打时间戳也不合并
func (s *LedgerService) AdminSave(ctx context.Context, ledger models.Ledger) error {
	ledger.Normalize()
	if err := models.Validate(&ledger); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data := ledger.Clone()
	models.SortLedger(&data)
	if err := s.store.Save(ctx, data); err != nil {
		config.LogError(s.logger, "service", "AdminSave", "save", nil, err)
		return err
	}
	s.logger.WithField("records", len(data.DailyRecords)).Info("管理端保存完成")
	return nil
}

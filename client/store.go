package client

import (
	"context"

	"suito/database"
	"suito/models"
)

// LocalStore 同步核心所需的本地存储操作
type LocalStore interface {
	Export(ctx context.Context) (*models.ExportData, error)
	GetDailyRecord(ctx context.Context, date string) (*models.DailyRecord, error)
	SaveDailyRecord(ctx context.Context, r *models.DailyRecord) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	AddTransaction(ctx context.Context, tx *models.Transaction) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

var _ LocalStore = (*database.LocalStore)(nil)

// ImportStats 本地导入结果
type ImportStats struct {
	RecordsImported      int
	TransactionsImported int
}

// Reconcile 只补缺的本地导入：本地已有的日期或交易 id 一律保留本地版本，不比较时间戳
// 与服务端的后写者胜规则不对称，较新的服务端版本会在之后的同步轮次中收敛
func Reconcile(ctx context.Context, store LocalStore, remote models.Ledger) (ImportStats, error) {
	var stats ImportStats

	for i := range remote.DailyRecords {
		r := remote.DailyRecords[i]
		existing, err := store.GetDailyRecord(ctx, r.Date)
		if err != nil {
			return stats, err
		}
		if existing != nil {
			continue
		}
		if err := store.SaveDailyRecord(ctx, &r); err != nil {
			return stats, err
		}
		stats.RecordsImported++
	}

	for i := range remote.Transactions {
		tx := remote.Transactions[i]
		existing, err := store.GetTransaction(ctx, tx.ID)
		if err != nil {
			return stats, err
		}
		if existing != nil {
			continue
		}
		if err := store.AddTransaction(ctx, &tx); err != nil {
			return stats, err
		}
		stats.TransactionsImported++
	}

	return stats, nil
}

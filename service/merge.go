package service

import (
	"time"

	"suito/models"
)

// MergeResult 服务端合并结果
type MergeResult struct {
	Ledger               models.Ledger
	RecordsAdded         int
	RecordsReplaced      int
	TransactionsAdded    int
	TransactionsReplaced int
}

// RecordsUpdated 新增 + 替换的每日记录数
func (r MergeResult) RecordsUpdated() int {
	return r.RecordsAdded + r.RecordsReplaced
}

// TransactionsUpdated 新增 + 替换的交易数
func (r MergeResult) TransactionsUpdated() int {
	return r.TransactionsAdded + r.TransactionsReplaced
}

// Changed 是否有任何写入
func (r MergeResult) Changed() bool {
	return r.RecordsUpdated() > 0 || r.TransactionsUpdated() > 0
}

// Merge 将客户端数据集合并进服务端数据集（后写者胜，以 createdAt 为准）
//
// 每个实体独立比较：服务端没有该键则新增；客户端 createdAt 严格更新才替换，
// 相等时保留服务端版本。createdAt 只比较到毫秒，存储层丢弃的亚毫秒部分不算更新。写入的实体都打上 updatedAt = now。
// 不修改入参，返回排好序的新数据集。
func Merge(server, incoming models.Ledger, now time.Time) MergeResult {
	merged := server.Clone()
	stamp := now.UTC()
	res := MergeResult{}

	recordIdx := make(map[string]int, len(merged.DailyRecords))
	for i, r := range merged.DailyRecords {
		recordIdx[r.Date] = i
	}
	for _, c := range incoming.DailyRecords {
		c.UpdatedAt = &stamp
		i, ok := recordIdx[c.Date]
		if !ok {
			recordIdx[c.Date] = len(merged.DailyRecords)
			merged.DailyRecords = append(merged.DailyRecords, c)
			res.RecordsAdded++
			continue
		}
		if models.NewerThan(c.CreatedAt, merged.DailyRecords[i].CreatedAt) {
			merged.DailyRecords[i] = c
			res.RecordsReplaced++
		}
	}

	txIdx := make(map[string]int, len(merged.Transactions))
	for i, t := range merged.Transactions {
		txIdx[t.ID] = i
	}
	for _, c := range incoming.Transactions {
		c.UpdatedAt = &stamp
		i, ok := txIdx[c.ID]
		if !ok {
			txIdx[c.ID] = len(merged.Transactions)
			merged.Transactions = append(merged.Transactions, c)
			res.TransactionsAdded++
			continue
		}
		if models.NewerThan(c.CreatedAt, merged.Transactions[i].CreatedAt) {
			merged.Transactions[i] = c
			res.TransactionsReplaced++
		}
	}

	models.SortLedger(&merged)
	res.Ledger = merged
	return res
}

// Stamp 给数据集中所有实体打上 updatedAt，用于不做比较的整体导入
func Stamp(l models.Ledger, now time.Time) models.Ledger {
	out := l.Clone()
	stamp := now.UTC()
	for i := range out.DailyRecords {
		out.DailyRecords[i].UpdatedAt = &stamp
	}
	for i := range out.Transactions {
		out.Transactions[i].UpdatedAt = &stamp
	}
	return out
}

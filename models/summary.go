package models

import "sort"

// DaySummary 单日汇总
type DaySummary struct {
	Date             string `json:"date"`
	StartingBalance  int64  `json:"startingBalance"`
	TotalIncome      int64  `json:"totalIncome"`
	TotalExpense     int64  `json:"totalExpense"`
	Balance          int64  `json:"balance"`
	TransactionCount int    `json:"transactionCount"`
}

// Summarize 计算某日的入金、出金与余额（起始余额 + 入金 - 出金）
// record 为 nil 时按 0 起始
func Summarize(date string, record *DailyRecord, txs []Transaction) DaySummary {
	s := DaySummary{Date: date}
	if record != nil {
		s.StartingBalance = record.StartingBalance
	}
	for _, tx := range txs {
		if tx.Date != date {
			continue
		}
		s.TransactionCount++
		if tx.IsIncome() {
			s.TotalIncome += tx.Amount
		} else {
			s.TotalExpense += tx.Amount
		}
	}
	s.Balance = s.StartingBalance + s.TotalIncome - s.TotalExpense
	return s
}

// SortLedger 每日记录按日期倒序，交易按创建时间倒序
func SortLedger(l *Ledger) {
	sort.SliceStable(l.DailyRecords, func(i, j int) bool {
		return l.DailyRecords[i].Date > l.DailyRecords[j].Date
	})
	SortTransactions(l.Transactions)
}

// SortTransactions 交易按创建时间倒序
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}

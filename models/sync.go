package models

import "time"

// PingResponse GET /api/ping 响应，用于可达性与身份确认
type PingResponse struct {
	Status    string    `json:"status"`
	Server    string    `json:"server"`
	Timestamp time.Time `json:"timestamp"`
}

// SyncResponse POST /api/sync 响应
type SyncResponse struct {
	Success             bool          `json:"success"`
	RecordsUpdated      int           `json:"recordsUpdated"`
	TransactionsUpdated int           `json:"transactionsUpdated"`
	DailyRecords        []DailyRecord `json:"dailyRecords"`
	Transactions        []Transaction `json:"transactions"`
	ServerTime          time.Time     `json:"serverTime"`
}

// Ledger 取出响应中的账本部分
func (r SyncResponse) Ledger() Ledger {
	return Ledger{DailyRecords: r.DailyRecords, Transactions: r.Transactions}
}

// SnapshotResponse GET /api/sync 响应
type SnapshotResponse struct {
	DailyRecords []DailyRecord `json:"dailyRecords"`
	Transactions []Transaction `json:"transactions"`
	ServerTime   time.Time     `json:"serverTime"`
}

// ImportRequest 导入 / 管理保存请求，缺失的集合视为空
type ImportRequest struct {
	DailyRecords []DailyRecord `json:"dailyRecords" binding:"dive"`
	Transactions []Transaction `json:"transactions" binding:"dive"`
}

// Ledger 转换为账本
func (r ImportRequest) Ledger() Ledger {
	l := Ledger{DailyRecords: r.DailyRecords, Transactions: r.Transactions}
	l.Normalize()
	return l
}

// ImportResponse POST /api/import 响应
type ImportResponse struct {
	Success              bool `json:"success"`
	RecordsImported      int  `json:"recordsImported"`
	TransactionsImported int  `json:"transactionsImported"`
}

// ExportData 导出文件结构（客户端导出与服务端 /api/export/json 共用）
type ExportData struct {
	ExportDate   time.Time     `json:"exportDate"`
	DailyRecords []DailyRecord `json:"dailyRecords"`
	Transactions []Transaction `json:"transactions"`
}

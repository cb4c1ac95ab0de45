package models

import (
	"time"
)

// DateLayout 每日记录主键格式 YYYY-MM-DD
const DateLayout = "2006-01-02"

// TransactionType 交易类型
type TransactionType string

const (
	// TypeIncome 入金
	TypeIncome TransactionType = "income"
	// TypeExpense 出金
	TypeExpense TransactionType = "expense"
)

// DailyRecord 每日记录（一天一条，date 为主键且创建后不可变）
type DailyRecord struct {
	Date                  string     `json:"date" gorm:"primaryKey;size:10" binding:"required,ymd"`
	StartingBalance       int64      `json:"startingBalance" gorm:"not null"`
	DidSetStartingBalance bool       `json:"didSetStartingBalance" gorm:"not null"`
	CreatedAt             time.Time  `json:"createdAt" gorm:"autoCreateTime:false;not null" binding:"required"` // 冲突裁决依据，创建后不再修改
	UpdatedAt             *time.Time `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`                  // 服务器每次合并写入时打的时间戳
}

// TableName 设置表名
func (DailyRecord) TableName() string {
	return "daily_records"
}

// Transaction 出入金记录
type Transaction struct {
	ID        string          `json:"id" gorm:"primaryKey;size:64" binding:"required"`
	Type      TransactionType `json:"type" gorm:"size:16;not null" binding:"required,oneof=income expense"`
	Amount    int64           `json:"amount" gorm:"not null" binding:"gt=0"`
	Comment   string          `json:"comment" gorm:"type:text"`
	ImageData string          `json:"imageData,omitempty" gorm:"type:longtext"` // data URI，同步层不解析
	Date      string          `json:"date" gorm:"size:10;index" binding:"required,ymd"`
	CreatedAt time.Time       `json:"createdAt" gorm:"autoCreateTime:false;not null;index" binding:"required"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// IsIncome 是否为入金
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// Ledger 账本：每日记录 + 交易的完整快照
type Ledger struct {
	DailyRecords []DailyRecord `json:"dailyRecords" binding:"required,dive"`
	Transactions []Transaction `json:"transactions" binding:"required,dive"`
}

// EmptyLedger 返回两个集合均为空数组（而非 nil）的账本，保证 JSON 输出为 []
func EmptyLedger() Ledger {
	return Ledger{DailyRecords: []DailyRecord{}, Transactions: []Transaction{}}
}

// Normalize 将 nil 集合替换为空切片
func (l *Ledger) Normalize() {
	if l.DailyRecords == nil {
		l.DailyRecords = []DailyRecord{}
	}
	if l.Transactions == nil {
		l.Transactions = []Transaction{}
	}
}

// Clone 复制账本（集合内元素按值复制）
func (l Ledger) Clone() Ledger {
	out := Ledger{
		DailyRecords: make([]DailyRecord, len(l.DailyRecords)),
		Transactions: make([]Transaction, len(l.Transactions)),
	}
	copy(out.DailyRecords, l.DailyRecords)
	copy(out.Transactions, l.Transactions)
	return out
}

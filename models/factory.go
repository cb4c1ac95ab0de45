package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampPrecision createdAt 的有效精度，与 ISO-8601 毫秒字符串及 MySQL datetime(3) 一致
const TimestampPrecision = time.Millisecond

// Timestamp 生成实体时间戳：UTC，截断到毫秒
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}

// NewerThan a 是否严格晚于 b，只比较到毫秒
func NewerThan(a, b time.Time) bool {
	return a.Truncate(TimestampPrecision).After(b.Truncate(TimestampPrecision))
}

// NewDailyRecord 开始新的一天时创建每日记录
// didSet 为 false 表示从 0 开始，此时忽略 startingBalance
func NewDailyRecord(day time.Time, startingBalance int64, didSet bool, now time.Time) (*DailyRecord, error) {
	if !didSet {
		startingBalance = 0
	}
	r := &DailyRecord{
		Date:                  day.Format(DateLayout),
		StartingBalance:       startingBalance,
		DidSetStartingBalance: didSet,
		CreatedAt:             Timestamp(now),
	}
	if err := Validate(r); err != nil {
		return nil, fmt.Errorf("每日记录无效: %w", err)
	}
	return r, nil
}

// NewTransaction 保存一笔出入金，amount 必须为正整数
func NewTransaction(typ TransactionType, amount int64, comment, imageData string, day time.Time, now time.Time) (*Transaction, error) {
	tx := &Transaction{
		ID:        uuid.NewString(),
		Type:      typ,
		Amount:    amount,
		Comment:   comment,
		ImageData: imageData,
		Date:      day.Format(DateLayout),
		CreatedAt: Timestamp(now),
	}
	if err := Validate(tx); err != nil {
		return nil, fmt.Errorf("交易记录无效: %w", err)
	}
	return tx, nil
}

package service

import (
	"testing"
	"time"

	"suito/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func record(t *testing.T, date string, balance int64, created string) models.DailyRecord {
	return models.DailyRecord{Date: date, StartingBalance: balance, DidSetStartingBalance: true, CreatedAt: ts(t, created)}
}

func transaction(t *testing.T, id string, amount int64, created string) models.Transaction {
	return models.Transaction{ID: id, Type: models.TypeExpense, Amount: amount, Date: "2024-01-01", CreatedAt: ts(t, created)}
}

func ledgerOf(records []models.DailyRecord, txs []models.Transaction) models.Ledger {
	l := models.Ledger{DailyRecords: records, Transactions: txs}
	l.Normalize()
	return l
}

func TestMerge_OlderClientRecordLoses(t *testing.T) {
	now := ts(t, "2024-01-02T00:00:00Z")
	server := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 1000, "2024-01-01T09:00:00Z")}, nil)
	client := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 2000, "2024-01-01T08:00:00Z")}, nil)

	res := Merge(server, client, now)

	require.Len(t, res.Ledger.DailyRecords, 1)
	assert.Equal(t, int64(1000), res.Ledger.DailyRecords[0].StartingBalance)
	assert.Equal(t, 0, res.RecordsUpdated())
	assert.False(t, res.Changed())
}

func TestMerge_NewerClientRecordWins(t *testing.T) {
	now := ts(t, "2024-01-02T00:00:00Z")
	server := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 1000, "2024-01-01T09:00:00Z")}, nil)
	client := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 2000, "2024-01-01T10:00:00Z")}, nil)

	res := Merge(server, client, now)

	require.Len(t, res.Ledger.DailyRecords, 1)
	got := res.Ledger.DailyRecords[0]
	assert.Equal(t, int64(2000), got.StartingBalance)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(now))
	assert.Equal(t, 1, res.RecordsUpdated())
	assert.Equal(t, 1, res.RecordsReplaced)
}

func TestMerge_TieKeepsServerRecord(t *testing.T) {
	now := ts(t, "2024-01-02T00:00:00Z")
	server := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 1000, "2024-01-01T09:00:00Z")}, nil)
	client := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 2000, "2024-01-01T09:00:00Z")}, nil)

	res := Merge(server, client, now)

	assert.Equal(t, int64(1000), res.Ledger.DailyRecords[0].StartingBalance)
	assert.Equal(t, 0, res.RecordsUpdated())
}

func TestMerge_DistinctTransactionsInserted(t *testing.T) {
	now := ts(t, "2024-01-02T00:00:00Z")
	client := ledgerOf(nil, []models.Transaction{
		transaction(t, "a", 100, "2024-01-01T09:00:00Z"),
		transaction(t, "b", 200, "2024-01-01T10:00:00Z"),
	})

	res := Merge(models.EmptyLedger(), client, now)

	assert.Equal(t, 2, res.TransactionsUpdated())
	assert.Equal(t, 2, res.TransactionsAdded)
	assert.Equal(t, 0, res.RecordsUpdated())
	require.Len(t, res.Ledger.Transactions, 2)
	// createdAt 倒序
	assert.Equal(t, "b", res.Ledger.Transactions[0].ID)
	for _, tx := range res.Ledger.Transactions {
		require.NotNil(t, tx.UpdatedAt)
	}
}

func TestMerge_OrderIndependent(t *testing.T) {
	now := ts(t, "2024-01-05T00:00:00Z")
	older := ledgerOf(
		[]models.DailyRecord{record(t, "2024-01-01", 1, "2024-01-01T08:00:00Z")},
		[]models.Transaction{transaction(t, "x", 10, "2024-01-01T08:00:00Z")},
	)
	newer := ledgerOf(
		[]models.DailyRecord{record(t, "2024-01-01", 2, "2024-01-01T09:00:00Z")},
		[]models.Transaction{transaction(t, "x", 20, "2024-01-01T09:00:00Z")},
	)

	ab := Merge(Merge(models.EmptyLedger(), older, now).Ledger, newer, now).Ledger
	ba := Merge(Merge(models.EmptyLedger(), newer, now).Ledger, older, now).Ledger

	assert.Equal(t, int64(2), ab.DailyRecords[0].StartingBalance)
	assert.Equal(t, int64(2), ba.DailyRecords[0].StartingBalance)
	assert.Equal(t, int64(20), ab.Transactions[0].Amount)
	assert.Equal(t, int64(20), ba.Transactions[0].Amount)
}

func TestMerge_NeverDeletesTransactions(t *testing.T) {
	now := ts(t, "2024-01-05T00:00:00Z")
	server := ledgerOf(nil, []models.Transaction{
		transaction(t, "keep-1", 10, "2024-01-01T08:00:00Z"),
		transaction(t, "keep-2", 20, "2024-01-01T09:00:00Z"),
	})
	client := ledgerOf(nil, []models.Transaction{
		transaction(t, "keep-2", 99, "2024-01-01T07:00:00Z"), // 更旧，不替换
		transaction(t, "new", 30, "2024-01-01T10:00:00Z"),
	})

	res := Merge(server, client, now)

	ids := map[string]int64{}
	for _, tx := range res.Ledger.Transactions {
		ids[tx.ID] = tx.Amount
	}
	assert.Len(t, ids, 3)
	assert.Equal(t, int64(10), ids["keep-1"])
	assert.Equal(t, int64(20), ids["keep-2"])
	assert.Equal(t, int64(30), ids["new"])
	assert.Equal(t, 1, res.TransactionsUpdated())
}

func TestMerge_Idempotent(t *testing.T) {
	now := ts(t, "2024-01-05T00:00:00Z")
	client := ledgerOf(
		[]models.DailyRecord{record(t, "2024-01-01", 1, "2024-01-01T08:00:00Z"), record(t, "2024-01-02", 5, "2024-01-02T08:00:00Z")},
		[]models.Transaction{transaction(t, "x", 10, "2024-01-01T08:00:00Z")},
	)

	first := Merge(models.EmptyLedger(), client, now)
	assert.Equal(t, 2, first.RecordsUpdated())
	assert.Equal(t, 1, first.TransactionsUpdated())

	second := Merge(first.Ledger, client, now.Add(time.Minute))
	assert.Equal(t, 0, second.RecordsUpdated())
	assert.Equal(t, 0, second.TransactionsUpdated())
	assert.Equal(t, first.Ledger, second.Ledger)
}

func TestMerge_DuplicateKeysInOnePush(t *testing.T) {
	now := ts(t, "2024-01-05T00:00:00Z")
	client := ledgerOf([]models.DailyRecord{
		record(t, "2024-01-01", 1, "2024-01-01T08:00:00Z"),
		record(t, "2024-01-01", 2, "2024-01-01T09:00:00Z"),
		record(t, "2024-01-01", 3, "2024-01-01T07:00:00Z"),
	}, nil)

	res := Merge(models.EmptyLedger(), client, now)

	require.Len(t, res.Ledger.DailyRecords, 1)
	assert.Equal(t, int64(2), res.Ledger.DailyRecords[0].StartingBalance)
	assert.Equal(t, 1, res.RecordsAdded)
	assert.Equal(t, 1, res.RecordsReplaced)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	now := ts(t, "2024-01-05T00:00:00Z")
	server := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 1000, "2024-01-01T09:00:00Z")}, nil)
	client := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 2000, "2024-01-01T10:00:00Z")}, nil)

	Merge(server, client, now)

	assert.Equal(t, int64(1000), server.DailyRecords[0].StartingBalance)
	assert.Nil(t, server.DailyRecords[0].UpdatedAt)
	assert.Nil(t, client.DailyRecords[0].UpdatedAt)
}

func TestMerge_SortsRecordsByDateDesc(t *testing.T) {
	now := ts(t, "2024-01-05T00:00:00Z")
	server := ledgerOf([]models.DailyRecord{record(t, "2024-01-02", 0, "2024-01-02T09:00:00Z")}, nil)
	client := ledgerOf([]models.DailyRecord{
		record(t, "2024-01-01", 0, "2024-01-01T09:00:00Z"),
		record(t, "2024-01-03", 0, "2024-01-03T09:00:00Z"),
	}, nil)

	res := Merge(server, client, now)

	dates := []string{}
	for _, r := range res.Ledger.DailyRecords {
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []string{"2024-01-03", "2024-01-02", "2024-01-01"}, dates)
}

func TestStamp(t *testing.T) {
	now := ts(t, "2024-01-05T00:00:00Z")
	in := ledgerOf([]models.DailyRecord{record(t, "2024-01-01", 0, "2024-01-01T09:00:00Z")},
		[]models.Transaction{transaction(t, "x", 1, "2024-01-01T09:00:00Z")})

	out := Stamp(in, now)

	require.NotNil(t, out.DailyRecords[0].UpdatedAt)
	require.NotNil(t, out.Transactions[0].UpdatedAt)
	assert.Nil(t, in.DailyRecords[0].UpdatedAt)
}

func TestMerge_SubMillisecondDifferenceIsNotNewer(t *testing.T) {
	now := ts(t, "2024-01-02T00:00:00Z")
	created := time.Date(2024, 1, 1, 9, 0, 0, 123456789, time.UTC)

	// 服务端存储只保留到毫秒，客户端仍持有纳秒精度的原值
	stored := transaction(t, "t1", 300, "2024-01-01T09:00:00Z")
	stored.CreatedAt = created.Truncate(time.Millisecond)
	local := stored
	local.CreatedAt = created
	storedRecord := record(t, "2024-01-01", 1000, "2024-01-01T09:00:00Z")
	storedRecord.CreatedAt = created.Truncate(time.Millisecond)
	localRecord := storedRecord
	localRecord.CreatedAt = created

	server := ledgerOf([]models.DailyRecord{storedRecord}, []models.Transaction{stored})
	client := ledgerOf([]models.DailyRecord{localRecord}, []models.Transaction{local})

	res := Merge(server, client, now)

	assert.Equal(t, 0, res.TransactionsUpdated())
	assert.Equal(t, 0, res.RecordsUpdated())
	assert.False(t, res.Changed())
	assert.Nil(t, res.Ledger.Transactions[0].UpdatedAt)

	// 跨过毫秒边界仍然算更新
	local.CreatedAt = created.Truncate(time.Millisecond).Add(time.Millisecond)
	res = Merge(server, ledgerOf(nil, []models.Transaction{local}), now)
	assert.Equal(t, 1, res.TransactionsUpdated())
}

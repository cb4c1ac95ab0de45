package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"suito/config"
	"suito/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger() models.Ledger {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	return models.Ledger{
		DailyRecords: []models.DailyRecord{
			{Date: "2024-01-01", StartingBalance: 1000, DidSetStartingBalance: true, CreatedAt: created, UpdatedAt: &updated},
		},
		Transactions: []models.Transaction{
			{ID: "tx-1", Type: models.TypeExpense, Amount: 300, Comment: "昼食", Date: "2024-01-01", CreatedAt: created, UpdatedAt: &updated},
		},
	}
}

func TestJSONStore_LoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "suito-data.json"))

	ledger, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ledger.DailyRecords)
	assert.NotNil(t, ledger.Transactions)
	assert.Empty(t, ledger.DailyRecords)
	assert.Empty(t, ledger.Transactions)
}

func TestJSONStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "suito-data.json")
	store := NewJSONStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleLedger()))

	ledger, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ledger.DailyRecords, 1)
	require.Len(t, ledger.Transactions, 1)
	assert.Equal(t, int64(1000), ledger.DailyRecords[0].StartingBalance)
	assert.Equal(t, "昼食", ledger.Transactions[0].Comment)
	assert.True(t, ledger.Transactions[0].CreatedAt.Equal(sampleLedger().Transactions[0].CreatedAt))

	// 只留下目标文件，没有残留的临时文件
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// 整体覆盖
	require.NoError(t, store.Save(ctx, models.EmptyLedger()))
	ledger, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger.DailyRecords)
	assert.Empty(t, ledger.Transactions)
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suito-data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestJSONStore_NullCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suito-data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dailyRecords":null}`), 0o644))

	ledger, err := NewJSONStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ledger.DailyRecords)
	assert.NotNil(t, ledger.Transactions)
}

func TestOpenStore(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "json", Path: filepath.Join(t.TempDir(), "d.json")}}
	store, err := OpenStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, store)

	cfg.Storage.Driver = "redis"
	_, err = OpenStore(cfg)
	assert.Error(t, err)
}

package client

import (
	"context"
	"io"
	"net"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"suito/config"
	"suito/database"
	"suito/models"
	"suito/router"
	"suito/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

// newSyncServer 启动真实的同步服务，返回地址与服务端存储
func newSyncServer(t *testing.T) (*httptest.Server, *database.JSONStore) {
	t.Helper()
	store := database.NewJSONStore(filepath.Join(t.TempDir(), "suito-data.json"))
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test", Name: "suito-sync", MaxBodyMB: 50},
	}
	logger := quietLogger()
	srv := httptest.NewServer(router.SetupRouter(cfg, service.NewLedgerService(store, logger), logger))
	t.Cleanup(srv.Close)
	return srv, store
}

// closedURL 返回一个已关闭端口的地址
func closedURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr
}

// memStore 内存版本地存储
type memStore struct {
	mu       sync.Mutex
	records  map[string]models.DailyRecord
	txs      map[string]models.Transaction
	settings map[string]string
	exportFn func() error
}

func newMemStore() *memStore {
	return &memStore{
		records:  map[string]models.DailyRecord{},
		txs:      map[string]models.Transaction{},
		settings: map[string]string{},
	}
}

func (s *memStore) Export(ctx context.Context) (*models.ExportData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exportFn != nil {
		if err := s.exportFn(); err != nil {
			return nil, err
		}
	}
	out := &models.ExportData{
		ExportDate:   time.Now().UTC(),
		DailyRecords: []models.DailyRecord{},
		Transactions: []models.Transaction{},
	}
	for _, r := range s.records {
		out.DailyRecords = append(out.DailyRecords, r)
	}
	for _, tx := range s.txs {
		out.Transactions = append(out.Transactions, tx)
	}
	sort.Slice(out.DailyRecords, func(i, j int) bool { return out.DailyRecords[i].Date > out.DailyRecords[j].Date })
	models.SortTransactions(out.Transactions)
	return out, nil
}

func (s *memStore) GetDailyRecord(ctx context.Context, date string) (*models.DailyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[date]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memStore) SaveDailyRecord(ctx context.Context, r *models.DailyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.Date] = *r
	return nil
}

func (s *memStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (s *memStore) AddTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[tx.ID] = *tx
	return nil
}

func (s *memStore) GetSetting(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[key], nil
}

func (s *memStore) SetSetting(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

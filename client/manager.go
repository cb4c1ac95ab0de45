package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"suito/config"
	"suito/database"
	"suito/models"

	"github.com/sirupsen/logrus"
)

// 本地设置键
const (
	SettingServerURL    = "syncServerUrl"
	SettingLastSyncTime = "lastSyncTime"
)

// SyncResult 一次同步往返的结果
type SyncResult struct {
	RecordsUpdated       int // 服务端合并时写入的每日记录数
	TransactionsUpdated  int
	RecordsImported      int // 本地补入的每日记录数
	TransactionsImported int
	ServerTime           time.Time
	SyncedAt             time.Time
}

// Manager 客户端同步管理
type Manager struct {
	store  LocalStore
	client *Client
	prober *Prober
	logger *logrus.Logger
	now    func() time.Time
}

// NewManager 创建同步管理器
func NewManager(store LocalStore, client *Client, prober *Prober, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Manager{
		store:  store,
		client: client,
		prober: prober,
		logger: logger,
		now:    time.Now,
	}
}

// Open 按客户端配置打开本地数据库并创建同步管理器，返回的 close 用于关闭本地数据库
func Open(cfg config.ClientConfig, logger *logrus.Logger) (*Manager, func() error, error) {
	store, err := database.OpenLocal(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	c := NewClient(cfg.Timeout).WithSyncTimeout(cfg.SyncTimeout)
	return NewManager(store, c, NewProber(c, cfg.Probe), logger), store.Close, nil
}

// SetServerURL 保存服务器地址，空字符串表示取消配置
func (m *Manager) SetServerURL(ctx context.Context, url string) error {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	return m.store.SetSetting(ctx, SettingServerURL, url)
}

// ServerURL 当前服务器地址，未配置时为空
func (m *Manager) ServerURL(ctx context.Context) (string, error) {
	return m.store.GetSetting(ctx, SettingServerURL)
}

// LastSyncTime 最后一次成功同步的时间，从未同步时 ok 为 false
func (m *Manager) LastSyncTime(ctx context.Context) (t time.Time, ok bool, err error) {
	v, err := m.store.GetSetting(ctx, SettingLastSyncTime)
	if err != nil || v == "" {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339Nano, v)
	if err != nil {
		// 设置值损坏视为从未同步
		m.logger.WithField("value", v).Warn("最后同步时间格式错误")
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// TestConnection 测试指定地址；url 为空时测试已保存的地址
func (m *Manager) TestConnection(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		saved, err := m.ServerURL(ctx)
		if err != nil {
			return err
		}
		url = saved
	}
	if url == "" {
		return ErrNotConfigured
	}
	_, err := m.client.Ping(ctx, url)
	return err
}

// CheckServer 地址是否可用，任何失败都只返回 false
func (m *Manager) CheckServer(ctx context.Context, url string) bool {
	err := m.TestConnection(ctx, url)
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		m.logger.WithField("url", url).Debug("服务器不可达: " + err.Error())
	}
	return err == nil
}

// AutoDetect 在常见局域网地址中查找服务器
func (m *Manager) AutoDetect(ctx context.Context) (string, bool) {
	if m.prober == nil {
		return "", false
	}
	url, ok := m.prober.Find(ctx)
	if ok {
		m.logger.WithField("url", url).Info("检测到同步服务器")
	}
	return url, ok
}

// Sync 执行一次同步往返：导出本地数据 → 推送合并 → 只补缺地导入 → 记录同步时间
func (m *Manager) Sync(ctx context.Context) (*SyncResult, error) {
	url, err := m.ServerURL(ctx)
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, ErrNotConfigured
	}

	local, err := m.store.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("导出本地数据失败: %w", err)
	}

	resp, err := m.client.PushSync(ctx, url, models.Ledger{
		DailyRecords: local.DailyRecords,
		Transactions: local.Transactions,
	})
	if err != nil {
		if ShouldNotify(err) {
			config.LogError(m.logger, "client", "Sync", "push", url, err)
		}
		return nil, err
	}

	stats, err := Reconcile(ctx, m.store, resp.Ledger())
	if err != nil {
		config.LogError(m.logger, "client", "Sync", "reconcile", nil, err)
		return nil, fmt.Errorf("写入本地数据失败: %w", err)
	}

	syncedAt := m.now().UTC()
	if err := m.store.SetSetting(ctx, SettingLastSyncTime, syncedAt.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}

	result := &SyncResult{
		RecordsUpdated:       resp.RecordsUpdated,
		TransactionsUpdated:  resp.TransactionsUpdated,
		RecordsImported:      stats.RecordsImported,
		TransactionsImported: stats.TransactionsImported,
		ServerTime:           resp.ServerTime,
		SyncedAt:             syncedAt,
	}
	m.logger.WithFields(logrus.Fields{
		"url":                  url,
		"recordsUpdated":       result.RecordsUpdated,
		"transactionsUpdated":  result.TransactionsUpdated,
		"recordsImported":      result.RecordsImported,
		"transactionsImported": result.TransactionsImported,
	}).Info("同步完成")
	return result, nil
}

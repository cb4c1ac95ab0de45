package client

import (
	"context"
	"sync/atomic"
	"time"
)

// Watcher 后台定期检查已配置的服务器是否可用
// 启动后先等待 delay 检查一次，之后每隔 interval 检查；上一次检查未结束时跳过本次
type Watcher struct {
	manager     *Manager
	delay       time.Duration
	interval    time.Duration
	onAvailable func(url string)
	busy        atomic.Bool
}

// NewWatcher 创建后台检查器，onAvailable 在服务器可用时调用（例如提示用户同步）
func NewWatcher(m *Manager, delay, interval time.Duration, onAvailable func(url string)) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		manager:     m,
		delay:       delay,
		interval:    interval,
		onAvailable: onAvailable,
	}
}

// Run 阻塞运行直到 ctx 结束
func (w *Watcher) Run(ctx context.Context) {
	timer := time.NewTimer(w.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	go w.CheckNow(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go w.CheckNow(ctx)
		}
	}
}

// CheckNow 立即检查一次，返回服务器是否可用；正在检查或未配置地址时返回 false
func (w *Watcher) CheckNow(ctx context.Context) bool {
	if !w.busy.CompareAndSwap(false, true) {
		return false
	}
	defer w.busy.Store(false)

	url, err := w.manager.ServerURL(ctx)
	if err != nil || url == "" {
		return false
	}
	if !w.manager.CheckServer(ctx, url) {
		return false
	}
	if w.onAvailable != nil {
		w.onAvailable(url)
	}
	return true
}

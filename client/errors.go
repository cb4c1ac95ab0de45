package client

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured 未设置同步服务器地址，不会发起任何网络请求
	ErrNotConfigured = errors.New("未设置同步服务器地址")
	// ErrUnreachable 传输层失败或超时
	ErrUnreachable = errors.New("无法连接同步服务器")
	// ErrUnknownServer 对方可以连通，但不是 Suito 同步服务器
	ErrUnknownServer = errors.New("不是 Suito 同步服务器")
	// ErrSyncFailed 服务器返回非成功状态或响应格式错误
	ErrSyncFailed = errors.New("同步失败")
	// ErrCancelled 调用方主动取消，不需要提示用户
	ErrCancelled = errors.New("操作已取消")
)

// SyncError 一次同步请求的失败详情
// errors.Is(err, ErrSyncFailed) 恒为真；传输失败时 Err 同时包裹 ErrUnreachable
type SyncError struct {
	Op     string
	Status int    // HTTP 状态码，未收到响应时为 0
	Detail string // 服务端返回的错误信息
	Err    error
}

func (e *SyncError) Error() string {
	msg := ErrSyncFailed.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SyncError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSyncFailed}
	}
	return []error{ErrSyncFailed, e.Err}
}

// ShouldNotify 是否需要把错误展示给用户；nil 与取消都不需要
func ShouldNotify(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrCancelled)
}

// transportError 区分调用方取消与网络失败
func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return fmt.Errorf("%w: %w", ErrUnreachable, err)
}

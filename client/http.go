package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"suito/models"
)

const (
	pingPath = "/api/ping"
	syncPath = "/api/sync"

	// maxSmallBody ping 响应与错误响应体的读取上限
	maxSmallBody = 4 << 10
)

// DefaultSyncTimeout 推送同步的默认超时，完整数据集可能接近服务端 50MB 上限
const DefaultSyncTimeout = 60 * time.Second

// Client 同步服务器 HTTP 客户端
// ping 与探测受 timeout 约束，推送同步使用单独的 syncTimeout
type Client struct {
	http     *http.Client
	syncHTTP *http.Client
}

// NewClient 创建客户端，timeout <= 0 时使用 3 秒，推送同步超时为 DefaultSyncTimeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		syncHTTP: &http.Client{Timeout: DefaultSyncTimeout},
	}
}

// WithSyncTimeout 设置推送同步超时，d <= 0 时保持原值
func (c *Client) WithSyncTimeout(d time.Duration) *Client {
	if d > 0 {
		c.syncHTTP = &http.Client{Timeout: d, Transport: c.http.Transport}
	}
	return c
}

// Ping 健康检查：可达且返回 {status:"ok", server:<非空>} 才算 Suito 服务器
func (c *Client) Ping(ctx context.Context, baseURL string) (*models.PingResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint(baseURL, pingPath), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnknownServer, resp.StatusCode)
	}
	var ping models.PingResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSmallBody)).Decode(&ping); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownServer, err)
	}
	if ping.Status != "ok" || ping.Server == "" {
		return nil, fmt.Errorf("%w: status=%q server=%q", ErrUnknownServer, ping.Status, ping.Server)
	}
	return &ping, nil
}

// PushSync 推送完整本地数据集并取回合并后的数据集
func (c *Client) PushSync(ctx context.Context, baseURL string, ledger models.Ledger) (*models.SyncResponse, error) {
	op := "POST " + syncPath
	ledger.Normalize()
	payload, err := json.Marshal(ledger)
	if err != nil {
		return nil, &SyncError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(baseURL, syncPath), bytes.NewReader(payload))
	if err != nil {
		return nil, &SyncError{Op: op, Err: fmt.Errorf("%w: %w", ErrUnreachable, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.syncClient().Do(req)
	if err != nil {
		return nil, &SyncError{Op: op, Err: transportError(ctx, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxSmallBody))
		return nil, &SyncError{Op: op, Status: resp.StatusCode, Detail: errorDetail(body)}
	}

	var out models.SyncResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &SyncError{Op: op, Status: resp.StatusCode, Detail: "响应格式错误", Err: transportOrDecode(ctx, err)}
	}
	if !out.Success || out.DailyRecords == nil || out.Transactions == nil {
		return nil, &SyncError{Op: op, Status: resp.StatusCode, Detail: "响应格式错误"}
	}
	return &out, nil
}

func (c *Client) syncClient() *http.Client {
	if c.syncHTTP == nil {
		return c.http
	}
	return c.syncHTTP
}

// errorDetail 提取服务端错误信息：{message} 或 {error}，否则取原文
func errorDetail(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(body))
}

// transportOrDecode 读取响应体途中被取消或超时也按传输失败处理
func transportOrDecode(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return transportError(ctx, err)
	}
	return err
}

func endpoint(baseURL, path string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + path
}

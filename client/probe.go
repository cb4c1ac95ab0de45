package client

import (
	"context"
	"fmt"
	"sync"

	"suito/config"

	"golang.org/x/sync/errgroup"
)

// Prober 在常见局域网网段中探测同步服务器
// 单个候选失败（含 panic）只视为不可达，不影响其余候选
type Prober struct {
	client      *Client
	port        int
	prefixes    []string
	first       int
	last        int
	concurrency int
}

// NewProber 创建探测器
func NewProber(c *Client, cfg config.ProbeConfig) *Prober {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Prober{
		client:      c,
		port:        cfg.Port,
		prefixes:    cfg.Prefixes,
		first:       cfg.First,
		last:        cfg.Last,
		concurrency: concurrency,
	}
}

// Candidates 按网段、主机号顺序列出候选地址
func (p *Prober) Candidates() []string {
	var out []string
	for _, prefix := range p.prefixes {
		for host := p.first; host <= p.last; host++ {
			out = append(out, fmt.Sprintf("http://%s.%d:%d", prefix, host, p.port))
		}
	}
	return out
}

// Find 返回第一个响应的服务器地址，找到后取消其余探测
// concurrency 为 1 时严格按 Candidates 顺序
func (p *Prober) Find(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	var (
		once  sync.Once
		found string
	)
	for _, candidate := range p.Candidates() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if p.check(gctx, candidate) {
				once.Do(func() {
					found = candidate
					cancel()
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	return found, found != ""
}

func (p *Prober) check(ctx context.Context, url string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	if ctx.Err() != nil {
		return false
	}
	_, err := p.client.Ping(ctx, url)
	return err == nil
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit 按客户端 IP 的滑动窗口限流
// 每 IP 在 window 内最多 limit 次请求，超过则返回 429；limit <= 0 时不限流
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	l := newIPLimiter(limit, window)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "请求过于频繁，请稍后再试",
			})
			return
		}
		c.Next()
	}
}

// ipLimiter 记录每个 IP 窗口内的请求时间
// 不起后台协程，每过一个窗口在请求路径上顺带清理一次过期 IP
type ipLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	hits := prune(l.hits[ip], cutoff)
	if len(hits) >= l.limit {
		l.hits[ip] = hits
		return false
	}
	l.hits[ip] = append(hits, now)
	return true
}

// sweep 删除窗口内已无请求的 IP，调用方持有锁
func (l *ipLimiter) sweep(cutoff time.Time) {
	for ip, hits := range l.hits {
		hits = prune(hits, cutoff)
		if len(hits) == 0 {
			delete(l.hits, ip)
		} else {
			l.hits[ip] = hits
		}
	}
}

// prune 原地移除 cutoff 之前的记录
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

package httpclient

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// RateLimiter 在请求发出前阻塞等待配额。
type RateLimiter interface {
	Wait(ctx context.Context, req *http.Request) error
}

// TokenBucketLimiter 按目标 host 区分的令牌桶限流，主要用于批量上传时
// 避免打满后端的文件接口。
type TokenBucketLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	qps     float64
	burst   int
}

// NewTokenBucketLimiter 创建限流器，qps<=0 时不限流。
func NewTokenBucketLimiter(qps float64, burst int) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		buckets: make(map[string]*bucket),
		qps:     qps,
		burst:   burst,
	}
}

// Wait 阻塞直到当前 host 拿到令牌或上下文取消。
func (l *TokenBucketLimiter) Wait(ctx context.Context, req *http.Request) error {
	if l == nil || l.qps <= 0 {
		return nil
	}
	b := l.bucketFor(req)
	for {
		wait := b.reserve(time.Now())
		if wait <= 0 {
			return nil
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *TokenBucketLimiter) bucketFor(req *http.Request) *bucket {
	key := "default"
	if req != nil && req.URL != nil && req.URL.Host != "" {
		key = req.URL.Host
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[key]; ok {
		return b
	}
	b := &bucket{
		qps:    l.qps,
		burst:  l.burst,
		tokens: float64(l.burst),
		last:   time.Now(),
	}
	l.buckets[key] = b
	return b
}

type bucket struct {
	mu     sync.Mutex
	qps    float64
	burst  int
	tokens float64
	last   time.Time
}

func (b *bucket) reserve(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.last).Seconds()
	b.tokens += elapsed * b.qps
	if b.tokens > float64(b.burst) {
		b.tokens = float64(b.burst)
	}
	b.last = now
	if b.tokens >= 1 {
		b.tokens -= 1
		return 0
	}
	need := 1 - b.tokens
	return time.Duration(need / b.qps * float64(time.Second))
}

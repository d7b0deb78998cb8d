package httpclient

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDoSuccess(t *testing.T) {
	client := NewClient(WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"id":"rec1","name":"Docs"}`), nil
		}),
	}))
	req, _ := http.NewRequest(http.MethodGet, "http://mock/records", nil)
	var rec mockRecord
	if err := client.Do(req, &rec); err != nil {
		t.Fatalf("预期成功，得到错误: %v", err)
	}
	if rec.ID != "rec1" || rec.Name != "Docs" {
		t.Fatalf("响应解析错误: %+v", rec)
	}
}

func TestAPIErrorNestedMessage(t *testing.T) {
	client := NewClient(WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadRequest, `{"code":400,"message":"Failed to authenticate.","data":{"message":"Invalid credentials"}}`), nil
		}),
	}))
	req, _ := http.NewRequest(http.MethodPost, "http://mock/auth", nil)
	err := client.Do(req, &mockRecord{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("错误类型应为 APIError，实际: %v", err)
	}
	if apiErr.Detail() != "Invalid credentials" {
		t.Fatalf("应优先取 data.message，得到 %q", apiErr.Detail())
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("状态码不匹配: %d", apiErr.Status)
	}
}

func TestAPIErrorTopLevelMessage(t *testing.T) {
	client := NewClient(WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusNotFound, `{"code":404,"message":"The requested resource wasn't found."}`), nil
		}),
	}))
	req, _ := http.NewRequest(http.MethodGet, "http://mock/missing", nil)
	err := client.Do(req, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("错误类型应为 APIError，实际: %v", err)
	}
	if apiErr.Detail() != "The requested resource wasn't found." {
		t.Fatalf("应回退到顶层 message，得到 %q", apiErr.Detail())
	}
}

func TestAPIErrorUnparseableBody(t *testing.T) {
	client := NewClient(WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, `<html>bad gateway</html>`), nil
		}),
	}))
	req, _ := http.NewRequest(http.MethodGet, "http://mock/gateway", nil)
	err := client.Do(req, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("错误类型应为 APIError，实际: %v", err)
	}
	if apiErr.Detail() != "" {
		t.Fatalf("不可解析的错误体应返回空 detail，得到 %q", apiErr.Detail())
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("状态码不匹配: %d", apiErr.Status)
	}
}

func TestNetworkErrorWrapped(t *testing.T) {
	client := NewClient(WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("连接被拒绝")
		}),
	}))
	req, _ := http.NewRequest(http.MethodGet, "http://mock/down", nil)
	err := client.Do(req, &mockRecord{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("错误类型应为 NetworkError，实际: %v", err)
	}
}

func TestNoRetryByDefault(t *testing.T) {
	attempts := 0
	client := NewClient(WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			attempts++
			return jsonResponse(http.StatusInternalServerError, `{"code":500,"message":"boom"}`), nil
		}),
	}))
	req, _ := http.NewRequest(http.MethodGet, "http://mock/flaky", nil)
	if err := client.Do(req, nil); err == nil {
		t.Fatal("预期服务端错误")
	}
	if attempts != 1 {
		t.Fatalf("默认不应重试，实际请求 %d 次", attempts)
	}
}

func TestNetworkRetryWithPolicy(t *testing.T) {
	transport := &flakyTransport{
		failures: 1,
		inner: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"id":"rec1"}`), nil
		}),
	}
	policy := NewExponentialBackoffRetry(RetryConfig{
		MaxRetries: 1,
		BaseDelay:  1 * time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	})
	client := NewClient(
		WithHTTPClient(&http.Client{Transport: transport}),
		WithRetryPolicy(policy),
	)
	req, _ := http.NewRequest(http.MethodGet, "http://mock/network", nil)
	var rec mockRecord
	if err := client.Do(req, &rec); err != nil {
		t.Fatalf("网络错误后应重试成功: %v", err)
	}
	if transport.attempts != 2 {
		t.Fatalf("应尝试 2 次，实际 %d", transport.attempts)
	}
}

func TestClientErrorNoRetry(t *testing.T) {
	attempts := 0
	policy := NewExponentialBackoffRetry(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Millisecond,
		MaxDelay:   1 * time.Millisecond,
	})
	client := NewClient(
		WithRetryPolicy(policy),
		WithHTTPClient(&http.Client{
			Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
				attempts++
				return jsonResponse(http.StatusForbidden, `{"code":403,"message":"Only the record owner can access this action."}`), nil
			}),
		}),
	)
	req, _ := http.NewRequest(http.MethodGet, "http://mock/forbidden", nil)
	if err := client.Do(req, nil); err == nil {
		t.Fatal("预期业务错误")
	}
	if attempts != 1 {
		t.Fatalf("4xx 不应重试，实际请求 %d 次", attempts)
	}
}

func TestBodyWithoutGetBodyCannotRetry(t *testing.T) {
	policy := NewExponentialBackoffRetry(RetryConfig{
		MaxRetries: 1,
		BaseDelay:  1 * time.Millisecond,
		MaxDelay:   1 * time.Millisecond,
	})
	client := NewClient(
		WithRetryPolicy(policy),
		WithHTTPClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("模拟网络失败")
		})}),
	)

	req, _ := http.NewRequest(http.MethodPost, "http://mock/body", bytes.NewBufferString("data"))
	req.GetBody = nil // 模拟无法重试的场景
	err := client.Do(req, &mockRecord{})
	if err == nil {
		t.Fatal("预期因无法重试请求体而失败")
	}
	if err.Error() != "httpclient: 请求体不可重试" {
		t.Fatalf("错误信息不符合预期: %v", err)
	}
}

func TestBearerMiddleware(t *testing.T) {
	var got string
	client := NewClient(
		WithMiddlewares(WithBearer(func() string { return "token-1" })),
		WithHTTPClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			got = req.Header.Get("Authorization")
			return jsonResponse(http.StatusOK, `{}`), nil
		})}),
	)
	req, _ := http.NewRequest(http.MethodGet, "http://mock/auth", nil)
	if err := client.Do(req, nil); err != nil {
		t.Fatalf("请求失败: %v", err)
	}
	if got != "Bearer token-1" {
		t.Fatalf("Authorization 头不正确: %q", got)
	}
}

func TestBearerMiddlewareEmptyToken(t *testing.T) {
	var has bool
	client := NewClient(
		WithMiddlewares(WithBearer(func() string { return "" })),
		WithHTTPClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			_, has = req.Header["Authorization"]
			return jsonResponse(http.StatusOK, `{}`), nil
		})}),
	)
	req, _ := http.NewRequest(http.MethodGet, "http://mock/anon", nil)
	if err := client.Do(req, nil); err != nil {
		t.Fatalf("请求失败: %v", err)
	}
	if has {
		t.Fatal("空 token 不应携带 Authorization 头")
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewTokenBucketLimiter(5, 1)
	client := NewClient(
		WithRateLimiter(limiter),
		WithHTTPClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{}`), nil
		})}),
	)
	start := time.Now()
	for i := 0; i < 2; i++ {
		req, _ := http.NewRequest(http.MethodGet, "http://mock/ratelimit", nil)
		if err := client.Do(req, nil); err != nil {
			t.Fatalf("限流请求失败: %v", err)
		}
	}
	elapsed := time.Since(start)
	if elapsed < 150*time.Millisecond {
		t.Fatalf("限流未生效，耗时过短: %v", elapsed)
	}
}

func TestRateLimiterContextCancel(t *testing.T) {
	limiter := NewTokenBucketLimiter(0.1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://mock/slow", nil)
	if err := limiter.Wait(ctx, req); err != nil {
		t.Fatalf("首个令牌应立即可用: %v", err)
	}
	if err := limiter.Wait(ctx, req); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("等待应因上下文超时中断，实际: %v", err)
	}
}

type flakyTransport struct {
	failures int
	inner    http.RoundTripper
	attempts int
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.attempts++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("模拟网络失败")
	}
	return f.inner.RoundTrip(req)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Type", "application/json")
	rec.WriteHeader(status)
	rec.Body.WriteString(body)
	return rec.Result()
}

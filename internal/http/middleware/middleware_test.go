package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"web2pdf/internal/config"
)

type memStore struct {
	sync.RWMutex
	m map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string][]byte)}
}

func (s *memStore) Get(key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()
	return s.m[key], nil
}

func (s *memStore) Set(key string, val []byte, exp time.Duration) error {
	s.Lock()
	s.m[key] = val
	s.Unlock()
	return nil
}

func (s *memStore) Delete(key string) error {
	s.Lock()
	delete(s.m, key)
	s.Unlock()
	return nil
}

func (s *memStore) Reset() error {
	s.Lock()
	s.m = make(map[string][]byte)
	s.Unlock()
	return nil
}

func (s *memStore) Close() error { return nil }

func TestRegister_AddsHealthAndRequestID(t *testing.T) {
	app := fiber.New()
	Register(app, config.Config{})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, path := range []string{LivenessPath, ReadinessPath} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s request failed: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected %s 200, got %d", path, resp.StatusCode)
		}
	}

	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("ping request failed: %v", err)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id to be present")
	}
}

func TestUserRateLimit_OnlyLimitsConvert(t *testing.T) {
	cfg := config.RateLimiterConfig{UserLimit: 2, Interval: time.Hour}

	app := fiber.New()
	app.Use(UserRateLimit(cfg, newMemStore()))
	app.Post(LimitedPath, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("form") })

	makeReq := func(method, path string) *http.Request {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("User-Agent", "test-agent")
		req.RemoteAddr = "1.2.3.4:5678"
		return req
	}

	for i := 0; i < 2; i++ {
		resp, err := app.Test(makeReq(http.MethodPost, LimitedPath), -1)
		if err != nil {
			t.Fatalf("request %d failed: %v", i+1, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("expected 200 but got %d", resp.StatusCode)
		}
	}

	resp, err := app.Test(makeReq(http.MethodPost, LimitedPath), -1)
	if err != nil {
		t.Fatalf("third request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 but got %d", resp.StatusCode)
	}

	for i := 0; i < 3; i++ {
		resp, err := app.Test(makeReq(http.MethodGet, "/"), -1)
		if err != nil {
			t.Fatalf("form request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("form must not be rate limited, got %d", resp.StatusCode)
		}
	}
}

func TestRegister_EnablesLimiterFromConfig(t *testing.T) {
	cfg := config.Config{}
	cfg.RateLimiter.UserLimit = 1
	cfg.RateLimiter.Interval = time.Hour

	app := fiber.New()
	Register(app, cfg)
	app.Post(LimitedPath, func(c *fiber.Ctx) error { return c.SendString("ok") })

	first, _ := app.Test(httptest.NewRequest(http.MethodPost, LimitedPath, nil), -1)
	second, _ := app.Test(httptest.NewRequest(http.MethodPost, LimitedPath, nil), -1)
	if first.StatusCode != fiber.StatusOK || second.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 200 then 429, got %d then %d", first.StatusCode, second.StatusCode)
	}
}

// Package api реализует HTTP-клиент удалённого API исследовательского ассистента.
//
// Каждый метод делает ровно один запрос без повторов: собирает тело (JSON или
// форму), добавляет Bearer-токен и сравнивает код ответа с единственным
// ожидаемым. Любой другой код, в том числе другой 2xx, возвращается как
// *StatusError, а отсутствие ответа как ErrUnavailable.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
)

// RequestIDHeader заголовок, которым помечается каждый запрос.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 64 << 10

// Observer получает сведения о каждом выполненном запросе.
// code равен 0, если ответа не было.
type Observer interface {
	ObserveRequest(endpoint string, code int, duration time.Duration)
}

// Client клиент удалённого API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	observer   Observer
	log        *slog.Logger
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт http.Client, например с таймаутом.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit ограничивает частоту запросов. Запрос сверх лимита ждёт,
// а не отбрасывается. Нулевой limit отключает ограничение.
func WithRateLimit(limit float64, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
}

// WithUserAgent задаёт заголовок User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithObserver подключает сбор метрик.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithLogger задаёт логгер клиента.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New создаёт клиент для API по адресу baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		userAgent:  "research-assistant",
		log:        sl.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call описывает один запрос к API.
type call struct {
	op       string
	endpoint string
	method   string
	path     string
	token    string
	body     any
	form     url.Values
	want     int
	out      any
}

func (c *Client) newRequest(ctx context.Context, cl call, requestID string) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)
	switch {
	case cl.form != nil:
		body = strings.NewReader(cl.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case cl.body != nil:
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(cl.body); err != nil {
			return nil, err
		}
		body = &buf
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, cl call) error {
	requestID := uuid.NewString()
	log := c.log.With(
		slog.String("op", cl.op),
		slog.String("request_id", requestID),
	)

	req, err := c.newRequest(ctx, cl, requestID)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.op, err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s: %w: %w", cl.op, ErrUnavailable, err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(cl.endpoint, 0, time.Since(start))
		log.Error("request failed", sl.Err(err))
		return fmt.Errorf("%s: %w: %w", cl.op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	c.observe(cl.endpoint, resp.StatusCode, elapsed)
	log.Debug("request completed",
		slog.String("method", cl.method),
		slog.String("path", cl.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", elapsed),
	)

	if resp.StatusCode != cl.want {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &StatusError{Op: cl.op, Code: resp.StatusCode, Detail: parseDetail(raw)}
		log.Warn("unexpected status", slog.Int("status", resp.StatusCode), slog.Int("want", cl.want))
		return serr
	}

	if cl.out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		log.Error("failed to decode response", sl.Err(err))
		return fmt.Errorf("%s: decode response: %w", cl.op, err)
	}
	return nil
}

func (c *Client) observe(endpoint string, code int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(endpoint, code, d)
	}
}

func idPath(format string, id fmt.Stringer) string {
	return fmt.Sprintf(format, url.PathEscape(id.String()))
}

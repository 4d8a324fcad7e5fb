// Package supabase - клиент серверной части: Auth (GoTrue) и REST (PostgREST).
// Клиент не хранит состояния, токен доступа передается в каждый вызов.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gophvault/internal/apperr"

	"golang.org/x/exp/slog"
)

const userAgent = "GophVault-Client/1.0"

type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

type Client struct {
	http    *http.Client
	baseURL string
	anonKey string
	log     *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		log:     log.With(slog.String("component", "supabase")),
	}
}

// errorBody - тело ошибки Auth и PostgREST, поля различаются между сервисами
type errorBody struct {
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (b errorBody) text() string {
	for _, s := range []string{b.Message, b.ErrorDescription, b.Msg, b.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
	header map[string]string
}

// do выполняет запрос и возвращает тело успешного ответа.
// failKind - вид ошибки для ответов не-2xx.
func (c *Client) do(ctx context.Context, r request, failKind error) ([]byte, error) {
	var reqBody io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrSerialization, "encode request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, reqBody)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrNetwork, "build request", err)
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("User-Agent", userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for k, v := range r.header {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrNetwork, fmt.Sprintf("%s %s", r.method, r.path), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrNetwork, "read response", err)
	}

	c.log.Debug("запрос выполнен",
		slog.String("method", r.method),
		slog.String("path", r.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		msg := ""
		if json.Unmarshal(body, &eb) == nil {
			msg = eb.text()
		}
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, apperr.New(failKind, msg)
	}

	return body, nil
}

func decode[T any](body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, apperr.Wrap(apperr.ErrSerialization, "decode response", err)
	}
	return out, nil
}

// Ping проверяет доступность REST. 401 тоже означает, что сервер отвечает.
func (c *Client) Ping(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/rest/v1/", nil)
	if err != nil {
		return false, apperr.Wrap(apperr.ErrNetwork, "build request", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		c.log.Debug("сервер недоступен", slog.String("error", err.Error()))
		return false, nil
	}
	defer resp.Body.Close()

	online := (resp.StatusCode >= 200 && resp.StatusCode < 300) || resp.StatusCode == http.StatusUnauthorized
	return online, nil
}

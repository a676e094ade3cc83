// ============================================================================
// meinDRUCKCENTER (mPC) - PaperCut Administration & Deployment Toolkit
// ============================================================================
//
// Package:     papercut
// Description: Typed client for the PaperCut server-command web services API
// Author:      Mike Stoffels
// Created:     2026-08-16
// License:     MIT
// ============================================================================

// Package papercut provides a typed client for the XML-RPC web services
// endpoint of a PaperCut NG/MF application server. Every operation takes a
// context and the web services auth token; results are decoded into plain
// Go values and server faults are surfaced as *Fault errors.
package papercut

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/msto63/mPC/internal/xmlrpc"
	"github.com/msto63/mPC/pkg/core/logging"
)

// Endpoint path of the XML-RPC API on the application server
const rpcPath = "/rpc/api/xmlrpc"

// Fault is a server-reported API fault carrying the fault code and message.
// Use errors.As to detect it.
type Fault = xmlrpc.Fault

// Config holds client configuration
type Config struct {
	// Host is the name or address of the application server
	Host string

	// Port the server listens on (9191 plain, 9192 TLS by default)
	Port int

	// UseTLS switches the endpoint to HTTPS
	UseTLS bool

	// Timeout bounds each individual call
	Timeout time.Duration

	// Logger receives per-call debug output; nil disables logging
	Logger *logging.Logger
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		Host:    "localhost",
		Port:    9191,
		UseTLS:  false,
		Timeout: 60 * time.Second,
	}
}

// Client talks to one application server. Construction performs no network
// I/O; the transport is dialed on the first call. A Client is intended for
// sequential use; Close releases the transport and may be called at any
// time, including after failed calls.
type Client struct {
	url     string
	timeout time.Duration
	log     *logging.Logger

	once sync.Once
	http *http.Client
}

// NewClient creates a client for the given configuration
func NewClient(cfg Config) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultConfig().Host
	}
	if cfg.Port == 0 {
		if cfg.UseTLS {
			cfg.Port = 9192
		} else {
			cfg.Port = DefaultConfig().Port
		}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	scheme := "http"
	if cfg.UseTLS {
		scheme = "https"
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &Client{
		url:     fmt.Sprintf("%s://%s:%d%s", scheme, cfg.Host, cfg.Port, rpcPath),
		timeout: cfg.Timeout,
		log:     log.WithName("papercut"),
	}
}

// URL returns the endpoint URL the client calls
func (c *Client) URL() string {
	return c.url
}

// Call performs a single XML-RPC round trip. Typed wrappers cover the
// documented server commands; Call remains exported for commands not yet
// wrapped. The method name is given without the "api." prefix.
func (c *Client) Call(ctx context.Context, method string, args ...interface{}) (interface{}, error) {
	c.once.Do(func() {
		c.http = &http.Client{Timeout: c.timeout}
	})

	body, err := xmlrpc.Marshal("api."+method, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	req.Header.Set("Content-Type", "text/xml")

	c.log.Debug("calling server command", "method", method, "args", len(args))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: server answered %s", method, resp.Status)
	}

	result, err := xmlrpc.Unmarshal(data)
	if err != nil {
		// Faults pass through untouched so callers can inspect the code
		return nil, err
	}
	return result, nil
}

// Close releases the underlying transport. Safe to call when no call was
// ever made and safe to call more than once.
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
}

// callString performs a call whose result is a string
func (c *Client) callString(ctx context.Context, method string, args ...interface{}) (string, error) {
	result, err := c.Call(ctx, method, args...)
	if err != nil {
		return "", err
	}
	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("%s: result is %T, want string", method, result)
	}
	return s, nil
}

// callInt performs a call whose result is an integer
func (c *Client) callInt(ctx context.Context, method string, args ...interface{}) (int, error) {
	result, err := c.Call(ctx, method, args...)
	if err != nil {
		return 0, err
	}
	n, ok := result.(int)
	if !ok {
		return 0, fmt.Errorf("%s: result is %T, want int", method, result)
	}
	return n, nil
}

// callBool performs a call whose result is a boolean
func (c *Client) callBool(ctx context.Context, method string, args ...interface{}) (bool, error) {
	result, err := c.Call(ctx, method, args...)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%s: result is %T, want bool", method, result)
	}
	return b, nil
}

// callFloat performs a call whose result is a double
func (c *Client) callFloat(ctx context.Context, method string, args ...interface{}) (float64, error) {
	result, err := c.Call(ctx, method, args...)
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s: result is %T, want double", method, result)
	}
}

// callStrings performs a call whose result is an array of strings
func (c *Client) callStrings(ctx context.Context, method string, args ...interface{}) ([]string, error) {
	result, err := c.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	items, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: result is %T, want array", method, result)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s: array element is %T, want string", method, item)
		}
		names = append(names, s)
	}
	return names, nil
}

// callVoid performs a call and discards the result
func (c *Client) callVoid(ctx context.Context, method string, args ...interface{}) error {
	_, err := c.Call(ctx, method, args...)
	return err
}

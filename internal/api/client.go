// Package api implements the HTTP client for the ccTalk bridge. The bridge
// owns the physical transport, frame encoding, and checksums; this client
// only consumes its JSON endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Osiakosia/Emterprise-logger-adminite/internal/errors"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/headers"
	"github.com/Osiakosia/Emterprise-logger-adminite/internal/logger"
)

// DefaultTimeout bounds a single request. The status poller lowers this per
// request with its own context so a hung poll cannot starve the next tick.
const DefaultTimeout = 5 * time.Second

// Client talks to one bridge instance.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewClient creates a client for the bridge at baseURL, e.g.
// "http://127.0.0.1:5000". A trailing slash is tolerated.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logger.Noop(),
	}
}

// SetLogger replaces the client's logger.
func (c *Client) SetLogger(l logger.Logger) {
	if l != nil {
		c.log = l
	}
}

// SetTimeout replaces the whole-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.http.Timeout = d
}

// Timeout returns the transport deadline currently in effect.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// BaseURL returns the configured bridge address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the full status snapshot.
func (c *Client) Status(ctx context.Context) (*StatusSnapshot, error) {
	var snap StatusSnapshot
	if err := c.getJSON(ctx, "/api/status", &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// headersResponse is the GET headers payload.
type headersResponse struct {
	Headers []headers.Descriptor `json:"headers"`
}

// Headers fetches the command descriptor list. The result is immutable on
// the bridge side; callers cache it until an explicit reload.
func (c *Client) Headers(ctx context.Context) ([]headers.Descriptor, error) {
	var resp headersResponse
	if err := c.getJSON(ctx, "/api/headers", &resp); err != nil {
		return nil, err
	}
	return resp.Headers, nil
}

// Send posts one command frame request. A non-2xx status or an ok:false
// body is returned as a DISPATCH error carrying the bridge's reason when
// it supplied one.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	body, status, err := c.postJSON(ctx, "/api/send", req)
	if err != nil {
		return nil, err
	}

	var result SendResult
	if err := json.Unmarshal(body, &result); err != nil {
		// Tolerate empty or non-JSON bodies the way the UI always has:
		// the HTTP status is then the only signal.
		result = SendResult{OK: status < 300}
	}

	if status >= 300 || !result.OK {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("send rejected (HTTP %d)", status)
		}
		return &result, errors.New(errors.ErrDispatch, msg,
			"Check the bridge is connected to the serial line")
	}
	return &result, nil
}

// Config fetches the bridge's port/baud defaults.
func (c *Client) Config(ctx context.Context) (*BridgeConfig, error) {
	var cfg BridgeConfig
	if err := c.getJSON(ctx, "/api/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetConfig pushes port/baud defaults to the bridge.
func (c *Client) SetConfig(ctx context.Context, cfg BridgeConfig) error {
	_, status, err := c.postJSON(ctx, "/api/config", cfg)
	if err != nil {
		return err
	}
	if status >= 300 {
		return errors.New(errors.ErrAPI,
			fmt.Sprintf("config update rejected (HTTP %d)", status),
			"Check the port name and baud rate")
	}
	return nil
}

// connectRequest is the POST connect body.
type connectRequest struct {
	Port string `json:"port"`
	Baud int    `json:"baud"`
}

// Connect asks the bridge to open its serial transport.
func (c *Client) Connect(ctx context.Context, port string, baud int) error {
	body, status, err := c.postJSON(ctx, "/api/connect", connectRequest{Port: port, Baud: baud})
	if err != nil {
		return err
	}
	if status >= 300 {
		var result SendResult
		msg := fmt.Sprintf("connect failed (HTTP %d)", status)
		if json.Unmarshal(body, &result) == nil && result.Error != "" {
			msg = result.Error
		}
		return errors.New(errors.ErrAPI, msg,
			"Check the serial port exists and is not held by another process")
	}
	return nil
}

// Disconnect asks the bridge to close its serial transport.
func (c *Client) Disconnect(ctx context.Context) error {
	_, status, err := c.postJSON(ctx, "/api/disconnect", struct{}{})
	if err != nil {
		return err
	}
	if status >= 300 {
		return errors.New(errors.ErrAPI,
			fmt.Sprintf("disconnect failed (HTTP %d)", status), "")
	}
	return nil
}

// ClearLog wipes the bridge's frame buffer.
func (c *Client) ClearLog(ctx context.Context) error {
	_, status, err := c.postJSON(ctx, "/api/clear_log", struct{}{})
	if err != nil {
		return err
	}
	if status >= 300 {
		return errors.New(errors.ErrAPI,
			fmt.Sprintf("clear_log failed (HTTP %d)", status), "")
	}
	return nil
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI, "Invalid bridge URL",
			"Check the server address in .ccpanel.yaml or --server")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			"Bridge unreachable: GET "+path,
			"Check the bridge is running and the server address is correct")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.New(errors.ErrAPI,
			fmt.Sprintf("GET %s returned HTTP %d", path, resp.StatusCode), "")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			"Malformed response from GET "+path, "")
	}
	return nil
}

// postJSON performs a POST and returns the raw body and status code.
// Transport failures are errors; HTTP-level failures are left to the
// caller, which knows the endpoint's body shape.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, int, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, errors.WrapWithCode(err, errors.ErrAPI, "Cannot encode request", "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, errors.WrapWithCode(err, errors.ErrAPI, "Invalid bridge URL",
			"Check the server address in .ccpanel.yaml or --server")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.WrapWithCode(err, errors.ErrAPI,
			"Bridge unreachable: POST "+path,
			"Check the bridge is running and the server address is correct")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.WrapWithCode(err, errors.ErrAPI,
			"Failed reading response from POST "+path, "")
	}

	c.log.Debug("POST %s -> %d", path, resp.StatusCode)
	return body, resp.StatusCode, nil
}

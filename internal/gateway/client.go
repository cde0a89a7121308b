package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"donorhub/monitoring"
)

type ClientConfig struct {
	BaseURL string `json:"baseUrl"`
	Timeout time.Duration
}

// Error is a gateway rejection: the backend answered with a non-2xx status.
// Message carries the backend's own wording and is surfaced to the user
// verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Client is the REST client for the donation platform backend.
type Client struct {
	// baseURL is the base url of the backend.
	baseURL string

	// hc is the http client.
	hc *http.Client

	log *zerolog.Logger
}

// NewClient creates a new backend client.
func NewClient(c *ClientConfig, log *zerolog.Logger) *Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: c.BaseURL,
		hc: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *Client) endpoint(path string) string {
	base, _ := url.Parse(c.baseURL)
	return fmt.Sprintf("%s%s", base.String(), path)
}

// doJSON performs one backend call. A non-empty token is sent as a bearer
// credential. When out is non-nil the response body is decoded into it.
// Non-2xx replies are decoded into *Error with the backend's message kept
// word for word.
func (c *Client) doJSON(ctx context.Context, op, method, path, token string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: json.Marshal: %w", op, err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), bodyReader)
	if err != nil {
		return fmt.Errorf("%s: http.NewReq: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		monitoring.TrackGatewayRequest(op, "transport_error", time.Since(start))
		return fmt.Errorf("%s: http.Do: %w", op, err)
	}
	defer resp.Body.Close()
	monitoring.TrackGatewayRequest(op, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(op, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s: json.Decode: %w", op, err)
	}
	return nil
}

func (c *Client) decodeError(op string, resp *http.Response) error {
	var reply struct {
		Message string `json:"message"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil || reply.Message == "" {
		reply.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	c.log.Warn().Str("op", op).Int("status", resp.StatusCode).Str("message", reply.Message).Msg("gateway rejected request")
	return &Error{StatusCode: resp.StatusCode, Message: reply.Message}
}

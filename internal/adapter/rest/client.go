// Package rest implements the repository boundaries against the StuLang
// HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/entity"
)

// Config carries everything the client needs to reach the API.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Token supplies the current bearer token, or "" when logged out.
	Token func() string
	// OnUnauthorized runs whenever the server answers 401. The session
	// layer registers its teardown here.
	OnUnauthorized func()

	Log *logrus.Logger
}

// Client is a thin JSON transport shared by all repository
// implementations in this package.
type Client struct {
	baseURL        string
	http           *http.Client
	token          func() string
	onUnauthorized func()
	log            *logrus.Logger
}

// NewClient builds the shared transport.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: timeout},
		token:          cfg.Token,
		onUnauthorized: cfg.OnUnauthorized,
		log:            cfg.Log,
	}
}

// apiError is a non-2xx response before domain mapping.
type apiError struct {
	Status int
	Detail string
}

func (e *apiError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &apiError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		if c.log != nil {
			c.log.WithFields(logrus.Fields{
				"method": method,
				"path":   path,
				"status": resp.StatusCode,
			}).Debug("api error response")
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// readDetail extracts the "detail" field FastAPI-style error bodies
// carry; a plain-text body is returned as-is.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(raw))
}

// mapErr translates an apiError into the domain error taxonomy. notFound
// is the endpoint-specific meaning of a 404, since the API uses it both
// for missing cycles and missing words.
func mapErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	apiErr, ok := err.(*apiError)
	if !ok {
		return err
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return entity.ErrUnauthenticated
	case http.StatusForbidden:
		return entity.ErrForbidden
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", entity.ErrSchemaMismatch, apiErr.Detail)
	case http.StatusNotFound:
		if notFound != nil {
			return notFound
		}
		return apiErr
	}
	return apiErr
}

// badRequestDetail returns the lowercased detail of a 400 response, or
// "", false for anything else. The meaning of a 400 depends on the
// endpoint, so each repository inspects it itself.
func badRequestDetail(err error) (string, bool) {
	apiErr, ok := err.(*apiError)
	if !ok || apiErr.Status != http.StatusBadRequest {
		return "", false
	}
	return strings.ToLower(apiErr.Detail), true
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/config"
	"diagram-editor-service/internal/core/domain"
	ports "diagram-editor-service/internal/core/ports/output"
)

// maxResponseBytes caps how much of a backend answer is read.
const maxResponseBytes = 8 << 20

var (
	_ ports.DiagramStore = (*Client)(nil)
	_ ports.MediaStore   = (*Client)(nil)
	_ ports.AuthClient   = (*Client)(nil)
)

// Client talks to the diagram REST backend. It implements DiagramStore,
// MediaStore and AuthClient, replaying the session's cookies on every call.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client adapter
func NewClient(cfg *config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsAvailable reports whether the backend answers at all. Any HTTP status
// counts as reachable.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/login", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return true
}

// payload is a decoded backend answer: {"ok": true, "<key>": ...}.
type payload map[string]json.RawMessage

type result struct {
	body    payload
	cookies []*http.Cookie
}

func (c *Client) do(ctx context.Context, sess *domain.Session, method, path string, query url.Values, body any) (*result, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("create backend request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, sess)
}

func (c *Client) send(req *http.Request, sess *domain.Session) (*result, error) {
	req.Header.Set("Accept", "application/json")
	if sess != nil {
		for _, ck := range sess.Cookies {
			req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		}
	}

	log.WithFields(log.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
	}).Debug("calling backend")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	res := &result{cookies: resp.Cookies()}
	if resp.StatusCode == http.StatusNoContent {
		return res, nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrBackendUnavailable, err)
	}

	var decoded payload
	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json") || json.Valid(raw)
	if len(bytes.TrimSpace(raw)) > 0 && isJSON {
		if err := json.Unmarshal(raw, &decoded); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("decode backend response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.RemoteError{Status: resp.StatusCode, Message: message(decoded, raw)}
	}
	if ok, present := decoded["ok"]; present && string(ok) == "false" {
		return nil, &domain.RemoteError{Status: resp.StatusCode, Message: message(decoded, raw)}
	}
	res.body = decoded
	return res, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// message extracts the backend's "mensaje" field, falling back to a short
// plain-text body.
func message(body payload, raw []byte) string {
	if m, ok := body["mensaje"]; ok {
		var s string
		if json.Unmarshal(m, &s) == nil {
			return s
		}
	}
	if body == nil {
		text := strings.TrimSpace(string(raw))
		if len(text) <= 200 {
			return text
		}
	}
	return ""
}

// field decodes body[key] into out.
func (p payload) field(key string, out any) error {
	v, ok := p[key]
	if !ok {
		return fmt.Errorf("backend response has no %q", key)
	}
	if err := json.Unmarshal(v, out); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (p payload) id(key string) (int64, error) {
	var id int64
	if err := p.field(key, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func idQuery(key string, id int64) url.Values {
	return url.Values{key: []string{strconv.FormatInt(id, 10)}}
}

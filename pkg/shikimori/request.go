package shikimori

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// Request describes one API call.
type Request struct {
	// Method defaults to GET.
	Method string
	URL    string
	Query  url.Values
	// Body is sent as JSON, or as multipart form fields when Files is set.
	Body any
	// Files turns the request into a multipart upload. Body fields are
	// merged in as form fields, nested maps flattened as a[b][c].
	Files   []File
	Headers http.Header
	// Quiet keeps the response body out of the debug log.
	Quiet bool
}

// File is one part of a multipart upload.
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Result is a successful response.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// JSON reports whether Body parsed as JSON.
	JSON bool
}

// Raw returns the body as JSON, or nil when it was not JSON.
func (r *Result) Raw() json.RawMessage {
	if r == nil || !r.JSON {
		return nil
	}
	return r.Body
}

// Text returns the body as text.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// OK reports a 2xx status.
func (r *Result) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

type retryPolicy struct {
	initial    time.Duration
	maxElapsed time.Duration
}

// WithTooManyRequestsRetry retries 429 responses with exponential backoff
// starting at initial and giving up after maxElapsed. Off by default.
func WithTooManyRequestsRetry(initial, maxElapsed time.Duration) Option {
	return func(c *Client) {
		c.retry = &retryPolicy{initial: initial, maxElapsed: maxElapsed}
	}
}

func (p *retryPolicy) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initial
	b.Multiplier = 5
	b.MaxInterval = 300 * time.Second
	b.MaxElapsedTime = p.maxElapsed
	return backoff.WithContext(backoff.WithMaxRetries(b, 30), ctx)
}

// Request performs req. It returns (nil, nil) when the session is closed.
// Non-2xx responses are returned as *APIError; a 401 invalid_token on a
// protected request triggers one refresh and one retry.
func (c *Client) Request(ctx context.Context, req Request) (*Result, error) {
	hc := c.session()
	if hc == nil {
		c.logger.Debug().Str("url", req.URL).Msg("Session is closed, skipping request")
		return nil, nil
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	res, used, err := c.send(ctx, hc, req, body, contentType, id)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.InvalidToken() && used != "" {
		c.logger.Debug().Str("request_id", id).Msg("Access token rejected, refreshing and retrying once")
		if rerr := c.refresh(ctx, used); rerr != nil {
			return nil, rerr
		}
		res, _, err = c.send(ctx, hc, req, body, contentType, id)
	}
	return res, err
}

// protected reports whether a request to rawURL carries the bearer token.
func (c *Client) protected(rawURL string) bool {
	if c.restricted || rawURL == c.endpoints.OAuthToken() {
		return false
	}
	c.tokMu.RLock()
	defer c.tokMu.RUnlock()
	return c.token.refreshToken != ""
}

// send performs one logical attempt, retrying 429s when enabled. It returns
// the access token the request carried, if any.
func (c *Client) send(ctx context.Context, hc *http.Client, req Request, body []byte, contentType, id string) (*Result, string, error) {
	if c.retry == nil {
		return c.do(ctx, hc, req, body, contentType, id)
	}

	var (
		res  *Result
		used string
	)
	op := func() error {
		var err error
		res, used, err = c.do(ctx, hc, req, body, contentType, id)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Str("request_id", id).Dur("wait", wait).Msg("Too many requests, backing off")
	}
	err := backoff.RetryNotify(op, c.retry.backoff(ctx), notify)
	return res, used, err
}

func (c *Client) do(ctx context.Context, hc *http.Client, req Request, body []byte, contentType, id string) (*Result, string, error) {
	target := req.URL
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range req.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	var used string
	if c.protected(req.URL) {
		used = c.AccessToken()
		httpReq.Header.Set("Authorization", "Bearer "+used)
	}

	c.logger.Debug().
		Str("request_id", id).
		Str("method", req.Method).
		Str("url", target).
		Bool("authorized", used != "").
		Msg("API request")

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, used, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, used, fmt.Errorf("failed to read response: %w", err)
	}

	ev := c.logger.Debug().Str("request_id", id).Int("status", resp.StatusCode)
	if !req.Quiet {
		ev = ev.Bytes("body", data)
	}
	ev.Msg("API response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, used, &APIError{
			Method:     req.Method,
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Code:       errorCode(data, resp.Header.Get("WWW-Authenticate")),
			Body:       data,
		}
	}

	res := &Result{StatusCode: resp.StatusCode, Header: resp.Header}
	if len(bytes.TrimSpace(data)) > 0 {
		res.Body = data
		res.JSON = json.Valid(data)
	}
	return res, used, nil
}

// encodeBody renders the request body and its content type.
func encodeBody(req Request) ([]byte, string, error) {
	if len(req.Files) > 0 {
		return encodeMultipart(req.Body, req.Files)
	}
	if req.Body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, "application/json", nil
}

func encodeMultipart(fields any, files []File) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if fields != nil {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal form fields: %w", err)
		}
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, "", fmt.Errorf("form fields must be an object: %w", err)
		}
		for _, kv := range flattenForm("", tree) {
			if err := w.WriteField(kv[0], kv[1]); err != nil {
				return nil, "", err
			}
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// flattenForm turns {"a":{"b":1}} into [["a[b]","1"]], sorted by key.
func flattenForm(prefix string, tree map[string]any) [][2]string {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out [][2]string
	for _, k := range keys {
		name := k
		if prefix != "" {
			name = prefix + "[" + k + "]"
		}
		switch v := tree[k].(type) {
		case nil:
		case map[string]any:
			out = append(out, flattenForm(name, v)...)
		case []any:
			for _, item := range v {
				out = append(out, [2]string{name + "[]", formValue(item)})
			}
		default:
			out = append(out, [2]string{name, formValue(v)})
		}
	}
	return out
}

func formValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		data, _ := json.Marshal(v)
		return string(data)
	}
}

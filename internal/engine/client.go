package engine

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Per-operation timeouts. Document processing is slow and each endpoint
// carries its own budget.
var opTimeouts = map[string]time.Duration{
	"processFulltextDocument": 300 * time.Second,
	"processHeaderDocument":   120 * time.Second,
	"processReferences":       180 * time.Second,
	"processCitation":         60 * time.Second,
}

// passthroughTimeout bounds the small informational endpoints.
const passthroughTimeout = 10 * time.Second

// OpTimeout returns the budget for an engine operation.
func OpTimeout(op string) time.Duration {
	if d, ok := opTimeouts[op]; ok {
		return d
	}
	return passthroughTimeout
}

// Result is a raw engine response.
type Result struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client talks to the extraction engine's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(engineURL string) *Client {
	// Intentionally set Timeout=0: all calls use context-based deadlines
	// sized per operation.
	return &Client{baseURL: strings.TrimRight(engineURL, "/"), http: &http.Client{Timeout: 0}}
}

// ProcessDocument posts a document to /api/<op> as multipart form data: the
// file under field "input" with its original filename, plus the given form
// fields.
func (c *Client) ProcessDocument(ctx context.Context, op, filename string, file []byte, form url.Values) (*Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("input", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(file); err != nil {
		return nil, err
	}
	for k, vs := range form {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				return nil, err
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return c.post(ctx, op, &buf, mw.FormDataContentType())
}

// ProcessForm posts url-encoded fields to /api/<op>. Citation parsing has no
// file part.
func (c *Client) ProcessForm(ctx context.Context, op string, form url.Values) (*Result, error) {
	return c.post(ctx, op, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// Get forwards a plain GET to an engine path (isalive, version).
func (c *Client) Get(ctx context.Context, path string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, passthroughTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, op string, body io.Reader, contentType string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, OpTimeout(op))
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/"+op, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Result, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		return nil, err
	}
	return &Result{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

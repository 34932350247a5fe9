package gforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"Backend-Formgenie-007/src/models"
	"Backend-Formgenie-007/src/services/compiler"

	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://forms.googleapis.com/v1"

// ClientOption configures the gateway client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different endpoint (tests, proxies).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client talks to the Google Forms REST API with a caller-supplied
// OAuth credential. It holds no per-user state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateForm creates an empty Google form and returns its id.
func (c *Client) CreateForm(ctx context.Context, token *oauth2.Token, title, documentTitle string) (string, error) {
	body := createFormRequest{Info: formInfo{Title: title, DocumentTitle: documentTitle}}
	var form formResource
	if err := c.do(ctx, token, http.MethodPost, "/forms", body, &form); err != nil {
		return "", err
	}
	return form.FormID, nil
}

// ApplyBatch translates the compiled operation batch into Forms API
// requests and applies them in a single batchUpdate call.
func (c *Client) ApplyBatch(ctx context.Context, token *oauth2.Token, formID string, ops []compiler.Operation) error {
	batch := translate(ops)
	if len(batch.Requests) == 0 {
		return nil
	}
	return c.do(ctx, token, http.MethodPost, "/forms/"+formID+":batchUpdate", batch, nil)
}

// GetPublicLink returns the responder URI of a published form.
func (c *Client) GetPublicLink(ctx context.Context, token *oauth2.Token, formID string) (string, error) {
	var form formResource
	if err := c.do(ctx, token, http.MethodGet, "/forms/"+formID, nil, &form); err != nil {
		return "", err
	}
	return form.ResponderURI, nil
}

func (c *Client) do(ctx context.Context, token *oauth2.Token, method, path string, in, out interface{}) error {
	if token == nil || token.AccessToken == "" {
		return models.ErrGoogleAuthRequired
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrFormsAPI, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", models.ErrFormsAPI, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return models.ErrGoogleAuthExpired
	case resp.StatusCode == http.StatusForbidden:
		return models.ErrGooglePermissionDenied
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: status %d: %s", models.ErrFormsAPI, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", models.ErrFormsAPI, err)
		}
	}
	return nil
}

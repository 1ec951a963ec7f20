// Package mailer delivers contact form submissions through the EmailJS REST API.
//
// The client must be initialised once with the account's public key before sending.
// A send resolves to nil on HTTP 200 and to a *SendError otherwise; there are no retries
// and no client-side timeout beyond the caller's context.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// DefaultEndpoint is the EmailJS API origin
const DefaultEndpoint = "https://api.emailjs.com"

const sendPath = "/api/v1.0/email/send"

var (
	// ErrNotInitialized is returned by SendForm before Init
	ErrNotInitialized = errors.New("mailer: not initialized with a public key")

	// ErrMissingCredentials is returned by Init for an empty public key
	ErrMissingCredentials = errors.New("mailer: public key is empty")
)

// SendError is a non-200 response from the API
type SendError struct {
	Status int
	Text   string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mailer: send failed with status %d: %s", e.Status, e.Text)
}

// sendRequest is the JSON body of an EmailJS send
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Client posts templated messages to EmailJS
type Client struct {
	endpoint   string
	httpClient *http.Client

	mu        sync.RWMutex
	publicKey string
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the API origin
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithHTTPClient overrides the transport
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an uninitialised client
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init stores the public key used as user_id on every send
func (c *Client) Init(publicKey string) error {
	if strings.TrimSpace(publicKey) == "" {
		return ErrMissingCredentials
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publicKey = publicKey
	return nil
}

// Initialized reports whether Init succeeded
func (c *Client) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.publicKey != ""
}

// SendForm posts field data to the template of a service
func (c *Client) SendForm(ctx context.Context, serviceID, templateID string, params map[string]string) error {
	c.mu.RLock()
	key := c.publicKey
	c.mu.RUnlock()
	if key == "" {
		return ErrNotInitialized
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         key,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("mailer: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: post: %w", err)
	}
	defer resp.Body.Close()

	text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return &SendError{Status: resp.StatusCode, Text: strings.TrimSpace(string(text))}
	}
	return nil
}

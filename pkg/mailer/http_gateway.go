package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"sync"
	"time"
)

// HTTPGateway implements email sending via a token-authenticated HTTP relay API
type HTTPGateway struct {
	apiURL   string
	username string
	password string
	sender   string
	client   *http.Client

	// Token management
	token       string
	tokenMutex  sync.RWMutex
	tokenExpiry time.Time
}

// HTTPConfig holds configuration for the HTTP mail relay
type HTTPConfig struct {
	APIURL   string
	Username string
	Password string
	Sender   string
}

// NewHTTPGateway creates a new HTTP mail relay client
func NewHTTPGateway(config HTTPConfig) *HTTPGateway {
	return &HTTPGateway{
		apiURL:   config.APIURL,
		username: config.Username,
		password: config.Password,
		sender:   config.Sender,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// loginRequest represents the login request structure
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse represents the login response structure
type loginResponse struct {
	Status     string `json:"status"`
	Comment    string `json:"comment"`
	Token      string `json:"token"`
	Expiration int    `json:"expiration"` // Token expiry in seconds
	ErrCode    string `json:"errCode"`
}

// sendRequest represents the message sending request structure
type sendRequest struct {
	To      []string `json:"to"`
	From    string   `json:"from"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// sendResponse represents the message sending response structure
type sendResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Data    struct {
		MessageID string `json:"messageId"`
		Rejected  int    `json:"rejected"`
	} `json:"data"`
	ErrCode string `json:"errCode"`
}

// authenticate logs in and retrieves an access token
func (g *HTTPGateway) authenticate() error {
	jsonData, err := json.Marshal(loginRequest{
		Username: g.username,
		Password: g.password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/login", g.apiURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}

	var loginResp loginResponse
	if err := json.Unmarshal(body, &loginResp); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	if loginResp.Status != "success" {
		return fmt.Errorf("login failed: %s (error code: %s)", loginResp.Comment, loginResp.ErrCode)
	}

	g.tokenMutex.Lock()
	g.token = loginResp.Token
	g.tokenExpiry = time.Now().Add(time.Duration(loginResp.Expiration) * time.Second)
	g.tokenMutex.Unlock()

	return nil
}

// isTokenValid checks if the current token is still valid
func (g *HTTPGateway) isTokenValid() bool {
	g.tokenMutex.RLock()
	defer g.tokenMutex.RUnlock()

	if g.token == "" {
		return false
	}

	// Consider token invalid 5 minutes before actual expiry
	return time.Now().Before(g.tokenExpiry.Add(-5 * time.Minute))
}

// ensureValidToken ensures we have a valid access token
func (g *HTTPGateway) ensureValidToken() error {
	if g.isTokenValid() {
		return nil
	}
	return g.authenticate()
}

// NormalizeAddress validates and canonicalizes a recipient address
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return "", fmt.Errorf("invalid email address %q: %w", address, err)
	}
	return strings.ToLower(parsed.Address), nil
}

// Send delivers one message through the relay API
func (g *HTTPGateway) Send(to, subject, body string) error {
	if err := g.ensureValidToken(); err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	recipient, err := NormalizeAddress(to)
	if err != nil {
		return fmt.Errorf("failed to normalize recipient: %w", err)
	}

	jsonData, err := json.Marshal(sendRequest{
		To:      []string{recipient},
		From:    g.sender,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/messages", g.apiURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create send request: %w", err)
	}

	g.tokenMutex.RLock()
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.token))
	g.tokenMutex.RUnlock()
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read send response: %w", err)
	}

	var sendResp sendResponse
	if err := json.Unmarshal(respBody, &sendResp); err != nil {
		return fmt.Errorf("failed to parse send response: %w", err)
	}
	if sendResp.Status != "success" {
		return fmt.Errorf("message sending failed: %s (error code: %s)", sendResp.Comment, sendResp.ErrCode)
	}

	return nil
}

// GetName returns the name of this mail gateway
func (g *HTTPGateway) GetName() string {
	return "HTTP Relay Gateway"
}

package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"docsafe/internal/config"
)

// Account is an identity-provider user record as returned by its admin API.
type Account struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	AvatarURL    string `json:"avatar_url"`
	CreatedAt    int64  `json:"created_at"`     // unix millis
	LastSignInAt *int64 `json:"last_sign_in_at"` // unix millis
}

// CreateAccountParams are the fields required to provision a new account.
type CreateAccountParams struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Client talks to the identity provider's admin REST API. User management is
// performed against the provider; local rows are only a mirror.
type Client struct {
	http *resty.Client
}

// NewClient creates a provider admin API client from configuration.
func NewClient(cfg config.IdentityConfig) *Client {
	c := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetAuthToken(cfg.APIKey).
		SetTimeout(time.Duration(cfg.RequestTimeout) * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

type listAccountsResponse struct {
	Data       []Account `json:"data"`
	TotalCount int       `json:"total_count"`
}

// ListAccounts fetches one page of provider accounts, newest first. An empty
// search returns everything.
func (c *Client) ListAccounts(ctx context.Context, page, limit int, search string) ([]Account, int, error) {
	var out listAccountsResponse
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", fmt.Sprint(limit)).
		SetQueryParam("offset", fmt.Sprint((page-1)*limit)).
		SetQueryParam("order_by", "-created_at").
		SetResult(&out)
	if search != "" {
		req.SetQueryParam("query", search)
	}

	resp, err := req.Get("/users")
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	if resp.IsError() {
		return nil, 0, fmt.Errorf("list accounts: provider returned %s", resp.Status())
	}
	return out.Data, out.TotalCount, nil
}

// CreateAccount provisions a new provider account.
func (c *Client) CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error) {
	var out Account
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(params).
		SetResult(&out).
		Post("/users")
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create account: provider returned %s", resp.Status())
	}
	return &out, nil
}

// UpdateRole changes the role metadata of a provider account.
func (c *Client) UpdateRole(ctx context.Context, accountID, role string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"role": role}).
		Patch("/users/" + accountID)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("update role: provider returned %s", resp.Status())
	}
	return nil
}

// DeleteAccount removes a provider account.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/users/" + accountID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete account: provider returned %s", resp.Status())
	}
	return nil
}

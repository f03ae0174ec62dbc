package gmail

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	userID     = "me"
	inboxQuery = "in:inbox"
)

// CredentialSource supplies an authorized HTTP client for the signed-in
// account.
type CredentialSource interface {
	Email() string
	HTTPClient(ctx context.Context) (*http.Client, error)
}

// Client wraps Gmail API service
type Client struct {
	creds CredentialSource

	mu    sync.Mutex
	srv   *gmail.Service
	email string
}

// NewClientFromCredentials creates a client that builds its service from
// creds on first use and rebuilds it when the signed-in account changes.
func NewClientFromCredentials(creds CredentialSource) *Client {
	return &Client{creds: creds}
}

func (c *Client) service(ctx context.Context) (*gmail.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	email := c.creds.Email()
	if c.srv != nil && c.email == email {
		return c.srv, nil
	}

	httpClient, err := c.creds.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	c.srv, c.email = srv, email
	return srv, nil
}

// ListInboxMessageIDs returns up to limit inbox message IDs, newest first.
func (c *Client) ListInboxMessageIDs(ctx context.Context, limit int64) ([]string, error) {
	srv, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	res, err := srv.Users.Messages.List(userID).
		Q(inboxQuery).
		MaxResults(limit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Messages))
	for _, ref := range res.Messages {
		ids = append(ids, ref.Id)
	}
	return ids, nil
}

// GetMessage fetches a single message with its full payload tree
func (c *Client) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	srv, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	return srv.Users.Messages.Get(userID, messageID).
		Format("full").
		Context(ctx).
		Do()
}

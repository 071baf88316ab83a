package membership

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/heartmarshall/council-backend/internal/domain"
)

const defaultTimeout = 3 * time.Second

// Client talks to the membership service that owns role grants, circle
// membership and contact addresses.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// NewClient creates a Client. token, when set, is sent as a bearer token.
func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration, token string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{
		http: c,
		log:  logger.With("adapter", "membership"),
	}
}

type circlesResponse struct {
	Circles []uuid.UUID `json:"circles"`
}

type rolesResponse struct {
	Roles []string `json:"roles"`
}

type emailsResponse struct {
	Emails []string `json:"emails"`
}

// GetUserCircles returns the circles userID belongs to. An unknown user has none.
func (c *Client) GetUserCircles(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var out circlesResponse
	found, err := c.get(ctx, "/users/{id}/circles", map[string]string{"id": userID.String()}, nil, &out)
	if err != nil || !found {
		return nil, err
	}
	return out.Circles, nil
}

// GetUserRoles returns the roles granted to userID. Roles this service does
// not know are dropped.
func (c *Client) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]domain.Role, error) {
	var out rolesResponse
	found, err := c.get(ctx, "/users/{id}/roles", map[string]string{"id": userID.String()}, nil, &out)
	if err != nil || !found {
		return nil, err
	}

	roles := make([]domain.Role, 0, len(out.Roles))
	for _, raw := range out.Roles {
		r := domain.Role(raw)
		if !r.IsValid() {
			c.log.DebugContext(ctx, "ignoring unknown role",
				slog.String("user_id", userID.String()),
				slog.String("role", raw),
			)
			continue
		}
		roles = append(roles, r)
	}
	return roles, nil
}

// GetAudienceEmails returns the addresses of everyone the audience string
// targets.
func (c *Client) GetAudienceEmails(ctx context.Context, audience string) ([]string, error) {
	var out emailsResponse
	found, err := c.get(ctx, "/audiences/emails", nil, map[string]string{"rule": audience}, &out)
	if err != nil || !found {
		return nil, err
	}
	return out.Emails, nil
}

// get returns found=false on 404.
func (c *Client) get(ctx context.Context, path string, pathParams, query map[string]string, result any) (bool, error) {
	req := c.http.R().SetContext(ctx).SetResult(result)
	if pathParams != nil {
		req.SetPathParams(pathParams)
	}
	if query != nil {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		c.log.ErrorContext(ctx, "membership request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("membership: get %s: %w", path, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return false, nil
	case resp.IsError():
		return false, fmt.Errorf("membership: get %s: unexpected status %d", path, resp.StatusCode())
	}

	c.log.DebugContext(ctx, "membership response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("took", resp.Time()),
	)
	return true, nil
}

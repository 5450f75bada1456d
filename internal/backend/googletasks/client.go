// Package googletasks implements remote.Source using the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskslip/internal/config"
	"taskslip/internal/remote"
)

const (
	// DefaultListID is the API alias of the user's default list.
	DefaultListID = "@default"

	// PageSize is the number of items requested per API page.
	PageSize = 100

	// APITimeout bounds each Source call, including all of its pages.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope requested at login. Import only reads.
	Scope = tasks.TasksReadonlyScope
)

// ErrTimeout is returned when a call exceeds APITimeout.
var ErrTimeout = errors.New("request timed out")

// Client implements remote.Source using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a client from the stored OAuth client and token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	token, err := loadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// The token source refreshes the access token as needed.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return newClient(ctx, option.WithHTTPClient(httpClient))
}

// NewWithEndpoint creates a client against a custom endpoint (for testing).
func NewWithEndpoint(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	return newClient(ctx, option.WithHTTPClient(httpClient), option.WithEndpoint(endpoint))
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// ResolveList implements remote.Source.
// The default list is always reported with ID "@default".
func (c *Client) ResolveList(ctx context.Context, name string) (remote.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	def, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return remote.TaskList{}, apiError(err, DefaultListID)
	}
	if strings.TrimSpace(name) == "" {
		return remote.TaskList{ID: DefaultListID, Title: def.Title, IsDefault: true}, nil
	}

	var lists []remote.TaskList
	err = c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, l := range resp.Items {
			tl := remote.TaskList{ID: l.Id, Title: l.Title}
			if l.Id == def.Id {
				tl.ID, tl.IsDefault = DefaultListID, true
			}
			lists = append(lists, tl)
		}
		return nil
	})
	if err != nil {
		return remote.TaskList{}, apiError(err, "")
	}
	return remote.MatchList(lists, name)
}

// ListOpenTasks implements remote.Source.
// Completed, deleted and hidden tasks are left out.
func (c *Client) ListOpenTasks(ctx context.Context, listID string) ([]remote.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []remote.Task
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(false).
		ShowDeleted(false).
		ShowHidden(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, remote.Task{ID: t.Id, Title: t.Title, Status: t.Status})
			}
			return nil
		})
	if err != nil {
		return nil, apiError(err, listID)
	}
	return result, nil
}

// apiError maps transport and HTTP failures onto the remote sentinels.
// listID names the list a 404 refers to, if any.
func apiError(err error, listID string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch gerr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return remote.ErrUnauthorized
	case http.StatusNotFound:
		if listID != "" {
			return fmt.Errorf("%w: %s", remote.ErrListNotFound, listID)
		}
		return remote.ErrListNotFound
	}
	return err
}

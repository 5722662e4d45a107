package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jaroslawmuzyka/content-ai-wordpress/internal/core/pipeline"
)

const (
	// DefaultTimeout bounds one draft creation request.
	DefaultTimeout = 30 * time.Second

	// maxBodyExcerpt caps how much of an unexpected response body is quoted
	// in the returned error.
	maxBodyExcerpt = 200
)

var (
	// ErrUnauthorized means the site rejected the credentials.
	ErrUnauthorized = errors.New("wordpress authorization failed")

	// ErrForbidden means the user lacks permission to create posts.
	ErrForbidden = errors.New("wordpress user cannot create posts")
)

// Client creates draft posts through the WordPress REST API. Credentials are
// supplied per call, so one client serves any number of target sites.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a publisher with the default timeout.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: DefaultTimeout}}
}

// NormalizeEndpoint turns a bare domain into a full site URL: a scheme is
// added when missing and any trailing slash is dropped.
func NormalizeEndpoint(domain string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return ""
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return strings.TrimRight(domain, "/")
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type createPostResponse struct {
	ID   int64  `json:"id"`
	Link string `json:"link"`
}

// CreateDraft publishes content as a draft post and returns its identity.
func (c *Client) CreateDraft(ctx context.Context, creds pipeline.PublisherCredentials, title, content string) (*pipeline.DraftPost, error) {
	endpoint := NormalizeEndpoint(creds.Endpoint)
	if endpoint == "" {
		return nil, errors.New("wordpress endpoint is empty")
	}

	body, err := json.Marshal(createPostRequest{
		Title:   title,
		Content: content,
		Status:  "draft",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/wp-json/wp/v2/posts", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(creds.Username, creds.AppPassword)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordpress response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		var post createPostResponse
		if err := json.Unmarshal(respBody, &post); err != nil {
			return nil, fmt.Errorf("failed to decode wordpress response: %w", err)
		}
		return &pipeline.DraftPost{ID: post.ID, Link: post.Link}, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusForbidden:
		return nil, ErrForbidden
	default:
		return nil, fmt.Errorf("wordpress returned HTTP %d: %s", resp.StatusCode, excerpt(respBody, maxBodyExcerpt))
	}
}

func excerpt(body []byte, limit int) string {
	s := strings.TrimSpace(string(body))
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

var _ pipeline.Publisher = (*Client)(nil)

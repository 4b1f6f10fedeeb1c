package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	clientTimeout  = time.Minute
	defaultBaseURL = "https://www.reddit.com"

	// DownloadUserAgent is sent with every image download.
	DownloadUserAgent = "go:imagemachine:v0.1 (image downloader)"
	// DefaultUserAgent is used for the API when no credentials are configured.
	DefaultUserAgent = "go:imagemachine:v0.1 (read-only)"
)

var (
	ErrInvalidStatusCode  = errors.New("invalid status code")
	ErrSubredditNotFound  = errors.New("subreddit not found")
	ErrMissingCredentials = errors.New("incomplete reddit credentials")
	ErrInvalidSort        = errors.New("invalid sort mode")
	ErrEmptyName          = errors.New("empty subreddit name")
)

// Client talks to reddit. Construct it with DefaultClient and adjust it with the With* methods.
type Client struct {
	Subreddit *SubredditService

	client *http.Client

	base    *url.URL
	imghost *url.URL

	userAgent string
}

func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.client.Timeout = timeout
	return c
}

func (c *Client) WithBaseURL(u *url.URL) *Client {
	c.base = u
	return c
}

// WithImageHost sends image downloads to u instead of the host in the image URL.
func (c *Client) WithImageHost(u *url.URL) *Client {
	c.imghost = u
	return c
}

// Login attaches the identity used for API requests.
// Empty credentials mean anonymous read-only access; partial ones are rejected.
func (c *Client) Login(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if creds.UserAgent != "" {
		c.userAgent = creds.UserAgent
	} else {
		c.userAgent = DefaultUserAgent
	}
	return nil
}

// Do performs an API request for the path below the base URL.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	u := c.base.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", c.userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching from reddit: %w", err)
	}
	return res, nil
}

func (c *Client) GetURL(ctx context.Context, surl, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, surl, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", userAgent)

	return c.client.Do(req)
}

// GetImage downloads an image. Any status outside of 2xx is an error,
// otherwise the caller owns the response body.
func (c *Client) GetImage(ctx context.Context, surl string) (*http.Response, error) {
	u, err := url.Parse(surl)
	if err != nil {
		return nil, err
	}
	if c.imghost != nil {
		u.Scheme = c.imghost.Scheme
		u.Host = c.imghost.Host
	}

	res, err := c.GetURL(ctx, u.String(), DownloadUserAgent)
	if err != nil {
		return nil, fmt.Errorf("error downloading %s: %w", surl, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		return nil, fmt.Errorf("%w: %s (url=%s)", ErrInvalidStatusCode, res.Status, surl)
	}
	return res, nil
}

func DefaultClient() *Client {
	baseURL, _ := url.Parse(defaultBaseURL)
	c := &Client{
		client: &http.Client{
			Transport: &http.Transport{
				TLSNextProto: map[string]func(authority string, c *tls.Conn) http.RoundTripper{},
			},
			Timeout: clientTimeout,
		},
		base:      baseURL,
		userAgent: DefaultUserAgent,
	}
	c.Subreddit = &SubredditService{
		client: c,
	}
	return c
}

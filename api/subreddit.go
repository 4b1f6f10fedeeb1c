package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
)

// maxPageSize is the largest page reddit returns for a listing.
const maxPageSize = 100

var subredditName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidName reports whether name can be a subreddit. Only letters, digits and
// underscores are allowed, which also keeps the name a single path segment.
func ValidName(name string) bool {
	return subredditName.MatchString(name)
}

type SubredditService struct {
	client *Client
}

// Exists reports whether the subreddit exists. Reddit answers unknown names
// with 404 or by redirecting to a search listing.
func (s *SubredditService) Exists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyName
	}
	if !ValidName(name) {
		return false, nil
	}

	res, err := s.client.Do(ctx, http.MethodGet, "r/"+name+"/about.json", url.Values{"raw_json": {"1"}}, http.NoBody)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return false, nil
	case res.StatusCode != http.StatusOK:
		return false, fmt.Errorf("%w: %s (subreddit=%s)", ErrInvalidStatusCode, res.Status, name)
	}

	var about About
	if err := json.NewDecoder(res.Body).Decode(&about); err != nil {
		return false, fmt.Errorf("%w: couldn't decode subreddit info", err)
	}

	return about.Kind == "t5", nil
}

// Listing returns up to limit posts of the subreddit in the order selected by sort.
// Only the listing for sort is requested; pages are followed while reddit has more.
func (s *SubredditService) Listing(ctx context.Context, name string, sort Sort, limit int) ([]Post, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	posts := make([]Post, 0, limit)
	after := ""
	for len(posts) < limit {
		count := min(limit-len(posts), maxPageSize)
		page, next, err := s.GetPosts(ctx, &RequestOptions{
			After:     after,
			Count:     count,
			Sort:      sort,
			Subreddit: name,
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, page...)
		if next == "" || len(page) == 0 {
			break
		}
		after = next
	}

	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

type RequestOptions struct {
	After     string
	Count     int
	Sort      Sort
	Subreddit string
}

// GetPosts fetches one listing page and returns it together with the "after" cursor.
func (s *SubredditService) GetPosts(ctx context.Context, opts *RequestOptions) ([]Post, string, error) {
	path, query := listingQuery(opts)

	res, err := s.client.Do(ctx, http.MethodGet, path, query, http.NoBody)
	if err != nil {
		return nil, "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: %s (subreddit=%s)", ErrInvalidStatusCode, res.Status, opts.Subreddit)
	}

	var ps Posts
	if err := json.NewDecoder(res.Body).Decode(&ps); err != nil {
		return nil, "", fmt.Errorf("%w: couldn't decode posts", err)
	}

	return ps.Data.Children, ps.Data.After, nil
}

func listingQuery(opts *RequestOptions) (string, url.Values) {
	listing, timeframe := opts.Sort.Listing()

	values := url.Values{}
	values.Set("limit", strconv.Itoa(opts.Count))
	values.Set("raw_json", "1")
	if opts.After != "" {
		values.Set("after", opts.After)
	}
	if timeframe != "" {
		values.Set("t", timeframe)
	}

	return "r/" + opts.Subreddit + "/" + listing + ".json", values
}

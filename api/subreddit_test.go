package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	return DefaultClient().WithBaseURL(u)
}

func serveFile(t *testing.T, name string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(name)
		assert.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, err = w.Write(b)
		assert.NoError(t, err)
	}
}

func TestGetPosts(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/r/wallpaper/top.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "week", r.URL.Query().Get("t"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		serveFile(t, "testdata/listing.json")(w, r)
	})
	client := testClient(t, mux)

	posts, after, err := client.Subreddit.GetPosts(context.TODO(), &RequestOptions{
		Count:     10,
		Sort:      SortTopWeek,
		Subreddit: "wallpaper",
	})
	require.NoError(t, err)
	assert.Equal(t, "t3_1b2c3d", after)
	require.Equal(t, 2, len(posts), "unexpected decoded response")

	p := posts[0]
	assert.Equal(t, "Staring into the woods [3840x2160]", p.Title(), "unexpected decoded title")
	assert.Equal(t, "https://i.redd.it/05sk8tzriboa1.png", p.URL())
	assert.False(t, p.NSFW())

	assert.True(t, posts[1].NSFW())
	assert.Equal(t, "https://www.reddit.com/gallery/11abce?a=1&b=2", posts[1].URL())
}

func TestGetPostsStatus(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/r/wallpaper/hot.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})
	client := testClient(t, mux)

	_, _, err := client.Subreddit.GetPosts(context.TODO(), &RequestOptions{Count: 1, Subreddit: "wallpaper"})
	assert.ErrorIs(t, err, ErrInvalidStatusCode)
}

func TestListingQuery(t *testing.T) {
	t.Parallel()
	tests := []struct {
		sort     Sort
		path     string
		rawQuery string
	}{
		{SortHot, "r/example/hot.json", "limit=10&raw_json=1"},
		{SortNew, "r/example/new.json", "limit=10&raw_json=1"},
		{SortRising, "r/example/rising.json", "limit=10&raw_json=1"},
		{SortTopAll, "r/example/top.json", "limit=10&raw_json=1&t=all"},
		{SortTopHour, "r/example/top.json", "limit=10&raw_json=1&t=hour"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.sort.String(), func(t *testing.T) {
			t.Parallel()
			path, query := listingQuery(&RequestOptions{Count: 10, Sort: tt.sort, Subreddit: "example"})
			assert.Equal(t, tt.path, path, "incorrect url format")
			assert.Equal(t, tt.rawQuery, query.Encode(), "incorrect url format")
		})
	}
}

func TestListingRequestsOnlySelectedSort(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/r/wallpaper/rising.json", r.URL.Path)
		fmt.Fprint(w, `{"data":{"after":"","children":[{"data":{"title":"a"}}]}}`)
	})
	client := testClient(t, mux)

	posts, err := client.Subreddit.Listing(context.TODO(), "wallpaper", SortRising, 50)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(1), calls.Load())
}

func TestListingFollowsPages(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/r/wallpaper/new.json", func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		assert.NoError(t, err)
		assert.LessOrEqual(t, limit, maxPageSize)

		page := 0
		if after := r.URL.Query().Get("after"); after != "" {
			page, err = strconv.Atoi(after)
			assert.NoError(t, err)
		}

		fmt.Fprintf(w, `{"data":{"after":"%d","children":[`, page+1)
		for i := 0; i < limit; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"data":{"title":"p%d-%d"}}`, page, i)
		}
		fmt.Fprint(w, "]}}")
	})
	client := testClient(t, mux)

	posts, err := client.Subreddit.Listing(context.TODO(), "wallpaper", SortNew, 150)
	require.NoError(t, err)
	require.Len(t, posts, 150)
	assert.Equal(t, "p0-0", posts[0].Title())
	assert.Equal(t, "p1-49", posts[149].Title())
}

func TestExists(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/r/wallpaper/about.json", serveFile(t, "testdata/about.json"))
	mux.HandleFunc("/r/nosuchsub/about.json", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/r/searched/about.json", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/subreddits/search.json?q=searched", http.StatusFound)
	})
	mux.HandleFunc("/subreddits/search.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kind":"Listing","data":{"children":[]}}`)
	})
	mux.HandleFunc("/r/broken/about.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})
	client := testClient(t, mux)

	ok, err := client.Subreddit.Exists(context.TODO(), "wallpaper")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.Subreddit.Exists(context.TODO(), "nosuchsub")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.Subreddit.Exists(context.TODO(), "searched")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = client.Subreddit.Exists(context.TODO(), "broken")
	assert.ErrorIs(t, err, ErrInvalidStatusCode)

	_, err = client.Subreddit.Exists(context.TODO(), "")
	assert.ErrorIs(t, err, ErrEmptyName)

	ok, err = client.Subreddit.Exists(context.TODO(), "..")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestValidName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want bool
	}{
		{"pics", true},
		{"Earth_Porn2", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../etc", false},
		{`a\b`, false},
		{"earth porn", false},
		{"café", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidName(tt.name), tt.name)
	}
}

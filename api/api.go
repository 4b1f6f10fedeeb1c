// package api contains the code required to talk to reddit: subreddit lookups,
// post listings and image downloads.
// This package is heavily inspired by https://github.com/vartanbeno/go-reddit/, you should check it out.
// But, this package is simpler, smaller and more specialized to the use-case required by me.
package api

import (
	"strings"
)

// Posts is a single page of a subreddit listing.
type Posts struct {
	Data struct {
		After    string `json:"after"`
		Children []Post `json:"children"`
	} `json:"data"`
}

// Post is a listing child. Only the fields needed to pick images are decoded.
type Post struct {
	Data struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Over18 bool   `json:"over_18"`
	} `json:"data"`
}

// About is the response of /r/{name}/about.json.
// Existing subreddits come back with kind "t5".
type About struct {
	Kind string `json:"kind"`
}

// Title is just the post title.
func (p *Post) Title() string {
	return p.Data.Title
}

// URL returns the link target of the post with html entities undone.
func (p *Post) URL() string {
	return strings.ReplaceAll(p.Data.URL, "&amp;", "&")
}

// NSFW reports whether the post is marked over 18.
func (p *Post) NSFW() bool {
	return p.Data.Over18
}

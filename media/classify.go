// Package media decides which reddit posts link straight to an image
// and how those images are named on disk.
package media

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrSelfCheck = errors.New("image classifier self-check failed")

// imageURL matches a direct jpg/png link on i.redd.it or i.imgur.com.
// The path has to end with the extension, a query or fragment may follow.
var imageURL = regexp.MustCompile(`^https?://(?:i\.redd\.it|i\.imgur\.com)/[^?#\s]*\.(?:png|jpg)(?:[?#]\S*)?$`)

// IsImage reports whether url is a direct link to a supported image.
func IsImage(url string) bool {
	return imageURL.MatchString(url)
}

// SelfCheck runs IsImage against known links. Any mismatch means the
// classifier is misconfigured and the program should not start.
func SelfCheck() error {
	checks := []struct {
		url  string
		want bool
	}{
		{"https://i.imgur.com/QpOvnoL.jpg", true},
		{"https://i.redd.it/luce08zttse21.jpg", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
	}
	for _, c := range checks {
		if got := IsImage(c.url); got != c.want {
			return fmt.Errorf("%w: IsImage(%q)=%t, want %t", ErrSelfCheck, c.url, got, c.want)
		}
	}
	return nil
}
